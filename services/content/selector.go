package content

import (
	"time"

	"themeweek/models"
)

// weekdayCodeFor maps a Go weekday to the dataset's Mo..Fr codes.
// Saturday and Sunday return false.
func weekdayCodeFor(d time.Weekday) (models.WeekdayCode, bool) {
	switch d {
	case time.Monday:
		return models.WeekdayMo, true
	case time.Tuesday:
		return models.WeekdayDi, true
	case time.Wednesday:
		return models.WeekdayMi, true
	case time.Thursday:
		return models.WeekdayDo, true
	case time.Friday:
		return models.WeekdayFr, true
	default:
		return "", false
	}
}

// WeekIndex computes floor((now-start)/7d), clamped to 0 for dates before the
// edition start. There is no upper clamp: indexes past the end of the dataset
// resolve to "no entry" downstream.
func WeekIndex(now, startMonday time.Time) int {
	days := int(midnight(now).Sub(midnight(startMonday)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EntryForWeek returns the entry at the given week index, or false when the
// index is out of range.
func (s *DefaultContentService) EntryForWeek(index int) (*models.WeeklyEntry, bool) {
	if index < 0 || index >= len(s.entries) {
		return nil, false
	}
	e := s.entries[index]
	return &e, true
}

// ViewFor resolves the content shown for a calendar day. Pure function of
// (now, start date, dataset): no side effects, no error conditions. A missing
// entry renders the unavailable placeholder, weekends the weekend placeholder.
func (s *DefaultContentService) ViewFor(now time.Time) models.DailyView {
	idx := WeekIndex(now, s.startMonday)

	view := models.DailyView{
		Date:      now.Format("2006-01-02"),
		WeekIndex: idx,
	}

	entry, ok := s.EntryForWeek(idx)
	if ok {
		view.Entry = entry
	}

	code, workday := weekdayCodeFor(now.Weekday())
	if !workday {
		view.Weekend = true
		view.Prompt = PlaceholderWeekend
		return view
	}
	view.Weekday = code

	if !ok {
		view.Prompt = PlaceholderUnavailable
		return view
	}

	prompt, found := entry.DailyPrompts[code]
	if !found || prompt == "" {
		view.Prompt = PlaceholderUnavailable
		return view
	}
	view.Prompt = prompt
	return view
}
