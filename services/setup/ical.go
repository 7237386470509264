package setup

import (
	"context"
	"fmt"
	"strings"
)

// ICalFeed renders the team calendar for the saved setup: one all-day event
// per planned week, Monday through Friday, carrying the week's theme and
// quote. Only available when the saved plan is C with iCal enabled.
func (s *DefaultSetupService) ICalFeed(ctx context.Context, deviceID string) (string, error) {
	state, ok := s.Store.Setup(ctx, deviceID)
	if !ok || !state.ICalEnabled {
		return "", ICalUnavailableError{}
	}

	start, okDate := parseISODate(state.StartMonday)
	if !okDate {
		return "", ValidationError{Message: msgInvalidStartDate}
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//themeweek//Teamkalender//DE")
	writeLine("CALSCALE:GREGORIAN")

	stamp := s.now().UTC().Format("20060102T150405Z")
	for week := 0; week < state.WeeksCount; week++ {
		monday := start.AddDate(0, 0, week*7)
		saturday := monday.AddDate(0, 0, 5) // DTEND is exclusive: Mo-Fr event

		summary := fmt.Sprintf("Thema der Woche %d", week+1)
		description := ""
		if entry, found := s.Content.EntryForWeek(week); found {
			summary = "Thema der Woche: " + entry.Title
			description = "„" + entry.Quote + "“"
		}

		writeLine("BEGIN:VEVENT")
		writeLine(fmt.Sprintf("UID:ed%d-week%02d-%s@themeweek", state.Edition, week+1, state.StartMonday))
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART;VALUE=DATE:" + monday.Format("20060102"))
		writeLine("DTEND;VALUE=DATE:" + saturday.Format("20060102"))
		writeLine("SUMMARY:" + escapeICalText(summary))
		if description != "" {
			writeLine("DESCRIPTION:" + escapeICalText(description))
		}
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return b.String(), nil
}

// escapeICalText escapes the characters RFC 5545 reserves in text values.
func escapeICalText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
