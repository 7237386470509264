package content

import (
	"time"

	"themeweek/models"
)

// Placeholder strings rendered when no entry or prompt is available.
const (
	PlaceholderUnavailable = "Inhalt wird geladen oder ist nicht verfügbar."
	PlaceholderWeekend     = "Wochenende – der nächste Tagesimpuls kommt am Montag."
)

// ContentService selects weekly edition content by calendar date.
type ContentService interface {
	// EntryForWeek returns the entry at the given week index, or false when
	// the index is out of the dataset's range.
	EntryForWeek(index int) (*models.WeeklyEntry, bool)

	// ViewFor resolves the content for a calendar day: week index, entry and
	// the daily prompt (or the weekend placeholder on Sat/Sun).
	ViewFor(now time.Time) models.DailyView

	// WeekCount returns the number of entries in the loaded edition.
	WeekCount() int
}

// DefaultContentService is the production implementation, backed by the
// embedded edition dataset and a fixed edition start Monday.
type DefaultContentService struct {
	entries     []models.WeeklyEntry
	startMonday time.Time
}
