package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"themeweek/models"
)

//go:embed data/edition1.json
var edition1Raw []byte

// editionRow is the on-disk shape of one dataset entry. The five questions
// are positional, Monday first.
type editionRow struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Quote     string   `json:"quote"`
	Questions []string `json:"questions"`
}

// NewDefaultContentService loads the embedded edition dataset.
// startMonday must be an ISO date (the first Monday of Edition 1).
func NewDefaultContentService(startMonday string) (*DefaultContentService, error) {
	start, err := time.Parse("2006-01-02", startMonday)
	if err != nil {
		return nil, fmt.Errorf("invalid edition start date %q: %w", startMonday, err)
	}
	if start.Weekday() != time.Monday {
		return nil, fmt.Errorf("edition start date %q is not a Monday", startMonday)
	}

	var rows []editionRow
	if err := json.Unmarshal(edition1Raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse edition dataset: %w", err)
	}

	entries := make([]models.WeeklyEntry, 0, len(rows))
	for _, r := range rows {
		entry := models.WeeklyEntry{
			ID:           r.ID,
			Title:        r.Title,
			Quote:        r.Quote,
			DailyPrompts: make(map[models.WeekdayCode]string, len(models.WeekdayCodes)),
		}
		for i, code := range models.WeekdayCodes {
			if i < len(r.Questions) {
				entry.DailyPrompts[code] = r.Questions[i]
			}
		}
		entries = append(entries, entry)
	}

	return &DefaultContentService{entries: entries, startMonday: start}, nil
}

// WeekCount returns the number of entries in the loaded edition.
func (s *DefaultContentService) WeekCount() int {
	return len(s.entries)
}
