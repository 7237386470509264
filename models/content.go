// models/content.go
package models

// WeekdayCode identifies a working day of the theme week.
type WeekdayCode string

const (
	WeekdayMo WeekdayCode = "Mo"
	WeekdayDi WeekdayCode = "Di"
	WeekdayMi WeekdayCode = "Mi"
	WeekdayDo WeekdayCode = "Do"
	WeekdayFr WeekdayCode = "Fr"
)

// WeekdayCodes lists the working days in week order.
var WeekdayCodes = []WeekdayCode{WeekdayMo, WeekdayDi, WeekdayMi, WeekdayDo, WeekdayFr}

// WeeklyEntry is one week of edition content: a theme title, the week's quote
// and one daily prompt per working day. Entries are immutable and loaded from
// the embedded edition dataset at startup.
type WeeklyEntry struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Quote        string                 `json:"quote"`
	DailyPrompts map[WeekdayCode]string `json:"dailyPrompts"`
}

// DailyView is the resolved content for a single calendar day.
type DailyView struct {
	Date      string       `json:"date"`
	WeekIndex int          `json:"weekIndex"`
	Weekend   bool         `json:"weekend"`
	Weekday   WeekdayCode  `json:"weekday,omitempty"`
	Entry     *WeeklyEntry `json:"entry,omitempty"`
	Prompt    string       `json:"prompt"`
}
