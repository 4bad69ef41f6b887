package domain

import (
	"fmt"
	"time"
)

// WeekdayHeaders are the Indonesian short weekday names, Sunday first.
var WeekdayHeaders = []string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

var monthNamesID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthRef identifies a calendar month.
type MonthRef struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the month containing today.
func CurrentMonth(today time.Time) MonthRef {
	return MonthRef{Year: today.Year(), Month: today.Month()}
}

// ParseMonth parses a YYYY-MM value.
func ParseMonth(value string) (MonthRef, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return MonthRef{}, fmt.Errorf("month %q must be formatted as YYYY-MM", value)
	}
	return MonthRef{Year: t.Year(), Month: t.Month()}, nil
}

func (m MonthRef) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Prev is the month before m.
func (m MonthRef) Prev() MonthRef {
	p := m.first().AddDate(0, -1, 0)
	return MonthRef{Year: p.Year(), Month: p.Month()}
}

// Next is the month after m.
func (m MonthRef) Next() MonthRef {
	n := m.first().AddDate(0, 1, 0)
	return MonthRef{Year: n.Year(), Month: n.Month()}
}

// DaysIn returns the number of days of the month.
func (m MonthRef) DaysIn() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// String formats m as YYYY-MM.
func (m MonthRef) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label renders m in Indonesian, e.g. "Mei 2024".
func (m MonthRef) Label() string {
	return fmt.Sprintf("%s %d", monthNamesID[m.Month-1], m.Year)
}

// Contains reports whether the calendar day of t falls in m.
func (m MonthRef) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DayCell is one square of the month grid. Blank cells pad the first week.
type DayCell struct {
	Blank     bool   `json:"blank"`
	Date      string `json:"date,omitempty"`
	Day       int    `json:"day,omitempty"`
	IsToday   bool   `json:"isToday"`
	Submitted bool   `json:"submitted"`
}

// MonthGrid is the calendar view model of one month.
type MonthGrid struct {
	Month         string    `json:"month"`
	Label         string    `json:"label"`
	Weekdays      []string  `json:"weekdays"`
	LeadingBlanks int       `json:"leadingBlanks"`
	Cells         []DayCell `json:"cells"`
	Prev          string    `json:"prev"`
	Next          string    `json:"next"`
}

// BuildMonthGrid lays out month m. today decides the single "today" cell and
// has reports whether a check-in exists for a YYYY-MM-DD key.
func BuildMonthGrid(m MonthRef, today time.Time, has func(date string) bool) MonthGrid {
	first := m.first()
	blanks := int(first.Weekday())
	days := m.DaysIn()
	todayKey := DateKey(today)

	cells := make([]DayCell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, DayCell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		key := DateKey(first.AddDate(0, 0, d-1))
		cells = append(cells, DayCell{
			Date:      key,
			Day:       d,
			IsToday:   key == todayKey,
			Submitted: has != nil && has(key),
		})
	}

	return MonthGrid{
		Month:         m.String(),
		Label:         m.Label(),
		Weekdays:      WeekdayHeaders,
		LeadingBlanks: blanks,
		Cells:         cells,
		Prev:          m.Prev().String(),
		Next:          m.Next().String(),
	}
}
