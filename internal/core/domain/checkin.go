package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and key format for calendar dates.
const DateLayout = "2006-01-02"

// LongDateLayout is used in user-facing messages.
const LongDateLayout = "2 January 2006"

// Mood of a daily check-in.
type Mood string

const (
	MoodBad     Mood = "Bad"
	MoodNeutral Mood = "Neutral"
	MoodGreat   Mood = "Great"
)

// Moods lists the enumerated moods.
var Moods = []Mood{MoodBad, MoodNeutral, MoodGreat}

// CheckinEntry is one journal entry. Date is the natural key.
type CheckinEntry struct {
	Date            string `json:"date" validate:"required"`
	Mood            Mood   `json:"mood" validate:"required,oneof=Bad Neutral Great"`
	Accomplishments string `json:"accomplishments"`
	Challenges      string `json:"challenges"`
	NextSteps       string `json:"nextSteps"`
}

// NormalizeDate converts a YYYY-MM-DD or RFC3339 value to the YYYY-MM-DD key.
// RFC3339 values keep their own calendar day; no timezone shift is applied.
func NormalizeDate(value string) (string, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("date %q must be formatted as YYYY-MM-DD", value)
}

// DateKey formats t as a journal key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// LongDate renders a YYYY-MM-DD key for display. Unparseable keys are returned as is.
func LongDate(key string) string {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return key
	}
	return t.Format(LongDateLayout)
}

// EmptyCheckin is the editor default for a day without an entry.
func EmptyCheckin(date string) CheckinEntry {
	return CheckinEntry{Date: date, Mood: MoodNeutral}
}

// CheckinForm is the editor state for one selected day.
type CheckinForm struct {
	Entry  CheckinEntry `json:"entry"`
	Exists bool         `json:"exists"`
}
