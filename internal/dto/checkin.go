package dto

import "github.com/SscSPs/karangnongko_farm/internal/core/domain"

// CheckinRequest is the body of a journal submit. Date may be YYYY-MM-DD or RFC3339.
type CheckinRequest struct {
	Date            string      `json:"date" binding:"required"`
	Mood            domain.Mood `json:"mood" binding:"required,oneof=Bad Neutral Great"`
	Accomplishments string      `json:"accomplishments"`
	Challenges      string      `json:"challenges"`
	NextSteps       string      `json:"nextSteps"`
}

func (r CheckinRequest) ToEntry() domain.CheckinEntry {
	return domain.CheckinEntry{
		Date:            r.Date,
		Mood:            r.Mood,
		Accomplishments: r.Accomplishments,
		Challenges:      r.Challenges,
		NextSteps:       r.NextSteps,
	}
}

// CheckinResponse is one journal entry with its display date.
type CheckinResponse struct {
	domain.CheckinEntry
	LongDate string `json:"longDate"`
}

// CheckinSubmitResponse carries the saved entry and its toast.
type CheckinSubmitResponse struct {
	Entry        CheckinResponse `json:"entry"`
	Updated      bool            `json:"updated"`
	Notification *Notification   `json:"notification"`
}

// ListCheckinsResponse is the recent history, newest first.
type ListCheckinsResponse struct {
	Checkins []CheckinResponse `json:"checkins"`
}

func ToCheckinResponse(e domain.CheckinEntry) CheckinResponse {
	return CheckinResponse{CheckinEntry: e, LongDate: domain.LongDate(e.Date)}
}

func ToListCheckinsResponse(entries []domain.CheckinEntry) ListCheckinsResponse {
	out := make([]CheckinResponse, len(entries))
	for i, e := range entries {
		out[i] = ToCheckinResponse(e)
	}
	return ListCheckinsResponse{Checkins: out}
}
