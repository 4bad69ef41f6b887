package dto

import "github.com/SscSPs/karangnongko_farm/internal/core/domain"

// Calendar navigation actions.
const (
	NavPrev  = "prev"
	NavNext  = "next"
	NavToday = "today"
)

// CalendarParams selects the month to render and an optional step from it.
type CalendarParams struct {
	Month string `form:"month"`
	Nav   string `form:"nav" binding:"omitempty,oneof=prev next today"`
}

// CalendarResponse is the month grid plus the form of the selected day.
type CalendarResponse struct {
	Grid     *domain.MonthGrid   `json:"grid"`
	Selected *domain.CheckinForm `json:"selected,omitempty"`
}
