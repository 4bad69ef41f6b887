package dto

import "github.com/SscSPs/karangnongko_farm/internal/core/domain"

// View names returned by the page endpoints.
const (
	ViewLogin     = "login"
	ViewDashboard = "dashboard"
	ViewRoster    = "daftar-peternakan"
	ViewSchedule  = "jadwal"
	ViewNotFound  = "not-found"
)

// LoginViewResponse is the login page model.
type LoginViewResponse struct {
	View string `json:"view"`
}

// DashboardViewResponse carries the greeting and live KPIs.
type DashboardViewResponse struct {
	View           string             `json:"view"`
	Greeting       string             `json:"greeting"`
	User           SessionResponse    `json:"user"`
	Summary        domain.GoatSummary `json:"summary"`
	Today          string             `json:"today"`
	TodaySubmitted bool               `json:"todaySubmitted"`
	Recent         []CheckinResponse  `json:"recent"`
}

// RosterViewResponse is the livestock page model.
type RosterViewResponse struct {
	View  string           `json:"view"`
	User  SessionResponse  `json:"user"`
	Goats GoatPageResponse `json:"goats"`
}

// ScheduleViewResponse is the calendar page model.
type ScheduleViewResponse struct {
	View     string              `json:"view"`
	User     SessionResponse     `json:"user"`
	Grid     *domain.MonthGrid   `json:"grid"`
	Selected *domain.CheckinForm `json:"selected"`
}

// NotFoundResponse is returned for unknown paths.
type NotFoundResponse struct {
	View  string `json:"view"`
	Error string `json:"error"`
}
