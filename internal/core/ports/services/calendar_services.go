package services

import (
	"context"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// CalendarSvc builds the schedule page view model.
type CalendarSvc interface {
	// Today returns the current time in the farm's timezone.
	Today() time.Time

	// MonthGrid lays out month m with the submitted flag of every day.
	MonthGrid(ctx context.Context, m domain.MonthRef) (*domain.MonthGrid, error)

	// SelectDay returns the editor form for date: the stored entry or defaults.
	SelectDay(ctx context.Context, date string) (*domain.CheckinForm, error)
}
