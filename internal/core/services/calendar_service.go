package services

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
)

type calendarService struct {
	BaseService
	checkins portssvc.CheckinReaderSvc
	now      Clock
	loc      *time.Location
}

// NewCalendarService builds the schedule view model from the journal.
// loc is the farm's timezone; nil means UTC.
func NewCalendarService(checkins portssvc.CheckinReaderSvc, clock Clock, loc *time.Location) portssvc.CalendarSvc {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &calendarService{checkins: checkins, now: clock, loc: loc}
}

func (s *calendarService) Today() time.Time {
	return s.now().In(s.loc)
}

func (s *calendarService) MonthGrid(ctx context.Context, m domain.MonthRef) (*domain.MonthGrid, error) {
	entries, err := s.checkins.ListCheckins(ctx)
	if err != nil {
		return nil, err
	}
	submitted := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		submitted[e.Date] = struct{}{}
	}
	grid := domain.BuildMonthGrid(m, s.Today(), func(date string) bool {
		_, ok := submitted[date]
		return ok
	})
	return &grid, nil
}

func (s *calendarService) SelectDay(ctx context.Context, date string) (*domain.CheckinForm, error) {
	entry, err := s.checkins.GetCheckinByDate(ctx, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		key, _ := domain.NormalizeDate(date)
		return &domain.CheckinForm{Entry: domain.EmptyCheckin(key), Exists: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.CheckinForm{Entry: *entry, Exists: true}, nil
}
