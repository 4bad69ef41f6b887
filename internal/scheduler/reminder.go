// Package scheduler runs the periodic check-in reminder.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/metrics"
	"github.com/robfig/cron/v3"
)

const reminderTimeout = 30 * time.Second

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	checkins portssvc.CheckinReaderSvc
	calendar portssvc.CalendarSvc
	logger   *slog.Logger
}

// NewScheduler creates a scheduler whose jobs fire in loc.
func NewScheduler(spec string, loc *time.Location, checkins portssvc.CheckinReaderSvc, calendar portssvc.CalendarSvc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     spec,
		checkins: checkins,
		calendar: calendar,
		logger:   logger.With(slog.String("component", "scheduler")),
	}
}

// Start registers the reminder and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.remindCheckin); err != nil {
		return fmt.Errorf("schedule check-in reminder %q: %w", s.spec, err)
	}
	s.logger.Info("Starting scheduler", slog.String("reminder_cron", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) remindCheckin() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
	defer cancel()
	s.RemindCheckin(ctx)
}

// RemindCheckin updates the today gauge and warns when today has no entry.
// It reports whether today is submitted.
func (s *Scheduler) RemindCheckin(ctx context.Context) bool {
	today := domain.DateKey(s.calendar.Today())
	submitted, err := s.checkins.HasCheckinForDate(ctx, today)
	if err != nil {
		s.logger.Error("Failed to check today's check-in", slog.String("date", today), slog.String("error", err.Error()))
		return false
	}
	if submitted {
		metrics.CheckinTodaySubmitted.Set(1)
		s.logger.Debug("Today's check-in already submitted", slog.String("date", today))
		return true
	}
	metrics.CheckinTodaySubmitted.Set(0)
	s.logger.Warn("Daily check-in has not been submitted yet", slog.String("date", today))
	return false
}
