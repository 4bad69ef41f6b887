package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// Texts of the seeded demonstration history.
const (
	seedAccomplishments = "Memberi makan semua kambing"
	seedChallenges      = "Beberapa kambing terlihat lesu"
	seedNextSteps       = "Periksa kesehatan kambing"
)

// CheckinServiceOption is a functional option for configuring the check-in service
type CheckinServiceOption func(*checkinService)

// WithCheckinClock sets the clock used to seed the demonstration history.
func WithCheckinClock(clock Clock) CheckinServiceOption {
	return func(s *checkinService) {
		s.now = clock
	}
}

// WithCheckinRand sets the random source of the seeded moods.
func WithCheckinRand(r *rand.Rand) CheckinServiceOption {
	return func(s *checkinService) {
		s.rng = r
	}
}

type checkinService struct {
	BaseService
	mu       sync.Mutex
	loaded   bool
	checkins []domain.CheckinEntry
	slot     *JSONSlot[[]domain.CheckinEntry]
	now      Clock
	rng      *rand.Rand
}

// NewCheckinService creates the check-in journal on top of store.
func NewCheckinService(store portsrepo.SlotStore, options ...CheckinServiceOption) portssvc.CheckinSvcFacade {
	s := &checkinService{
		slot: NewJSONSlot[[]domain.CheckinEntry](store, portsrepo.SlotCheckins),
		now:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *checkinService) randomMood() domain.Mood {
	if s.rng != nil {
		return domain.Moods[s.rng.IntN(len(domain.Moods))]
	}
	return domain.Moods[rand.IntN(len(domain.Moods))]
}

// demoHistory covers every other day of the trailing week, oldest first.
func (s *checkinService) demoHistory() []domain.CheckinEntry {
	today := s.now()
	entries := make([]domain.CheckinEntry, 0, 3)
	for i := 7; i > 0; i-- {
		if i%2 != 0 {
			continue
		}
		entries = append(entries, domain.CheckinEntry{
			Date:            domain.DateKey(today.AddDate(0, 0, -i)),
			Mood:            s.randomMood(),
			Accomplishments: seedAccomplishments,
			Challenges:      seedChallenges,
			NextSteps:       seedNextSteps,
		})
	}
	return entries
}

// ensureLoaded loads or seeds the journal once. Callers hold s.mu.
func (s *checkinService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	checkins, found, err := s.slot.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load check-ins")
		return err
	}
	if !found {
		checkins = s.demoHistory()
		if err := s.slot.Save(ctx, checkins); err != nil {
			s.LogError(ctx, err, "Failed to persist demonstration check-ins")
			return err
		}
		s.LogInfo(ctx, "Seeded demonstration check-ins", slog.Int("count", len(checkins)))
	}
	if checkins == nil {
		checkins = []domain.CheckinEntry{}
	}
	s.checkins = checkins
	s.loaded = true
	return nil
}

func (s *checkinService) indexOf(date string) int {
	return slices.IndexFunc(s.checkins, func(c domain.CheckinEntry) bool { return c.Date == date })
}

func normalizeDateArg(date string) (string, error) {
	key, err := domain.NormalizeDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return key, nil
}

func (s *checkinService) SubmitCheckin(ctx context.Context, entry domain.CheckinEntry) (*domain.CheckinEntry, bool, error) {
	key, err := normalizeDateArg(entry.Date)
	if err != nil {
		return nil, false, err
	}
	entry.Date = key
	if err := validateStruct(entry); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false, err
	}

	updated := slices.Clone(s.checkins)
	idx := s.indexOf(key)
	isUpdate := idx >= 0
	if isUpdate {
		updated[idx] = entry
	} else {
		updated = append(updated, entry)
	}
	if err := s.slot.Save(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to persist check-ins", slog.String("date", key))
		return nil, false, err
	}
	s.checkins = updated

	s.LogInfo(ctx, "Check-in saved", slog.String("date", key), slog.Bool("updated", isUpdate), slog.String("mood", string(entry.Mood)))
	return &entry, isUpdate, nil
}

func (s *checkinService) GetCheckinByDate(ctx context.Context, date string) (*domain.CheckinEntry, error) {
	key, err := normalizeDateArg(date)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := s.indexOf(key)
	if idx < 0 {
		return nil, fmt.Errorf("check-in %s: %w", key, apperrors.ErrNotFound)
	}
	entry := s.checkins[idx]
	return &entry, nil
}

func (s *checkinService) HasCheckinForDate(ctx context.Context, date string) (bool, error) {
	key, err := normalizeDateArg(date)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	return s.indexOf(key) >= 0, nil
}

func (s *checkinService) ListCheckins(ctx context.Context) ([]domain.CheckinEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := slices.Clone(s.checkins)
	slices.SortStableFunc(out, func(a, b domain.CheckinEntry) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return out, nil
}
