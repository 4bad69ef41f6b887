package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
)

// GoatIDStrategy selects how new goat ids are minted.
type GoatIDStrategy string

const (
	// GoatIDSequence mints from a persisted counter and never reuses an id.
	GoatIDSequence GoatIDStrategy = "sequence"
	// GoatIDLength mints K + (collection length + 1). It can repeat ids after deletes.
	GoatIDLength GoatIDStrategy = "length"
)

// ParseGoatIDStrategy maps a config value to a strategy, defaulting to sequence.
func ParseGoatIDStrategy(value string) GoatIDStrategy {
	if GoatIDStrategy(strings.ToLower(strings.TrimSpace(value))) == GoatIDLength {
		return GoatIDLength
	}
	return GoatIDSequence
}

// GoatServiceOption is a functional option for configuring the goat service
type GoatServiceOption func(*goatService)

// WithGoatIDStrategy overrides the default sequence strategy.
func WithGoatIDStrategy(strategy GoatIDStrategy) GoatServiceOption {
	return func(s *goatService) {
		s.strategy = strategy
	}
}

// goatService owns the in-memory roster and mirrors it to the goats slot.
type goatService struct {
	BaseService
	mu       sync.Mutex
	loaded   bool
	goats    []domain.Goat
	seq      int
	slot     *JSONSlot[[]domain.Goat]
	seqSlot  *JSONSlot[int]
	strategy GoatIDStrategy
}

// NewGoatService creates the livestock registry on top of store.
func NewGoatService(store portsrepo.SlotStore, options ...GoatServiceOption) portssvc.GoatSvcFacade {
	s := &goatService{
		slot:     NewJSONSlot[[]domain.Goat](store, portsrepo.SlotGoats),
		seqSlot:  NewJSONSlot[int](store, portsrepo.SlotGoatsSeq),
		strategy: GoatIDSequence,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ensureLoaded loads or seeds the roster once. Callers hold s.mu.
func (s *goatService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	goats, found, err := s.slot.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load goats")
		return err
	}
	if !found {
		goats = domain.DemoGoats()
		if err := s.slot.Save(ctx, goats); err != nil {
			s.LogError(ctx, err, "Failed to persist demonstration goats")
			return err
		}
		s.LogInfo(ctx, "Seeded demonstration goats", slog.Int("count", len(goats)))
	}
	if goats == nil {
		goats = []domain.Goat{}
	}

	if s.strategy == GoatIDSequence {
		seq, _, err := s.seqSlot.Load(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to load goat id sequence")
			return err
		}
		s.seq = max(seq, initialSequence(goats))
	}

	s.goats = goats
	s.loaded = true
	return nil
}

// initialSequence is the larger of the roster size and the highest numeric id suffix.
func initialSequence(goats []domain.Goat) int {
	highest := len(goats)
	for _, g := range goats {
		n, err := strconv.Atoi(strings.TrimPrefix(g.ID, "K"))
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

func formatGoatID(n int) string {
	return fmt.Sprintf("K%03d", n)
}

func validateGoatFields(fields domain.GoatFields) error {
	if err := validateStruct(fields); err != nil {
		return err
	}
	if !fields.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

func (s *goatService) indexOf(id string) int {
	return slices.IndexFunc(s.goats, func(g domain.Goat) bool { return g.ID == id })
}

func (s *goatService) AddGoat(ctx context.Context, fields domain.GoatFields) (*domain.Goat, error) {
	if err := validateGoatFields(fields); err != nil {
		s.LogDebug(ctx, "Rejected goat", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	var goat domain.Goat
	nextSeq := s.seq
	switch s.strategy {
	case GoatIDLength:
		goat = domain.Goat{ID: formatGoatID(len(s.goats) + 1), GoatFields: fields}
	default:
		nextSeq++
		goat = domain.Goat{ID: formatGoatID(nextSeq), GoatFields: fields}
		// The counter is written first: a failed roster save then only leaves a gap.
		if err := s.seqSlot.Save(ctx, nextSeq); err != nil {
			s.LogError(ctx, err, "Failed to persist goat id sequence")
			return nil, err
		}
		s.seq = nextSeq
	}

	updated := append(slices.Clone(s.goats), goat)
	if err := s.slot.Save(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to persist goats", slog.String("goat_id", goat.ID))
		return nil, err
	}
	s.goats = updated

	s.LogInfo(ctx, "Goat added", slog.String("goat_id", goat.ID), slog.String("barn", string(goat.Barn)))
	return &goat, nil
}

func (s *goatService) UpdateGoat(ctx context.Context, id string, fields domain.GoatFields) (*domain.Goat, error) {
	if err := validateGoatFields(fields); err != nil {
		s.LogDebug(ctx, "Rejected goat update", slog.String("goat_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		s.LogDebug(ctx, "Update of unknown goat ignored", slog.String("goat_id", id))
		return nil, fmt.Errorf("goat %s: %w", id, apperrors.ErrNotFound)
	}

	goat := domain.Goat{ID: id, GoatFields: fields}
	updated := slices.Clone(s.goats)
	updated[idx] = goat
	if err := s.slot.Save(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to persist goats", slog.String("goat_id", id))
		return nil, err
	}
	s.goats = updated

	s.LogInfo(ctx, "Goat updated", slog.String("goat_id", id))
	return &goat, nil
}

func (s *goatService) DeleteGoat(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		s.LogDebug(ctx, "Delete of unknown goat ignored", slog.String("goat_id", id))
		return fmt.Errorf("goat %s: %w", id, apperrors.ErrNotFound)
	}

	updated := slices.Delete(slices.Clone(s.goats), idx, idx+1)
	if err := s.slot.Save(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to persist goats", slog.String("goat_id", id))
		return err
	}
	s.goats = updated

	s.LogInfo(ctx, "Goat deleted", slog.String("goat_id", id))
	return nil
}

func (s *goatService) GetGoatByID(ctx context.Context, id string) (*domain.Goat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("goat %s: %w", id, apperrors.ErrNotFound)
	}
	goat := s.goats[idx]
	return &goat, nil
}

func (s *goatService) ListGoats(ctx context.Context, barnFilter string) ([]domain.Goat, error) {
	if barnFilter == "" {
		barnFilter = domain.BarnFilterAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Goat, 0, len(s.goats))
	for _, g := range s.goats {
		if g.MatchesBarn(barnFilter) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *goatService) SummarizeGoats(ctx context.Context) (*domain.GoatSummary, error) {
	goats, err := s.ListGoats(ctx, domain.BarnFilterAll)
	if err != nil {
		return nil, err
	}
	summary := &domain.GoatSummary{
		Total:    len(goats),
		ByBarn:   make(map[domain.Barn]int, len(domain.Barns)),
		ByStatus: make(map[domain.HealthStatus]int, len(domain.HealthStatuses)),
	}
	for _, b := range domain.Barns {
		summary.ByBarn[b] = 0
	}
	for _, st := range domain.HealthStatuses {
		summary.ByStatus[st] = 0
	}
	for _, g := range goats {
		summary.ByBarn[g.Barn]++
		summary.ByStatus[g.Status]++
	}
	return summary, nil
}
