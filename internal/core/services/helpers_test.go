package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/repositories/memory"
)

var errStoreDown = errors.New("store is down")

// flakyStore is a memory slot store whose reads, writes and deletes can be switched off.
type flakyStore struct {
	*memory.SlotStore
	mu          sync.Mutex
	failSaves   bool
	failLoads   bool
	failDeletes bool
	saves       map[string]int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{SlotStore: memory.NewSlotStore(), saves: map[string]int{}}
}

func (s *flakyStore) setFailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves = fail
}

func (s *flakyStore) setFailLoads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoads = fail
}

func (s *flakyStore) setFailDeletes(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeletes = fail
}

func (s *flakyStore) saveCount(slot string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[slot]
}

func (s *flakyStore) Load(ctx context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	fail := s.failLoads
	s.mu.Unlock()
	if fail {
		return nil, errStoreDown
	}
	return s.SlotStore.Load(ctx, slot)
}

func (s *flakyStore) Save(ctx context.Context, slot string, payload []byte) error {
	s.mu.Lock()
	fail := s.failSaves
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	if err := s.SlotStore.Save(ctx, slot, payload); err != nil {
		return err
	}
	s.mu.Lock()
	s.saves[slot]++
	s.mu.Unlock()
	return nil
}

func (s *flakyStore) Delete(ctx context.Context, slot string) error {
	s.mu.Lock()
	fail := s.failDeletes
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.SlotStore.Delete(ctx, slot)
}

// fixedClock pins "now" to 2024-05-15 08:00 UTC.
func fixedClock() time.Time {
	return time.Date(2024, time.May, 15, 8, 0, 0, 0, time.UTC)
}
