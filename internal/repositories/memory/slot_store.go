// Package memory keeps slots in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
)

// SlotStore is a map-backed slot store safe for concurrent use.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotStore returns an empty store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

var _ portsrepo.SlotStore = (*SlotStore)(nil)

func (s *SlotStore) Load(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[slot]
	if !ok {
		return nil, apperrors.ErrSlotAbsent
	}
	return slices.Clone(payload), nil
}

func (s *SlotStore) Save(_ context.Context, slot string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = slices.Clone(payload)
	return nil
}

func (s *SlotStore) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
