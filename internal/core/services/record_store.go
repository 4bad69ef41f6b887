package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/SscSPs/karangnongko_farm/internal/metrics"
)

// JSONSlot is a typed view over one named slot of a SlotStore.
type JSONSlot[T any] struct {
	store portsrepo.SlotStore
	name  string
}

// NewJSONSlot binds slot name of store to the value type T.
func NewJSONSlot[T any](store portsrepo.SlotStore, name string) *JSONSlot[T] {
	return &JSONSlot[T]{store: store, name: name}
}

// Name returns the slot name.
func (s *JSONSlot[T]) Name() string { return s.name }

// Load decodes the slot. found is false when the slot was never saved.
func (s *JSONSlot[T]) Load(ctx context.Context) (value T, found bool, err error) {
	raw, err := s.store.Load(ctx, s.name)
	if errors.Is(err, apperrors.ErrSlotAbsent) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("load slot %q: %w: %w", s.name, apperrors.ErrUnavailable, err)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("decode slot %q: %w", s.name, err)
	}
	return value, true, nil
}

// Save encodes value and overwrites the slot.
func (s *JSONSlot[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", s.name, err)
	}
	if err := s.store.Save(ctx, s.name, raw); err != nil {
		metrics.SlotSaves.WithLabelValues(s.name, metrics.ResultError).Inc()
		return fmt.Errorf("save slot %q: %w: %w", s.name, apperrors.ErrUnavailable, err)
	}
	metrics.SlotSaves.WithLabelValues(s.name, metrics.ResultOK).Inc()
	return nil
}

// Clear removes the slot.
func (s *JSONSlot[T]) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.name); err != nil {
		return fmt.Errorf("clear slot %q: %w: %w", s.name, apperrors.ErrUnavailable, err)
	}
	return nil
}
