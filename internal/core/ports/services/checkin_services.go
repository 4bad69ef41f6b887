package services

import (
	"context"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// CheckinReaderSvc defines read operations on the daily journal.
type CheckinReaderSvc interface {
	// GetCheckinByDate retrieves the entry of a day or apperrors.ErrNotFound.
	GetCheckinByDate(ctx context.Context, date string) (*domain.CheckinEntry, error)

	// HasCheckinForDate reports whether the day has an entry.
	HasCheckinForDate(ctx context.Context, date string) (bool, error)

	// ListCheckins returns every entry, newest first.
	ListCheckins(ctx context.Context) ([]domain.CheckinEntry, error)
}

// CheckinWriterSvc defines write operations on the daily journal.
type CheckinWriterSvc interface {
	// SubmitCheckin inserts or replaces the entry of entry.Date.
	// updated is true when an entry for that day already existed.
	SubmitCheckin(ctx context.Context, entry domain.CheckinEntry) (saved *domain.CheckinEntry, updated bool, err error)
}

// CheckinSvcFacade combines all check-in related service interfaces
type CheckinSvcFacade interface {
	CheckinReaderSvc
	CheckinWriterSvc
}
