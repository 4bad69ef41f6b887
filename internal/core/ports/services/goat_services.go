package services

import (
	"context"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// GoatReaderSvc defines read operations on the livestock roster.
type GoatReaderSvc interface {
	// GetGoatByID retrieves a goat or apperrors.ErrNotFound.
	GetGoatByID(ctx context.Context, id string) (*domain.Goat, error)

	// ListGoats returns the roster filtered by barn ("all" for everything), in insertion order.
	ListGoats(ctx context.Context, barnFilter string) ([]domain.Goat, error)

	// SummarizeGoats counts goats per barn and per health status.
	SummarizeGoats(ctx context.Context) (*domain.GoatSummary, error)
}

// GoatWriterSvc defines write operations on the livestock roster.
type GoatWriterSvc interface {
	// AddGoat assigns a new id and appends the goat.
	AddGoat(ctx context.Context, fields domain.GoatFields) (*domain.Goat, error)

	// UpdateGoat replaces the fields of an existing goat, keeping its id.
	UpdateGoat(ctx context.Context, id string, fields domain.GoatFields) (*domain.Goat, error)

	// DeleteGoat removes a goat permanently.
	DeleteGoat(ctx context.Context, id string) error
}

// GoatSvcFacade combines all goat-related service interfaces
type GoatSvcFacade interface {
	GoatReaderSvc
	GoatWriterSvc
}
