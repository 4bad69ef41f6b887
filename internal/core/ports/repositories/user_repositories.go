package repositories

import (
	"context"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// UserReader defines read operations for stored login accounts.
type UserReader interface {
	// FindUserByUsername returns the account or apperrors.ErrNotFound.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for stored login accounts.
type UserWriter interface {
	// SaveUser inserts or replaces an account keyed by username.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
