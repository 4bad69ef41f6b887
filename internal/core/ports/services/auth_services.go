package services

import (
	"context"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// CredentialVerifier checks a username/password pair against one account source.
// Every rejection is reported as apperrors.ErrInvalidCredentials; transport
// failures wrap apperrors.ErrUnavailable.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.VerifiedUser, error)
}

// AuthGateSvc is the session state machine of this installation.
type AuthGateSvc interface {
	// Login verifies credentials and replaces the current session on success.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Logout clears the session from memory and storage.
	Logout(ctx context.Context) error

	// Restore loads the persisted session at startup, discarding it when invalid.
	// It returns a nil session without error when the gate stays anonymous.
	Restore(ctx context.Context) (*domain.Session, error)

	// Authorize checks a bearer token against the current session.
	Authorize(ctx context.Context, token string) (*domain.Session, error)

	// CurrentSession returns the session or apperrors.ErrUnauthorized.
	CurrentSession(ctx context.Context) (*domain.Session, error)

	// State reports where the gate currently is.
	State() domain.SessionState
}
