package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
)

// tableVerifier checks credentials against the users table.
type tableVerifier struct {
	users portsrepo.UserReader
}

// NewTableVerifier verifies against stored accounts. Stored passwords may be
// bcrypt hashes or plaintext.
func NewTableVerifier(users portsrepo.UserReader) portssvc.CredentialVerifier {
	return &tableVerifier{users: users}
}

func (v *tableVerifier) Verify(ctx context.Context, username, password string) (*domain.VerifiedUser, error) {
	user, err := v.users.FindUserByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w: %w", apperrors.ErrUnavailable, err)
	}
	if !utils.CheckStoredPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Role.IsValid() {
		return nil, fmt.Errorf("%w: account has unknown role %q", apperrors.ErrInvalidCredentials, user.Role)
	}
	return user.Verified(), nil
}
