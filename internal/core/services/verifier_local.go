package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
	"github.com/google/uuid"
)

// DemoPassword is the password of every built-in demo account.
const DemoPassword = "password"

// localVerifier checks credentials against the built-in demo accounts.
type localVerifier struct {
	users map[string]domain.User
	// dummyHash is compared against for unknown usernames so both paths cost one bcrypt check.
	dummyHash string
}

// NewLocalVerifier builds the demo account set: admin, barat and timur, all with DemoPassword.
func NewLocalVerifier() (portssvc.CredentialVerifier, error) {
	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	v := &localVerifier{users: make(map[string]domain.User, 3), dummyHash: hash}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleBarat, domain.RoleTimur} {
		username := string(role)
		v.users[username] = domain.User{
			UserID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("karangnongko:"+username)).String(),
			Username:     username,
			PasswordHash: hash,
			Role:         role,
		}
	}
	return v, nil
}

func (v *localVerifier) Verify(ctx context.Context, username, password string) (*domain.VerifiedUser, error) {
	user, ok := v.users[username]
	if !ok {
		utils.CheckPasswordHash(password, v.dummyHash)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user.Verified(), nil
}
