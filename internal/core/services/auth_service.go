package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
	"github.com/google/uuid"
)

// TokenConfig holds the signing parameters of session tokens.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// authService is the gate of this installation: one session at a time,
// mirrored to the user slot.
type authService struct {
	BaseService
	mu       sync.Mutex
	state    domain.SessionState
	session  *domain.Session
	verifier portssvc.CredentialVerifier
	slot     *JSONSlot[domain.Session]
	tokens   TokenConfig
	now      Clock
}

// NewAuthService creates the session gate. It starts anonymous; call Restore at startup.
func NewAuthService(store portsrepo.SlotStore, verifier portssvc.CredentialVerifier, tokens TokenConfig, clock Clock) portssvc.AuthGateSvc {
	if clock == nil {
		clock = time.Now
	}
	return &authService{
		state:    domain.StateAnonymous,
		verifier: verifier,
		slot:     NewJSONSlot[domain.Session](store, portsrepo.SlotUser),
		tokens:   tokens,
		now:      clock,
	}
}

func (s *authService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	s.mu.Lock()
	if s.state == domain.StateAuthenticating {
		s.mu.Unlock()
		return nil, fmt.Errorf("login already in progress: %w", apperrors.ErrConflict)
	}
	previous := s.state
	s.state = domain.StateAuthenticating
	s.mu.Unlock()

	// Verify runs unlocked; a concurrent Login sees StateAuthenticating.
	user, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		s.restoreState(previous)
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.LogInfo(ctx, "Login rejected", slog.String("username", username))
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Credential verification failed", slog.String("username", username))
		if errors.Is(err, apperrors.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("verify credentials: %w: %w", apperrors.ErrUnavailable, err)
	}

	session, err := s.mint(user)
	if err != nil {
		s.restoreState(previous)
		s.LogError(ctx, err, "Failed to sign session token", slog.String("username", username))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateAuthenticating {
		// A Logout landed while credentials were being verified.
		s.LogInfo(ctx, "Login abandoned after logout", slog.String("username", username))
		return nil, fmt.Errorf("session changed during login: %w", apperrors.ErrConflict)
	}
	if err := s.slot.Save(ctx, *session); err != nil {
		s.state = previous
		s.LogError(ctx, err, "Failed to persist session", slog.String("username", username))
		return nil, err
	}
	s.session = session
	s.state = domain.StateAuthenticated

	s.LogInfo(ctx, "Login succeeded", slog.String("username", session.Username), slog.String("role", string(session.Role)))
	out := *session
	return &out, nil
}

// restoreState rolls back a failed login unless a Logout already reset the gate.
func (s *authService) restoreState(state domain.SessionState) {
	s.mu.Lock()
	if s.state == domain.StateAuthenticating {
		s.state = state
	}
	s.mu.Unlock()
}

func (s *authService) mint(user *domain.VerifiedUser) (*domain.Session, error) {
	tokenID := uuid.NewString()
	token, expiresAt, err := utils.GenerateJWT(tokenID, user.UserID, user.Username, string(user.Role),
		s.tokens.Secret, s.tokens.TTL, s.tokens.Issuer, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &domain.Session{
		ID:        user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		Name:      user.Name,
		PhotoURL:  user.PhotoURL,
		TokenID:   tokenID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	username := ""
	if s.session != nil {
		username = s.session.Username
	}
	if err := s.slot.Clear(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear persisted session", slog.String("username", username))
		return err
	}
	s.session = nil
	s.state = domain.StateAnonymous
	s.LogInfo(ctx, "Logged out", slog.String("username", username))
	return nil
}

func (s *authService) Restore(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, found, err := s.slot.Load(ctx)
	if err != nil && errors.Is(err, apperrors.ErrUnavailable) {
		s.LogError(ctx, err, "Failed to load persisted session")
		return nil, err
	}
	if err == nil && !found {
		s.state = domain.StateAnonymous
		return nil, nil
	}
	if err == nil {
		err = s.checkStored(stored)
	}
	if err != nil {
		s.LogInfo(ctx, "Discarding persisted session", slog.String("reason", err.Error()))
		s.session = nil
		s.state = domain.StateAnonymous
		if cerr := s.slot.Clear(ctx); cerr != nil {
			s.LogError(ctx, cerr, "Failed to clear persisted session")
			return nil, cerr
		}
		return nil, nil
	}

	s.session = &stored
	s.state = domain.StateAuthenticated
	s.LogInfo(ctx, "Session restored", slog.String("username", stored.Username))
	out := stored
	return &out, nil
}

// checkStored accepts a persisted session only when its token still verifies and belongs to it.
func (s *authService) checkStored(stored domain.Session) error {
	if stored.Username == "" || !stored.Role.IsValid() {
		return errors.New("session is incomplete")
	}
	claims, err := utils.ParseAndValidateJWT(stored.Token, s.tokens.Secret, s.tokens.Issuer, s.now())
	if err != nil {
		return err
	}
	if claims.ID != stored.TokenID || claims.Subject != stored.ID {
		return errors.New("token does not belong to session")
	}
	return nil
}

func (s *authService) Authorize(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.tokens.Secret, s.tokens.Issuer, s.now())
	if err != nil {
		s.LogDebug(ctx, "Rejected session token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.TokenID != claims.ID {
		return nil, fmt.Errorf("%w: token is not the current session", apperrors.ErrUnauthorized)
	}
	out := *s.session
	return &out, nil
}

func (s *authService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, apperrors.ErrUnauthorized
	}
	out := *s.session
	return &out, nil
}
