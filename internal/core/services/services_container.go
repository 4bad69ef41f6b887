package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
)

// NewCredentialVerifier picks the verifier named by AUTH_STRATEGY.
func NewCredentialVerifier(cfg *config.Config, repos portsrepo.RepositoryProvider) (portssvc.CredentialVerifier, error) {
	switch cfg.AuthStrategy {
	case config.AuthTable:
		if repos.UserRepo == nil {
			return nil, errors.New("table auth needs the postgres user repository")
		}
		return NewTableVerifier(repos.UserRepo), nil
	case config.AuthRemote:
		return NewRemoteVerifier(RemoteVerifierConfig{
			BaseURL:     cfg.RemoteAuthURL,
			APIKey:      cfg.RemoteAuthAPIKey,
			TokenURL:    cfg.RemoteAuthTokenURL,
			ClientID:    cfg.RemoteAuthClientID,
			EmailDomain: cfg.RemoteAuthEmailDomain,
		})
	default:
		return NewLocalVerifier()
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, verifier portssvc.CredentialVerifier) (*portssvc.ServiceContainer, error) {
	if repos.SlotStore == nil {
		return nil, errors.New("service container needs a slot store")
	}
	secret, err := ResolveSigningKey(ctx, repos.SlotStore, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if verifier == nil {
		v, err := NewCredentialVerifier(cfg, repos)
		if err != nil {
			return nil, fmt.Errorf("build credential verifier: %w", err)
		}
		verifier = v
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := func() time.Time { return time.Now().In(loc) }

	container := &portssvc.ServiceContainer{}
	container.Goat = NewGoatService(repos.SlotStore, WithGoatIDStrategy(ParseGoatIDStrategy(cfg.GoatIDStrategy)))
	container.Checkin = NewCheckinService(repos.SlotStore, WithCheckinClock(clock))
	container.Calendar = NewCalendarService(container.Checkin, clock, loc)
	container.Export = NewExportService(container.Goat, container.Checkin, clock)
	container.Auth = NewAuthService(repos.SlotStore, verifier, TokenConfig{
		Secret: secret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTExpiryDuration,
	}, time.Now)

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GoatSvcFacade      = (*goatService)(nil)
	_ portssvc.CheckinSvcFacade   = (*checkinService)(nil)
	_ portssvc.CalendarSvc        = (*calendarService)(nil)
	_ portssvc.ExportSvc          = (*exportService)(nil)
	_ portssvc.AuthGateSvc        = (*authService)(nil)
	_ portssvc.CredentialVerifier = (*localVerifier)(nil)
	_ portssvc.CredentialVerifier = (*tableVerifier)(nil)
	_ portssvc.CredentialVerifier = (*remoteVerifier)(nil)
)
