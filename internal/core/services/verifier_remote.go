package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// RemoteVerifierConfig points the remote verifier at a PostgREST style row store.
// When TokenURL is set, the password is checked by an OAuth2 password grant
// for <username>@<EmailDomain> instead of against the row.
type RemoteVerifierConfig struct {
	BaseURL     string
	APIKey      string
	TokenURL    string
	ClientID    string
	EmailDomain string
	Timeout     time.Duration
}

// remoteUserRow is one row of the remote users table.
type remoteUserRow struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photo_url"`
}

type remoteVerifier struct {
	httpClient *resty.Client
	oauth      *oauth2.Config
	domain     string
}

// NewRemoteVerifier creates a verifier backed by the remote users table.
func NewRemoteVerifier(cfg RemoteVerifierConfig) (portssvc.CredentialVerifier, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote auth URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey).
			SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	v := &remoteVerifier{httpClient: client, domain: cfg.EmailDomain}
	if cfg.TokenURL != "" {
		if cfg.EmailDomain == "" {
			return nil, errors.New("remote auth email domain is required with a token URL")
		}
		v.oauth = &oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		}
	}
	return v, nil
}

func (v *remoteVerifier) Verify(ctx context.Context, username, password string) (*domain.VerifiedUser, error) {
	row, err := v.lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	if v.oauth == nil {
		if !utils.CheckStoredPassword(password, row.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
	} else if err := v.signIn(ctx, username, password); err != nil {
		return nil, err
	}

	role := domain.Role(row.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: account has unknown role %q", apperrors.ErrInvalidCredentials, row.Role)
	}
	return &domain.VerifiedUser{
		UserID:   row.ID,
		Username: row.Username,
		Role:     role,
		Name:     row.Name,
		PhotoURL: row.PhotoURL,
	}, nil
}

// lookup fetches the first row matching username.
func (v *remoteVerifier) lookup(ctx context.Context, username string) (*remoteUserRow, error) {
	var rows []remoteUserRow
	resp, err := v.httpClient.R().
		SetContext(ctx).
		SetQueryParam("username", "eq."+username).
		SetQueryParam("select", "*").
		SetResult(&rows).
		Get("/rest/v1/users")
	if err != nil {
		return nil, fmt.Errorf("query remote users: %w: %w", apperrors.ErrUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("query remote users: %w: status %d", apperrors.ErrUnavailable, resp.StatusCode())
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &rows[0], nil
}

// signIn runs the password grant with the synthesized account email.
func (v *remoteVerifier) signIn(ctx context.Context, username, password string) error {
	email := username + "@" + v.domain
	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient.GetClient())
	_, err := v.oauth.PasswordCredentialsToken(ctx, email, password)
	if err == nil {
		return nil
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.Response != nil &&
		rerr.Response.StatusCode >= http.StatusBadRequest && rerr.Response.StatusCode < http.StatusInternalServerError {
		return apperrors.ErrInvalidCredentials
	}
	return fmt.Errorf("remote sign-in: %w: %w", apperrors.ErrUnavailable, err)
}
