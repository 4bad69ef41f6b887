package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	"github.com/SscSPs/karangnongko_farm/internal/core/services"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalVerifier(t *testing.T) {
	ctx := context.Background()
	v, err := services.NewLocalVerifier()
	require.NoError(t, err)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleBarat, domain.RoleTimur} {
		user, err := v.Verify(ctx, string(role), services.DemoPassword)
		require.NoError(t, err)
		assert.Equal(t, role, user.Role)
		assert.Equal(t, string(role), user.Username)
		assert.NotEmpty(t, user.UserID)
	}

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "ghost", services.DemoPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestTableVerifier(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindUserByUsername", ctx, "barat").Return(&domain.User{UserID: "u-1", Username: "barat", PasswordHash: hash, Role: domain.RoleBarat}, nil)
	repo.On("FindUserByUsername", ctx, "timur").Return(&domain.User{UserID: "u-2", Username: "timur", PasswordHash: "plain", Role: domain.RoleTimur}, nil)
	repo.On("FindUserByUsername", ctx, "odd").Return(&domain.User{UserID: "u-3", Username: "odd", PasswordHash: "plain", Role: "owner"}, nil)
	repo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)
	repo.On("FindUserByUsername", ctx, "down").Return(nil, assert.AnError)

	v := services.NewTableVerifier(repo)

	user, err := v.Verify(ctx, "barat", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)

	user, err = v.Verify(ctx, "timur", "plain")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTimur, user.Role)

	_, err = v.Verify(ctx, "barat", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "odd", "plain")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "ghost", "x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "down", "x")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

// newRowStore serves /rest/v1/users like a PostgREST endpoint and /token as an
// OAuth2 password grant that accepts admin@farm.test / s3cret.
func newRowStore(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("username") {
		case "eq.admin":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "u-admin", "username": "admin", "password": "s3cret", "role": "admin", "name": "Admin Farm"},
			})
		case "eq.broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("grant_type") == "password" &&
			r.PostForm.Get("username") == "admin@farm.test" &&
			r.PostForm.Get("password") == "s3cret" {
			_, _ = w.Write([]byte(`{"access_token":"remote-token","token_type":"bearer","expires_in":3600}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteVerifier_DirectComparison(t *testing.T) {
	ctx := context.Background()
	srv := newRowStore(t)
	v, err := services.NewRemoteVerifier(services.RemoteVerifierConfig{BaseURL: srv.URL + "/", APIKey: "anon-key"})
	require.NoError(t, err)

	user, err := v.Verify(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u-admin", user.UserID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Admin Farm", *user.Name)

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = v.Verify(ctx, "broken", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestRemoteVerifier_DelegatedSignIn(t *testing.T) {
	ctx := context.Background()
	srv := newRowStore(t)
	v, err := services.NewRemoteVerifier(services.RemoteVerifierConfig{
		BaseURL:     srv.URL,
		APIKey:      "anon-key",
		TokenURL:    srv.URL + "/token",
		ClientID:    "dashboard",
		EmailDomain: "farm.test",
	})
	require.NoError(t, err)

	user, err := v.Verify(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = v.Verify(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRemoteVerifier_Config(t *testing.T) {
	_, err := services.NewRemoteVerifier(services.RemoteVerifierConfig{})
	assert.Error(t, err)
	_, err = services.NewRemoteVerifier(services.RemoteVerifierConfig{BaseURL: "http://rows", TokenURL: "http://rows/token"})
	assert.Error(t, err)
}
