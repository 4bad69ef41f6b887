package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CredentialVerifier ---
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, username, password string) (*domain.VerifiedUser, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedUser), args.Error(1)
}

var _ portssvc.CredentialVerifier = (*MockVerifier)(nil)

var testTokens = services.TokenConfig{Secret: "test-secret", Issuer: "karangnongko-test", TTL: time.Hour}

type AuthServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *flakyStore
	verifier *MockVerifier
	now      time.Time
	gate     portssvc.AuthGateSvc
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newFlakyStore()
	suite.verifier = new(MockVerifier)
	suite.now = fixedClock()
	suite.gate = suite.newGate()
}

func (suite *AuthServiceTestSuite) clock() time.Time { return suite.now }

func (suite *AuthServiceTestSuite) newGate() portssvc.AuthGateSvc {
	return services.NewAuthService(suite.store, suite.verifier, testTokens, suite.clock)
}

func (suite *AuthServiceTestSuite) adminUser() *domain.VerifiedUser {
	name := "Administrator"
	return &domain.VerifiedUser{UserID: "u-admin", Username: "admin", Role: domain.RoleAdmin, Name: &name}
}

func (suite *AuthServiceTestSuite) sessionStored() bool {
	_, err := suite.store.SlotStore.Load(suite.ctx, portsrepo.SlotUser)
	return err == nil
}

func (suite *AuthServiceTestSuite) TestLoginSuccessPersistsSession() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	suite.Equal(domain.StateAnonymous, suite.gate.State())

	session, err := suite.gate.Login(suite.ctx, "admin", "password")

	suite.Require().NoError(err)
	suite.Equal("admin", session.Username)
	suite.Equal(domain.RoleAdmin, session.Role)
	suite.Equal("Administrator", session.DisplayName())
	suite.NotEmpty(session.Token)
	suite.NotEmpty(session.TokenID)
	suite.Equal(suite.now.Add(time.Hour), session.ExpiresAt)
	suite.Equal(domain.StateAuthenticated, suite.gate.State())
	suite.True(suite.sessionStored())

	current, err := suite.gate.CurrentSession(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(session.TokenID, current.TokenID)
	suite.verifier.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLoginRejectedStaysAnonymous() {
	suite.verifier.On("Verify", suite.ctx, "admin", "wrong").Return(nil, apperrors.ErrInvalidCredentials).Once()

	session, err := suite.gate.Login(suite.ctx, "admin", "wrong")

	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Equal(apperrors.ErrInvalidCredentials.Error(), err.Error())
	suite.Equal(domain.StateAnonymous, suite.gate.State())
	suite.False(suite.sessionStored())
	_, err = suite.gate.CurrentSession(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoginVerifierFailureIsUnavailable() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(nil, assert.AnError).Once()

	session, err := suite.gate.Login(suite.ctx, "admin", "password")

	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.NotErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Equal(domain.StateAnonymous, suite.gate.State())
}

func (suite *AuthServiceTestSuite) TestLoginSaveFailureDoesNotAuthenticate() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	suite.store.setFailSaves(true)

	session, err := suite.gate.Login(suite.ctx, "admin", "password")

	suite.Nil(session)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.Equal(domain.StateAnonymous, suite.gate.State())
}

func (suite *AuthServiceTestSuite) TestConcurrentLoginIsRejected() {
	release := make(chan struct{})
	entered := make(chan struct{})
	suite.verifier.On("Verify", suite.ctx, "admin", "password").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(suite.adminUser(), nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := suite.gate.Login(suite.ctx, "admin", "password")
		done <- err
	}()
	<-entered

	suite.Equal(domain.StateAuthenticating, suite.gate.State())
	_, err := suite.gate.Login(suite.ctx, "barat", "password")
	suite.ErrorIs(err, apperrors.ErrConflict)

	close(release)
	suite.Require().NoError(<-done)
	suite.Equal(domain.StateAuthenticated, suite.gate.State())
}

func (suite *AuthServiceTestSuite) TestRestartRestoresSession() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	session, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)

	restarted := suite.newGate()
	suite.Equal(domain.StateAnonymous, restarted.State())
	restored, err := restarted.Restore(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(restored)
	suite.Equal(session.TokenID, restored.TokenID)
	suite.Equal(domain.StateAuthenticated, restarted.State())

	authorized, err := restarted.Authorize(suite.ctx, session.Token)
	suite.Require().NoError(err)
	suite.Equal("admin", authorized.Username)
}

func (suite *AuthServiceTestSuite) TestRestoreWithoutSlotStaysAnonymous() {
	restored, err := suite.gate.Restore(suite.ctx)

	suite.Require().NoError(err)
	suite.Nil(restored)
	suite.Equal(domain.StateAnonymous, suite.gate.State())
}

func (suite *AuthServiceTestSuite) TestRestoreDiscardsExpiredSession() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	_, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)

	suite.now = suite.now.Add(2 * time.Hour)
	restarted := suite.newGate()
	restored, err := restarted.Restore(suite.ctx)

	suite.Require().NoError(err)
	suite.Nil(restored)
	suite.Equal(domain.StateAnonymous, restarted.State())
	suite.False(suite.sessionStored())
}

func (suite *AuthServiceTestSuite) TestRestoreDiscardsCorruptSlot() {
	suite.Require().NoError(suite.store.SlotStore.Save(suite.ctx, portsrepo.SlotUser, []byte(`{"username":`)))

	restored, err := suite.gate.Restore(suite.ctx)

	suite.Require().NoError(err)
	suite.Nil(restored)
	suite.False(suite.sessionStored())
}

func (suite *AuthServiceTestSuite) TestRestoreReportsStoreFailure() {
	suite.store.setFailLoads(true)

	restored, err := suite.gate.Restore(suite.ctx)

	suite.Nil(restored)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.Equal(domain.StateAnonymous, suite.gate.State())
}

func (suite *AuthServiceTestSuite) TestLogoutClearsMemoryAndSlot() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	session, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.gate.Logout(suite.ctx))

	suite.Equal(domain.StateAnonymous, suite.gate.State())
	suite.False(suite.sessionStored())
	_, err = suite.gate.Authorize(suite.ctx, session.Token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	restarted := suite.newGate()
	restored, err := restarted.Restore(suite.ctx)
	suite.Require().NoError(err)
	suite.Nil(restored)
}

func (suite *AuthServiceTestSuite) TestLogoutFailureKeepsSession() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Once()
	session, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)
	suite.store.setFailDeletes(true)

	err = suite.gate.Logout(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.Equal(domain.StateAuthenticated, suite.gate.State())
	suite.True(suite.sessionStored())
	_, err = suite.gate.Authorize(suite.ctx, session.Token)
	suite.NoError(err)

	suite.store.setFailDeletes(false)
	suite.Require().NoError(suite.gate.Logout(suite.ctx))
	suite.Equal(domain.StateAnonymous, suite.gate.State())
	suite.False(suite.sessionStored())
}

func (suite *AuthServiceTestSuite) TestLogoutDuringVerifyCancelsLogin() {
	release := make(chan struct{})
	entered := make(chan struct{})
	suite.verifier.On("Verify", suite.ctx, "admin", "password").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(suite.adminUser(), nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := suite.gate.Login(suite.ctx, "admin", "password")
		done <- err
	}()
	<-entered

	suite.Require().NoError(suite.gate.Logout(suite.ctx))
	close(release)

	suite.ErrorIs(<-done, apperrors.ErrConflict)
	suite.Equal(domain.StateAnonymous, suite.gate.State())
	suite.False(suite.sessionStored())
	_, err := suite.gate.CurrentSession(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthorizeRejectsReplacedAndForeignTokens() {
	suite.verifier.On("Verify", suite.ctx, "admin", "password").Return(suite.adminUser(), nil).Twice()
	first, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)
	second, err := suite.gate.Login(suite.ctx, "admin", "password")
	suite.Require().NoError(err)

	_, err = suite.gate.Authorize(suite.ctx, first.Token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.gate.Authorize(suite.ctx, second.Token)
	suite.NoError(err)
	_, err = suite.gate.Authorize(suite.ctx, "not-a-jwt")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	other := services.NewAuthService(newFlakyStore(), suite.verifier,
		services.TokenConfig{Secret: "other-secret", Issuer: testTokens.Issuer, TTL: time.Hour}, suite.clock)
	_, err = other.Authorize(suite.ctx, second.Token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
