package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/SscSPs/karangnongko_farm/internal/core/services"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/SscSPs/karangnongko_farm/internal/handlers"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
	"github.com/SscSPs/karangnongko_farm/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:         "router-secret",
		JWTIssuer:         "karangnongko-test",
		JWTExpiryDuration: time.Hour,
		SessionCookieName: "farm_session",
		LoginRateLimit:    "100-M",
		AuthStrategy:      config.AuthLocal,
		GoatIDStrategy:    "sequence",
		IsProduction:      true,
		Location:          time.UTC,
	}
	container, err := services.NewServiceContainer(context.Background(), cfg, portsrepo.RepositoryProvider{SlotStore: memory.NewSlotStore()}, nil)
	suite.Require().NoError(err)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) login() string {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin", Password: services.DemoPassword})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotEmpty(resp.Token)
	suite.Equal("admin", resp.Session.Username)
	return resp.Token
}

func (suite *RouterTestSuite) TestAnonymousAccess() {
	for _, path := range []string{"/", "/dashboard", "/daftar-peternakan", "/jadwal"} {
		w := suite.do(http.MethodGet, path, "", nil)
		suite.Equal(http.StatusFound, w.Code, path)
		suite.Equal("/login", w.Header().Get("Location"), path)
	}

	w := suite.do(http.MethodGet, "/api/v1/goats", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/login", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestLoginRejectsWrongPassword() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "admin", Password: "nope"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("invalid username or password", resp.Error)
	suite.Require().NotNil(resp.Notification)
	suite.Equal(dto.VariantDestructive, resp.Notification.Variant)
}

func (suite *RouterTestSuite) TestLoginRequiresBothFields() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestLoginViewRedirectsSignedInUser() {
	token := suite.login()

	w := suite.do(http.MethodGet, "/login", token, nil)

	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))
}

func (suite *RouterTestSuite) TestGoatRoster() {
	token := suite.login()

	w := suite.do(http.MethodGet, "/api/v1/goats", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page dto.GoatPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	suite.Equal(10, page.TotalItems)
	suite.Equal(2, page.TotalPages)
	suite.Len(page.Items, 5)
	suite.Equal("K001", page.Items[0].ID)

	w = suite.do(http.MethodGet, "/api/v1/goats?barn=Kandang", token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	body := map[string]any{"barn": "Barat", "weight": 42.5, "age": 10, "gender": "Betina", "status": "Hidup"}
	w = suite.do(http.MethodPost, "/api/v1/goats", token, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.GoatMutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Require().NotNil(created.Goat)
	suite.Equal("K011", created.Goat.ID)
	suite.Equal("Berhasil Menambahkan", created.Notification.Title)

	w = suite.do(http.MethodPost, "/api/v1/goats", token, map[string]any{"barn": "Barat"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/goats/K999", token, body)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/goats/K011", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	w = suite.do(http.MethodGet, "/api/v1/goats/K011", token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestCheckinRoundTrip() {
	token := suite.login()
	body := dto.CheckinRequest{Date: "2024-05-01", Mood: "Great", Accomplishments: "fed goats"}

	w := suite.do(http.MethodPost, "/api/v1/checkins", token, body)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var submitted dto.CheckinSubmitResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &submitted))
	suite.False(submitted.Updated)

	w = suite.do(http.MethodGet, "/api/v1/checkins/2024-05-01", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.CheckinResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("fed goats", got.Accomplishments)
	suite.Equal("Great", string(got.Mood))

	w = suite.do(http.MethodPost, "/api/v1/checkins", token, dto.CheckinRequest{Date: "2024-05-01", Mood: "Ecstatic"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestCalendarMonth() {
	token := suite.login()

	w := suite.do(http.MethodGet, "/api/v1/calendar?month=2024-05", token, nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.CalendarResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Grid)
	suite.Equal(3, resp.Grid.LeadingBlanks)
	suite.Len(resp.Grid.Cells, 34)
	suite.Equal("Mei 2024", resp.Grid.Label)

	w = suite.do(http.MethodGet, "/api/v1/calendar?month=May", token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestUnknownPath() {
	w := suite.do(http.MethodGet, "/kandang-rahasia", "", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.NotFoundResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.ViewNotFound, resp.View)
}

func (suite *RouterTestSuite) TestLogoutRevokesToken() {
	token := suite.login()

	w := suite.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/auth/session", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	w = suite.do(http.MethodGet, "/dashboard", token, nil)
	suite.Equal(http.StatusFound, w.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
