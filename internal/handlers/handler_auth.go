package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/SscSPs/karangnongko_farm/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const defaultLoginRate = "5-M"

// authHandler handles authentication related requests.
type authHandler struct {
	auth         portssvc.AuthGateSvc
	cookieName   string
	secureCookie bool
}

func newAuthHandler(auth portssvc.AuthGateSvc, cfg *config.Config) *authHandler {
	return &authHandler{
		auth:         auth,
		cookieName:   cfg.SessionCookieName,
		secureCookie: cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the public login route and the gated session routes.
func registerAuthRoutes(r *gin.Engine, gated *gin.RouterGroup, cfg *config.Config, auth portssvc.AuthGateSvc) {
	h := newAuthHandler(auth, cfg)

	ipLimiter, err := middleware.NewLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		slog.Warn("Invalid LOGIN_RATE_LIMIT, using default", slog.String("error", err.Error()), slog.String("default", defaultLoginRate))
		ipLimiter, _ = middleware.NewLoginLimiter(defaultLoginRate)
	}

	r.POST("/api/v1/auth/login", middleware.RateLimit(ipLimiter), h.login)

	authGroup := gated.Group("/auth")
	{
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/session", h.session)
	}
}

// login godoc
// @Summary User login
// @Description Verifies credentials and opens the session of this installation. The token is returned and set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid username or password"
// @Failure 409 {object} dto.ErrorResponse "Another login is in progress"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Username and password required", Notification: dto.LoginFailedNotification()})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			logger.Info("Login rejected", slog.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: apperrors.ErrInvalidCredentials.Error(), Notification: dto.LoginFailedNotification()})
		default:
			respondError(c, logger, err, "Failed to log in", dto.LoginErrorNotification())
		}
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, session.Token, maxAge, "/", "", h.secureCookie, true)

	logger.Info("User logged in", slog.String("user_id", session.ID), slog.String("role", string(session.Role)))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:        session.Token,
		Session:      dto.ToSessionResponse(session),
		Notification: dto.LoginSuccessNotification(session.Username),
	})
}

// logout godoc
// @Summary User logout
// @Description Clears the session from memory and storage and expires the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LogoutResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to log out", dto.LogoutFailedNotification())
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	logger.Info("User logged out")
	c.JSON(http.StatusOK, dto.LogoutResponse{Notification: dto.LogoutNotification()})
}

// session godoc
// @Summary Current session
// @Description Returns the signed-in user for the sidebar.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/session [get]
func (h *authHandler) session(c *gin.Context) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
