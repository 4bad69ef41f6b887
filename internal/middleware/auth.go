package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// LoginPath is where view routes send anonymous visitors.
const LoginPath = "/login"

// TokenFromRequest returns the bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// APIAuthMiddleware rejects requests without a valid session with 401.
func APIAuthMiddleware(auth portssvc.AuthGateSvc, cookieName string) gin.HandlerFunc {
	return authMiddleware(auth, cookieName, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	})
}

// ViewAuthMiddleware redirects requests without a valid session to the login view.
func ViewAuthMiddleware(auth portssvc.AuthGateSvc, cookieName string) gin.HandlerFunc {
	return authMiddleware(auth, cookieName, func(c *gin.Context) {
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	})
}

func authMiddleware(auth portssvc.AuthGateSvc, cookieName string, reject func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := TokenFromRequest(c, cookieName)
		if token == "" {
			logger.Debug("No session token on request")
			reject(c)
			return
		}

		session, err := auth.Authorize(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Session token rejected", slog.String("error", err.Error()))
			reject(c)
			return
		}

		enrichedLogger := logger.With(
			slog.String("user_id", session.ID),
			slog.String("role", string(session.Role)),
		)
		ctx := WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}
