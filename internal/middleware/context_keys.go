package middleware

import (
	"context"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionKey is the key used to store the authorized session.
const sessionKey = contextKey("session")

// WithSession returns a copy of ctx carrying the authorized session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext retrieves the session stored by the auth middleware.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	session, ok := c.Request.Context().Value(sessionKey).(*domain.Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
