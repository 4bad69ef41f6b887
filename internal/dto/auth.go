package dto

import (
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// LoginRequest is the credential pair of a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the sidebar view of the signed-in user.
type SessionResponse struct {
	UserID      string      `json:"userID"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Role        domain.Role `json:"role"`
	PhotoURL    string      `json:"photoUrl"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

// LoginResponse returns the bearer token to non-browser clients.
type LoginResponse struct {
	Token        string          `json:"token"`
	Session      SessionResponse `json:"session"`
	Notification *Notification   `json:"notification"`
}

// LogoutResponse confirms the session was cleared.
type LogoutResponse struct {
	Notification *Notification `json:"notification"`
}

func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		UserID:      s.ID,
		Username:    s.Username,
		DisplayName: s.DisplayName(),
		Role:        s.Role,
		PhotoURL:    s.Photo(),
		ExpiresAt:   s.ExpiresAt,
	}
}
