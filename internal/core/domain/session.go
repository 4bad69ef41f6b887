package domain

import "time"

// Role is the closed set of role tags a user can carry.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBarat Role = "barat" // operator of the west yard
	RoleTimur Role = "timur" // operator of the east yard
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBarat, RoleTimur:
		return true
	}
	return false
}

// DefaultPhotoURL is shown when a user has no avatar.
const DefaultPhotoURL = "/placeholder.svg"

// VerifiedUser is what a credential verifier returns on success.
type VerifiedUser struct {
	UserID   string
	Username string
	Role     Role
	Name     *string
	PhotoURL *string
}

// Session is the authenticated identity of this installation.
// It is mirrored to the "user" slot so it survives restarts.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Name      *string   `json:"name,omitempty"`
	PhotoURL  *string   `json:"photoUrl,omitempty"`
	TokenID   string    `json:"tokenId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DisplayName falls back to the username when no name is set.
func (s Session) DisplayName() string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}
	return s.Username
}

// Photo falls back to the placeholder avatar.
func (s Session) Photo() string {
	if s.PhotoURL != nil && *s.PhotoURL != "" {
		return *s.PhotoURL
	}
	return DefaultPhotoURL
}

// SessionState is the state of the auth gate.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
)
