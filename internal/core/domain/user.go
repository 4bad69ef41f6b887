package domain

import "time"

// User is a stored login account. PasswordHash is usually a bcrypt hash;
// rows imported from older installations may still carry plaintext.
type User struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         *string   `json:"name,omitempty"`
	PhotoURL     *string   `json:"photoUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Verified converts a stored account into the verifier result.
func (u User) Verified() *VerifiedUser {
	return &VerifiedUser{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		PhotoURL: u.PhotoURL,
	}
}
