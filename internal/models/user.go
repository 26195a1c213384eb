package models

import "time"

// User represents a registered account.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	VerifyToken  string     `json:"-"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Verified reports whether the account has completed email verification.
func (u User) Verified() bool {
	return u.VerifiedAt != nil
}
