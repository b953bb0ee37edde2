package domain

import (
	"strings"
	"time"
)

// User represents a registered learner in the system.
//
// PasswordHash is never serialized: every JSON representation of a User is
// already the public projection safe to return to clients.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lowercases and trims an email address. Emails are unique
// case-insensitively, so every lookup and insert goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
