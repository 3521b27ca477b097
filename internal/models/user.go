package models

import "time"

// User represents an account in the system
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"-"`
	OAuthSubject  string    `json:"-"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Session represents an authenticated session
type Session struct {
	ID        string    `json:"-"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Profile holds display and notification settings for a user
type Profile struct {
	UserID       int64      `json:"user_id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	WeeklyDigest bool       `json:"weekly_digest"`
	LastDigestAt *time.Time `json:"last_digest_at,omitempty"`
}

// DisplayName returns the name shown in the page header, falling back to
// the account email when the profile has no name set.
func (p *Profile) DisplayName(fallbackEmail string) string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		return fallbackEmail
	}
	return name
}
