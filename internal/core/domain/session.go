package domain

import (
	"errors"
	"time"
)

var ErrTokenSigning = errors.New("token signing failed")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")
var ErrResetTokenNotFound = errors.New("reset token not found")

// Session is one authenticated browser context. The client holds the signed
// token; the server keeps this record so it can invalidate the session
// independently of the token's own expiry.
//
// Lifecycle: Unauthenticated → Authenticated(role) → (sign-out | expiry) →
// Unauthenticated. The role inside an existing session never changes; a role
// change requires issuing a new session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
