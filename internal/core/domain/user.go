package domain

import (
	"errors"
	"time"
)

// Role classifies what an account is allowed to do. Roles are assigned by
// server-side logic (registration defaults) or by explicit admin action,
// never taken from client input.
type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleProducer Role = "producer"
	RoleAdmin    Role = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrWeakPassword = errors.New("password does not meet minimum length")
var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a role string. The empty string is not a role;
// callers decide their own default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleProducer, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// AssignableAtSignup reports whether a role may be requested during
// self-registration. Admin is excluded: it can only be granted by an
// existing admin.
func (r Role) AssignableAtSignup() bool {
	return r == RoleBuyer || r == RoleProducer
}

// User is a registered principal. PasswordHash holds a bcrypt hash and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
