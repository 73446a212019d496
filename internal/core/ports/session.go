package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// SessionRegistry is the server-side record of live sessions. Delete is
// idempotent: removing an absent session is not an error.
type SessionRegistry interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// SessionService issues signed session tokens and validates presented ones
// against both the token signature and the server-side registry.
type SessionService interface {
	Issue(ctx context.Context, userID string, role domain.Role) (string, *domain.Session, error)
	Validate(ctx context.Context, token string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID string) error
}

// ResetTokenStore persists short-lived password-reset tokens keyed by user.
type ResetTokenStore interface {
	Save(ctx context.Context, userID, token string) error
	Find(ctx context.Context, userID string) (string, error)
}
