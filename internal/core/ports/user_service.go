package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// UserPage is one page of an identity listing.
type UserPage struct {
	Items      []domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService implements profile access and the admin-only identity
// operations. SetRole is the single path by which a role changes after
// registration; existing sessions keep their old role until re-issued.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
	SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}
