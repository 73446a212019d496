package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence interface for identities.
// FindByEmail matches case-insensitively; implementations store emails
// lower-cased so an exact match suffices.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
}
