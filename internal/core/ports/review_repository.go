package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// ReviewRepository defines the persistence interface for product reviews.
// ListByProduct returns newest first.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string, page, limit int) ([]domain.Review, int64, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
}
