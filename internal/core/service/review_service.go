package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

// ReviewService implements review creation and retrieval. Authorship is
// resolved server-side from the session identity, never from the payload.
type ReviewService struct {
	reviews  ports.ReviewRepository
	products ports.ProductRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, products ports.ProductRepository, users ports.UserRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, users: users, logger: logger}
}

func (s *ReviewService) Create(ctx context.Context, userID string, in ports.ReviewInput) (*domain.Review, error) {
	if !domain.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}

	// The product must exist before a review can be attached.
	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		ProductID: in.ProductID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("review_id", created.ID).Str("product_id", in.ProductID).Msg("review created")
	return created, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string, page, limit int) ([]domain.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.reviews.ListByProduct(ctx, productID, page, limit)
}

// Delete removes a review. Authors may delete their own; admins any.
func (s *ReviewService) Delete(ctx context.Context, id, userID string, role domain.Role) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && review.UserID != userID {
		return domain.ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}
