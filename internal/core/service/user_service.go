package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

// UserService implements profile access and admin identity management.
// SetRole is the only post-registration path by which a role changes;
// it revokes the user's live sessions so the old role cannot outlive
// the change inside an existing session.
type UserService struct {
	users    ports.UserRepository
	registry ports.SessionRegistry
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, registry ports.SessionRegistry, logger zerolog.Logger) *UserService {
	return &UserService{users: users, registry: registry, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	if name == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return s.users.UpdateName(ctx, userID, name)
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *UserService) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	// Sessions carry the role they were issued with; force re-authentication.
	if err := s.registry.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to revoke sessions after role change")
	}

	s.logger.Info().Str("user_id", userID).Str("role", string(role)).Msg("role updated")
	return updated, nil
}
