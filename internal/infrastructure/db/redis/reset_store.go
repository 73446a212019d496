package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

const resetTokenTTL = time.Hour

// ResetStore holds short-lived password-reset tokens.
// Key format: pwreset:<user_id>
type ResetStore struct {
	client *redis.Client
}

func NewResetStore(client *redis.Client) *ResetStore {
	return &ResetStore{client: client}
}

// Save stores the token, replacing any previous one for the same user.
func (s *ResetStore) Save(ctx context.Context, userID, token string) error {
	if err := s.client.Set(ctx, resetKey(userID), token, resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

func (s *ResetStore) Find(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, resetKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrResetTokenNotFound
		}
		return "", fmt.Errorf("find reset token: %w", err)
	}
	return token, nil
}

func resetKey(userID string) string {
	return "pwreset:" + userID
}
