package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

const readRetryBackoff = 50 * time.Millisecond

// SessionStore is the server-side session registry backed by Redis.
// Keys expire together with the session, so an entry that outlives its
// token is impossible; explicit deletion handles sign-out and revocation.
//
// Key layout:
//
//	session:<id>        → JSON session record, TTL = time to expiry
//	user_sessions:<uid> → set of session ids, TTL refreshed on save
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), payload, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.ID)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads a session by id. Transient errors are retried once after a
// short backoff; a missing key maps to ErrSessionNotFound.
func (s *SessionStore) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		time.Sleep(readRetryBackoff)
		payload, err = s.client.Get(ctx, sessionKey(sessionID)).Result()
	}
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err == nil {
		_ = s.client.SRem(ctx, userSessionsKey(session.UserID), sessionID).Err()
	}

	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteByUser revokes every live session belonging to one identity.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("list user sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func userSessionsKey(userID string) string {
	return "user_sessions:" + userID
}
