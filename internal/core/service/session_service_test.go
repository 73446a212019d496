package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

type memRegistry struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	findErr  error
}

func newMemRegistry() *memRegistry {
	return &memRegistry{sessions: make(map[string]*domain.Session)}
}

func (r *memRegistry) Save(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.sessions[s.ID] = &clone
	return nil
}

func (r *memRegistry) Find(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if s, ok := r.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *memRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memRegistry) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func TestSessionService_IssueValidate_RoundTrip(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	token, issued, err := svc.Issue(context.Background(), "u1", domain.RoleProducer)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	validated, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if validated.UserID != "u1" || validated.Role != domain.RoleProducer {
		t.Fatalf("round-trip lost identity: %+v", validated)
	}
	if validated.ID != issued.ID {
		t.Fatalf("expected session id %s, got %s", issued.ID, validated.ID)
	}
}

func TestSessionService_Validate_ExpiredToken(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	token, _, err := svc.Issue(context.Background(), "u1", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Move the clock past expiry; both the JWT check and the record check
	// must treat the session as absent.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := svc.Validate(context.Background(), token); err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestSessionService_Validate_RevokedSession(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	token, session, err := svc.Issue(context.Background(), "u1", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := svc.Revoke(context.Background(), session.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	// The token still has a valid signature, but the server-side record is
	// gone: the session must be treated as absent.
	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after revoke, got %v", err)
	}
}

func TestSessionService_Revoke_Idempotent(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	if err := svc.Revoke(context.Background(), "never-existed"); err != nil {
		t.Fatalf("revoking an absent session must succeed, got %v", err)
	}
}

func TestSessionService_Validate_TamperedToken(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	// Token signed with a different key must be rejected before any
	// registry lookup.
	claims := jwt.MapClaims{
		"sub": "u1", "role": "admin", "jti": "forged",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	if _, err := svc.Validate(context.Background(), forged); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected forged token rejection, got %v", err)
	}
}

func TestSessionService_Validate_MissingSessionID(t *testing.T) {
	registry := newMemRegistry()
	svc := NewSessionService(registry, "secret", time.Hour, zerolog.Nop())

	claims := jwt.MapClaims{
		"sub": "u1", "role": "buyer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected rejection of token without jti, got %v", err)
	}
}
