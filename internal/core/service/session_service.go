package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService issues signed session tokens and validates presented ones.
// The signing key never leaves the server. A token is only as good as its
// registry record: a signature-valid token whose session has been revoked
// is treated as absent.
type SessionService struct {
	registry  ports.SessionRegistry
	jwtSecret string
	ttl       time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewSessionService(registry ports.SessionRegistry, jwtSecret string, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		registry:  registry,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
	}
}

// Issue creates a session for a verified identity, persists it in the
// registry, and returns the signed token alongside the session record.
func (s *SessionService) Issue(ctx context.Context, userID string, role domain.Role) (string, *domain.Session, error) {
	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := jwt.MapClaims{
		"sub":  session.UserID,
		"role": string(session.Role),
		"jti":  session.ID,
		"iat":  session.IssuedAt.Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error().Err(err).Msg("session token signing failed")
		return "", nil, domain.ErrTokenSigning
	}

	if err := s.registry.Save(ctx, session); err != nil {
		return "", nil, err
	}

	return token, session, nil
}

// Validate checks the token signature and expiry, then requires the session
// to still exist server-side. The role returned comes from the registry
// record written at issuance, not from anything the client could edit.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionNotFound
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.registry.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now().UTC()) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// Revoke removes a session from the registry. Revoking an already-absent
// session succeeds, so repeated sign-outs are harmless.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	return s.registry.Delete(ctx, sessionID)
}
