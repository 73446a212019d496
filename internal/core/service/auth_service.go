package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration and credential verification.
//
// SignIn never reveals whether an email is registered: unknown emails and
// wrong passwords produce the same error, and an unknown email still pays
// for a bcrypt comparison so the two paths have the same latency profile.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	resets   ports.ResetTokenStore
	logger   zerolog.Logger

	// dummyHash is compared against when the email lookup misses.
	dummyHash []byte
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionService, resets ports.ResetTokenStore, logger zerolog.Logger) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost; DefaultCost is always valid.
		panic("auth: dummy hash generation failed: " + err.Error())
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		resets:    resets,
		logger:    logger,
		dummyHash: dummy,
	}
}

// SignUp registers a new identity. The requested role may be buyer or
// producer and defaults to producer; admin can never be self-assigned.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	role := domain.RoleProducer
	if in.Role != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil || !parsed.AssignableAtSignup() {
			return nil, domain.ErrInvalidRole
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// SignIn verifies credentials and issues a session. Both failure causes
// collapse into ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Equalize latency with the known-email path.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, session, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("user signed in")
	return token, session, nil
}

// SignOut revokes the session server-side. Calling it for an absent or
// already-revoked session succeeds.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, sessionID)
}

// RequestPasswordReset stores a short-lived reset token for known accounts.
// It reports success either way so callers cannot probe for registered
// emails. Token delivery is out of scope here.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	if err := s.resets.Save(ctx, user.ID, uuid.NewString()); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to store reset token")
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
