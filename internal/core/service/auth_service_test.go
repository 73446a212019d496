package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateName(_ context.Context, id, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Name = name
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, int64(len(out)), nil
}

type stubSessions struct {
	issued  []string
	revoked []string
}

func (s *stubSessions) Issue(_ context.Context, userID string, role domain.Role) (string, *domain.Session, error) {
	s.issued = append(s.issued, userID)
	now := time.Now().UTC()
	return "token-" + userID, &domain.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

func (s *stubSessions) Validate(_ context.Context, token string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) Revoke(_ context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

type stubResets struct {
	saved map[string]string
}

func (s *stubResets) Save(_ context.Context, userID, token string) error {
	if s.saved == nil {
		s.saved = make(map[string]string)
	}
	s.saved[userID] = token
	return nil
}

func (s *stubResets) Find(_ context.Context, userID string) (string, error) {
	if token, ok := s.saved[userID]; ok {
		return token, nil
	}
	return "", domain.ErrResetTokenNotFound
}

func newAuthService(repo *stubUserRepo, sessions *stubSessions, resets *stubResets) *AuthService {
	return NewAuthService(repo, sessions, resets, zerolog.Nop())
}

func TestAuthService_SignUp_DefaultsToProducer(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubSessions{}, &stubResets{})

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Alice", Email: "A@Example.com", Password: "Passw0rd1",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Role != domain.RoleProducer {
		t.Fatalf("expected default role producer, got %s", user.Role)
	}
	if user.Email != "a@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.PasswordHash == "Passw0rd1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignUp_AdminNotAssignable(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubSessions{}, &stubResets{})

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Eve", Email: "eve@example.com", Password: "longenough", Role: "admin",
	}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole for admin signup, got %v", err)
	}
}

func TestAuthService_SignUp_WeakPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubSessions{}, &stubResets{})

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Bob", Email: "bob@example.com", Password: "short",
	}); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubSessions{}, &stubResets{})

	in := ports.SignUpInput{Name: "Bob", Email: "bob@example.com", Password: "longenough"}
	if _, err := svc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.SignUp(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newAuthService(repo, sessions, &stubResets{})

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Carol", Email: "carol@example.com", Password: "Passw0rd1", Role: "buyer",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, session, err := svc.SignIn(context.Background(), "Carol@Example.com", "Passw0rd1")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if session.UserID != user.ID || session.Role != domain.RoleBuyer {
		t.Fatalf("unexpected session: %+v", session)
	}
	if len(sessions.issued) != 1 {
		t.Fatalf("expected one issued session, got %d", len(sessions.issued))
	}
}

// Unknown emails and wrong passwords must be indistinguishable: same error
// class either way, and the unknown-email path still performs a bcrypt
// comparison so the latency profiles match.
func TestAuthService_SignIn_NonLeakingFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubSessions{}, &stubResets{})

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Dave", Email: "dave@example.com", Password: "goodpassword",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, _, errWrongPassword := svc.SignIn(context.Background(), "dave@example.com", "badpassword")
	_, _, errUnknownEmail := svc.SignIn(context.Background(), "ghost@example.com", "whatever")

	if errWrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if errUnknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknownEmail)
	}
	if errWrongPassword != errUnknownEmail {
		t.Fatalf("failure causes must be indistinguishable")
	}
}

func TestAuthService_SignOut_Idempotent(t *testing.T) {
	sessions := &stubSessions{}
	svc := newAuthService(newStubUserRepo(), sessions, &stubResets{})

	if err := svc.SignOut(context.Background(), "sess-1"); err != nil {
		t.Fatalf("first signout failed: %v", err)
	}
	if err := svc.SignOut(context.Background(), "sess-1"); err != nil {
		t.Fatalf("second signout failed: %v", err)
	}
	if err := svc.SignOut(context.Background(), ""); err != nil {
		t.Fatalf("signout without session failed: %v", err)
	}
}

func TestAuthService_PasswordReset_NonLeaking(t *testing.T) {
	repo := newStubUserRepo()
	resets := &stubResets{}
	svc := newAuthService(repo, &stubSessions{}, resets)

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Name: "Erin", Email: "erin@example.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "erin@example.com"); err != nil {
		t.Fatalf("reset for known email failed: %v", err)
	}
	if _, ok := resets.saved[user.ID]; !ok {
		t.Fatalf("expected reset token stored for known account")
	}

	// Unknown email reports success and stores nothing.
	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("reset for unknown email must succeed, got %v", err)
	}
	if len(resets.saved) != 1 {
		t.Fatalf("expected no token for unknown account")
	}
}
