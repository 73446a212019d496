package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

type stubSessionService struct {
	session *domain.Session
	err     error
}

func (s *stubSessionService) Issue(_ context.Context, userID string, role domain.Role) (string, *domain.Session, error) {
	return "", nil, nil
}

func (s *stubSessionService) Validate(_ context.Context, token string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubSessionService) Revoke(_ context.Context, sessionID string) error {
	return nil
}

func testTable() *RouteTable {
	return NewRouteTable(map[string]Capability{
		"/admin":    CapAdmin,
		"/products": CapAuthenticated,
		"/profile":  CapAuthenticated,
	})
}

func session(role domain.Role) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		ID: "sess-1", UserID: "u1", Role: role,
		IssuedAt: now, ExpiresAt: now.Add(time.Hour),
	}
}

func runGate(t *testing.T, sessions *stubSessionService, path, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Gate(testTable(), sessions)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRouteTable_Classify(t *testing.T) {
	table := testTable()
	cases := []struct {
		path string
		want Capability
	}{
		{"/", CapPublic},
		{"/auth/login", CapPublic},
		{"/health", CapPublic},
		{"/products", CapAuthenticated},
		{"/products/42/reviews", CapAuthenticated},
		{"/profile", CapAuthenticated},
		{"/admin", CapAdmin},
		{"/admin/users", CapAdmin},
	}
	for _, tc := range cases {
		if got := table.Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%s) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestGate_PublicRoutePassesWithoutSession(t *testing.T) {
	rec, called := runGate(t, &stubSessionService{err: domain.ErrSessionNotFound}, "/auth/login", "")
	if !called {
		t.Fatalf("public route must reach handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_NoSessionRedirectsToLogin(t *testing.T) {
	rec, called := runGate(t, &stubSessionService{}, "/products", "")
	if called {
		t.Fatalf("handler must not run without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestGate_ExpiredSessionTreatedAsAbsent(t *testing.T) {
	rec, called := runGate(t, &stubSessionService{err: domain.ErrSessionExpired}, "/profile", "stale-token")
	if called {
		t.Fatalf("handler must not run with an expired session")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGate_WrongRoleOnAdminRedirectsHome(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleProducer} {
		rec, called := runGate(t, &stubSessionService{session: session(role)}, "/admin/users", "token")
		if called {
			t.Fatalf("role %s must never reach admin handler", role)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302 for role %s, got %d", role, rec.Code)
		}
		// Home, not an error page: the redirect must not confirm that an
		// admin area exists.
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
			t.Fatalf("expected redirect to /, got %s", loc)
		}
	}
}

func TestGate_AdminAllowed(t *testing.T) {
	rec, called := runGate(t, &stubSessionService{session: session(domain.RoleAdmin)}, "/admin/users", "token")
	if !called {
		t.Fatalf("admin must reach admin handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGate_AuthenticatedAllowedAndContextSet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &stubSessionService{session: session(domain.RoleBuyer)}
	handler := Gate(testTable(), sessions)(func(c echo.Context) error {
		if c.Get(CtxUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		if c.Get(CtxRole) != "buyer" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxSessionID) != "sess-1" {
			t.Fatalf("session id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// A registry failure is not a license to let the request through: the gate
// must deny when it cannot decide.
func TestGate_FailsClosedOnRegistryError(t *testing.T) {
	rec, called := runGate(t, &stubSessionService{err: errors.New("redis: connection refused")}, "/products", "token")
	if called {
		t.Fatalf("handler must not run when the registry is unreachable")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}
