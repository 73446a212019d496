package middleware

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/api/metrics"
	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

// Capability is the access level a route requires.
type Capability string

const (
	CapPublic        Capability = "public"
	CapAuthenticated Capability = "authenticated"
	CapAdmin         Capability = "admin"
)

// SessionCookie is the cookie carrying the signed session token. A Bearer
// Authorization header is accepted as an alternative transport.
const SessionCookie = "sh_session"

// Context keys populated by the Gate for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// Redirect targets. Unauthorized admin access goes home, not to an error
// page, so the response does not confirm that an admin area exists.
const (
	loginPath = "/login"
	homePath  = "/"
)

// RouteTable is the static path→capability mapping. It is built once at
// startup and never mutated afterwards; the longest matching prefix wins
// and unlisted paths are public.
type RouteTable struct {
	rules []routeRule
}

type routeRule struct {
	prefix string
	cap    Capability
}

func NewRouteTable(rules map[string]Capability) *RouteTable {
	t := &RouteTable{rules: make([]routeRule, 0, len(rules))}
	for prefix, cap := range rules {
		t.rules = append(t.rules, routeRule{prefix: prefix, cap: cap})
	}
	// Longest prefix first so /admin beats /.
	sort.Slice(t.rules, func(i, j int) bool {
		return len(t.rules[i].prefix) > len(t.rules[j].prefix)
	})
	return t
}

// Classify returns the capability required for a request path.
func (t *RouteTable) Classify(path string) Capability {
	for _, r := range t.rules {
		if strings.HasPrefix(path, r.prefix) {
			return r.cap
		}
	}
	return CapPublic
}

// Gate enforces the route classification on every request. It trusts only
// the signed token plus the server-side session registry, never a
// client-cached role claim. Expired, revoked, or malformed tokens count as
// no session. If the registry cannot be reached the gate fails closed.
func Gate(table *RouteTable, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			class := table.Classify(c.Request().URL.Path)
			if class == CapPublic {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "redirect_login").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			session, err := sessions.Validate(c.Request().Context(), token)
			if err != nil {
				decision := "redirect_login"
				if !errors.Is(err, domain.ErrSessionNotFound) && !errors.Is(err, domain.ErrSessionExpired) {
					// Registry unreachable: deny, never fail open.
					decision = "deny_closed"
				}
				metrics.GateDecisionsTotal.WithLabelValues(string(class), decision).Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			if class == CapAdmin && session.Role != domain.RoleAdmin {
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "redirect_home").Inc()
				return c.Redirect(http.StatusFound, homePath)
			}

			c.Set(CtxUserID, session.UserID)
			c.Set(CtxRole, string(session.Role))
			c.Set(CtxSessionID, session.ID)

			metrics.GateDecisionsTotal.WithLabelValues(string(class), "allow").Inc()
			return next(c)
		}
	}
}

// extractToken reads the session token from the cookie or, failing that,
// from a Bearer Authorization header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
