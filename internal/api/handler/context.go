package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/api/middleware"
	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the authorization gate and
// fast-fails before any service call: a non-empty user id proves the gate
// ran and admitted the request.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	roleStr, _ := c.Get(middleware.CtxRole).(string)
	role, parseErr := domain.ParseRole(roleStr)
	if parseErr != nil {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// ctxSessionID returns the session id set by the gate, or empty when the
// request carried no valid session.
func ctxSessionID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxSessionID).(string)
	return id
}
