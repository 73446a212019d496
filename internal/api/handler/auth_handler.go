package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/api/metrics"
	"github.com/supplyhub/marketplace-api/internal/api/middleware"
	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
	users       ports.UserService
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, users ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, users: users}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=buyer producer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Session       *domain.Session `json:"session,omitempty"`
	User          *domain.User    `json:"user,omitempty"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.SignUpsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login verifies credentials and establishes a session. The session token
// is returned in the body and also set as an HttpOnly cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, session, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie(token, session.ExpiresAt))
	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the current session server-side and clears the cookie.
// It succeeds even without a live session, so repeated sign-outs are safe.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := currentToken(c); token != "" {
		if session, err := h.sessions.Validate(c.Request().Context(), token); err == nil {
			if err := h.authService.SignOut(c.Request().Context(), session.ID); err != nil {
				return err
			}
			metrics.SessionsRevokedTotal.WithLabelValues("sign_out").Inc()
		}
	}

	c.SetCookie(expiredSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current server-verified session, the restore-on-load
// counterpart for clients. An absent, expired, or revoked token yields
// {"authenticated": false} with 200, not an error.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	token := currentToken(c)
	if token == "" {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	session, err := h.sessions.Validate(c.Request().Context(), token)
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false})
	}

	user, err := h.users.Profile(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, Session: session, User: user})
}

// PasswordReset accepts a reset request. The response is 202 regardless of
// whether the email maps to an account.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Success      202  "reset requested"
// @Router       /auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// currentToken reads the session token from cookie or Bearer header.
func currentToken(c echo.Context) string {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}

func sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
