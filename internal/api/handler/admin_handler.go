package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/api/metrics"
	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

// AdminHandler exposes identity management. All routes below /admin are
// gated to the admin role before any handler runs.
type AdminHandler struct {
	userService ports.UserService
}

func NewAdminHandler(userService ports.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer producer admin"`
}

type listUsersResponse struct {
	Data       []domain.User      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ListUsers returns a page of registered identities.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  listUsersResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.userService.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// SetRole changes a user's role. This is the explicit admin action that
// grants or removes privileges; the user's live sessions are revoked so
// the change takes effect on their next sign-in.
//
// @Summary      Set a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "User id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SetRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.SessionsRevokedTotal.WithLabelValues("role_change").Inc()
	return c.JSON(http.StatusOK, user)
}
