package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

type ReviewHandler struct {
	reviewService ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListByProduct returns a product's reviews, newest first.
//
// @Summary      List reviews for a product
// @Tags         reviews
// @Produce      json
// @Param        id     path   string  true   "Product id"
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size"
// @Success      200  {object}  listReviewsResponse
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	reviews, total, err := h.reviewService.ListByProduct(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}

	items := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, toReviewResponse(&reviews[i]))
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return c.JSON(http.StatusOK, listReviewsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// Create attaches a review to a product. The author is the session
// identity; nothing in the payload names a user.
//
// @Summary      Review a product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Product id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Create(c.Request().Context(), userID, ports.ReviewInput{
		ProductID: c.Param("id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// Delete removes a review. Author or admin only.
//
// @Summary      Delete a review
// @Tags         reviews
// @Param        id  path  string  true  "Review id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.reviewService.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
