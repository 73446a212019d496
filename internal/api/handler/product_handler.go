package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a page of products with optional filtering and ordering.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category     query  string  false  "Category filter"
// @Param        producer_id  query  string  false  "Producer filter"
// @Param        sort         query  string  false  "created_at or price"
// @Param        order        query  string  false  "asc or desc"
// @Param        page         query  int     false  "Page number"
// @Param        limit        query  int     false  "Page size"
// @Success      200  {object}  listProductsResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.ProductFilter{
		Category:   c.QueryParam("category"),
		ProducerID: c.QueryParam("producer_id"),
		SortBy:     c.QueryParam("sort"),
		SortAsc:    c.QueryParam("order") == "asc",
		Page:       page,
		Limit:      limit,
	}

	result, err := h.productService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListProductsResponse(result))
}

// Get returns one product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create publishes a new listing owned by the authenticated producer.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	// Buyers browse; only producers and admins publish.
	if role != domain.RoleProducer && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Create(c.Request().Context(), userID, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update replaces a listing's editable fields. Owner or admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Update(c.Request().Context(), c.Param("id"), userID, role, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete removes a listing. Owner or admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Param        id  path  string  true  "Product id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
