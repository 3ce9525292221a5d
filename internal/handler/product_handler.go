package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bazaar/internal/errors"
	"bazaar/internal/model"
	"bazaar/internal/repository"
	"bazaar/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	catalogService service.CatalogService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// CreateProductRequest represents a product creation request. The category
// is given either as an id or as a name; a name is created on first use.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    uint            `json:"category"`
	CategoryName  string          `json:"category_name"`
	ImageURL      string          `json:"image"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	CategoryID    *uint            `json:"category"`
	CategoryName  *string          `json:"category_name"`
	ImageURL      *string          `json:"image"`
}

// CategoryResponse is the nested category representation.
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductResponse is the wire representation of a product with its
// resolved category and seller username.
type ProductResponse struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	Seller        string           `json:"seller"`
	StockQuantity uint             `json:"stock_quantity"`
	InStock       bool             `json:"in_stock"`
	Category      CategoryResponse `json:"category"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	ImageURL      string           `json:"image,omitempty"`
}

func newProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Seller:        p.Seller.Username,
		StockQuantity: p.StockQuantity,
		InStock:       p.InStock(),
		Category: CategoryResponse{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Description: p.Category.Description,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		ImageURL:  p.ImageURL,
	}
}

func newProductListResponse(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return out
}

// parseProductFilter builds the listing filter from query parameters. A
// numeric parameter that fails to parse fails the whole request, naming
// the offending parameter.
func parseProductFilter(c echo.Context) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
	}

	parse := func(name string, dst **float64) error {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.NewValidationError(name, "must be a number")
		}
		*dst = &v
		return nil
	}

	if err := parse("price", &filter.Price); err != nil {
		return filter, err
	}
	if err := parse("min_price", &filter.MinPrice); err != nil {
		return filter, err
	}
	if err := parse("max_price", &filter.MaxPrice); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListUserProducts godoc
// @Summary List the authenticated seller's products with optional filters
// @Tags products
// @Produce json
// @Param category query string false "Category name substring"
// @Param price query number false "Exact price"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /user-products [get]
func (h *ProductHandler) ListUserProducts(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	filter, err := parseProductFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.catalogService.ListSellerProducts(c.Request().Context(), claims.UserID, filter)
	if err != nil {
		return respondError(c, err)
	}
	if len(products) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "No products found for this user with the given filters.",
		})
	}

	return c.JSON(http.StatusOK, newProductListResponse(products))
}

// CreateProduct godoc
// @Summary Create a product owned by the authenticated seller
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalogService.CreateProduct(c.Request().Context(), claims.UserID, service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		CategoryName:  req.CategoryName,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, newProductResponse(product))
}

// UpdateProduct godoc
// @Summary Update a product the authenticated seller owns
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.UpdateProduct(c.Request().Context(), claims.UserID, productID, service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		CategoryName:  req.CategoryName,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newProductResponse(product))
}

// DeleteProduct godoc
// @Summary Delete a product the authenticated seller owns
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user-products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.catalogService.DeleteProduct(c.Request().Context(), claims.UserID, productID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetProductDetail godoc
// @Summary Fetch a single product the caller owns
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /product-detail/{id} [get]
func (h *ProductHandler) GetProductDetail(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.catalogService.GetSellerProduct(c.Request().Context(), productID, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newProductResponse(product))
}

// ListGuestProducts godoc
// @Summary List all products with optional filters
// @Tags products
// @Produce json
// @Param category query string false "Category name substring"
// @Param price query number false "Exact price"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /guest-products [get]
func (h *ProductHandler) ListGuestProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	products, err := h.catalogService.ListAllProducts(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	if len(products) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "No products found with the given filters.",
		})
	}

	return c.JSON(http.StatusOK, newProductListResponse(products))
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}
