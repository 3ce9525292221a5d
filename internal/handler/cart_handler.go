package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bazaar/internal/model"
	"bazaar/internal/service"
)

// CartHandler handles the single cart endpoint: GET fetches the active
// cart, POST adds an item, PUT updates an item, DELETE removes one.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddCartItemRequest adds a product to the cart. Quantity defaults to 1
// when omitted; zero is accepted, negatives are rejected by the binding.
type AddCartItemRequest struct {
	ProductID uint  `json:"product_id" validate:"required"`
	Quantity  *uint `json:"quantity"`
}

// UpdateCartItemRequest overwrites an item's quantity.
type UpdateCartItemRequest struct {
	CartItemID uint  `json:"cart_item_id" validate:"required"`
	Quantity   *uint `json:"quantity" validate:"required"`
}

// RemoveCartItemRequest removes an item from the cart.
type RemoveCartItemRequest struct {
	CartItemID uint `json:"cart_item_id" validate:"required"`
}

// CartItemResponse is the wire representation of one cart row.
type CartItemResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product"`
	ProductName  string          `json:"product_name"`
	Quantity     uint            `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	AddedAt      time.Time       `json:"added_at"`
}

// CartResponse is the wire representation of the active cart. TotalPrice
// sums price times quantity; ItemCount is the number of rows.
type CartResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"user"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	ItemCount  int                `json:"item_count"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	IsActive   bool               `json:"is_active"`
}

func newCartResponse(cart *model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items = append(items, CartItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.Product.Name,
			Quantity:     item.Quantity,
			ProductPrice: item.Product.Price,
			TotalPrice:   item.TotalPrice(),
			AddedAt:      item.AddedAt,
		})
	}
	return CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: cart.TotalPrice(),
		ItemCount:  cart.ItemCount(),
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
		IsActive:   cart.IsActive,
	}
}

// GetCart godoc
// @Summary Fetch the authenticated user's active cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.GetActiveCart(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddItem godoc
// @Summary Add a product to the active cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddCartItemRequest true "Product and quantity"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cart [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quantity := uint(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if _, err := h.cartService.AddItem(c.Request().Context(), claims.UserID, req.ProductID, quantity); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Product added to cart.",
	})
}

// UpdateItem godoc
// @Summary Overwrite the quantity of a cart item
// @Tags cart
// @Accept json
// @Produce json
// @Param request body UpdateCartItemRequest true "Cart item and quantity"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cart [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.cartService.UpdateItemQuantity(c.Request().Context(), claims.UserID, req.CartItemID, *req.Quantity); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Cart item updated.",
	})
}

// RemoveItem godoc
// @Summary Remove an item from the active cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body RemoveCartItemRequest true "Cart item"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cart [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req RemoveCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), claims.UserID, req.CartItemID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Cart item removed.",
	})
}
