package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bazaar/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedCatalogResponse reports what the seed run created.
type SeedCatalogResponse struct {
	Message string             `json:"message"`
	Result  service.SeedResult `json:"result"`
}

// SeedCatalog godoc
// @Summary Seed demo users, categories, and products
// @Tags seed
// @Produce json
// @Success 200 {object} SeedCatalogResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/catalog [get]
func (h *SeedHandler) SeedCatalog(c echo.Context) error {
	result, err := h.seedService.SeedCatalog(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SeedCatalogResponse{
		Message: "catalog seeded",
		Result:  *result,
	})
}
