package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/oshxona/internal/storage"
)

// CatalogHandler exposes the menu to the admin dashboard.
type CatalogHandler struct {
	store storage.Store
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(store storage.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// ListCategories returns all categories in display order.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// ListProducts returns available products, optionally filtered by the
// category query parameter.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	if raw := c.Query("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category")
		}
		products, err := h.store.ListProductsByCategory(uint(categoryID))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": products})
	}

	products, err := h.store.ListProducts()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}
