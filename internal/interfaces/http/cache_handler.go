package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
)

// CacheHandler operaciones administrativas sobre el cache en memoria.
type CacheHandler struct {
	cache ventas.Cache
}

// NewCacheHandler construye el handler.
func NewCacheHandler(cache ventas.Cache) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Invalidate borra todas las claves que contengan el patrón como substring.
// POST /api/cache/invalidate?patron=dashboard
func (h *CacheHandler) Invalidate(c *fiber.Ctx) error {
	patron := c.Query("patron")
	if patron == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PATRON_REQUERIDO", Message: "el query param patron es obligatorio",
		})
	}

	eliminadas := h.cache.Invalidate(patron)
	return c.JSON(fiber.Map{"patron": patron, "eliminadas": eliminadas})
}
