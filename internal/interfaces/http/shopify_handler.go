package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/shopify"
)

// ShopifyHandler maneja las estadísticas de pedidos Shopify.
type ShopifyHandler struct {
	uc *shopify.UseCase
}

// NewShopifyHandler construye el handler.
func NewShopifyHandler(uc *shopify.UseCase) *ShopifyHandler {
	return &ShopifyHandler{uc: uc}
}

// GetEstadisticas devuelve el agregado de pedidos Shopify del período.
// GET /api/shopify/estadisticas?tipo=mes&mes=6&anio=2024&comparar=true
//
// Con comparar=true incluye profitCompleto (ventas netas Shopify menos los
// egresos del período, para el comparativo contra los datos FEL).
func (h *ShopifyHandler) GetEstadisticas(c *fiber.Ctx) error {
	filtro, err := filtroDesdeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PERIODO_INVALIDO", Message: err.Error(),
		})
	}

	var resumen *dto.ResumenShopifyDTO
	if c.QueryBool("comparar", false) {
		resumen, err = h.uc.GetComparativo(c.Context(), filtro)
	} else {
		resumen, err = h.uc.GetEstadisticas(c.Context(), filtro)
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "FUENTE_NO_DISPONIBLE", Message: err.Error(),
		})
	}

	return c.JSON(resumen)
}
