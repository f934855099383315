package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
)

// DashboardHandler maneja los endpoints del dashboard de ventas FEL.
type DashboardHandler struct {
	uc *ventas.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *ventas.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetResumen devuelve el agregado de ventas del período.
// GET /api/dashboard?tipo=mes&mes=6&anio=2024&comparar=true
//
// Respuesta: ResumenVentasDTO (totales, serie temporal, rankings, tendencia y
// bloque de comparación contra el período anterior si comparar=true).
func (h *DashboardHandler) GetResumen(c *fiber.Ctx) error {
	filtro, err := filtroDesdeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PERIODO_INVALIDO", Message: err.Error(),
		})
	}

	comparar := c.QueryBool("comparar", true)

	resumen, err := h.uc.GetResumen(c.Context(), filtro, comparar)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "FUENTE_NO_DISPONIBLE", Message: err.Error(),
		})
	}

	return c.JSON(resumen)
}
