package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
)

// FinanzasHandler maneja el reporte financiero (gastos vs ingresos).
type FinanzasHandler struct {
	uc *finanzas.UseCase
}

// NewFinanzasHandler construye el handler.
func NewFinanzasHandler(uc *finanzas.UseCase) *FinanzasHandler {
	return &FinanzasHandler{uc: uc}
}

// GetReporte devuelve el reporte financiero del período.
// GET /api/finanzas?tipo=mes&mes=6&anio=2024
func (h *FinanzasHandler) GetReporte(c *fiber.Ctx) error {
	filtro, err := filtroDesdeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PERIODO_INVALIDO", Message: err.Error(),
		})
	}

	reporte, err := h.uc.GetReporte(c.Context(), filtro)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "FUENTE_NO_DISPONIBLE", Message: err.Error(),
		})
	}

	return c.JSON(reporte)
}
