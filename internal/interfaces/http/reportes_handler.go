package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/reportes"
	"github.com/repuestosgt/dashboard-fel/internal/domain"
)

// ReportesHandler genera y entrega los reportes del período.
type ReportesHandler struct {
	uc   *reportes.UseCase
	sink reportes.Destinatario
}

// NewReportesHandler construye el handler.
func NewReportesHandler(uc *reportes.UseCase, sink reportes.Destinatario) *ReportesHandler {
	return &ReportesHandler{uc: uc, sink: sink}
}

// Generar devuelve el reporte en el formato pedido como descarga.
// GET /api/reportes?tipo=mes&mes=6&anio=2024&formato=pdf
func (h *ReportesHandler) Generar(c *fiber.Ctx) error {
	filtro, err := filtroDesdeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PERIODO_INVALIDO", Message: err.Error(),
		})
	}

	formato := c.Query("formato", reportes.FormatoHTML)
	art, err := h.uc.Generar(c.Context(), filtro, formato)
	if err != nil {
		if errors.Is(err, domain.ErrFormatoReporte) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "FORMATO_INVALIDO", Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "FUENTE_NO_DISPONIBLE", Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+art.Nombre+`"`)
	return c.Send(art.Contenido)
}

// Enviar genera el reporte y lo entrega al destino indicado.
// POST /api/reportes/enviar?tipo=mes&mes=6&anio=2024&formato=texto&destino=+50212345678
func (h *ReportesHandler) Enviar(c *fiber.Ctx) error {
	filtro, err := filtroDesdeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "PERIODO_INVALIDO", Message: err.Error(),
		})
	}

	destino := c.Query("destino")
	if destino == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "DESTINO_REQUERIDO", Message: "el query param destino es obligatorio",
		})
	}

	formato := c.Query("formato", reportes.FormatoTexto)
	if err := h.uc.Enviar(c.Context(), filtro, formato, destino, h.sink); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "ENTREGA_FALLIDA", Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"enviado": true, "destino": destino})
}
