// Package reportes genera los artefactos de reporte del período (HTML para
// email, texto plano para WhatsApp, PDF para exportar) a partir de los
// agregados de ventas y finanzas. La entrega es un puerto: el reporte se le
// pasa a un sink junto con el destino y la mecánica de envío vive afuera.
package reportes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// Formatos de reporte soportados.
const (
	FormatoHTML  = "html"
	FormatoTexto = "texto"
	FormatoPDF   = "pdf"
)

// Artefacto reporte generado, listo para entregarse a un sink.
type Artefacto struct {
	ID          uuid.UUID
	Formato     string
	Nombre      string // nombre de archivo sugerido
	ContentType string
	Contenido   []byte
}

// GeneradorPDF puerto hacia la infraestructura de PDF (maroto).
type GeneradorPDF interface {
	GenerarReporte(ctx context.Context, v *dto.ResumenVentasDTO, f *dto.ResumenFinancieroDTO) ([]byte, error)
}

// Destinatario sink de entrega: acepta el artefacto y un destino (correo,
// número de WhatsApp). Los reintentos y la mensajería son responsabilidad
// del sink.
type Destinatario interface {
	Entregar(ctx context.Context, art Artefacto, destino string) error
}

// UseCase compone los agregados del período en un artefacto.
type UseCase struct {
	ventas   *ventas.UseCase
	finanzas *finanzas.UseCase
	pdf      GeneradorPDF
	log      *logger.Logger
}

// New construye el caso de uso.
func New(ventasUC *ventas.UseCase, finanzasUC *finanzas.UseCase, pdf GeneradorPDF, log *logger.Logger) *UseCase {
	return &UseCase{ventas: ventasUC, finanzas: finanzasUC, pdf: pdf, log: log}
}

// Generar arma el reporte del período en el formato pedido. Los agregados se
// sirven del cache cuando siguen vigentes.
func (uc *UseCase) Generar(ctx context.Context, filtro entity.FiltroPeriodo, formato string) (Artefacto, error) {
	resumenVentas, err := uc.ventas.GetResumen(ctx, filtro, true)
	if err != nil {
		return Artefacto{}, fmt.Errorf("reportes: %w", err)
	}
	resumenFin, err := uc.finanzas.GetReporte(ctx, filtro)
	if err != nil {
		return Artefacto{}, fmt.Errorf("reportes: %w", err)
	}

	art := Artefacto{ID: uuid.New(), Formato: formato}

	switch formato {
	case FormatoHTML:
		contenido, err := renderHTML(resumenVentas, resumenFin)
		if err != nil {
			return Artefacto{}, fmt.Errorf("reportes: render HTML: %w", err)
		}
		art.Contenido = contenido
		art.ContentType = "text/html; charset=utf-8"
		art.Nombre = nombreArchivo(filtro, "html")
	case FormatoTexto:
		art.Contenido = []byte(renderTexto(resumenVentas, resumenFin))
		art.ContentType = "text/plain; charset=utf-8"
		art.Nombre = nombreArchivo(filtro, "txt")
	case FormatoPDF:
		contenido, err := uc.pdf.GenerarReporte(ctx, resumenVentas, resumenFin)
		if err != nil {
			return Artefacto{}, fmt.Errorf("reportes: render PDF: %w", err)
		}
		art.Contenido = contenido
		art.ContentType = "application/pdf"
		art.Nombre = nombreArchivo(filtro, "pdf")
	default:
		return Artefacto{}, fmt.Errorf("%w: %q", domain.ErrFormatoReporte, formato)
	}

	uc.log.Info().Str("formato", formato).Str("periodo", filtro.Etiqueta()).
		Str("reporte", art.ID.String()).Int("bytes", len(art.Contenido)).Msg("reporte generado")
	return art, nil
}

// Enviar genera el reporte y se lo entrega al sink.
func (uc *UseCase) Enviar(ctx context.Context, filtro entity.FiltroPeriodo, formato, destino string, sink Destinatario) error {
	art, err := uc.Generar(ctx, filtro, formato)
	if err != nil {
		return err
	}
	if err := sink.Entregar(ctx, art, destino); err != nil {
		return fmt.Errorf("reportes: entrega a %q: %w", destino, err)
	}
	return nil
}

func nombreArchivo(f entity.FiltroPeriodo, ext string) string {
	return fmt.Sprintf("reporte_%s.%s", f.ClaveCache("fel"), ext)
}

// EntregaLog sink de desarrollo: solo registra la entrega.
type EntregaLog struct {
	Log *logger.Logger
}

// Entregar implementa Destinatario.
func (e EntregaLog) Entregar(_ context.Context, art Artefacto, destino string) error {
	e.Log.Info().Str("destino", destino).Str("reporte", art.ID.String()).
		Str("formato", art.Formato).Msg("entrega simulada de reporte")
	return nil
}
