// Package sheets implementa la fuente de filas crudas del dashboard: lectura
// de solo lectura de las hojas REGISTRO y PAGOS del spreadsheet de facturación.
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/repuestosgt/dashboard-fel/pkg/config"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// Cliente lector del spreadsheet. No reintenta: la política de reintentos es
// de la capa que lo llama.
type Cliente struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	rangoRegistro string
	rangoPagos    string
	log           *logger.Logger
}

// NewCliente construye el servicio de Sheets. Credentials acepta la ruta a un
// JSON de service account o el JSON crudo (si empieza con '{').
func NewCliente(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*Cliente, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet_id es obligatorio")
	}

	opts := []option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsReadonlyScope)}
	if cfg.Credentials != "" {
		if cfg.Credentials[0] == '{' {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Credentials)))
		} else {
			opts = append(opts, option.WithCredentialsFile(cfg.Credentials))
		}
	}

	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear servicio: %w", err)
	}

	log.Info().Str("spreadsheet", cfg.SpreadsheetID).Msg("cliente de Sheets inicializado")

	return &Cliente{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		rangoRegistro: cfg.RangoRegistro,
		rangoPagos:    cfg.RangoPagos,
		log:           log,
	}, nil
}

// FilasRegistro devuelve las filas de facturas FEL (sin el encabezado).
func (c *Cliente) FilasRegistro(ctx context.Context) ([][]string, error) {
	return c.leerRango(ctx, c.rangoRegistro)
}

// FilasPagos devuelve las filas de gastos (sin el encabezado).
func (c *Cliente) FilasPagos(ctx context.Context) ([][]string, error) {
	return c.leerRango(ctx, c.rangoPagos)
}

func (c *Cliente) leerRango(ctx context.Context, rango string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rango).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: leer %s: %w", rango, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}

	// La primera fila es el encabezado de la hoja.
	filas := make([][]string, 0, len(resp.Values)-1)
	for _, fila := range resp.Values[1:] {
		celdas := make([]string, len(fila))
		for i, celda := range fila {
			celdas[i] = celdaAString(celda)
		}
		filas = append(filas, celdas)
	}

	c.log.Debug().Str("rango", rango).Int("filas", len(filas)).Msg("rango leído de Sheets")
	return filas, nil
}

// celdaAString normaliza los valores heterogéneos que devuelve la API
// (string, float64 para celdas numéricas, bool).
func celdaAString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
