package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/reportes"
	"github.com/repuestosgt/dashboard-fel/internal/application/shopify"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/infrastructure/cache"
	apihttp "github.com/repuestosgt/dashboard-fel/internal/interfaces/http"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// hojasFijas fuente de Sheets en memoria para los tests de la API.
type hojasFijas struct{}

func (hojasFijas) FilasRegistro(context.Context) ([][]string, error) {
	return [][]string{
		{"F1", "", "350", "42", "", "Juan", "", "", "", "05/03/2024"},
	}, nil
}

func (hojasFijas) FilasPagos(context.Context) ([][]string, error) {
	return [][]string{
		{"Google", "10/03/2024", "150", `{"nombre":"Google Ads Campaign"}`},
	}, nil
}

type ordenesVacias struct{}

func (ordenesVacias) Ordenes(context.Context, entity.FiltroPeriodo) ([]entity.OrdenShopify, error) {
	return nil, nil
}

type pdfFijo struct{}

func (pdfFijo) GenerarReporte(context.Context, *dto.ResumenVentasDTO, *dto.ResumenFinancieroDTO) ([]byte, error) {
	return []byte("%PDF-falso"), nil
}

func nuevaApp() *fiber.App {
	log := logger.Nop()
	c := cache.NewMemoria(log)
	hojas := hojasFijas{}

	ventasUC := ventas.New(hojas, c, log)
	finanzasUC := finanzas.New(hojas, ventasUC, c, log)
	shopifyUC := shopify.New(ordenesVacias{}, finanzasUC, c, log)
	reportesUC := reportes.New(ventasUC, finanzasUC, pdfFijo{}, log)

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		VentasUC:   ventasUC,
		FinanzasUC: finanzasUC,
		ShopifyUC:  shopifyUC,
		ReportesUC: reportesUC,
		Sink:       reportes.EntregaLog{Log: log},
		Cache:      c,
	})
	return app
}

func TestAPI_Dashboard(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard?tipo=mes&mes=3&anio=2024", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resumen dto.ResumenVentasDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resumen))
	assert.Equal(t, "Marzo 2024", resumen.Periodo)
	assert.Equal(t, 1, resumen.TotalPedidos)
	assert.NotNil(t, resumen.Comparacion, "comparar=true es el default del dashboard")
}

func TestAPI_Dashboard_PeriodoInvalido(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard?tipo=trimestre", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "PERIODO_INVALIDO", e.Code)
}

func TestAPI_Finanzas(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/finanzas?tipo=mes&mes=3&anio=2024", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rep dto.ResumenFinancieroDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "350", rep.TotalIngresos.String())
	assert.Equal(t, "150", rep.TotalEgresos.String())
}

func TestAPI_ShopifyEstadisticas(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/shopify/estadisticas?tipo=mes&mes=3&anio=2024", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resumen dto.ResumenShopifyDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resumen))
	assert.Nil(t, resumen.ProfitCompleto, "sin comparar=true no hay profit cruzado")
}

func TestAPI_ReporteDescarga(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reportes/?tipo=mes&mes=3&anio=2024&formato=texto", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "reporte_fel_mes_3_2024.txt")

	cuerpo, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(cuerpo), "*Reporte Marzo 2024*")
}

func TestAPI_ReporteFormatoInvalido(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/reportes/?tipo=mes&mes=3&anio=2024&formato=docx", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_EnviarSinDestino(t *testing.T) {
	app := nuevaApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/api/reportes/enviar?tipo=mes&mes=3&anio=2024", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "DESTINO_REQUERIDO", e.Code)
}

func TestAPI_CacheInvalidate(t *testing.T) {
	app := nuevaApp()

	// calienta el cache
	_, err := app.Test(httptest.NewRequest("GET", "/api/dashboard?tipo=mes&mes=3&anio=2024", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/cache/invalidate?patron=dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Patron     string `json:"patron"`
		Eliminadas int    `json:"eliminadas"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Eliminadas)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/cache/invalidate", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
