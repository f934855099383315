package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/reportes"
	"github.com/repuestosgt/dashboard-fel/internal/application/shopify"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	VentasUC   *ventas.UseCase
	FinanzasUC *finanzas.UseCase
	ShopifyUC  *shopify.UseCase
	ReportesUC *reportes.UseCase
	Sink       reportes.Destinatario
	Cache      ventas.Cache
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard de ventas FEL
	dashboardHandler := NewDashboardHandler(deps.VentasUC)
	api.Get("/dashboard", dashboardHandler.GetResumen)

	// Reporte financiero (gastos vs ingresos)
	finanzasHandler := NewFinanzasHandler(deps.FinanzasUC)
	api.Get("/finanzas", finanzasHandler.GetReporte)

	// Estadísticas de Shopify para el comparativo
	shopifyHandler := NewShopifyHandler(deps.ShopifyUC)
	api.Get("/shopify/estadisticas", shopifyHandler.GetEstadisticas)

	// Reportes exportables / enviables
	reportesHandler := NewReportesHandler(deps.ReportesUC, deps.Sink)
	rep := api.Group("/reportes")
	rep.Get("/", reportesHandler.Generar)
	rep.Post("/enviar", reportesHandler.Enviar)

	// Administración del cache
	cacheHandler := NewCacheHandler(deps.Cache)
	api.Post("/cache/invalidate", cacheHandler.Invalidate)
}
