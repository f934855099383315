package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/reportes"
	appshopify "github.com/repuestosgt/dashboard-fel/internal/application/shopify"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/infrastructure/cache"
	infrapdf "github.com/repuestosgt/dashboard-fel/internal/infrastructure/pdf"
	"github.com/repuestosgt/dashboard-fel/internal/infrastructure/sheets"
	infrashopify "github.com/repuestosgt/dashboard-fel/internal/infrastructure/shopify"
	httpRouter "github.com/repuestosgt/dashboard-fel/internal/interfaces/http"
	"github.com/repuestosgt/dashboard-fel/pkg/config"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache LRU con stale-while-revalidate; el proceso es dueño de su ciclo
	// de vida: la limpieza corre acá y muere con el context en el shutdown.
	memoria := cache.NewLRU(cache.ConfigLRU{
		MaxEntradas:      cfg.Cache.MaxEntradas,
		MaxBytes:         cfg.Cache.MaxBytes,
		FraccionRefresco: cfg.Cache.FraccionRefresco,
	}, log)
	memoria.IniciarLimpieza(ctx, time.Duration(cfg.Cache.SweepSegundos)*time.Second)

	hojas, err := sheets.NewCliente(ctx, cfg.Sheets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente de Google Sheets")
	}

	ventasUC := ventas.New(hojas, memoria, log)
	finanzasUC := finanzas.New(hojas, ventasUC, memoria, log)

	var fuenteOrdenes appshopify.FuenteOrdenes
	if cfg.Shopify.ShopDomain != "" && cfg.Shopify.AccessToken != "" {
		cliente, err := infrashopify.NewCliente(cfg.Shopify, log)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de Shopify")
		}
		fuenteOrdenes = cliente
	} else {
		log.Warn().Msg("Shopify sin configurar; /api/shopify responderá error")
		fuenteOrdenes = fuenteShopifyDeshabilitada{}
	}
	shopifyUC := appshopify.New(fuenteOrdenes, finanzasUC, memoria, log)

	pdfGen := infrapdf.NewGeneradorReporte()
	reportesUC := reportes.New(ventasUC, finanzasUC, pdfGen, log)
	sink := reportes.EntregaLog{Log: log}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		VentasUC:   ventasUC,
		FinanzasUC: finanzasUC,
		ShopifyUC:  shopifyUC,
		ReportesUC: reportesUC,
		Sink:       sink,
		Cache:      memoria,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// fuenteShopifyDeshabilitada responde con error cuando la tienda no está
// configurada; el handler lo traduce a 502.
type fuenteShopifyDeshabilitada struct{}

func (fuenteShopifyDeshabilitada) Ordenes(context.Context, entity.FiltroPeriodo) ([]entity.OrdenShopify, error) {
	return nil, domain.ErrFuenteNoDisponible
}
