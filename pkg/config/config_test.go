package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repuestosgt/dashboard-fel/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "REGISTRO!A:P", cfg.Sheets.RangoRegistro)
	assert.Equal(t, "PAGOS!A:D", cfg.Sheets.RangoPagos)
	assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
	assert.Equal(t, 500, cfg.Cache.MaxEntradas)
	assert.Equal(t, 0.8, cfg.Cache.FraccionRefresco)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHEETS_SPREADSHEET_ID", "abc123")
	t.Setenv("CACHE_FRACCION_REFRESCO", "0.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, 0.5, cfg.Cache.FraccionRefresco)
}
