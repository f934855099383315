package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Sheets  SheetsConfig
	Shopify ShopifyConfig
	Cache   CacheConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SheetsConfig acceso de solo lectura al spreadsheet de facturación FEL.
// Credentials acepta la ruta a un JSON de service account o el JSON crudo
// (útil para inyectarlo como variable de entorno en el hosting).
type SheetsConfig struct {
	SpreadsheetID string
	RangoRegistro string // hoja de facturas, ej. "REGISTRO!A:P"
	RangoPagos    string // hoja de gastos, ej. "PAGOS!A:D"
	Credentials   string
}

// ShopifyConfig acceso a la Admin API GraphQL de la tienda.
type ShopifyConfig struct {
	ShopDomain  string // ej. "mitienda.myshopify.com"
	AccessToken string
	APIVersion  string // ej. "2024-10"
}

// CacheConfig límites y comportamiento del cache en memoria.
type CacheConfig struct {
	MaxEntradas      int
	MaxBytes         int
	SweepSegundos    int     // intervalo de la limpieza periódica de entradas vencidas
	FraccionRefresco float64 // fracción del TTL a partir de la cual se sirve stale y se refresca en background
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SHEETS_SPREADSHEET_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "dashboard-fel"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getString(v, "SHEETS_SPREADSHEET_ID", ""),
			RangoRegistro: getString(v, "SHEETS_RANGO_REGISTRO", "REGISTRO!A:P"),
			RangoPagos:    getString(v, "SHEETS_RANGO_PAGOS", "PAGOS!A:D"),
			Credentials:   getString(v, "SHEETS_CREDENTIALS", ""),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  getString(v, "SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken: getString(v, "SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:  getString(v, "SHOPIFY_API_VERSION", "2024-10"),
		},
		Cache: CacheConfig{
			MaxEntradas:      getInt(v, "CACHE_MAX_ENTRADAS", 500),
			MaxBytes:         getInt(v, "CACHE_MAX_BYTES", 50*1024*1024),
			SweepSegundos:    getInt(v, "CACHE_SWEEP_SEGUNDOS", 120),
			FraccionRefresco: getFloat(v, "CACHE_FRACCION_REFRESCO", 0.8),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		return v.GetFloat64(key)
	}
	return def
}
