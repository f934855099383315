package cache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repuestosgt/dashboard-fel/internal/infrastructure/cache"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

func nuevoLRU(cfg cache.ConfigLRU, reloj *relojFalso) *cache.LRU {
	return cache.NewLRU(cfg, logger.Nop(), cache.ConRelojLRU(reloj.Ahora))
}

func TestLRU_DesalojaPorCantidad(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 2}, reloj)

	c.Set("dashboard_mes_1_2024", 1)
	c.Set("dashboard_mes_2_2024", 2)

	// tocar la primera la vuelve la más reciente
	_, ok := c.Get("dashboard_mes_1_2024")
	require.True(t, ok)

	c.Set("dashboard_mes_3_2024", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("dashboard_mes_2_2024")
	assert.False(t, ok, "la menos usada recientemente se desaloja")
	_, ok = c.Get("dashboard_mes_1_2024")
	assert.True(t, ok)
	_, ok = c.Get("dashboard_mes_3_2024")
	assert.True(t, ok)
}

func TestLRU_DesalojaPorBytes(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxBytes: 40}, reloj)

	grande := map[string]string{"nombre": "valor bastante largo para el límite"}
	c.Set("dashboard_mes_1_2024", grande)
	c.Set("dashboard_mes_2_2024", grande)

	assert.Equal(t, 1, c.Len(), "al desbordar bytes solo queda la más reciente")
	_, ok := c.Get("dashboard_mes_2_2024")
	assert.True(t, ok)
	assert.LessOrEqual(t, c.BytesTotal(), 2*len(`{"nombre":"valor bastante largo para el límite"}`))
}

func TestLRU_ReemplazoDeClaveNoDuplica(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 10}, reloj)

	c.Set("dashboard_mes_1_2024", "v1")
	c.Set("dashboard_mes_1_2024", "v2")
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("dashboard_mes_1_2024")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestLRU_StaleWhileRevalidate(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 10, FraccionRefresco: 0.5}, reloj)

	var llamadas atomic.Int64
	productor := func(context.Context) (any, error) {
		return llamadas.Add(1), nil
	}

	v, err := c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// pasada la fracción de refresco (2.5m de un TTL de 5m) pero antes de
	// vencer: se sirve el valor viejo y el refresco corre en background
	reloj.Avanzar(3 * time.Minute)
	v, err = c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "la lectura stale devuelve el valor anterior sin esperar")

	require.Eventually(t, func() bool {
		v, ok := c.Get("dashboard_mes_6_2024")
		return ok && v == int64(2)
	}, time.Second, 5*time.Millisecond, "el refresco en background debe reemplazar la entrada")
}

func TestLRU_RefrescoFallidoConservaElValorViejo(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 10, FraccionRefresco: 0.5}, reloj)

	var llamadas atomic.Int64
	productor := func(context.Context) (any, error) {
		if llamadas.Add(1) > 1 {
			return nil, assert.AnError
		}
		return "original", nil
	}

	_, err := c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err)

	reloj.Avanzar(3 * time.Minute)
	v, err := c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err, "el error del refresco jamás llega al llamador")
	assert.Equal(t, "original", v)

	require.Eventually(t, func() bool {
		return llamadas.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	v, ok := c.Get("dashboard_mes_6_2024")
	require.True(t, ok)
	assert.Equal(t, "original", v, "tras el fallo la entrada vieja sigue sirviéndose")
}

func TestLRU_VencidaEjecutaProductorEnCaliente(t *testing.T) {
	reloj := nuevoReloj()
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 10, FraccionRefresco: 0.5}, reloj)

	llamadas := 0
	productor := func(context.Context) (any, error) {
		llamadas++
		return llamadas, nil
	}

	_, err := c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err)

	reloj.Avanzar(6 * time.Minute) // TTL de 5m ya vencido, no aplica stale
	v, err := c.GetOrCompute(context.Background(), "dashboard_mes_6_2024", productor)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, llamadas)
}

func TestLRU_Invalidate(t *testing.T) {
	c := nuevoLRU(cache.ConfigLRU{MaxEntradas: 10}, nuevoReloj())
	c.Set("dashboard_mes_1_2024", 1)
	c.Set("shopify_mes_1_2024", 2)

	assert.Equal(t, 1, c.Invalidate("shopify"))
	assert.Equal(t, 1, c.Len())
}
