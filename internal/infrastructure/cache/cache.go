// Package cache implementa el cache en memoria del dashboard: claves con TTL
// derivado del prefijo (modulado por hora del día), invalidación por patrón y
// una variante LRU con límites de tamaño y stale-while-revalidate.
//
// El cache es un objeto explícito con reloj inyectado; el proceso servidor es
// dueño de su ciclo de vida (se construye en el arranque, la limpieza
// periódica corre con IniciarLimpieza y muere con el context).
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// Reloj fuente de tiempo inyectable; en producción time.Now.
type Reloj func() time.Time

// TTLs base por prefijo de clave. Dentro del horario comercial (7-19h) los
// prefijos de dashboard se acortan a la mitad para mantener los datos frescos;
// fuera de horario se alargan al doble para ahorrar lecturas a Sheets/Shopify.
const (
	ttlDashboard = 10 * time.Minute
	ttlFinanzas  = 20 * time.Minute
	ttlShopify   = 10 * time.Minute
	ttlReportes  = time.Hour
	ttlDefecto   = 5 * time.Minute

	horaApertura = 7
	horaCierre   = 19
)

type entrada struct {
	valor        any
	creadoEn     time.Time
	ttl          time.Duration
	ultimoAcceso time.Time
	accesos      int64
	bytes        int
}

func (e *entrada) vencida(ahora time.Time) bool {
	return ahora.Sub(e.creadoEn) > e.ttl
}

// Memoria cache simple clave→valor con TTL por prefijo.
type Memoria struct {
	mu       sync.RWMutex
	entradas map[string]*entrada
	reloj    Reloj
	log      *logger.Logger
}

// Opcion configura el cache al construirlo.
type Opcion func(*Memoria)

// ConReloj inyecta una fuente de tiempo (tests).
func ConReloj(r Reloj) Opcion {
	return func(c *Memoria) { c.reloj = r }
}

// NewMemoria construye el cache.
func NewMemoria(log *logger.Logger, opts ...Opcion) *Memoria {
	c := &Memoria{
		entradas: make(map[string]*entrada),
		reloj:    time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ttlPorClave es una función pura de (prefijo, hora del día).
func ttlPorClave(clave string, hora int) time.Duration {
	var base time.Duration
	switch {
	case strings.HasPrefix(clave, "dashboard_"):
		base = ttlDashboard
	case strings.HasPrefix(clave, "finanzas_"):
		base = ttlFinanzas
	case strings.HasPrefix(clave, "shopify_"):
		base = ttlShopify
	case strings.HasPrefix(clave, "reportes_"):
		base = ttlReportes
	default:
		base = ttlDefecto
	}

	if hora >= horaApertura && hora < horaCierre {
		return base / 2
	}
	return base * 2
}

// TTLPara devuelve el TTL de una clave según el prefijo y la hora actual del
// reloj inyectado.
func (c *Memoria) TTLPara(clave string) time.Duration {
	return ttlPorClave(clave, c.reloj().Hour())
}

// Get devuelve el valor si existe y no venció su TTL.
func (c *Memoria) Get(clave string) (any, bool) {
	ahora := c.reloj()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entradas[clave]
	if !ok {
		return nil, false
	}
	if e.vencida(ahora) {
		delete(c.entradas, clave)
		return nil, false
	}
	e.ultimoAcceso = ahora
	e.accesos++
	return e.valor, true
}

// Set guarda el valor con el TTL que corresponde a la clave.
func (c *Memoria) Set(clave string, valor any) {
	ahora := c.reloj()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entradas[clave] = &entrada{
		valor:        valor,
		creadoEn:     ahora,
		ttl:          c.TTLPara(clave),
		ultimoAcceso: ahora,
	}
}

// GetOrCompute devuelve el valor cacheado si sigue vigente; si no, ejecuta el
// productor, guarda el resultado y lo devuelve. Un error del productor en un
// miss frío se propaga al llamador y no se cachea nada (sin caching negativo).
//
// Dos misses fríos concurrentes sobre la misma clave pueden ejecutar el
// productor dos veces; el trabajo duplicado se tolera porque los productores
// son reducciones puras e idempotentes.
func (c *Memoria) GetOrCompute(ctx context.Context, clave string, productor func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(clave); ok {
		c.log.Debug().Str("clave", clave).Msg("cache hit")
		return v, nil
	}

	c.log.Debug().Str("clave", clave).Msg("cache miss, ejecutando productor")
	v, err := productor(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(clave, v)
	return v, nil
}

// Invalidate borra todas las claves que contengan el patrón como substring.
// Devuelve cuántas se eliminaron.
func (c *Memoria) Invalidate(patron string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for clave := range c.entradas {
		if strings.Contains(clave, patron) {
			delete(c.entradas, clave)
			n++
		}
	}
	if n > 0 {
		c.log.Info().Str("patron", patron).Int("eliminadas", n).Msg("cache invalidado")
	}
	return n
}

// Len cantidad de entradas vivas o vencidas aún no barridas.
func (c *Memoria) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entradas)
}

// BarrerVencidas elimina las entradas cuyo TTL ya venció; la llama el ciclo de
// limpieza y los tests la pueden invocar directamente con un reloj falso.
func (c *Memoria) BarrerVencidas() int {
	ahora := c.reloj()
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for clave, e := range c.entradas {
		if e.vencida(ahora) {
			delete(c.entradas, clave)
			n++
		}
	}
	return n
}

// IniciarLimpieza corre la barrida periódica hasta que el context se cancele.
func (c *Memoria) IniciarLimpieza(ctx context.Context, intervalo time.Duration) {
	go func() {
		ticker := time.NewTicker(intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.BarrerVencidas(); n > 0 {
					c.log.Debug().Int("eliminadas", n).Msg("limpieza periódica de cache")
				}
			}
		}
	}()
}
