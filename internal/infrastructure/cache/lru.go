package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// LRU variante avanzada del cache: además del TTL por prefijo impone un máximo
// de entradas y de bytes serializados, desalojando la entrada menos usada
// recientemente al desbordar, y soporta stale-while-revalidate: pasada una
// fracción configurable del TTL devuelve el valor viejo de inmediato y lanza
// un refresco en background que reemplaza la entrada al terminar.
type LRU struct {
	mu         sync.Mutex
	porClave   map[string]*list.Element
	orden      *list.List // frente = más reciente
	bytesTotal int

	maxEntradas      int
	maxBytes         int
	fraccionRefresco float64 // 0 desactiva stale-while-revalidate

	reloj Reloj
	log   *logger.Logger
}

type entradaLRU struct {
	clave       string
	entrada
	refrescando bool
}

// ConfigLRU límites del cache LRU.
type ConfigLRU struct {
	MaxEntradas      int
	MaxBytes         int
	FraccionRefresco float64
}

// OpcionLRU configura el cache al construirlo.
type OpcionLRU func(*LRU)

// ConRelojLRU inyecta una fuente de tiempo (tests).
func ConRelojLRU(r Reloj) OpcionLRU {
	return func(c *LRU) { c.reloj = r }
}

// NewLRU construye la variante con límites.
func NewLRU(cfg ConfigLRU, log *logger.Logger, opts ...OpcionLRU) *LRU {
	c := &LRU{
		porClave:         make(map[string]*list.Element),
		orden:            list.New(),
		maxEntradas:      cfg.MaxEntradas,
		maxBytes:         cfg.MaxBytes,
		fraccionRefresco: cfg.FraccionRefresco,
		reloj:            time.Now,
		log:              log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTLPara misma tabla de prefijos que Memoria (comparten la política).
func (c *LRU) TTLPara(clave string) time.Duration {
	return ttlPorClave(clave, c.reloj().Hour())
}

// Get devuelve el valor vigente y lo marca como usado recientemente.
func (c *LRU) Get(clave string) (any, bool) {
	ahora := c.reloj()
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.porClave[clave]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entradaLRU)
	if e.vencida(ahora) {
		c.eliminar(el)
		return nil, false
	}
	c.tocar(el, ahora)
	return e.valor, true
}

// Set guarda el valor, estima su tamaño serializado y desaloja por LRU si el
// cache desborda en entradas o bytes.
func (c *LRU) Set(clave string, valor any) {
	ahora := c.reloj()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guardar(clave, valor, ahora)
}

// GetOrCompute contrato de Memoria.GetOrCompute más stale-while-revalidate:
// si la edad supera fraccionRefresco*TTL pero aún no vence, devuelve el valor
// viejo y dispara el productor en una goroutine desacoplada con su propia
// frontera de error (los fallos del refresco solo se registran, jamás llegan
// al llamador original).
func (c *LRU) GetOrCompute(ctx context.Context, clave string, productor func(context.Context) (any, error)) (any, error) {
	ahora := c.reloj()

	c.mu.Lock()
	if el, ok := c.porClave[clave]; ok {
		e := el.Value.(*entradaLRU)
		if !e.vencida(ahora) {
			c.tocar(el, ahora)
			valor := e.valor

			edad := ahora.Sub(e.creadoEn)
			umbral := time.Duration(float64(e.ttl) * c.fraccionRefresco)
			if c.fraccionRefresco > 0 && edad > umbral && !e.refrescando {
				e.refrescando = true
				go c.refrescar(clave, productor)
			}

			c.mu.Unlock()
			return valor, nil
		}
		c.eliminar(el)
	}
	c.mu.Unlock()

	v, err := productor(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.guardar(clave, v, c.reloj())
	c.mu.Unlock()
	return v, nil
}

// refrescar corre en background; el reemplazo es atómico a nivel de entrada
// del mapa, así que una lectura stale en vuelo nunca ve un valor a medias
// (último en escribir gana).
func (c *LRU) refrescar(clave string, productor func(context.Context) (any, error)) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("clave", clave).Interface("panic", r).Msg("pánico en refresco de cache")
		}
	}()

	v, err := productor(context.Background())

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("clave", clave).Msg("refresco de cache en background falló")
		if el, ok := c.porClave[clave]; ok {
			el.Value.(*entradaLRU).refrescando = false
		}
		return
	}
	c.guardar(clave, v, c.reloj())
	c.log.Debug().Str("clave", clave).Msg("cache refrescado en background")
}

// Invalidate borra las claves que contienen el patrón; devuelve cuántas.
func (c *LRU) Invalidate(patron string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for clave, el := range c.porClave {
		if strings.Contains(clave, patron) {
			c.eliminar(el)
			n++
		}
	}
	return n
}

// Len cantidad de entradas presentes.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.porClave)
}

// BarrerVencidas elimina las entradas cuyo TTL ya venció.
func (c *LRU) BarrerVencidas() int {
	ahora := c.reloj()
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, el := range c.porClave {
		if el.Value.(*entradaLRU).vencida(ahora) {
			c.eliminar(el)
			n++
		}
	}
	return n
}

// IniciarLimpieza corre la barrida periódica hasta que el context se cancele.
func (c *LRU) IniciarLimpieza(ctx context.Context, intervalo time.Duration) {
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

// BytesTotal suma estimada de los valores serializados.
func (c *LRU) BytesTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytesTotal
}

// ── internos (requieren c.mu tomado) ──────────────────────────────────────────

func (c *LRU) guardar(clave string, valor any, ahora time.Time) {
	if el, ok := c.porClave[clave]; ok {
		c.eliminar(el)
	}

	e := &entradaLRU{
		clave: clave,
		entrada: entrada{
			valor:        valor,
			creadoEn:     ahora,
			ttl:          c.TTLPara(clave),
			ultimoAcceso: ahora,
			bytes:        estimarBytes(valor),
		},
	}
	el := c.orden.PushFront(e)
	c.porClave[clave] = el
	c.bytesTotal += e.bytes

	c.desalojar()
}

func (c *LRU) tocar(el *list.Element, ahora time.Time) {
	e := el.Value.(*entradaLRU)
	e.ultimoAcceso = ahora
	e.accesos++
	c.orden.MoveToFront(el)
}

func (c *LRU) eliminar(el *list.Element) {
	e := el.Value.(*entradaLRU)
	c.orden.Remove(el)
	delete(c.porClave, e.clave)
	c.bytesTotal -= e.bytes
}

// desalojar saca entradas desde la cola (menos usadas) hasta volver a los límites.
func (c *LRU) desalojar() {
	for (c.maxEntradas > 0 && len(c.porClave) > c.maxEntradas) ||
		(c.maxBytes > 0 && c.bytesTotal > c.maxBytes && len(c.porClave) > 1) {
		ultimo := c.orden.Back()
		if ultimo == nil {
			return
		}
		e := ultimo.Value.(*entradaLRU)
		c.eliminar(ultimo)
		c.log.Debug().Str("clave", e.clave).Msg("entrada desalojada por LRU")
	}
}

// estimarBytes aproxima el tamaño de la entrada con su serialización JSON;
// los valores no serializables cuentan 0 (solo afecta el límite de bytes).
func estimarBytes(valor any) int {
	b, err := json.Marshal(valor)
	if err != nil {
		return 0
	}
	return len(b)
}
