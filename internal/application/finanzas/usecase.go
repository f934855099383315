// Package finanzas implementa el reporte financiero: gastos de la hoja PAGOS
// clasificados por proveedor y categoría, evaluados contra el total de ventas
// del mismo período para calcular ganancia y margen.
package finanzas

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain/clasificacion"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/domain/fechas"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

const (
	topProveedores = 10
	maxDetalle     = 50
)

// FuentePagos puerto hacia la hoja PAGOS: filas crudas sin encabezado.
type FuentePagos interface {
	FilasPagos(ctx context.Context) ([][]string, error)
}

// UseCase depende del agregado de ventas ya calculado: los ingresos del
// período salen de ahí, no se recalculan de forma independiente.
type UseCase struct {
	pagos  FuentePagos
	ventas *ventas.UseCase
	cache  ventas.Cache
	log    *logger.Logger
}

// New construye el caso de uso.
func New(pagos FuentePagos, ventasUC *ventas.UseCase, cache ventas.Cache, log *logger.Logger) *UseCase {
	return &UseCase{pagos: pagos, ventas: ventasUC, cache: cache, log: log}
}

// GetReporte arma el reporte financiero del período. Las dos fuentes (resumen
// de ventas y filas de pagos) se consultan en paralelo porque son
// independientes; cualquiera de los dos errores aborta el reporte.
func (uc *UseCase) GetReporte(ctx context.Context, filtro entity.FiltroPeriodo) (*dto.ResumenFinancieroDTO, error) {
	clave := filtro.ClaveCache("finanzas")

	v, err := uc.cache.GetOrCompute(ctx, clave, func(ctx context.Context) (any, error) {
		var (
			resumenVentas *dto.ResumenVentasDTO
			filasPagos    []entity.FilaPago
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			resumenVentas, err = uc.ventas.GetResumen(gctx, filtro, false)
			return err
		})
		g.Go(func() error {
			var err error
			filasPagos, err = uc.cargarPagos(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return uc.Agregar(filasPagos, resumenVentas, filtro), nil
	})
	if err != nil {
		return nil, fmt.Errorf("finanzas: %w", err)
	}
	return v.(*dto.ResumenFinancieroDTO), nil
}

// cargarPagos trae y tipifica las filas de PAGOS; el esquema inválido se
// registra y se descarta.
func (uc *UseCase) cargarPagos(ctx context.Context) ([]entity.FilaPago, error) {
	raw, err := uc.pagos.FilasPagos(ctx)
	if err != nil {
		return nil, fmt.Errorf("fuente PAGOS: %w", err)
	}

	filas := make([]entity.FilaPago, 0, len(raw))
	for i, r := range raw {
		p, err := entity.FilaPagoDesdeRaw(r)
		if err != nil {
			uc.log.Debug().Int("fila", i+2).Err(err).Msg("fila de PAGOS en cuarentena")
			continue
		}
		filas = append(filas, p)
	}
	return filas, nil
}

type gastoConFecha struct {
	dto.GastoDetalleDTO
	momento time.Time
}

// Agregar es la reducción pura: filtra pagos por período, clasifica, arma la
// serie y calcula ganancia y margen contra los ingresos del agregado de ventas.
func (uc *UseCase) Agregar(pagos []entity.FilaPago, resumenVentas *dto.ResumenVentasDTO, filtro entity.FiltroPeriodo) *dto.ResumenFinancieroDTO {
	res := &dto.ResumenFinancieroDTO{
		Periodo:       filtro.Etiqueta(),
		Tipo:          string(filtro.Tipo),
		TotalIngresos: resumenVentas.TotalVentas,
	}

	serie := nuevaSerieGastos(filtro)
	proveedores := map[string]*cuentaGasto{}
	categorias := map[string]*cuentaGasto{}
	var detalle []gastoConFecha

	for _, pago := range pagos {
		momento, ok := fechas.Parse(pago.FechaRaw)
		if !ok || !fechas.CoincidePeriodo(momento, filtro) {
			continue
		}

		res.TotalEgresos = res.TotalEgresos.Add(pago.Monto)
		serie.sumar(momento, pago.Monto)

		producto := pago.NombreProducto()
		categoria := clasificacion.CategoriaGasto(pago.Empresa + " " + producto)

		sumarGasto(proveedores, nombreProveedor(pago), pago.Monto)
		sumarGasto(categorias, categoria, pago.Monto)

		detalle = append(detalle, gastoConFecha{
			GastoDetalleDTO: dto.GastoDetalleDTO{
				Empresa:   nombreProveedor(pago),
				Producto:  producto,
				Categoria: categoria,
				Fecha:     pago.FechaRaw,
				Monto:     pago.Monto.Round(2),
			},
			momento: momento,
		})
	}

	res.Ganancia = res.TotalIngresos.Sub(res.TotalEgresos)
	if res.TotalIngresos.IsPositive() {
		res.Margen = res.Ganancia.Div(res.TotalIngresos).Mul(decimal.NewFromInt(100)).Round(2)
	}

	res.TopProveedores = topGastos(proveedores, topProveedores)
	res.CategoriasGasto = topGastos(categorias, topProveedores)
	res.Serie = serie.puntos()
	res.Tendencia = entity.TendenciaDeSerie(serie.totales)

	// Últimos movimientos primero, máximo 50 líneas en la tabla de detalle.
	sort.Slice(detalle, func(i, j int) bool { return detalle[i].momento.After(detalle[j].momento) })
	if len(detalle) > maxDetalle {
		detalle = detalle[:maxDetalle]
	}
	res.Detalle = make([]dto.GastoDetalleDTO, len(detalle))
	for i, d := range detalle {
		res.Detalle[i] = d.GastoDetalleDTO
	}

	return res
}

func nombreProveedor(p entity.FilaPago) string {
	if p.Empresa != "" {
		return p.Empresa
	}
	return "Proveedor sin nombre"
}

type cuentaGasto struct {
	cantidad int
	total    decimal.Decimal
}

func sumarGasto(m map[string]*cuentaGasto, clave string, monto decimal.Decimal) {
	c, ok := m[clave]
	if !ok {
		c = &cuentaGasto{}
		m[clave] = c
	}
	c.cantidad++
	c.total = c.total.Add(monto)
}

func topGastos(m map[string]*cuentaGasto, n int) []dto.RankingItem {
	items := make([]dto.RankingItem, 0, len(m))
	for nombre, c := range m {
		items = append(items, dto.RankingItem{Nombre: nombre, Cantidad: c.cantidad, Total: c.total.Round(2)})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Total.Equal(items[j].Total) {
			return items[i].Total.GreaterThan(items[j].Total)
		}
		return items[i].Nombre < items[j].Nombre
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
