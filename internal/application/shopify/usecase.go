// Package shopify reduce los pedidos ya traídos de la Admin API a la misma
// forma de estadísticas del dashboard FEL, para comparar ambas fuentes lado a
// lado. La paginación y las llamadas GraphQL viven en infraestructura.
package shopify

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/domain/fechas"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

const topN = 10

// FuenteOrdenes puerto hacia la Admin API: devuelve los pedidos del período ya
// paginados y convertidos a la entidad.
type FuenteOrdenes interface {
	Ordenes(ctx context.Context, filtro entity.FiltroPeriodo) ([]entity.OrdenShopify, error)
}

// UseCase agrega pedidos Shopify; con el reporte financiero disponible puede
// además calcular la ganancia cruzada (ventas Shopify - egresos del período).
type UseCase struct {
	fuente   FuenteOrdenes
	finanzas *finanzas.UseCase
	cache    ventas.Cache
	log      *logger.Logger
}

// New construye el caso de uso. finanzasUC puede ser nil si no se necesita el
// comparativo.
func New(fuente FuenteOrdenes, finanzasUC *finanzas.UseCase, cache ventas.Cache, log *logger.Logger) *UseCase {
	return &UseCase{fuente: fuente, finanzas: finanzasUC, cache: cache, log: log}
}

// GetEstadisticas devuelve el agregado Shopify del período, cacheado.
func (uc *UseCase) GetEstadisticas(ctx context.Context, filtro entity.FiltroPeriodo) (*dto.ResumenShopifyDTO, error) {
	clave := filtro.ClaveCache("shopify")

	v, err := uc.cache.GetOrCompute(ctx, clave, func(ctx context.Context) (any, error) {
		ordenes, err := uc.fuente.Ordenes(ctx, filtro)
		if err != nil {
			return nil, fmt.Errorf("fuente Shopify: %w", err)
		}
		return uc.Agregar(ordenes, filtro), nil
	})
	if err != nil {
		return nil, fmt.Errorf("shopify: %w", err)
	}
	return v.(*dto.ResumenShopifyDTO), nil
}

// GetComparativo devuelve las estadísticas con la ganancia cruzada contra los
// egresos del período (profitCompleto = ventas netas Shopify - egresos).
func (uc *UseCase) GetComparativo(ctx context.Context, filtro entity.FiltroPeriodo) (*dto.ResumenShopifyDTO, error) {
	res, err := uc.GetEstadisticas(ctx, filtro)
	if err != nil {
		return nil, err
	}
	if uc.finanzas == nil {
		return res, nil
	}

	fin, err := uc.finanzas.GetReporte(ctx, filtro)
	if err != nil {
		return nil, err
	}

	// Copia superficial: el valor cacheado es inmutable, no se anota sobre él.
	conProfit := *res
	profit := res.VentasNetas.Sub(fin.TotalEgresos)
	conProfit.ProfitCompleto = &profit
	return &conProfit, nil
}

// Agregar es la reducción pura sobre los pedidos. Solo cuentan los estados
// financieros PAID, PARTIALLY_PAID y PENDING; la venta neta de cada pedido es
// total - descuentos - reembolsos.
func (uc *UseCase) Agregar(ordenes []entity.OrdenShopify, filtro entity.FiltroPeriodo) *dto.ResumenShopifyDTO {
	res := &dto.ResumenShopifyDTO{
		Periodo:   filtro.Etiqueta(),
		Tipo:      string(filtro.Tipo),
		PorEstado: map[string]decimal.Decimal{},
	}

	canales := map[string]*cuentaOrden{}
	productos := map[string]*cuentaOrden{}
	clientes := map[string]*cuentaOrden{}

	for _, orden := range ordenes {
		momento, ok := fechas.Parse(orden.CreadoEnRaw)
		if !ok {
			uc.log.Warn().Str("orden", orden.Nombre).Str("createdAt", orden.CreadoEnRaw).
				Msg("pedido Shopify con fecha ilegible")
			continue
		}
		if !fechas.CoincidePeriodo(momento, filtro) {
			continue
		}
		if !orden.CuentaComoVenta() {
			continue
		}

		neto := orden.VentaNeta()
		res.TotalVentas = res.TotalVentas.Add(orden.Total)
		res.TotalDescuentos = res.TotalDescuentos.Add(orden.Descuentos)
		res.TotalReembolsos = res.TotalReembolsos.Add(orden.Reembolsos)
		res.VentasNetas = res.VentasNetas.Add(neto)
		res.TotalPedidos++

		estado := orden.EstadoFinanciero
		res.PorEstado[estado] = res.PorEstado[estado].Add(neto)

		sumarOrden(canales, orden.Canal(), neto)
		sumarOrden(clientes, orden.NombreCliente(), neto)
		for _, item := range orden.Items {
			importe := item.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
			sumarOrden(productos, item.Titulo, importe)
		}
	}

	if res.TotalPedidos > 0 {
		res.PromedioPorPedido = res.VentasNetas.Div(decimal.NewFromInt(int64(res.TotalPedidos))).Round(2)
	}

	res.TopCanales = topOrdenes(canales, topN)
	res.TopProductos = topOrdenes(productos, topN)
	res.TopClientes = topOrdenes(clientes, topN)
	return res
}

type cuentaOrden struct {
	cantidad int
	total    decimal.Decimal
}

func sumarOrden(m map[string]*cuentaOrden, clave string, monto decimal.Decimal) {
	c, ok := m[clave]
	if !ok {
		c = &cuentaOrden{}
		m[clave] = c
	}
	c.cantidad++
	c.total = c.total.Add(monto)
}

func topOrdenes(m map[string]*cuentaOrden, n int) []dto.RankingItem {
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
