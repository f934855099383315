package dto

import "github.com/shopspring/decimal"

// ResumenShopifyDTO agregado de pedidos Shopify para el mismo período del
// dashboard FEL, con la misma forma de totales y rankings para comparar
// lado a lado ambas fuentes.
type ResumenShopifyDTO struct {
	Periodo string `json:"periodo"`
	Tipo    string `json:"tipo"`

	// Solo pedidos PAID / PARTIALLY_PAID / PENDING.
	// Neto = total - descuentos - reembolsos.
	TotalVentas       decimal.Decimal `json:"totalVentas"`
	TotalDescuentos   decimal.Decimal `json:"totalDescuentos"`
	TotalReembolsos   decimal.Decimal `json:"totalReembolsos"`
	VentasNetas       decimal.Decimal `json:"ventasNetas"`
	TotalPedidos      int             `json:"totalPedidos"`
	PromedioPorPedido decimal.Decimal `json:"promedioPorPedido"`

	// Subtotales por estado financiero (PAID, PARTIALLY_PAID, PENDING)
	PorEstado map[string]decimal.Decimal `json:"porEstado"`

	TopCanales   []RankingItem `json:"topCanales"`
	TopProductos []RankingItem `json:"topProductos"`
	TopClientes  []RankingItem `json:"topClientes"`

	// Ganancia cruzada: ventas netas Shopify menos los egresos del período.
	// Solo se llena en el reporte combinado.
	ProfitCompleto *decimal.Decimal `json:"profitCompleto,omitempty"`
}
