package dto

import "github.com/shopspring/decimal"

// ComparacionDTO deltas contra el período inmediatamente anterior del mismo tipo.
// Los porcentajes siguen la regla de PorcentajeCambio: 100 si el anterior era
// cero y el actual no, 0 si ambos son cero.
type ComparacionDTO struct {
	PeriodoAnterior   string          `json:"periodoAnterior"` // etiqueta legible, ej: "Mayo 2024"
	VentasAnteriores  decimal.Decimal `json:"ventasAnteriores"`
	PedidosAnteriores int             `json:"pedidosAnteriores"`
	IVAAnterior       decimal.Decimal `json:"ivaAnterior"`
	CambioVentas      decimal.Decimal `json:"cambioVentas"`   // %
	CambioPedidos     decimal.Decimal `json:"cambioPedidos"`  // %
	CambioPromedio    decimal.Decimal `json:"cambioPromedio"` // % del ticket promedio
}

// ResumenVentasDTO agregado multidimensional de ventas FEL para un período.
// Es un objeto de datos inmutable: se calcula por request (o se sirve del
// cache) y se descarta después de responder.
type ResumenVentasDTO struct {
	Periodo string `json:"periodo"` // etiqueta legible del filtro
	Tipo    string `json:"tipo"`    // dia | mes | anio

	// Totales
	TotalVentas       decimal.Decimal `json:"totalVentas"`
	TotalIVA          decimal.Decimal `json:"totalIVA"`
	VentasNetas       decimal.Decimal `json:"ventasNetas"` // TotalVentas - TotalIVA
	TotalPedidos      int             `json:"totalPedidos"`
	PromedioPorPedido decimal.Decimal `json:"promedioPorPedido"`

	// Serie temporal (eje según tipo: hora / día del mes / mes del año)
	VentasPorPeriodo []PuntoSerie `json:"ventasPorPeriodo"`

	// Rankings (descendente por total; clientes/marcas/etc. top 10, productos top 15)
	TopClientes           []RankingItem `json:"topClientes"`
	TopProductos          []RankingItem `json:"topProductos"`
	TopMarcas             []RankingItem `json:"topMarcas"`
	TopNITs               []RankingItem `json:"topNits"`
	VentasPorCiudad       []RankingItem `json:"ventasPorCiudad"`
	VentasPorDepartamento []RankingItem `json:"ventasPorDepartamento"`
	VentasPorZona         []RankingItem `json:"ventasPorZona"`
	Categorias            []RankingItem `json:"categorias"`
	MetodosPago           []RankingItem `json:"metodosPago"`

	// Conteo de pedidos por estado normalizado (pagado/pendiente/anulado/otros)
	EstadoPedidos map[string]int `json:"estadoPedidos"`

	// Extremos y promedio sobre los buckets de la serie
	VentaMinima   decimal.Decimal `json:"ventaMinima"`
	VentaMaxima   decimal.Decimal `json:"ventaMaxima"`
	VentaPromedio decimal.Decimal `json:"ventaPromedio"`

	Tendencia   string          `json:"tendencia"` // up | down | neutral
	Comparacion *ComparacionDTO `json:"comparacion,omitempty"`
}
