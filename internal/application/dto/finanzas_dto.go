package dto

import "github.com/shopspring/decimal"

// GastoDetalleDTO línea individual de gasto para la tabla de detalle.
type GastoDetalleDTO struct {
	Empresa   string          `json:"empresa"`
	Producto  string          `json:"producto"`
	Categoria string          `json:"categoria"`
	Fecha     string          `json:"fecha"` // como viene en la hoja, ya validada
	Monto     decimal.Decimal `json:"monto"`
}

// ResumenFinancieroDTO agregado de gastos del período evaluado contra el total
// de ventas del mismo período (TotalIngresos viene del agregado de ventas, no
// se recalcula aquí).
type ResumenFinancieroDTO struct {
	Periodo string `json:"periodo"`
	Tipo    string `json:"tipo"`

	TotalIngresos decimal.Decimal `json:"totalIngresos"`
	TotalEgresos  decimal.Decimal `json:"totalEgresos"`
	Ganancia      decimal.Decimal `json:"ganancia"` // ingresos - egresos
	Margen        decimal.Decimal `json:"margen"`   // % sobre ingresos, 0 si ingresos es 0

	TopProveedores  []RankingItem `json:"topProveedores"`
	CategoriasGasto []RankingItem `json:"categoriasGasto"`

	// Serie diaria/semanal/mensual según el tipo de filtro
	Serie []PuntoSerie `json:"serie"`

	// Últimos 50 gastos, ordenados por fecha descendente
	Detalle []GastoDetalleDTO `json:"detalle"`

	Tendencia string `json:"tendencia"`
}
