package dto

import "github.com/shopspring/decimal"

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RankingItem entrada de un top-N: entidad, número de apariciones y total vendido.
type RankingItem struct {
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}

// PuntoSerie punto de una serie temporal. La etiqueta es la granularidad del
// eje según el filtro: hora del día, día del mes o mes del año.
type PuntoSerie struct {
	Etiqueta string          `json:"etiqueta"`
	Cantidad int             `json:"cantidad"`
	Total    decimal.Decimal `json:"total"`
}
