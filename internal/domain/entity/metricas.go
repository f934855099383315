package entity

import "github.com/shopspring/decimal"

// Etiquetas cualitativas de tendencia.
const (
	TendenciaSube    = "up"
	TendenciaBaja    = "down"
	TendenciaNeutral = "neutral"
)

var (
	cien = decimal.NewFromInt(100)
	diez = decimal.NewFromInt(10)
)

// PorcentajeCambio calcula (actual - anterior) / anterior * 100 con los casos
// especiales del tablero: 100 cuando el anterior es cero y el actual no,
// 0 cuando ambos son cero. Nunca divide por cero.
func PorcentajeCambio(actual, anterior decimal.Decimal) decimal.Decimal {
	if anterior.IsZero() {
		if actual.IsZero() {
			return decimal.Zero
		}
		return cien
	}
	return actual.Sub(anterior).Div(anterior).Mul(cien).Round(2)
}

// TendenciaDeSerie compara la suma de la primera mitad de la serie contra la
// segunda mitad: más de 10% de aumento es "up", más de 10% de caída es "down",
// el resto "neutral". Series de menos de dos puntos son neutrales.
func TendenciaDeSerie(valores []decimal.Decimal) string {
	if len(valores) < 2 {
		return TendenciaNeutral
	}

	mitad := len(valores) / 2
	var primera, segunda decimal.Decimal
	for _, v := range valores[:mitad] {
		primera = primera.Add(v)
	}
	for _, v := range valores[mitad:] {
		segunda = segunda.Add(v)
	}

	if primera.IsZero() {
		if segunda.IsPositive() {
			return TendenciaSube
		}
		return TendenciaNeutral
	}

	cambio := segunda.Sub(primera).Div(primera).Mul(cien)
	switch {
	case cambio.GreaterThan(diez):
		return TendenciaSube
	case cambio.LessThan(diez.Neg()):
		return TendenciaBaja
	default:
		return TendenciaNeutral
	}
}
