// Package fechas normaliza los strings de fecha heterogéneos de la hoja
// REGISTRO y clasifica instantes contra el filtro de período del dashboard.
//
// La hoja mezcla formato guatemalteco (DD/MM/YYYY) e ISO (YYYY-MM-DD) sin
// criterio; la ambigüedad se resuelve por prioridad explícita de patrones,
// nunca por heurística: "01/02/2024" es siempre 1 de febrero salvo que la
// cadena calce primero con un patrón YYYY.
package fechas

import (
	"strings"
	"time"

	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
)

// Patrones reconocidos, en orden de prioridad.
var layouts = []string{
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006-01-02",
}

// Patrones de respaldo para todo lo demás que alguna vez apareció en la hoja.
var layoutsRespaldo = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"2006/01/02",
}

// Parse interpreta un string de fecha. Devuelve ok=false si ningún patrón
// calza; nunca entra en pánico. Las comparaciones posteriores usan los campos
// de calendario locales tal como se parsean (sin normalizar a UTC), igual que
// la hoja de origen.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range layoutsRespaldo {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoincidePeriodo indica si el instante cae dentro de la ventana del filtro:
// día exacto, mes+año, o solo año según el tipo.
func CoincidePeriodo(t time.Time, f entity.FiltroPeriodo) bool {
	switch f.Tipo {
	case entity.PeriodoDia:
		return t.Day() == f.Dia && int(t.Month()) == f.Mes && t.Year() == f.Anio
	case entity.PeriodoMes:
		return int(t.Month()) == f.Mes && t.Year() == f.Anio
	case entity.PeriodoAnio:
		return t.Year() == f.Anio
	default:
		return false
	}
}
