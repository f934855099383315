package finanzas

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
)

var mesesCortos = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// serieGastos serie temporal de egresos. Granularidad por tipo de filtro:
// diaria para "dia" (el día filtrado), semanal para "mes" (Semana 1..5) y
// mensual para "anio". Los gastos tienen muchos menos puntos que las ventas,
// por eso el eje es más grueso que el del dashboard.
type serieGastos struct {
	filtro     entity.FiltroPeriodo
	etiquetas  []string
	totales    []decimal.Decimal
	cantidades []int
}

func nuevaSerieGastos(filtro entity.FiltroPeriodo) *serieGastos {
	var etiquetas []string
	switch filtro.Tipo {
	case entity.PeriodoDia:
		etiquetas = []string{fmt.Sprintf("%d/%d/%d", filtro.Dia, filtro.Mes, filtro.Anio)}
	case entity.PeriodoMes:
		dias := time.Date(filtro.Anio, time.Month(filtro.Mes)+1, 0, 0, 0, 0, 0, time.Local).Day()
		semanas := (dias + 6) / 7
		etiquetas = make([]string, semanas)
		for s := range etiquetas {
			etiquetas[s] = fmt.Sprintf("Semana %d", s+1)
		}
	default:
		etiquetas = make([]string, 12)
		copy(etiquetas, mesesCortos[:])
	}

	return &serieGastos{
		filtro:     filtro,
		etiquetas:  etiquetas,
		totales:    make([]decimal.Decimal, len(etiquetas)),
		cantidades: make([]int, len(etiquetas)),
	}
}

func (s *serieGastos) indice(t time.Time) int {
	switch s.filtro.Tipo {
	case entity.PeriodoDia:
		return 0
	case entity.PeriodoMes:
		return (t.Day() - 1) / 7
	default:
		return int(t.Month()) - 1
	}
}

func (s *serieGastos) sumar(t time.Time, monto decimal.Decimal) {
	i := s.indice(t)
	if i < 0 || i >= len(s.totales) {
		return
	}
	s.totales[i] = s.totales[i].Add(monto)
	s.cantidades[i]++
}

func (s *serieGastos) puntos() []dto.PuntoSerie {
	puntos := make([]dto.PuntoSerie, len(s.etiquetas))
	for i, et := range s.etiquetas {
		puntos[i] = dto.PuntoSerie{
			Etiqueta: et,
			Cantidad: s.cantidades[i],
			Total:    s.totales[i].Round(2),
		}
	}
	return puntos
}
