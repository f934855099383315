package ventas

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

// serie buckets de la serie temporal del dashboard. La granularidad del eje la
// decide el tipo de filtro, no la ventana: hora del día para "dia", día del
// mes para "mes", mes del año para "anio". Los buckets se preinician en cero
// para que el eje del gráfico quede completo.
type serie struct {
	filtro     entity.FiltroPeriodo
	etiquetas  []string
	totales    []decimal.Decimal
	cantidades []int
}

func nuevaSerie(filtro entity.FiltroPeriodo) *serie {
	var etiquetas []string
	switch filtro.Tipo {
	case entity.PeriodoDia:
		etiquetas = make([]string, 24)
		for h := range etiquetas {
			etiquetas[h] = fmt.Sprintf("%02d:00", h)
		}
	case entity.PeriodoMes:
		dias := time.Date(filtro.Anio, time.Month(filtro.Mes)+1, 0, 0, 0, 0, 0, time.Local).Day()
		etiquetas = make([]string, dias)
		for d := range etiquetas {
			etiquetas[d] = fmt.Sprintf("%d", d+1)
		}
	default:
		etiquetas = make([]string, 12)
		copy(etiquetas, mesesCortos[:])
	}

	return &serie{
		filtro:     filtro,
		etiquetas:  etiquetas,
		totales:    make([]decimal.Decimal, len(etiquetas)),
		cantidades: make([]int, len(etiquetas)),
	}
}

func (s *serie) indice(t time.Time) int {
	switch s.filtro.Tipo {
	case entity.PeriodoDia:
		return t.Hour()
	case entity.PeriodoMes:
		return t.Day() - 1
	default:
		return int(t.Month()) - 1
	}
}

func (s *serie) sumar(t time.Time, monto decimal.Decimal) {
	i := s.indice(t)
	if i < 0 || i >= len(s.totales) {
		return
	}
	s.totales[i] = s.totales[i].Add(monto)
	s.cantidades[i]++
}

func (s *serie) puntos() []dto.PuntoSerie {
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

func (s *serie) valores() []decimal.Decimal {
	return s.totales
}

// extremos devuelve (mínimo, máximo, promedio) sobre los buckets con actividad;
// sin actividad todo queda en cero.
func (s *serie) extremos() (min, max, prom decimal.Decimal) {
	activos := 0
	var suma decimal.Decimal
	for i, total := range s.totales {
		if s.cantidades[i] == 0 {
			continue
		}
		if activos == 0 || total.LessThan(min) {
			min = total
		}
		if activos == 0 || total.GreaterThan(max) {
			max = total
		}
		suma = suma.Add(total)
		activos++
	}
	if activos > 0 {
		prom = suma.Div(decimal.NewFromInt(int64(activos))).Round(2)
	}
	return min, max, prom
}
