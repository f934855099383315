package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/repuestosgt/dashboard-fel/internal/domain"
)

// TipoPeriodo granularidad del filtro de reportes.
type TipoPeriodo string

const (
	PeriodoDia  TipoPeriodo = "dia"
	PeriodoMes  TipoPeriodo = "mes"
	PeriodoAnio TipoPeriodo = "anio"
)

// FiltroPeriodo ventana de tiempo seleccionada para un reporte.
// Define también, de forma determinista, la ventana inmediatamente anterior
// del mismo tipo (ver Anterior) usada para los deltas de comparación.
type FiltroPeriodo struct {
	Tipo TipoPeriodo `json:"tipo"`
	Dia  int         `json:"dia,omitempty"` // 1-31, solo cuando Tipo == PeriodoDia
	Mes  int         `json:"mes,omitempty"` // 1-12
	Anio int         `json:"anio"`
}

// NewFiltroPeriodo construye el filtro a partir de los query params crudos
// (tipo, dia, mes, anio como strings). Acepta "año" como alias de "anio".
// Mes y año vacíos se completan con la fecha actual.
func NewFiltroPeriodo(tipo, dia, mes, anio string, ahora time.Time) (FiltroPeriodo, error) {
	f := FiltroPeriodo{}

	switch strings.ToLower(strings.TrimSpace(tipo)) {
	case "dia", "día", "day":
		f.Tipo = PeriodoDia
	case "mes", "month", "":
		f.Tipo = PeriodoMes
	case "anio", "año", "ano", "year":
		f.Tipo = PeriodoAnio
	default:
		return FiltroPeriodo{}, fmt.Errorf("%w: tipo %q", domain.ErrPeriodoInvalido, tipo)
	}

	f.Mes = atoiODefault(mes, int(ahora.Month()))
	f.Anio = atoiODefault(anio, ahora.Year())
	if f.Tipo == PeriodoDia {
		f.Dia = atoiODefault(dia, ahora.Day())
	}

	if err := f.Validar(); err != nil {
		return FiltroPeriodo{}, err
	}
	return f, nil
}

// Validar verifica los rangos de los campos según el tipo.
func (f FiltroPeriodo) Validar() error {
	if f.Anio < 1000 || f.Anio > 9999 {
		return fmt.Errorf("%w: anio %d", domain.ErrPeriodoInvalido, f.Anio)
	}
	switch f.Tipo {
	case PeriodoDia:
		if f.Dia < 1 || f.Dia > 31 {
			return fmt.Errorf("%w: dia %d", domain.ErrPeriodoInvalido, f.Dia)
		}
		fallthrough
	case PeriodoMes:
		if f.Mes < 1 || f.Mes > 12 {
			return fmt.Errorf("%w: mes %d", domain.ErrPeriodoInvalido, f.Mes)
		}
	case PeriodoAnio:
		// solo el año importa
	default:
		return fmt.Errorf("%w: tipo %q", domain.ErrPeriodoInvalido, f.Tipo)
	}
	return nil
}

// Anterior devuelve la ventana inmediatamente anterior del mismo tipo:
// día anterior (con salto de mes/año), mes anterior (con salto de año)
// o año anterior.
func (f FiltroPeriodo) Anterior() FiltroPeriodo {
	switch f.Tipo {
	case PeriodoDia:
		t := time.Date(f.Anio, time.Month(f.Mes), f.Dia, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
		return FiltroPeriodo{Tipo: PeriodoDia, Dia: t.Day(), Mes: int(t.Month()), Anio: t.Year()}
	case PeriodoMes:
		if f.Mes == 1 {
			return FiltroPeriodo{Tipo: PeriodoMes, Mes: 12, Anio: f.Anio - 1}
		}
		return FiltroPeriodo{Tipo: PeriodoMes, Mes: f.Mes - 1, Anio: f.Anio}
	default:
		return FiltroPeriodo{Tipo: PeriodoAnio, Anio: f.Anio - 1}
	}
}

// ClaveCache construye la clave de cache con la convención <dominio>_<tipo>_<params>.
// Ej: "dashboard_mes_6_2024", "finanzas_dia_15_6_2024".
func (f FiltroPeriodo) ClaveCache(dominio string) string {
	switch f.Tipo {
	case PeriodoDia:
		return fmt.Sprintf("%s_dia_%d_%d_%d", dominio, f.Dia, f.Mes, f.Anio)
	case PeriodoMes:
		return fmt.Sprintf("%s_mes_%d_%d", dominio, f.Mes, f.Anio)
	default:
		return fmt.Sprintf("%s_anio_%d", dominio, f.Anio)
	}
}

// Etiqueta devuelve una descripción legible del período, ej: "Junio 2024".
func (f FiltroPeriodo) Etiqueta() string {
	meses := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	switch f.Tipo {
	case PeriodoDia:
		return fmt.Sprintf("%d de %s %d", f.Dia, meses[f.Mes-1], f.Anio)
	case PeriodoMes:
		return fmt.Sprintf("%s %d", meses[f.Mes-1], f.Anio)
	default:
		return strconv.Itoa(f.Anio)
	}
}

func atoiODefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
