package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
)

var ahora = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func TestNewFiltroPeriodo_CoercionDeStrings(t *testing.T) {
	f, err := entity.NewFiltroPeriodo("dia", "15", "6", "2024", ahora)
	require.NoError(t, err)
	assert.Equal(t, entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 15, Mes: 6, Anio: 2024}, f)
}

func TestNewFiltroPeriodo_AliasConEnie(t *testing.T) {
	f, err := entity.NewFiltroPeriodo("año", "", "", "2023", ahora)
	require.NoError(t, err)
	assert.Equal(t, entity.PeriodoAnio, f.Tipo)
	assert.Equal(t, 2023, f.Anio)
}

func TestNewFiltroPeriodo_DefaultsDeFechaActual(t *testing.T) {
	f, err := entity.NewFiltroPeriodo("mes", "", "", "", ahora)
	require.NoError(t, err)
	assert.Equal(t, 6, f.Mes)
	assert.Equal(t, 2024, f.Anio)
}

func TestNewFiltroPeriodo_TipoInvalido(t *testing.T) {
	_, err := entity.NewFiltroPeriodo("trimestre", "", "6", "2024", ahora)
	assert.Error(t, err)
}

func TestNewFiltroPeriodo_RangosInvalidos(t *testing.T) {
	_, err := entity.NewFiltroPeriodo("dia", "32", "6", "2024", ahora)
	assert.Error(t, err, "día 32 debe rechazarse")

	_, err = entity.NewFiltroPeriodo("mes", "", "13", "2024", ahora)
	assert.Error(t, err, "mes 13 debe rechazarse")
}

// TestAnterior_Bordes valida los saltos de mes y año de la ventana anterior.
func TestAnterior_Bordes(t *testing.T) {
	casos := []struct {
		nombre   string
		filtro   entity.FiltroPeriodo
		esperado entity.FiltroPeriodo
	}{
		{
			"día dentro del mes",
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 15, Mes: 6, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 14, Mes: 6, Anio: 2024},
		},
		{
			"primero de mes salta al mes anterior",
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 1, Mes: 3, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 29, Mes: 2, Anio: 2024}, // 2024 es bisiesto
		},
		{
			"primero de enero salta al año anterior",
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 1, Mes: 1, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 31, Mes: 12, Anio: 2023},
		},
		{
			"mes normal",
			entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 6, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 5, Anio: 2024},
		},
		{
			"enero salta a diciembre anterior",
			entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 1, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 12, Anio: 2023},
		},
		{
			"año anterior",
			entity.FiltroPeriodo{Tipo: entity.PeriodoAnio, Anio: 2024},
			entity.FiltroPeriodo{Tipo: entity.PeriodoAnio, Anio: 2023},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, c.filtro.Anterior())
		})
	}
}

func TestClaveCache_Convencion(t *testing.T) {
	assert.Equal(t, "dashboard_mes_6_2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 6, Anio: 2024}.ClaveCache("dashboard"))
	assert.Equal(t, "finanzas_dia_15_6_2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 15, Mes: 6, Anio: 2024}.ClaveCache("finanzas"))
	assert.Equal(t, "shopify_anio_2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoAnio, Anio: 2024}.ClaveCache("shopify"))
}

func TestEtiqueta(t *testing.T) {
	assert.Equal(t, "Junio 2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 6, Anio: 2024}.Etiqueta())
	assert.Equal(t, "15 de Junio 2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoDia, Dia: 15, Mes: 6, Anio: 2024}.Etiqueta())
	assert.Equal(t, "2024",
		entity.FiltroPeriodo{Tipo: entity.PeriodoAnio, Anio: 2024}.Etiqueta())
}
