package finanzas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/application/finanzas"
	"github.com/repuestosgt/dashboard-fel/internal/application/ventas"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/infrastructure/cache"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

// fuenteHojas implementa FuenteRegistro y FuentePagos a la vez, como el
// cliente real de Sheets.
type fuenteHojas struct {
	registro [][]string
	pagos    [][]string
	errPagos error
}

func (f *fuenteHojas) FilasRegistro(context.Context) ([][]string, error) {
	return f.registro, nil
}

func (f *fuenteHojas) FilasPagos(context.Context) ([][]string, error) {
	return f.pagos, f.errPagos
}

func marzo2024() entity.FiltroPeriodo {
	return entity.FiltroPeriodo{Tipo: entity.PeriodoMes, Mes: 3, Anio: 2024}
}

func filaVenta(total, iva, fecha string) []string {
	return []string{"F1", "", total, iva, "", "Cliente", "", "", "", fecha}
}

func nuevoUC(fuente *fuenteHojas) *finanzas.UseCase {
	c := cache.NewMemoria(logger.Nop())
	ventasUC := ventas.New(fuente, c, logger.Nop())
	return finanzas.New(fuente, ventasUC, c, logger.Nop())
}

func TestGetReporte_GananciaYMargen(t *testing.T) {
	fuente := &fuenteHojas{
		registro: [][]string{
			filaVenta("600", "72", "05/03/2024"),
			filaVenta("400", "48", "20/03/2024"),
		},
		pagos: [][]string{
			{"Google", "10/03/2024", "Q150.00", `{"nombre":"Google Ads Campaign"}`},
			{"Transportes GT", "12/03/2024", "Q100.00", `{"nombre":"Flete ciudad"}`},
			// fuera del período
			{"Google", "10/04/2024", "Q999.00", ""},
		},
	}
	uc := nuevoUC(fuente)

	res, err := uc.GetReporte(context.Background(), marzo2024())
	require.NoError(t, err)

	assert.True(t, res.TotalIngresos.Equal(decimal.NewFromInt(1000)))
	assert.True(t, res.TotalEgresos.Equal(decimal.NewFromInt(250)))
	assert.True(t, res.Ganancia.Equal(decimal.NewFromInt(750)))
	assert.True(t, res.Margen.Equal(decimal.NewFromInt(75)), "margen: %s", res.Margen)
}

func TestGetReporte_ClasificaGastos(t *testing.T) {
	fuente := &fuenteHojas{
		pagos: [][]string{
			{"Google", "10/03/2024", "150", `{"nombre":"Google Ads Campaign"}`},
			{"Meta Platforms", "11/03/2024", "50", ""},
			{"Transportes GT", "12/03/2024", "100", `{"nombre":"Flete ciudad"}`},
		},
	}
	uc := nuevoUC(fuente)

	res, err := uc.GetReporte(context.Background(), marzo2024())
	require.NoError(t, err)

	// categorías ordenadas por total: Marketing 200 (Google + Meta), Transporte 100
	require.Len(t, res.CategoriasGasto, 2)
	assert.Equal(t, "Marketing", res.CategoriasGasto[0].Nombre)
	assert.True(t, res.CategoriasGasto[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Transporte", res.CategoriasGasto[1].Nombre)

	require.Len(t, res.TopProveedores, 3)
	assert.Equal(t, "Google", res.TopProveedores[0].Nombre)
}

func TestGetReporte_SerieSemanalDelMes(t *testing.T) {
	fuente := &fuenteHojas{
		pagos: [][]string{
			{"A", "03/03/2024", "10", ""}, // día 3 → semana 1
			{"B", "10/03/2024", "20", ""}, // día 10 → semana 2
			{"C", "31/03/2024", "30", ""}, // día 31 → semana 5
		},
	}
	uc := nuevoUC(fuente)

	res, err := uc.GetReporte(context.Background(), marzo2024())
	require.NoError(t, err)

	// marzo tiene 31 días: 5 semanas
	require.Len(t, res.Serie, 5)
	assert.Equal(t, "Semana 1", res.Serie[0].Etiqueta)
	assert.True(t, res.Serie[0].Total.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.Serie[1].Total.Equal(decimal.NewFromInt(20)))
	assert.True(t, res.Serie[4].Total.Equal(decimal.NewFromInt(30)))
}

func TestGetReporte_DetalleOrdenadoPorFechaDescendente(t *testing.T) {
	fuente := &fuenteHojas{
		pagos: [][]string{
			{"Primero", "01/03/2024", "10", ""},
			{"Último", "25/03/2024", "20", ""},
			{"Medio", "10/03/2024", "30", ""},
		},
	}
	uc := nuevoUC(fuente)

	res, err := uc.GetReporte(context.Background(), marzo2024())
	require.NoError(t, err)

	require.Len(t, res.Detalle, 3)
	assert.Equal(t, "Último", res.Detalle[0].Empresa)
	assert.Equal(t, "Medio", res.Detalle[1].Empresa)
	assert.Equal(t, "Primero", res.Detalle[2].Empresa)
	assert.Equal(t, entity.SinProducto, res.Detalle[0].Producto)
}

func TestGetReporte_FallaDePagosAbortaElReporte(t *testing.T) {
	falla := errors.New("hoja PAGOS inaccesible")
	uc := nuevoUC(&fuenteHojas{errPagos: falla})

	_, err := uc.GetReporte(context.Background(), marzo2024())
	assert.ErrorIs(t, err, falla)
}

func TestAgregar_SinIngresosNoDividePorCero(t *testing.T) {
	uc := nuevoUC(&fuenteHojas{})

	res := uc.Agregar(
		[]entity.FilaPago{{Empresa: "X", FechaRaw: "05/03/2024", Monto: decimal.NewFromInt(100)}},
		&dto.ResumenVentasDTO{},
		marzo2024(),
	)

	assert.True(t, res.Margen.IsZero(), "sin ingresos el margen queda en 0")
	assert.True(t, res.Ganancia.Equal(decimal.NewFromInt(-100)))
}
