package clasificacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repuestosgt/dashboard-fel/internal/domain/clasificacion"
)

func TestCategoriaProducto(t *testing.T) {
	assert.Equal(t, "Frenos", clasificacion.CategoriaProducto("Pastillas de freno delanteras"))
	assert.Equal(t, "Filtros", clasificacion.CategoriaProducto("FILTRO DE AIRE MAZDA"))
	assert.Equal(t, "Lubricantes", clasificacion.CategoriaProducto("Aceite 10W-40"))
	assert.Equal(t, "Encendido", clasificacion.CategoriaProducto("Bujía NGK"))
	assert.Equal(t, "Llantas", clasificacion.CategoriaProducto("Neumático 185/65"))
	assert.Equal(t, "Otros", clasificacion.CategoriaProducto("Limpiaparabrisas universal"))
}

func TestCategoriaProducto_GanaElPrimerCalce(t *testing.T) {
	// "disco" y "filtro" aparecen; "disco" está antes en la tabla.
	assert.Equal(t, "Frenos", clasificacion.CategoriaProducto("Disco con filtro incluido"))
}

func TestMarcaVehiculo(t *testing.T) {
	assert.Equal(t, "TOYOTA", clasificacion.MarcaVehiculo("Pastillas freno toyota corolla"))
	assert.Equal(t, "CHEVROLET", clasificacion.MarcaVehiculo("Filtro para Chevy Aveo"), "sinónimo chevy")
	assert.Equal(t, "VOLKSWAGEN", clasificacion.MarcaVehiculo("Bobina VW Jetta"), "sinónimo vw")
	assert.Equal(t, "MERCEDES", clasificacion.MarcaVehiculo("Amortiguador Mercedes-Benz C200"))
	assert.Equal(t, "Genérico", clasificacion.MarcaVehiculo("Aceite genérico 20W-50"))
}

func TestMetodoPago(t *testing.T) {
	assert.Equal(t, "Efectivo", clasificacion.MetodoPago("pago en EFECTIVO"))
	assert.Equal(t, "Tarjeta", clasificacion.MetodoPago("Visa Credomatic"))
	assert.Equal(t, "Transferencia", clasificacion.MetodoPago("depósito banco industrial"))
	assert.Equal(t, "No Especificado", clasificacion.MetodoPago("   "))
	assert.Equal(t, "Bitcoin", clasificacion.MetodoPago("BITCOIN"), "texto sin calce se capitaliza")
}

func TestCategoriaGasto(t *testing.T) {
	assert.Equal(t, "Marketing", clasificacion.CategoriaGasto("Google Ads Campaign"))
	assert.Equal(t, "Marketing", clasificacion.CategoriaGasto("Meta publicidad junio"))
	assert.Equal(t, "Tecnología", clasificacion.CategoriaGasto("Shopify plan mensual"))
	assert.Equal(t, "Personal", clasificacion.CategoriaGasto("Planilla quincena 1"))
	assert.Equal(t, "Inventario", clasificacion.CategoriaGasto("Importación repuestos Panamá"))
	assert.Equal(t, "Transporte", clasificacion.CategoriaGasto("Flete Guatemala-Xela"))
	assert.Equal(t, "Impuestos", clasificacion.CategoriaGasto("Pago IVA SAT"))
	assert.Equal(t, "Otros", clasificacion.CategoriaGasto("Varios sin clasificar"))
}

func TestZonaDireccion(t *testing.T) {
	assert.Equal(t, "Zona 10", clasificacion.ZonaDireccion("4a avenida 15-45 zona 10"))
	assert.Equal(t, "Zona 1", clasificacion.ZonaDireccion("ZONA1, Centro Histórico"))
	assert.Equal(t, "Zona 21", clasificacion.ZonaDireccion("Colonia Justo Rufino, Zona 21"))
	assert.Equal(t, "Otras Zonas", clasificacion.ZonaDireccion("Km 18 carretera a El Salvador"))
	assert.Equal(t, "Sin Zona", clasificacion.ZonaDireccion("  "))
}

func TestEstadoPedido(t *testing.T) {
	assert.Equal(t, "pagado", clasificacion.EstadoPedido("PAGADO"))
	assert.Equal(t, "pagado", clasificacion.EstadoPedido("paid"))
	assert.Equal(t, "pendiente", clasificacion.EstadoPedido("Pendiente de pago"))
	assert.Equal(t, "anulado", clasificacion.EstadoPedido("Cancelado por cliente"))
	assert.Equal(t, "otros", clasificacion.EstadoPedido(""))
	assert.Equal(t, "otros", clasificacion.EstadoPedido("en revisión"))
}
