// Package ventas implementa la agregación multidimensional de facturas FEL:
// filtra las filas de REGISTRO por período, reduce totales y desgloses por
// cliente, producto, ciudad, departamento, marca, método de pago y categoría,
// y calcula la comparación contra el período anterior.
package ventas

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
	"github.com/repuestosgt/dashboard-fel/internal/domain/clasificacion"
	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
	"github.com/repuestosgt/dashboard-fel/internal/domain/fechas"
	"github.com/repuestosgt/dashboard-fel/pkg/logger"
)

const (
	topClientes  = 10
	topProductos = 15
)

// FuenteRegistro puerto hacia la hoja REGISTRO: devuelve las filas crudas
// (sin encabezado). La paginación y los reintentos son problema de la fuente.
type FuenteRegistro interface {
	FilasRegistro(ctx context.Context) ([][]string, error)
}

// Cache puerto mínimo que consumen los casos de uso; lo satisfacen tanto
// cache.Memoria como cache.LRU.
type Cache interface {
	GetOrCompute(ctx context.Context, clave string, productor func(context.Context) (any, error)) (any, error)
	Invalidate(patron string) int
}

// UseCase orquesta fetch + ingesta tipada + agregación, con el cache por delante.
type UseCase struct {
	fuente FuenteRegistro
	cache  Cache
	log    *logger.Logger
}

// New construye el caso de uso.
func New(fuente FuenteRegistro, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{fuente: fuente, cache: cache, log: log}
}

// GetResumen devuelve el agregado de ventas del período, servido del cache si
// sigue vigente. Un fallo de la fuente en un miss frío se propaga al llamador.
func (uc *UseCase) GetResumen(ctx context.Context, filtro entity.FiltroPeriodo, incluirComparacion bool) (*dto.ResumenVentasDTO, error) {
	clave := filtro.ClaveCache("dashboard")
	if incluirComparacion {
		clave += "_comp"
	}

	v, err := uc.cache.GetOrCompute(ctx, clave, func(ctx context.Context) (any, error) {
		filas, err := uc.cargarFilas(ctx)
		if err != nil {
			return nil, err
		}
		return uc.Agregar(filas, filtro, incluirComparacion), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ventas: %w", err)
	}
	return v.(*dto.ResumenVentasDTO), nil
}

// cargarFilas trae las filas crudas y las convierte al esquema tipado. Las
// filas que no cumplen el esquema se ponen en cuarentena (se registran y se
// descartan), nunca producen ceros silenciosos.
func (uc *UseCase) cargarFilas(ctx context.Context) ([]entity.FilaFactura, error) {
	raw, err := uc.fuente.FilasRegistro(ctx)
	if err != nil {
		return nil, fmt.Errorf("fuente REGISTRO: %w", err)
	}

	filas := make([]entity.FilaFactura, 0, len(raw))
	cuarentena := 0
	for i, r := range raw {
		f, err := entity.FilaFacturaDesdeRaw(r)
		if err != nil {
			cuarentena++
			uc.log.Debug().Int("fila", i+2).Err(err).Msg("fila de REGISTRO en cuarentena")
			continue
		}
		filas = append(filas, f)
	}
	if cuarentena > 0 {
		uc.log.Warn().Int("filas", cuarentena).Msg("filas de REGISTRO descartadas por esquema inválido")
	}
	return filas, nil
}

// Agregar es la reducción pura sobre las filas ya tipadas. Exportada para que
// el reporte financiero reutilice el mismo agregado sin pasar por el cache.
func (uc *UseCase) Agregar(filas []entity.FilaFactura, filtro entity.FiltroPeriodo, incluirComparacion bool) *dto.ResumenVentasDTO {
	res := &dto.ResumenVentasDTO{
		Periodo:       filtro.Etiqueta(),
		Tipo:          string(filtro.Tipo),
		EstadoPedidos: map[string]int{},
	}

	serie := nuevaSerie(filtro)
	clientes := nuevoAcumulador()
	nits := nuevoAcumulador()
	metodos := nuevoAcumulador()
	productos := nuevoAcumulador()
	marcas := nuevoAcumulador()
	categorias := nuevoAcumulador()
	ciudades := nuevoAcumulador()
	departamentos := nuevoAcumulador()
	zonas := nuevoAcumulador()

	for _, fila := range filas {
		momento, ok := fechas.Parse(fila.FechaRaw)
		if !ok {
			// La fila queda fuera de todos los agregados, actual y anterior.
			continue
		}
		if !fechas.CoincidePeriodo(momento, filtro) {
			continue
		}

		res.TotalVentas = res.TotalVentas.Add(fila.TotalGeneral)
		res.TotalIVA = res.TotalIVA.Add(fila.TotalIVA)
		res.TotalPedidos++

		serie.sumar(momento, fila.TotalGeneral)
		clientes.sumar(nombreCliente(fila), fila.TotalGeneral)
		if fila.NIT != "" && fila.NIT != "CF" {
			nits.sumar(fila.NIT, fila.TotalGeneral)
		}
		metodos.sumar(clasificacion.MetodoPago(fila.MetodoPago), fila.TotalGeneral)
		res.EstadoPedidos[clasificacion.EstadoPedido(fila.Estado)]++

		pedido, err := fila.ParsePedido()
		if err != nil {
			// El total ya contó; solo se pierde el desglose de productos y dirección.
			uc.log.Warn().Str("factura", fila.ID).Err(err).Msg("JSON de pedido malformado")
			continue
		}

		ciudades.sumar(pedido.Ciudad(), fila.TotalGeneral)
		departamentos.sumar(pedido.Departamento(), fila.TotalGeneral)
		zonas.sumar(clasificacion.ZonaDireccion(pedido.To.Address.Street), fila.TotalGeneral)

		for _, item := range pedido.Items {
			importe := item.Price.Mul(item.Qty)
			productos.sumar(item.Descripcion(), importe)
			marcas.sumar(clasificacion.MarcaVehiculo(item.Descripcion()), importe)
			categorias.sumar(clasificacion.CategoriaProducto(item.Descripcion()), importe)
		}
	}

	res.VentasNetas = res.TotalVentas.Sub(res.TotalIVA)
	if res.TotalPedidos > 0 {
		res.PromedioPorPedido = res.TotalVentas.Div(decimal.NewFromInt(int64(res.TotalPedidos))).Round(2)
	}

	res.VentasPorPeriodo = serie.puntos()
	res.VentaMinima, res.VentaMaxima, res.VentaPromedio = serie.extremos()
	res.Tendencia = entity.TendenciaDeSerie(serie.valores())

	res.TopClientes = clientes.top(topClientes)
	res.TopNITs = nits.top(topClientes)
	res.MetodosPago = metodos.top(topClientes)
	res.TopProductos = productos.top(topProductos)
	res.TopMarcas = marcas.top(topClientes)
	res.Categorias = categorias.top(topClientes)
	res.VentasPorCiudad = ciudades.top(topClientes)
	res.VentasPorDepartamento = departamentos.top(topClientes)
	res.VentasPorZona = zonas.top(topClientes)

	if incluirComparacion {
		res.Comparacion = uc.comparar(filas, filtro, res)
	}
	return res
}

// comparar corre la pasada liviana sobre la ventana anterior (solo totales,
// sin desgloses) y arma los deltas porcentuales.
func (uc *UseCase) comparar(filas []entity.FilaFactura, filtro entity.FiltroPeriodo, actual *dto.ResumenVentasDTO) *dto.ComparacionDTO {
	anterior := filtro.Anterior()

	var ventas, iva decimal.Decimal
	pedidos := 0
	for _, fila := range filas {
		momento, ok := fechas.Parse(fila.FechaRaw)
		if !ok || !fechas.CoincidePeriodo(momento, anterior) {
			continue
		}
		ventas = ventas.Add(fila.TotalGeneral)
		iva = iva.Add(fila.TotalIVA)
		pedidos++
	}

	var promedioAnterior decimal.Decimal
	if pedidos > 0 {
		promedioAnterior = ventas.Div(decimal.NewFromInt(int64(pedidos)))
	}

	return &dto.ComparacionDTO{
		PeriodoAnterior:   anterior.Etiqueta(),
		VentasAnteriores:  ventas,
		PedidosAnteriores: pedidos,
		IVAAnterior:       iva,
		CambioVentas:      entity.PorcentajeCambio(actual.TotalVentas, ventas),
		CambioPedidos: entity.PorcentajeCambio(
			decimal.NewFromInt(int64(actual.TotalPedidos)),
			decimal.NewFromInt(int64(pedidos)),
		),
		CambioPromedio: entity.PorcentajeCambio(actual.PromedioPorPedido, promedioAnterior),
	}
}

func nombreCliente(f entity.FilaFactura) string {
	if f.Cliente != "" {
		return f.Cliente
	}
	return "Consumidor Final"
}

// ── acumulador genérico entidad → (cantidad, total) ──────────────────────────

type cuenta struct {
	cantidad int
	total    decimal.Decimal
}

type acumulador struct {
	cuentas map[string]*cuenta
}

func nuevoAcumulador() *acumulador {
	return &acumulador{cuentas: map[string]*cuenta{}}
}

func (a *acumulador) sumar(clave string, monto decimal.Decimal) {
	c, ok := a.cuentas[clave]
	if !ok {
		c = &cuenta{}
		a.cuentas[clave] = c
	}
	c.cantidad++
	c.total = c.total.Add(monto)
}

// top devuelve los n mayores por total (desempate por nombre para que el
// orden sea determinista).
func (a *acumulador) top(n int) []dto.RankingItem {
	items := make([]dto.RankingItem, 0, len(a.cuentas))
	for nombre, c := range a.cuentas {
		items = append(items, dto.RankingItem{Nombre: nombre, Cantidad: c.cantidad, Total: c.total.Round(2)})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Total.Equal(items[j].Total) {
			return items[i].Total.GreaterThan(items[j].Total)
		}
		return items[i].Nombre < items[j].Nombre
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}
