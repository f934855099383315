package entity

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/domain"
)

// Posiciones de columna en la hoja REGISTRO (A..P).
const (
	colID          = 0  // A
	colPedidoJSON  = 1  // B
	colTotal       = 2  // C
	colIVA         = 3  // D
	colNIT         = 4  // E
	colCliente     = 5  // F
	colFecha       = 9  // J
	colEstado      = 10 // K
	colMetodoPago  = 14 // O
	minColsFactura = colFecha + 1
)

// Valores de respaldo cuando el JSON embebido no trae el dato.
const (
	SinCiudad       = "Sin Ciudad"
	SinDepartamento = "Sin Departamento"
	SinProducto     = "Producto sin nombre"
)

// FilaFactura registro FEL ya tipado, validado en la frontera de ingestión.
// El aggregator nunca vuelve a indexar posiciones: opera sobre campos con nombre.
type FilaFactura struct {
	ID          string
	PedidoRaw   string // JSON embebido en la celda B, puede estar vacío o malformado
	TotalGeneral decimal.Decimal
	TotalIVA    decimal.Decimal
	NIT         string
	Cliente     string
	FechaRaw    string // se interpreta con fechas.Parse en la agregación
	Estado      string
	MetodoPago  string
}

// FilaFacturaDesdeRaw convierte una fila posicional de Sheets en FilaFactura.
// Filas sin las columnas mínimas o sin fecha se rechazan (se ponen en cuarentena
// en la capa de ingestión, no producen ceros silenciosos). Los totales que no
// parsean quedan en 0, como hace la hoja original.
func FilaFacturaDesdeRaw(raw []string) (FilaFactura, error) {
	if len(raw) < minColsFactura {
		return FilaFactura{}, fmt.Errorf("%w: %d columnas, se esperaban al menos %d",
			domain.ErrFilaInvalida, len(raw), minColsFactura)
	}
	if strings.TrimSpace(raw[colFecha]) == "" {
		return FilaFactura{}, fmt.Errorf("%w: fecha vacía", domain.ErrFilaInvalida)
	}

	total, _ := LimpiarMonto(raw[colTotal])
	iva, _ := LimpiarMonto(raw[colIVA])

	f := FilaFactura{
		ID:           strings.TrimSpace(raw[colID]),
		PedidoRaw:    raw[colPedidoJSON],
		TotalGeneral: total,
		TotalIVA:     iva,
		NIT:          strings.TrimSpace(raw[colNIT]),
		Cliente:      strings.TrimSpace(raw[colCliente]),
		FechaRaw:     strings.TrimSpace(raw[colFecha]),
	}
	if len(raw) > colEstado {
		f.Estado = strings.TrimSpace(raw[colEstado])
	}
	if len(raw) > colMetodoPago {
		f.MetodoPago = strings.TrimSpace(raw[colMetodoPago])
	}
	return f, nil
}

// FilaPago registro de la hoja PAGOS (empresa, fecha, monto, producto JSON).
type FilaPago struct {
	Empresa     string
	FechaRaw    string
	Monto       decimal.Decimal
	ProductoRaw string // JSON {"nombre": ...}, puede faltar
}

// FilaPagoDesdeRaw convierte una fila posicional de PAGOS. El monto llega con
// prefijo de moneda y separadores de miles ("Q1,500.50") y se limpia aquí.
func FilaPagoDesdeRaw(raw []string) (FilaPago, error) {
	if len(raw) < 3 {
		return FilaPago{}, fmt.Errorf("%w: %d columnas, se esperaban al menos 3",
			domain.ErrFilaInvalida, len(raw))
	}
	if strings.TrimSpace(raw[1]) == "" {
		return FilaPago{}, fmt.Errorf("%w: fecha vacía", domain.ErrFilaInvalida)
	}

	monto, _ := LimpiarMonto(raw[2])
	p := FilaPago{
		Empresa:  strings.TrimSpace(raw[0]),
		FechaRaw: strings.TrimSpace(raw[1]),
		Monto:    monto,
	}
	if len(raw) > 3 {
		p.ProductoRaw = raw[3]
	}
	return p, nil
}

// NombreProducto extrae el campo "nombre" del JSON de producto; si el JSON
// falta o está malformado devuelve el valor de respaldo.
func (p FilaPago) NombreProducto() string {
	if strings.TrimSpace(p.ProductoRaw) == "" {
		return SinProducto
	}
	var det struct {
		Nombre string `json:"nombre"`
	}
	if err := json.Unmarshal([]byte(p.ProductoRaw), &det); err != nil || det.Nombre == "" {
		return SinProducto
	}
	return det.Nombre
}

// PedidoJSON estructura del pedido embebido en la celda B de REGISTRO.
// Todos los campos son opcionales; la ausencia degrada a los valores Sin*.
type PedidoJSON struct {
	To struct {
		Address struct {
			City   string `json:"city"`
			State  string `json:"state"`
			Street string `json:"street"`
		} `json:"address"`
	} `json:"to"`
	Items []ItemPedido `json:"items"`
}

// ItemPedido línea de producto dentro del pedido embebido.
type ItemPedido struct {
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Price       decimal.Decimal `json:"price"`
}

// ParsePedido interpreta el JSON embebido de la fila. Devuelve error con el
// JSON malformado; el llamador decide registrar y seguir (la fila sigue
// contando en los totales, solo pierde el desglose de productos/dirección).
func (f FilaFactura) ParsePedido() (PedidoJSON, error) {
	var p PedidoJSON
	s := strings.TrimSpace(f.PedidoRaw)
	if s == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return PedidoJSON{}, fmt.Errorf("pedido embebido: %w", err)
	}
	return p, nil
}

// Ciudad devuelve la ciudad del pedido o el respaldo.
func (p PedidoJSON) Ciudad() string {
	if c := strings.TrimSpace(p.To.Address.City); c != "" {
		return c
	}
	return SinCiudad
}

// Departamento devuelve el departamento (state) del pedido o el respaldo.
func (p PedidoJSON) Departamento() string {
	if d := strings.TrimSpace(p.To.Address.State); d != "" {
		return d
	}
	return SinDepartamento
}

// Descripcion devuelve la descripción del ítem o el respaldo.
func (i ItemPedido) Descripcion() string {
	if d := strings.TrimSpace(i.Description); d != "" {
		return d
	}
	return SinProducto
}

var reMonto = regexp.MustCompile(`[^0-9.\-]`)

// LimpiarMonto convierte un string de moneda ("Q1,500.50", "$ 200") en decimal.
// Quita prefijos y separadores de miles. Devuelve (0, false) si no queda un
// número válido; los montos ilegibles cuentan como cero, nunca detienen la
// agregación.
func LimpiarMonto(s string) (decimal.Decimal, bool) {
	limpio := reMonto.ReplaceAllString(strings.TrimSpace(s), "")
	if limpio == "" || limpio == "-" || limpio == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(limpio)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
