package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Estados financieros de Shopify que cuentan como venta.
const (
	EstadoPagado        = "PAID"
	EstadoPagoParcial   = "PARTIALLY_PAID"
	EstadoPendientePago = "PENDING"
)

// OrdenShopify pedido ya paginado y traído por el cliente GraphQL.
// La agregación opera sobre esta forma, nunca sobre el payload crudo.
type OrdenShopify struct {
	ID               string
	Nombre           string // ej. "#1042"
	CreadoEnRaw      string // ISO-8601 de la Admin API
	EstadoFinanciero string
	Total            decimal.Decimal
	Descuentos       decimal.Decimal
	Reembolsos       decimal.Decimal
	Cliente          string
	AppNombre        string   // app que originó el pedido
	CanalNombre      string   // channel definition, si viene
	Tags             []string // "POS" se detecta por tag
	Items            []ItemOrdenShopify
}

// ItemOrdenShopify línea de producto de un pedido Shopify.
type ItemOrdenShopify struct {
	Titulo   string
	Cantidad int
	Precio   decimal.Decimal
}

// CuentaComoVenta indica si el estado financiero del pedido suma al agregado
// (PAID, PARTIALLY_PAID o PENDING; el resto se excluye).
func (o OrdenShopify) CuentaComoVenta() bool {
	switch strings.ToUpper(o.EstadoFinanciero) {
	case EstadoPagado, EstadoPagoParcial, EstadoPendientePago:
		return true
	default:
		return false
	}
}

// VentaNeta devuelve total - descuentos - reembolsos.
func (o OrdenShopify) VentaNeta() decimal.Decimal {
	return o.Total.Sub(o.Descuentos).Sub(o.Reembolsos)
}

// Canal clasifica el origen del pedido: tag POS primero, luego el nombre del
// canal, luego la app; "Online Store" como respaldo.
func (o OrdenShopify) Canal() string {
	for _, tag := range o.Tags {
		if strings.EqualFold(strings.TrimSpace(tag), "POS") {
			return "POS"
		}
	}
	if c := strings.TrimSpace(o.CanalNombre); c != "" {
		return c
	}
	if a := strings.TrimSpace(o.AppNombre); a != "" {
		return a
	}
	return "Online Store"
}

// NombreCliente devuelve el cliente o el respaldo para pedidos sin cliente.
func (o OrdenShopify) NombreCliente() string {
	if c := strings.TrimSpace(o.Cliente); c != "" {
		return c
	}
	return "Cliente sin registrar"
}
