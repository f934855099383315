// Package clasificacion agrupa las tablas de clasificación por palabra clave
// del dashboard: categoría de producto, marca de vehículo, método de pago,
// categoría de gasto, zona de dirección y estado de pedido.
//
// Todas las tablas son listas ordenadas de pares (patrón, etiqueta) evaluadas
// con coincidencia de substring case-insensitive y gana el primer calce. Son
// datos, no código: se pueden probar y extender de forma independiente.
package clasificacion

import (
	"regexp"
	"strings"
	"unicode"
)

// Regla par (patrón, etiqueta) de una tabla de clasificación.
type Regla struct {
	Patron   string
	Etiqueta string
}

// clasificar busca el primer patrón contenido en texto (case-insensitive).
func clasificar(texto string, reglas []Regla, def string) string {
	t := strings.ToLower(texto)
	for _, r := range reglas {
		if strings.Contains(t, r.Patron) {
			return r.Etiqueta
		}
	}
	return def
}

// ── Categoría de producto (repuestos) ─────────────────────────────────────────

var reglasCategoria = []Regla{
	{"freno", "Frenos"},
	{"pastilla", "Frenos"},
	{"disco", "Frenos"},
	{"filtro", "Filtros"},
	{"aceite", "Lubricantes"},
	{"lubricante", "Lubricantes"},
	{"bujia", "Encendido"},
	{"bujía", "Encendido"},
	{"bobina", "Encendido"},
	{"amortiguador", "Suspensión"},
	{"suspension", "Suspensión"},
	{"suspensión", "Suspensión"},
	{"bateria", "Eléctrico"},
	{"batería", "Eléctrico"},
	{"alternador", "Eléctrico"},
	{"llanta", "Llantas"},
	{"neumatico", "Llantas"},
	{"neumático", "Llantas"},
	{"bomba", "Bombas"},
	{"radiador", "Enfriamiento"},
	{"refrigerante", "Enfriamiento"},
	{"clutch", "Transmisión"},
	{"embrague", "Transmisión"},
	{"faja", "Fajas"},
	{"correa", "Fajas"},
}

// CategoriaProducto clasifica la descripción de un producto; "Otros" si
// ningún patrón calza.
func CategoriaProducto(descripcion string) string {
	return clasificar(descripcion, reglasCategoria, "Otros")
}

// ── Marca de vehículo ─────────────────────────────────────────────────────────

// sinonimosMarca se evalúan antes que la lista de marcas (CHEVY → CHEVROLET).
var sinonimosMarca = []Regla{
	{"chevy", "CHEVROLET"},
	{"mercedes benz", "MERCEDES"},
	{"mercedes-benz", "MERCEDES"},
	{"vw", "VOLKSWAGEN"},
}

var marcasConocidas = []string{
	"TOYOTA", "HONDA", "NISSAN", "MAZDA", "MITSUBISHI", "CHEVROLET",
	"FORD", "HYUNDAI", "KIA", "SUZUKI", "ISUZU", "VOLKSWAGEN",
	"BMW", "MERCEDES", "AUDI", "JEEP", "SUBARU",
}

// MarcaVehiculo busca un token de marca conocida dentro de la descripción
// (mayúsculas, con plegado de sinónimos). "Genérico" si no aparece ninguna.
func MarcaVehiculo(descripcion string) string {
	t := strings.ToLower(descripcion)
	for _, s := range sinonimosMarca {
		if strings.Contains(t, s.Patron) {
			return s.Etiqueta
		}
	}
	mayus := strings.ToUpper(descripcion)
	for _, marca := range marcasConocidas {
		if strings.Contains(mayus, marca) {
			return marca
		}
	}
	return "Genérico"
}

// ── Método de pago ────────────────────────────────────────────────────────────

var reglasMetodoPago = []Regla{
	{"efectivo", "Efectivo"},
	{"cash", "Efectivo"},
	{"contado", "Efectivo"},
	{"tarjeta", "Tarjeta"},
	{"visa", "Tarjeta"},
	{"master", "Tarjeta"},
	{"credomatic", "Tarjeta"},
	{"transferencia", "Transferencia"},
	{"deposito", "Transferencia"},
	{"depósito", "Transferencia"},
	{"banco", "Transferencia"},
	{"cheque", "Cheque"},
	{"credito", "Crédito"},
	{"crédito", "Crédito"},
}

// MetodoPago normaliza el texto libre del método de pago a una etiqueta
// canónica. Sin texto devuelve "No Especificado"; texto sin calce pasa con la
// primera letra en mayúscula.
func MetodoPago(texto string) string {
	t := strings.TrimSpace(texto)
	if t == "" {
		return "No Especificado"
	}
	if m := clasificar(t, reglasMetodoPago, ""); m != "" {
		return m
	}
	return capitalizar(t)
}

func capitalizar(s string) string {
	runas := []rune(strings.ToLower(s))
	runas[0] = unicode.ToUpper(runas[0])
	return string(runas)
}

// ── Categoría de gasto ────────────────────────────────────────────────────────

var reglasGasto = []Regla{
	{"google ads", "Marketing"},
	{"google", "Marketing"},
	{"facebook", "Marketing"},
	{"meta", "Marketing"},
	{"instagram", "Marketing"},
	{"publicidad", "Marketing"},
	{"anuncio", "Marketing"},
	{"software", "Tecnología"},
	{"hosting", "Tecnología"},
	{"dominio", "Tecnología"},
	{"internet", "Tecnología"},
	{"shopify", "Tecnología"},
	{"planilla", "Personal"},
	{"salario", "Personal"},
	{"sueldo", "Personal"},
	{"bonificacion", "Personal"},
	{"igss", "Personal"},
	{"papeleria", "Oficina"},
	{"papelería", "Oficina"},
	{"oficina", "Oficina"},
	{"renta", "Oficina"},
	{"alquiler", "Oficina"},
	{"repuesto", "Inventario"},
	{"mercaderia", "Inventario"},
	{"mercadería", "Inventario"},
	{"importacion", "Inventario"},
	{"importación", "Inventario"},
	{"proveedor", "Inventario"},
	{"flete", "Transporte"},
	{"envio", "Transporte"},
	{"envío", "Transporte"},
	{"combustible", "Transporte"},
	{"gasolina", "Transporte"},
	{"sat", "Impuestos"},
	{"impuesto", "Impuestos"},
	{"iva", "Impuestos"},
	{"isr", "Impuestos"},
	{"contador", "Servicios Profesionales"},
	{"abogado", "Servicios Profesionales"},
	{"consultor", "Servicios Profesionales"},
	{"auditor", "Servicios Profesionales"},
}

// CategoriaGasto clasifica un gasto por empresa + producto; "Otros" por defecto.
func CategoriaGasto(texto string) string {
	return clasificar(texto, reglasGasto, "Otros")
}

// ── Zona de dirección ─────────────────────────────────────────────────────────

var reZona = regexp.MustCompile(`(?i)zona\s*(\d{1,2})`)

// ZonaDireccion extrae la zona capitalina de un string de calle: "zona 10" →
// "Zona 10". Calle vacía devuelve "Sin Zona"; calle sin patrón, "Otras Zonas".
func ZonaDireccion(calle string) string {
	if strings.TrimSpace(calle) == "" {
		return "Sin Zona"
	}
	m := reZona.FindStringSubmatch(calle)
	if m == nil {
		return "Otras Zonas"
	}
	return "Zona " + m[1]
}

// ── Estado de pedido ──────────────────────────────────────────────────────────

var reglasEstado = []Regla{
	{"pagad", "pagado"},
	{"paid", "pagado"},
	{"pendiente", "pendiente"},
	{"pending", "pendiente"},
	{"anulad", "anulado"},
	{"cancelad", "anulado"},
	{"cancelled", "anulado"},
}

// EstadoPedido normaliza el estado libre de la columna K a
// pagado/pendiente/anulado/otros.
func EstadoPedido(texto string) string {
	if strings.TrimSpace(texto) == "" {
		return "otros"
	}
	return clasificar(texto, reglasEstado, "otros")
}
