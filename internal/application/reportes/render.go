package reportes

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
)

// impresora formatea montos según la convención guatemalteca: punto decimal
// y coma de miles (1,234.50).
var impresora = message.NewPrinter(language.MustParse("es-GT"))

// quetzales formatea un decimal como moneda local.
func quetzales(d decimal.Decimal) string {
	f, _ := d.Float64()
	return impresora.Sprintf("Q%.2f", f)
}

const plantillaHTML = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Reporte {{.Ventas.Periodo}}</title></head>
<body style="font-family: Arial, sans-serif; color: #202223; max-width: 680px; margin: 0 auto;">
  <h1 style="color: #008060;">Reporte de ventas — {{.Ventas.Periodo}}</h1>

  <h2>Resumen</h2>
  <table cellpadding="6" style="border-collapse: collapse; width: 100%;">
    <tr><td>Ventas totales</td><td align="right"><b>{{.TotalVentas}}</b></td></tr>
    <tr><td>IVA</td><td align="right">{{.TotalIVA}}</td></tr>
    <tr><td>Ventas netas</td><td align="right">{{.VentasNetas}}</td></tr>
    <tr><td>Pedidos</td><td align="right">{{.Ventas.TotalPedidos}}</td></tr>
    <tr><td>Ticket promedio</td><td align="right">{{.Promedio}}</td></tr>
    {{if .Ventas.Comparacion}}
    <tr><td>vs {{.Ventas.Comparacion.PeriodoAnterior}}</td>
        <td align="right">{{.Ventas.Comparacion.CambioVentas}}%</td></tr>
    {{end}}
  </table>

  <h2>Finanzas</h2>
  <table cellpadding="6" style="border-collapse: collapse; width: 100%;">
    <tr><td>Ingresos</td><td align="right">{{.Ingresos}}</td></tr>
    <tr><td>Egresos</td><td align="right">{{.Egresos}}</td></tr>
    <tr><td>Ganancia</td><td align="right"><b>{{.Ganancia}}</b></td></tr>
    <tr><td>Margen</td><td align="right">{{.Finanzas.Margen}}%</td></tr>
  </table>

  <h2>Top productos</h2>
  <ol>
    {{range .TopProductos}}<li>{{.Nombre}} — {{.Monto}}</li>{{end}}
  </ol>

  <h2>Top clientes</h2>
  <ol>
    {{range .TopClientes}}<li>{{.Nombre}} — {{.Monto}}</li>{{end}}
  </ol>
</body>
</html>`

var tmplHTML = template.Must(template.New("reporte").Parse(plantillaHTML))

type lineaTop struct {
	Nombre string
	Monto  string
}

type datosReporte struct {
	Ventas       *dto.ResumenVentasDTO
	Finanzas     *dto.ResumenFinancieroDTO
	TotalVentas  string
	TotalIVA     string
	VentasNetas  string
	Promedio     string
	Ingresos     string
	Egresos      string
	Ganancia     string
	TopProductos []lineaTop
	TopClientes  []lineaTop
}

func armarDatos(v *dto.ResumenVentasDTO, f *dto.ResumenFinancieroDTO) datosReporte {
	d := datosReporte{
		Ventas:      v,
		Finanzas:    f,
		TotalVentas: quetzales(v.TotalVentas),
		TotalIVA:    quetzales(v.TotalIVA),
		VentasNetas: quetzales(v.VentasNetas),
		Promedio:    quetzales(v.PromedioPorPedido),
		Ingresos:    quetzales(f.TotalIngresos),
		Egresos:     quetzales(f.TotalEgresos),
		Ganancia:    quetzales(f.Ganancia),
	}
	for i, p := range v.TopProductos {
		if i == 5 {
			break
		}
		d.TopProductos = append(d.TopProductos, lineaTop{Nombre: p.Nombre, Monto: quetzales(p.Total)})
	}
	for i, c := range v.TopClientes {
		if i == 5 {
			break
		}
		d.TopClientes = append(d.TopClientes, lineaTop{Nombre: c.Nombre, Monto: quetzales(c.Total)})
	}
	return d
}

// renderHTML arma el cuerpo de correo del reporte.
func renderHTML(v *dto.ResumenVentasDTO, f *dto.ResumenFinancieroDTO) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmplHTML.Execute(&buf, armarDatos(v, f)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTexto arma el mensaje corto para WhatsApp (negritas con asteriscos).
func renderTexto(v *dto.ResumenVentasDTO, f *dto.ResumenFinancieroDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Reporte %s*\n\n", v.Periodo)
	fmt.Fprintf(&b, "Ventas: *%s* (%d pedidos)\n", quetzales(v.TotalVentas), v.TotalPedidos)
	fmt.Fprintf(&b, "IVA: %s | Netas: %s\n", quetzales(v.TotalIVA), quetzales(v.VentasNetas))
	fmt.Fprintf(&b, "Ticket promedio: %s\n", quetzales(v.PromedioPorPedido))
	if v.Comparacion != nil {
		fmt.Fprintf(&b, "vs %s: %s%%\n", v.Comparacion.PeriodoAnterior, v.Comparacion.CambioVentas)
	}
	fmt.Fprintf(&b, "\nEgresos: %s\nGanancia: *%s* (margen %s%%)\n",
		quetzales(f.TotalEgresos), quetzales(f.Ganancia), f.Margen)

	if len(v.TopProductos) > 0 {
		b.WriteString("\nTop productos:\n")
		for i, p := range v.TopProductos {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "%d. %s — %s\n", i+1, p.Nombre, quetzales(p.Total))
		}
	}
	return b.String()
}
