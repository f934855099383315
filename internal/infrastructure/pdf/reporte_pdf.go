// Package pdf implementa la versión exportable del reporte mensual del
// dashboard usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Ventas FEL  │  Período                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ventas / IVA / Netas / Pedidos / Ticket promedio     │
//	│  FINANZAS: Ingresos / Egresos / Ganancia / Margen           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Top productos (pos | producto | unidades | total)   │
//	│  TABLA: Top clientes                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/repuestosgt/dashboard-fel/internal/application/dto"
)

var (
	colorPrimario = &props.Color{Red: 0, Green: 128, Blue: 96}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// GeneradorReporte implementa reportes.GeneradorPDF con Maroto v2.
type GeneradorReporte struct{}

// NewGeneradorReporte construye el generador.
func NewGeneradorReporte() *GeneradorReporte { return &GeneradorReporte{} }

// GenerarReporte genera el PDF del reporte y devuelve sus bytes.
func (g *GeneradorReporte) GenerarReporte(
	_ context.Context,
	ventas *dto.ResumenVentasDTO,
	fin *dto.ResumenFinancieroDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ventas FEL", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ventas))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(kpiRow(ventas))
	m.AddRows(finanzasRow(fin))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(tituloSeccion("TOP PRODUCTOS"))
	m.AddRows(tablaRankingHeader("Producto"))
	for _, r := range tablaRankingRows(ventas.TopProductos, 10) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(tituloSeccion("TOP CLIENTES"))
	m.AddRows(tablaRankingHeader("Cliente"))
	for _, r := range tablaRankingRows(ventas.TopClientes, 10) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(ventas *dto.ResumenVentasDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Reporte de Ventas FEL", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimario, Top: 1,
			}),
			text.New("Repuestos GT", props.Text{
				Size: 8, Top: 10, Color: colorGris,
			}),
		),
		col.New(5).Add(
			text.New(ventas.Periodo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Tendencia: "+ventas.Tendencia, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGris,
			}),
		),
	)
}

func kpiRow(ventas *dto.ResumenVentasDTO) core.Row {
	kpi := func(etq, valor string) core.Col {
		return col.New(3).Add(
			text.New(etq, props.Text{Size: 7, Color: colorGris, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		kpi("VENTAS", moneda(ventas.TotalVentas)),
		kpi("VENTAS NETAS", moneda(ventas.VentasNetas)),
		kpi("PEDIDOS", fmt.Sprintf("%d", ventas.TotalPedidos)),
		kpi("TICKET PROMEDIO", moneda(ventas.PromedioPorPedido)),
	)
}

func finanzasRow(fin *dto.ResumenFinancieroDTO) core.Row {
	kpi := func(etq, valor string) core.Col {
		return col.New(3).Add(
			text.New(etq, props.Text{Size: 7, Color: colorGris, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		kpi("INGRESOS", moneda(fin.TotalIngresos)),
		kpi("EGRESOS", moneda(fin.TotalEgresos)),
		kpi("GANANCIA", moneda(fin.Ganancia)),
		kpi("MARGEN", fin.Margen.StringFixed(2)+"%"),
	)
}

func tituloSeccion(titulo string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titulo, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimario, Top: 2}),
	))
}

func tablaRankingHeader(entidad string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("#", 1, align.Center),
		h(entidad, 7, align.Left),
		h("Veces", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tablaRankingRows(items []dto.RankingItem, max int) []core.Row {
	if len(items) > max {
		items = items[:max]
	}
	filas := make([]core.Row, 0, len(items))
	for i, item := range items {
		filas = append(filas, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(item.Nombre, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Cantidad), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(moneda(item.Total), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return filas
}

func moneda(d decimal.Decimal) string {
	return "Q" + d.StringFixed(2)
}
