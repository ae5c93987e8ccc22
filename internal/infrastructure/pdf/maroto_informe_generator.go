// Package pdf genera la versión imprimible del informe de stock usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / unidades / bajo stock                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Estado | Productos | Unidades                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/inventario-activos/internal/application/inventario"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInformeGenerator genera el PDF del informe de stock.
type MarotoInformeGenerator struct{}

// NewMarotoInformeGenerator construye el generador.
func NewMarotoInformeGenerator() *MarotoInformeGenerator { return &MarotoInformeGenerator{} }

// GenerarInformePDF genera el PDF del informe y devuelve sus bytes.
func (g *MarotoInformeGenerator) GenerarInformePDF(informe *inventario.InformeStock) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(informe))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalesRow(informe))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tablaHeaderRow())
	for _, resumen := range informe.PorEstado {
		m.AddRows(row.New(6).Add(
			col.New(6).Add(text.New(resumen.Estado.Label(), props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", resumen.Total), props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", resumen.Stock), props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(informe *inventario.InformeStock) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("INFORME DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de activos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+informe.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// totalesRow: los tres agregados globales del informe.
func totalesRow(informe *inventario.InformeStock) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		kpi("Productos", fmt.Sprintf("%d", informe.TotalProductos)),
		kpi("Unidades en stock", fmt.Sprintf("%d", informe.StockTotal)),
		kpi(fmt.Sprintf("Bajo stock (< %d)", informe.StockMinimo), fmt.Sprintf("%d", informe.ProductosBajoStock)),
	)
}

// tablaHeaderRow: cabecera del desglose por estado.
func tablaHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Estado", 6, align.Left),
		h("Productos", 3, align.Right),
		h("Unidades", 3, align.Right),
	)
}
