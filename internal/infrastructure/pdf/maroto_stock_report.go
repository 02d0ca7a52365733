// Package pdf implementa la representación PDF del listado de saldos de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                  │  Fecha de generación      │
//	│  FILTROS: Sucursal / Bodega / Solo bajo mínimo               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Mínimo | Saldo | Estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos / bajo mínimo                    │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appdto "github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ inventory.StockReportGenerator = (*MarotoStockReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStockReportGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type MarotoStockReportGenerator struct {
	printer *message.Printer
}

// NewMarotoStockReportGenerator construye el generador. Las cantidades se formatean en español.
func NewMarotoStockReportGenerator() *MarotoStockReportGenerator {
	return &MarotoStockReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReport(_ context.Context, report inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(filtersRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de stock: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report inventory.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func filtersRow(report inventory.StockReport) core.Row {
	onlyLow := "no"
	if report.LowStock {
		onlyLow = "sí"
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Sucursal: %s   |   Bodega: %s   |   Solo bajo mínimo: %s",
				nonEmpty(report.BranchID, "todas"),
				nonEmpty(report.WarehouseID, "todas"),
				onlyLow,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Mínimo", 2, align.Right),
		h("Saldo", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableRows una fila por producto. El saldo ya viene con piso en cero.
func (g *MarotoStockReportGenerator) tableRows(items []appdto.StockLevelResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		status, color := "OK", colorGray
		if it.LowStock {
			status, color = "BAJO", colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.formatQty(it.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.formatQty(it.CurrentQuantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(status, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: color})),
		))
	}
	return result
}

func summaryRow(items []appdto.StockLevelResponse) core.Row {
	low := 0
	for _, it := range items {
		if it.LowStock {
			low++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Productos: %d   |   Bajo mínimo: %d", len(items), low), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQty formatea una cantidad con separadores del locale, hasta 2 decimales.
// Ej: 1234.5 → "1.234,5"
func (g *MarotoStockReportGenerator) formatQty(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
