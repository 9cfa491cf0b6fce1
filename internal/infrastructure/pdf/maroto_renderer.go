// Package pdf renders invoices natively with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: INVOICE title                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: name / address / GSTIN │ BUYER: name / address / GSTIN │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Item | Quantity | Rate | Amount                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 236, Blue: 243}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implements document.Renderer with Maroto v2. It needs no external
// process and is safe for concurrent use.
type MarotoRenderer struct{}

// NewMarotoRenderer builds the renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render lays out the invoice and returns the PDF bytes.
func (r *MarotoRenderer) Render(ctx context.Context, in document.RenderInput) ([]byte, error) {
	if in.Invoice == nil {
		return nil, fmt.Errorf("pdf: %w: nil invoice", domain.ErrRender)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w: %w", domain.ErrRender, err)
	}
	inv := in.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice", true).
		WithAuthor(inv.SellerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(document.DisplayItems(inv), in.QuantityUnit, in.CurrencySymbol)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(document.DisplayTotal(inv), in.CurrencySymbol))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w: %w", domain.ErrRender, err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(14).Add(
		col.New(12).Add(text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 3,
		})),
	)
}

// partiesRow: seller (left) and buyer (right).
func partiesRow(inv *entity.Invoice) core.Row {
	party := func(title, name, address, gstin string) core.Col {
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(address, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("GSTIN: "+gstin, props.Text{Size: 8, Top: 18, Color: colorGray}),
		)
	}
	return row.New(26).Add(
		party("SELLER", inv.SellerName, inv.SellerAddress, inv.SellerGstin),
		party("BUYER", inv.BuyerName, inv.BuyerAddress, inv.BuyerGstin),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 5, align.Left),
		h("Quantity", 2, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableDetailRows(items []document.DisplayItem, unit, currency string) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Number), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(quantity(it.Quantity, unit), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(currency, it.Rate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(currency, it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(total, currency string) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(money(currency, total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func quantity(q int, unit string) string {
	if unit == "" {
		return strconv.Itoa(q)
	}
	return strconv.Itoa(q) + " " + unit
}

func money(currency, amount string) string {
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

var _ document.Renderer = (*MarotoRenderer)(nil)
