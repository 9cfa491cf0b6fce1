package document

import (
	"github.com/shopspring/decimal"

	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

// DisplayItem is a line prepared for rendering: money rounded half-up to 2 places.
// The rounding is display-only; validation and hashing always use the raw values.
type DisplayItem struct {
	Number   int
	Name     string
	Quantity int
	Rate     string
	Amount   string
}

// DisplayItems maps the invoice lines to their rendered form.
func DisplayItems(inv *entity.Invoice) []DisplayItem {
	out := make([]DisplayItem, 0, len(inv.Items))
	for i, it := range inv.Items {
		d := DisplayItem{Number: i + 1, Name: it.Name}
		if it.Quantity != nil {
			d.Quantity = *it.Quantity
		}
		d.Rate = money(it.Rate)
		d.Amount = money(it.Amount)
		out = append(out, d)
	}
	return out
}

// DisplayTotal sums the line amounts, rounded half-up to 2 places.
func DisplayTotal(inv *entity.Invoice) string {
	total := decimal.Zero
	for _, it := range inv.Items {
		if it.Amount != nil {
			total = total.Add(*it.Amount)
		}
	}
	return total.StringFixed(2)
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return decimal.Zero.StringFixed(2)
	}
	// StringFixed rounds half away from zero, which is half-up for positive amounts.
	return d.StringFixed(2)
}
