package printing

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"

	"github.com/sushnag22/pdf-generator/internal/application/document"
)

//go:embed templates/*.html
var templateFS embed.FS

const invoiceTemplate = "invoice.html"

// InvoiceView is the data bound to the invoice template.
type InvoiceView struct {
	SellerName     string
	SellerAddress  string
	SellerGstin    string
	BuyerName      string
	BuyerAddress   string
	BuyerGstin     string
	Items          []document.DisplayItem
	Total          string
	QuantityUnit   string
	CurrencySymbol string
}

// NewInvoiceView prepares the template data from a render input.
func NewInvoiceView(in document.RenderInput) InvoiceView {
	inv := in.Invoice
	return InvoiceView{
		SellerName:     inv.SellerName,
		SellerAddress:  inv.SellerAddress,
		SellerGstin:    inv.SellerGstin,
		BuyerName:      inv.BuyerName,
		BuyerAddress:   inv.BuyerAddress,
		BuyerGstin:     inv.BuyerGstin,
		Items:          document.DisplayItems(inv),
		Total:          document.DisplayTotal(inv),
		QuantityUnit:   in.QuantityUnit,
		CurrencySymbol: in.CurrencySymbol,
	}
}

// TemplateEngine renders the embedded invoice template. Templates are parsed once;
// html/template is safe for concurrent execution.
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the embedded templates.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"money": func(currency, amount string) string {
			if currency == "" {
				return amount
			}
			return currency + " " + amount
		},
		"quantity": func(q int, unit string) string {
			if unit == "" {
				return strconv.Itoa(q)
			}
			return strconv.Itoa(q) + " " + unit
		},
	}
	tmpl, err := template.New("invoice").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse templates", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// RenderInvoice executes the invoice template. Field values are HTML-escaped.
func (e *TemplateEngine) RenderInvoice(view InvoiceView) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, invoiceTemplate, view); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}
