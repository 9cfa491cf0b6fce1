package printing

import (
	"context"

	"github.com/sushnag22/pdf-generator/internal/application/document"
)

// Converter turns a complete HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// HTMLRenderer implements document.Renderer: invoice -> HTML template -> PDF.
type HTMLRenderer struct {
	engine    *TemplateEngine
	converter Converter
}

// NewHTMLRenderer combines a template engine with a converter.
func NewHTMLRenderer(engine *TemplateEngine, converter Converter) *HTMLRenderer {
	return &HTMLRenderer{engine: engine, converter: converter}
}

// Render fills the invoice template and prints it.
func (r *HTMLRenderer) Render(ctx context.Context, in document.RenderInput) ([]byte, error) {
	if in.Invoice == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "invoice is nil", nil)
	}
	html, err := r.engine.RenderInvoice(NewInvoiceView(in))
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, html)
}

var (
	_ document.Renderer = (*HTMLRenderer)(nil)
	_ Converter         = (*ChromedpConverter)(nil)
)
