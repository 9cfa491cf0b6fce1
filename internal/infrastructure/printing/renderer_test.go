package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/entity"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

func sampleInput() document.RenderInput {
	q := 2
	rate := decimal.RequireFromString("10.005")
	amount := decimal.RequireFromString("20.01")
	return document.RenderInput{
		Invoice: &entity.Invoice{
			SellerName:    "Seller <Company>",
			SellerAddress: "12 Market Road, Pune",
			SellerGstin:   "27ABCDE1234F1Z5",
			BuyerName:     "Buyer Company",
			BuyerAddress:  "4 Lake View, Chennai",
			BuyerGstin:    "33ABCDE1234F1Z5",
			Items: []entity.LineItem{
				{Name: "Widget", Quantity: &q, Rate: &rate, Amount: &amount},
			},
		},
		QuantityUnit:   "Nos",
		CurrencySymbol: "INR",
	}
}

func TestTemplateEngine_RenderInvoice(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.RenderInvoice(NewInvoiceView(sampleInput()))
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Seller &lt;Company&gt;", "values must be escaped")
	assert.Contains(t, html, "GSTIN: 27ABCDE1234F1Z5")
	assert.Contains(t, html, "2 Nos")
	assert.Contains(t, html, "INR 10.01")
	assert.Contains(t, html, "INR 20.01")
}

type fakeConverter struct {
	html string
	err  error
}

func (f *fakeConverter) Convert(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestHTMLRenderer_Render(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	conv := &fakeConverter{}

	data, err := NewHTMLRenderer(engine, conv).Render(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
	assert.Contains(t, conv.html, "Buyer Company")
}

func TestHTMLRenderer_Errors(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	_, err = NewHTMLRenderer(engine, &fakeConverter{}).Render(context.Background(), document.RenderInput{})
	assert.ErrorIs(t, err, domain.ErrRender)

	cause := errors.New("browser crashed")
	conv := &fakeConverter{err: NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", cause)}
	_, err = NewHTMLRenderer(engine, conv).Render(context.Background(), sampleInput())
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.ErrorIs(t, err, cause)

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeRenderFailed, re.Code)
}

func TestChromedpConverter_RejectsEmptyHTML(t *testing.T) {
	c := NewChromedpConverter(ChromedpConfig{RemoteURL: "ws://127.0.0.1:1"}, logger.Nop())
	defer c.Close()

	_, err := c.Convert(context.Background(), "  ")
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeInvalidHTML, re.Code)
}
