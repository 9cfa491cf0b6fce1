package fieldlabel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sushnag22/pdf-generator/internal/domain/fieldlabel"
)

func TestFormat(t *testing.T) {
	f := fieldlabel.New()

	cases := []struct {
		in, want string
	}{
		{"sellerName", "Seller Name"},
		{"sellerGstin", "Seller GSTIN"},
		{"buyerAddress", "Buyer Address"},
		{"gstin", "GSTIN"},
		{"GSTIN", "GSTIN"},
		{"items", "Items"},
		{"quantity", "Quantity"},
		{"seller name", "Seller Name"},
		{"e-mail", "E-mail"},
		{"3rd", "3rd"},
		{"sellerNAME", "Seller NAME"},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Format(tc.in))
		})
	}
}

func TestFormat_IdempotentOnLabels(t *testing.T) {
	f := fieldlabel.New()
	for _, field := range []string{"sellerName", "sellerGstin", "buyerGstin", "gstin"} {
		once := f.Format(field)
		assert.Equal(t, once, f.Format(once), "formatting a label again must not change it")
	}
}

func TestFormat_CustomAbbreviations(t *testing.T) {
	f := fieldlabel.New("gstin", "pan")
	assert.Equal(t, "Buyer PAN", f.Format("buyerPan"))
	assert.Equal(t, "Seller GSTIN", f.Format("sellerGstin"))
}

func TestMandatoryMessage(t *testing.T) {
	f := fieldlabel.New()

	assert.Equal(t, "No fields are mandatory", f.MandatoryMessage(nil))
	assert.Equal(t, "No fields are mandatory", f.MandatoryMessage([]string{}))
	assert.Equal(t, "'Seller Name' is mandatory", f.MandatoryMessage([]string{"sellerName"}))
	assert.Equal(t, "'Seller Name', and 'Seller GSTIN' are mandatory",
		f.MandatoryMessage([]string{"sellerName", "sellerGstin"}))
	assert.Equal(t, "'Seller Name', 'Buyer Name', and 'Items' are mandatory",
		f.MandatoryMessage([]string{"sellerName", "buyerName", "items"}))
}

func TestMandatoryMessage_DeduplicatesKeepingFirstOccurrence(t *testing.T) {
	f := fieldlabel.New()

	msg := f.MandatoryMessage([]string{"amount", "rate", "amount", "rate"})
	assert.Equal(t, "'Amount', and 'Rate' are mandatory", msg)

	msg = f.MandatoryMessage([]string{"sellerName", "sellerName"})
	assert.Equal(t, "'Seller Name' is mandatory", msg)
}
