package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

// GenerateRequest body for POST /api/v1/pdf/generate-and-store.
// The validate tags are the field-level checks; line arithmetic is checked separately.
type GenerateRequest struct {
	SellerName    string        `json:"sellerName" validate:"required,notblank,min=3,max=50"`
	SellerAddress string        `json:"sellerAddress" validate:"required,notblank,min=3,max=100"`
	SellerGstin   string        `json:"sellerGstin" validate:"required,notblank,len=15"`
	BuyerName     string        `json:"buyerName" validate:"required,notblank,min=3,max=50"`
	BuyerAddress  string        `json:"buyerAddress" validate:"required,notblank,min=3,max=100"`
	BuyerGstin    string        `json:"buyerGstin" validate:"required,notblank,len=15"`
	Items         []ItemRequest `json:"items" validate:"dive"`
}

// ItemRequest one invoice line. Pointers distinguish absent values from zero.
type ItemRequest struct {
	Name     string           `json:"name" validate:"required,notblank,min=3,max=50"`
	Quantity *int             `json:"quantity"`
	Rate     *decimal.Decimal `json:"rate"`
	Amount   *decimal.Decimal `json:"amount"`
}

// ToEntity maps the request to the domain invoice.
func (r GenerateRequest) ToEntity() *entity.Invoice {
	inv := &entity.Invoice{
		SellerName:    r.SellerName,
		SellerAddress: r.SellerAddress,
		SellerGstin:   r.SellerGstin,
		BuyerName:     r.BuyerName,
		BuyerAddress:  r.BuyerAddress,
		BuyerGstin:    r.BuyerGstin,
	}
	if r.Items != nil {
		inv.Items = make([]entity.LineItem, 0, len(r.Items))
	}
	for _, it := range r.Items {
		inv.Items = append(inv.Items, entity.LineItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Rate:     it.Rate,
			Amount:   it.Amount,
		})
	}
	return inv
}
