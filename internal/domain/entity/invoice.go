package entity

import "github.com/shopspring/decimal"

// Invoice is the seller/buyer document received in a generate request.
// It lives only for the duration of one request and is never mutated.
type Invoice struct {
	SellerName    string
	SellerAddress string
	SellerGstin   string // 15 characters, opaque
	BuyerName     string
	BuyerAddress  string
	BuyerGstin    string // 15 characters, opaque
	Items         []LineItem
}

// LineItem is one invoice line. Nil pointers mean the value was absent in the payload.
type LineItem struct {
	Name     string
	Quantity *int
	Rate     *decimal.Decimal
	Amount   *decimal.Decimal
}

// ExpectedAmount returns Quantity × Rate. ok is false when either operand is absent.
func (li LineItem) ExpectedAmount() (amount decimal.Decimal, ok bool) {
	if li.Quantity == nil || li.Rate == nil {
		return decimal.Zero, false
	}
	return li.Rate.Mul(decimal.NewFromInt(int64(*li.Quantity))), true
}
