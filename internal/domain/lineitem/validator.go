// Package lineitem enforces the structural and arithmetic rules of invoice lines.
package lineitem

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

// Kind identifies a line-item failure.
type Kind string

const (
	EmptyItems      Kind = "EmptyItems"
	InvalidQuantity Kind = "InvalidQuantity"
	InvalidRate     Kind = "InvalidRate"
	MissingAmount   Kind = "MissingAmount"
	AmountMismatch  Kind = "AmountMismatch"
)

// Field names reported with failures.
const (
	FieldItems    = "items"
	FieldQuantity = "quantity"
	FieldRate     = "rate"
	FieldAmount   = "amount"
)

// Messages maps each failure kind to its user-facing message.
type Messages map[Kind]string

// DefaultMessages are used for every kind missing from the configured Messages.
var DefaultMessages = Messages{
	EmptyItems:      "Item details cannot be empty",
	InvalidQuantity: "Item quantity is mandatory and must be greater than 0",
	InvalidRate:     "Item rate is mandatory and must be greater than 0",
	MissingAmount:   "Item amount is mandatory and must be greater than 0",
	AmountMismatch:  "Item amount must be equal to quantity multiplied by rate",
}

// Failure is one violated rule. Index is -1 for EmptyItems.
type Failure struct {
	Kind    Kind
	Index   int
	Field   string
	Message string
}

// Path returns the failing location, e.g. "items[2].amount".
func (f Failure) Path() string {
	if f.Index < 0 {
		return f.Field
	}
	return fmt.Sprintf("%s[%d].%s", FieldItems, f.Index, f.Field)
}

// Validator checks invoice lines.
type Validator struct {
	messages Messages
}

// New builds a Validator. Kinds without a message fall back to DefaultMessages.
func New(messages Messages) *Validator {
	merged := make(Messages, len(DefaultMessages))
	for k, v := range DefaultMessages {
		merged[k] = v
	}
	for k, v := range messages {
		if v != "" {
			merged[k] = v
		}
	}
	return &Validator{messages: merged}
}

// Validate runs every rule over every item and returns all failures.
// An empty or nil slice yields a single EmptyItems failure and nothing else.
func (v *Validator) Validate(items []entity.LineItem) []Failure {
	if len(items) == 0 {
		return []Failure{v.failure(EmptyItems, -1, FieldItems)}
	}

	var failures []Failure
	for i, item := range items {
		if item.Quantity == nil || *item.Quantity <= 0 {
			failures = append(failures, v.failure(InvalidQuantity, i, FieldQuantity))
		}
		if item.Rate == nil || !item.Rate.GreaterThan(decimal.Zero) {
			failures = append(failures, v.failure(InvalidRate, i, FieldRate))
		}
		if item.Amount == nil {
			failures = append(failures, v.failure(MissingAmount, i, FieldAmount))
			continue
		}
		// Exact comparison: 200 and 200.00 are equal, 199.999 is not.
		if expected, ok := item.ExpectedAmount(); ok && !item.Amount.Equal(expected) {
			failures = append(failures, v.failure(AmountMismatch, i, FieldAmount))
		}
	}
	return failures
}

func (v *Validator) failure(kind Kind, index int, field string) Failure {
	return Failure{Kind: kind, Index: index, Field: field, Message: v.messages[kind]}
}
