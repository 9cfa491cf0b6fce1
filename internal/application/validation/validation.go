// Package validation runs the field-level checks (go-playground/validator tags on the
// request DTO) and the line-item rules, and folds every failure into one error.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/sushnag22/pdf-generator/internal/application/dto"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/entity"
	"github.com/sushnag22/pdf-generator/internal/domain/fieldlabel"
	"github.com/sushnag22/pdf-generator/internal/domain/lineitem"
)

// Error carries every failed check of a request. It unwraps to domain.ErrInvalidInput.
type Error struct {
	// Message is the aggregated "... is mandatory" sentence.
	Message string
	// Fields are the failed field identifiers in report order (may repeat).
	Fields []string
	// Details holds one entry per failure with its own message.
	Details []dto.FieldError
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

type fieldMessages struct {
	required string
	size     string
}

// Messages per JSON field name. Item fields are keyed by their own name.
var messages = map[string]fieldMessages{
	"sellerName":    {"Seller name is mandatory", "Seller name must be between 3 and 50 characters"},
	"sellerAddress": {"Seller address is mandatory", "Seller address must be between 3 and 100 characters"},
	"sellerGstin":   {"Seller GSTIN is mandatory", "Seller GSTIN must be 15 characters"},
	"buyerName":     {"Buyer name is mandatory", "Buyer name must be between 3 and 50 characters"},
	"buyerAddress":  {"Buyer address is mandatory", "Buyer address must be between 3 and 100 characters"},
	"buyerGstin":    {"Buyer GSTIN is mandatory", "Buyer GSTIN must be 15 characters"},
	"name":          {"Item name is mandatory", "Item name must be between 3 and 50 characters"},
}

// Validator validates generate requests. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	items    *lineitem.Validator
	labels   *fieldlabel.Formatter
}

// New builds a Validator reporting fields by their JSON names.
func New(labels *fieldlabel.Formatter, items *lineitem.Validator) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Whitespace-only strings count as missing.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic("validation: register notblank: " + err.Error())
	}
	return &Validator{validate: v, items: items, labels: labels}
}

// Validate runs all field checks and all line-item rules; nothing short-circuits.
// It returns nil or a *Error.
func (v *Validator) Validate(req *dto.GenerateRequest, inv *entity.Invoice) error {
	var out Error

	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, fe.Field())
			out.Details = append(out.Details, dto.FieldError{
				Field:   fieldPath(fe),
				Message: messageFor(fe),
			})
		}
	}

	for _, f := range v.items.Validate(inv.Items) {
		out.Fields = append(out.Fields, f.Field)
		out.Details = append(out.Details, dto.FieldError{Field: f.Path(), Message: f.Message})
	}

	if len(out.Fields) == 0 {
		return nil
	}
	out.Message = v.labels.MandatoryMessage(out.Fields)
	return &out
}

// fieldPath drops the struct name from the namespace: "GenerateRequest.items[0].name" -> "items[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	m, ok := messages[fe.Field()]
	if !ok {
		return fe.Error()
	}
	if fe.Tag() == "required" || fe.Tag() == "notblank" {
		return m.required
	}
	return m.size
}
