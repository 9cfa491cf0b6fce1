// Package filename derives the deterministic storage name of a generated invoice:
//
//	<seller>_<buyer>_<hash>.pdf
//
// The party prefixes keep the name readable; the hash is a SHA-256 over a canonical,
// order-preserving serialization of the whole invoice, so identical content always
// maps to the same name and any change maps to a different one.
//
// Money values are hashed by value, not by spelling: rate 100, 100.0 and 100.00 give the
// same token. Every other field is hashed exactly as received.
package filename

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

const (
	// MaxPrefixLen caps each sanitized party name.
	MaxPrefixLen = 20
	// Extension of every derived name.
	Extension = ".pdf"
)

var (
	canonicalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

	tokenReplacer = strings.NewReplacer("/", "_", "+", "_", `\`, "_", "=", "")
	finalReplacer = strings.NewReplacer(
		"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
		`"`, "_", "<", "_", ">", "_", "|", "_",
	)
)

// Canonical form. Field order is fixed by the struct declaration; decimals are kept as
// their exact string value and absent values encode as null.
type canonicalInvoice struct {
	SellerName    string          `json:"sellerName"`
	SellerAddress string          `json:"sellerAddress"`
	SellerGstin   string          `json:"sellerGstin"`
	BuyerName     string          `json:"buyerName"`
	BuyerAddress  string          `json:"buyerAddress"`
	BuyerGstin    string          `json:"buyerGstin"`
	Items         []canonicalItem `json:"items"`
}

type canonicalItem struct {
	Name     string  `json:"name"`
	Quantity *int    `json:"quantity"`
	Rate     *string `json:"rate"`
	Amount   *string `json:"amount"`
}

// Deriver computes file names. The zero value is not usable; call NewDeriver.
type Deriver struct {
	newHash func() hash.Hash
}

// NewDeriver returns a Deriver hashing with SHA-256.
func NewDeriver() *Deriver {
	return &Deriver{newHash: sha256.New}
}

// NewDeriverWithHash returns a Deriver using a custom hash constructor.
func NewDeriverWithHash(newHash func() hash.Hash) *Deriver {
	return &Deriver{newHash: newHash}
}

// Derive returns the storage name for inv. On failure it returns "" and an error
// wrapping domain.ErrHashDerivation; callers must not perform any file operation then.
func (d *Deriver) Derive(inv *entity.Invoice) (string, error) {
	if inv == nil {
		return "", fmt.Errorf("%w: invoice is nil", domain.ErrHashDerivation)
	}
	token, err := d.HashToken(inv)
	if err != nil {
		return "", err
	}
	name := Sanitize(inv.SellerName) + "_" + Sanitize(inv.BuyerName) + "_" + token + Extension
	return finalReplacer.Replace(name), nil
}

// HashToken returns the URL-safe, unpadded base64 SHA-256 of the canonical invoice.
func (d *Deriver) HashToken(inv *entity.Invoice) (string, error) {
	data, err := canonicalJSON.Marshal(toCanonical(inv))
	if err != nil {
		return "", fmt.Errorf("%w: serialize invoice: %v", domain.ErrHashDerivation, err)
	}
	h := d.newHash()
	if _, err := h.Write(data); err != nil {
		return "", fmt.Errorf("%w: hash invoice: %v", domain.ErrHashDerivation, err)
	}
	return tokenReplacer.Replace(base64.StdEncoding.EncodeToString(h.Sum(nil))), nil
}

// Sanitize replaces every rune that is not an ASCII letter or digit with '_' and
// truncates the result to MaxPrefixLen characters.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == MaxPrefixLen {
			break
		}
		if isASCIIAlnum(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func toCanonical(inv *entity.Invoice) canonicalInvoice {
	c := canonicalInvoice{
		SellerName:    inv.SellerName,
		SellerAddress: inv.SellerAddress,
		SellerGstin:   inv.SellerGstin,
		BuyerName:     inv.BuyerName,
		BuyerAddress:  inv.BuyerAddress,
		BuyerGstin:    inv.BuyerGstin,
		Items:         make([]canonicalItem, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		ci := canonicalItem{Name: it.Name, Quantity: it.Quantity}
		if it.Rate != nil {
			s := it.Rate.String()
			ci.Rate = &s
		}
		if it.Amount != nil {
			s := it.Amount.String()
			ci.Amount = &s
		}
		c.Items = append(c.Items, ci)
	}
	return c
}
