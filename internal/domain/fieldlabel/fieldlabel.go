// Package fieldlabel turns field identifiers such as "sellerGstin" into readable
// labels ("Seller GSTIN") and joins them into a single "is mandatory" sentence.
package fieldlabel

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAbbreviations are upper-cased wherever they appear in a field identifier.
var DefaultAbbreviations = []string{"gstin"}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Formatter formats field identifiers. Safe for concurrent use.
type Formatter struct {
	abbreviations []*regexp.Regexp
	replacements  []string
}

// New builds a Formatter. With no abbreviations DefaultAbbreviations is used.
func New(abbreviations ...string) *Formatter {
	if len(abbreviations) == 0 {
		abbreviations = DefaultAbbreviations
	}
	f := &Formatter{}
	for _, a := range abbreviations {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		f.abbreviations = append(f.abbreviations, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(a)))
		f.replacements = append(f.replacements, strings.ToUpper(a))
	}
	return f
}

// Format returns the human-readable label for a field identifier.
//
//	"sellerName"  -> "Seller Name"
//	"sellerGstin" -> "Seller GSTIN"
//	"gstin"       -> "GSTIN"
func (f *Formatter) Format(field string) string {
	s := camelBoundary.ReplaceAllString(field, "$1 $2")
	for i, re := range f.abbreviations {
		s = re.ReplaceAllLiteralString(s, f.replacements[i])
	}

	words := strings.Split(s, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		// Already upper case: treated as an abbreviation.
		if w == strings.ToUpper(w) {
			out = append(out, w)
			continue
		}
		out = append(out, capitalize(w))
	}
	return strings.Join(out, " ")
}

// capitalize upper-cases the first character and lower-cases the rest:
// "e-mail" -> "E-mail", "3rd" -> "3rd".
// A Caser is stateful, so one is built per call.
func capitalize(word string) string {
	_, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(word[:size]) + cases.Lower(language.Und).String(word[size:])
}

// MandatoryMessage builds one sentence out of the failed field identifiers, in the
// order they were reported. Duplicates keep their first position.
//
//	[]                           -> "No fields are mandatory"
//	["sellerName"]               -> "'Seller Name' is mandatory"
//	["sellerName","sellerGstin"] -> "'Seller Name', and 'Seller GSTIN' are mandatory"
func (f *Formatter) MandatoryMessage(fields []string) string {
	labels := lo.Map(lo.Uniq(fields), func(field string, _ int) string {
		return "'" + f.Format(field) + "'"
	})

	switch len(labels) {
	case 0:
		return "No fields are mandatory"
	case 1:
		return labels[0] + " is mandatory"
	default:
		last := len(labels) - 1
		return strings.Join(labels[:last], ", ") + ", and " + labels[last] + " are mandatory"
	}
}
