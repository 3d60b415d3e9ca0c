// Package normalize converts pt-BR formatted values found in gazette text
// into canonical Go values. Every function returns nil instead of failing.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoValue is the placeholder the gazette prints for an amount stated as none.
const NoValue = "-"

// ParseAmount parses a monetary string written as "1.234,56".
//
// The placeholder "-" and the empty string mean "explicitly none" and yield
// zero; nil means the text could not be read as a number.
func ParseAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	if s == "" || s == NoValue {
		zero := decimal.Zero
		return &zero
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
