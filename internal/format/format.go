// Package format isolates locale-specific presentation of prices, quantities
// and dates so the core arithmetic stays locale independent.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formatter renders domain values for display.
type Formatter interface {
	Price(d decimal.Decimal) string
	Quantity(n int) string
	DateTime(t time.Time) string
}

// French renders values the way the original interface does: space-grouped
// thousands, comma decimal separator, TND currency suffix, dd/mm/yyyy dates.
type French struct{}

// Price formats a monetary amount with two decimals and the currency suffix.
func (French) Price(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := grouped + "," + parts[1] + " TND"
	if neg {
		out = "-" + out
	}
	return out
}

// Quantity formats an integer count with thousands grouping.
func (French) Quantity(n int) string {
	s := decimal.NewFromInt(int64(n)).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = groupThousands(s)
	if neg {
		s = "-" + s
	}
	return s
}

// DateTime formats a timestamp as dd/mm/yyyy hh:mm.
func (French) DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
