package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatVND formats an amount like "1.250.000 ₫", rounded to whole dong.
func FormatVND(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().Round(0).StringFixed(0)

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 6)
	if neg {
		b.WriteByte('-')
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(" ₫")
	return b.String()
}
