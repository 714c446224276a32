// Package pricing holds the invoice price arithmetic and the promotion/voucher
// evaluator. Everything here is pure; callers load rows and pass values in.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	// VATRate is fixed for every invoice.
	VATRate = decimal.RequireFromString("0.10")

	roundingUnit = decimal.NewFromInt(1000)
	hundred      = decimal.NewFromInt(100)
	half         = decimal.RequireFromString("0.5")
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Line is one priced row of an invoice draft.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Selected  bool
}

// Draft is everything needed to price an invoice.
type Draft struct {
	Lines           []Line
	IncludeVAT      bool
	DiscountPercent decimal.Decimal
	// ExtraDiscount is a voucher or promotion amount already capped by its own terms.
	ExtraDiscount decimal.Decimal
}

// Breakdown is the priced result of a Draft.
type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATAmount       decimal.Decimal `json:"vat_amount"`
	PercentDiscount decimal.Decimal `json:"percent_discount"`
	ExtraDiscount   decimal.Decimal `json:"extra_discount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
}

// RoundThousand rounds to the nearest 1,000, half up.
func RoundThousand(x decimal.Decimal) decimal.Decimal {
	return x.Div(roundingUnit).Add(half).Floor().Mul(roundingUnit)
}

// EffectiveUnitPrice scales a service base price by a car category multiplier.
func EffectiveUnitPrice(base, multiplier decimal.Decimal) decimal.Decimal {
	return RoundThousand(base.Mul(multiplier))
}

// LineTotal multiplies unit price by quantity; quantities below 1 count as 1.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal sums selected lines with a positive quantity.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if !l.Selected || l.Quantity <= 0 {
			continue
		}
		sum = sum.Add(LineTotal(l.UnitPrice, l.Quantity))
	}
	return sum
}

// VATAmount is 10% of the subtotal when VAT is included, zero otherwise.
func VATAmount(subtotal decimal.Decimal, includeVAT bool) decimal.Decimal {
	if !includeVAT {
		return decimal.Zero
	}
	return subtotal.Mul(VATRate)
}

// DiscountAmount applies the percent to the VAT-inclusive amount.
func DiscountAmount(subtotal, vat, percent decimal.Decimal) decimal.Decimal {
	return subtotal.Add(vat).Mul(ClampPercent(percent)).Div(hundred)
}

// Total is subtotal + vat - discount.
func Total(subtotal, vat, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(vat).Sub(discount)
}

// EffectiveDiscountPercent prefers the operator's explicit percent, then the
// customer's stored rate, then zero.
func EffectiveDiscountPercent(customerRate, explicit *decimal.Decimal) decimal.Decimal {
	switch {
	case explicit != nil:
		return ClampPercent(*explicit)
	case customerRate != nil:
		return ClampPercent(*customerRate)
	}
	return decimal.Zero
}

// ClampPercent bounds p to [0, 100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// Calculate prices a whole draft. The combined discount never exceeds
// subtotal + VAT, so the total floors at zero.
func Calculate(d Draft) Breakdown {
	sub := Subtotal(d.Lines)
	vat := VATAmount(sub, d.IncludeVAT)
	pct := DiscountAmount(sub, vat, d.DiscountPercent)

	extra := d.ExtraDiscount
	if extra.IsNegative() {
		extra = decimal.Zero
	}

	gross := sub.Add(vat)
	discount := pct.Add(extra)
	if discount.GreaterThan(gross) {
		discount = gross
		extra = gross.Sub(pct)
	}

	return Breakdown{
		Subtotal:        sub,
		VATAmount:       vat,
		PercentDiscount: pct,
		ExtraDiscount:   extra,
		DiscountAmount:  discount,
		Total:           Total(sub, vat, discount),
	}
}
