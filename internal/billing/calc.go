package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary value to two decimals, half away from zero.
// Rounding happens only at the point of producing a displayable or storable
// value so repeated edits of the same row do not compound rounding error.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ComputeLine derives the monetary fields of a single line item.
//
//	amount            = round2(quantity * rate * (1 - discountPercent/100))
//	priceIncludingGST = round2(amount * (1 + gstPercent/100))
//
// Non-numeric quantity or rate is treated as zero. Negative results are not
// clamped; quantity validity is the stock guard's concern.
func ComputeLine(quantity, rate, gstPercent, discountPercent float64) (amount, priceIncludingGST float64) {
	quantity = sanitize(quantity)
	rate = sanitize(rate)
	amount = Round2(quantity * rate * (1 - discountPercent/100))
	priceIncludingGST = Round2(amount * (1 + gstPercent/100))
	return amount, priceIncludingGST
}

// RecomputeLines refreshes the derived fields of every row in place and
// returns the slice for convenience.
func RecomputeLines(items []LineItem) []LineItem {
	for i := range items {
		items[i].Amount, items[i].PriceIncludingGST = ComputeLine(
			items[i].Quantity,
			items[i].Rate,
			items[i].GSTPercent,
			items[i].DiscountPercent,
		)
	}
	return items
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
