package order

import (
	"github.com/Moetaz0/BeatMarket-Back/internal/license"

	"github.com/shopspring/decimal"
)

// Pricing rounds half away from zero at 2 decimals (so 14.995 prices as
// 15.00), and every line is rounded before it enters the order total. Summing
// first and rounding once can differ by a cent on multi-item carts, so the
// per-line order is load-bearing.

// MultiplierFor returns the resolved license's multiplier, or 1 when the
// line has no license at all.
func MultiplierFor(lic *license.License) decimal.Decimal {
	if lic == nil {
		return decimal.NewFromInt(1)
	}
	return lic.PriceMultiplier
}

// PriceLine computes the frozen unit price and the line total for one cart line.
func PriceLine(beatPrice, multiplier decimal.Decimal, quantity int) (unitPrice, lineTotal decimal.Decimal) {
	unitPrice = beatPrice.Mul(multiplier).Round(2)
	lineTotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return unitPrice, lineTotal
}

// OrderTotal sums already-rounded line totals.
func OrderTotal(lines []PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal).Round(2)
	}
	return total
}
