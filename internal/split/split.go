// Package split computes per-member cost allocations for shared expenses.
// All three policies are pure functions: they either return a split map or an
// error, and repeated calls with the same input return the same shares.
// Shares are rounded to 2 decimal places (half away from zero) independently
// per member, so the sum of an equal split may drift from the total by a few
// cents; that drift is accepted currency behavior.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the maximum accepted absolute difference when validating that
// percentages sum to 100 or that custom amounts sum to the stated total.
const Tolerance = 0.01

var tolerance = decimal.NewFromFloat(Tolerance)

// Equally divides total across the members, filtering out empty identifiers
// first. Returns an empty map when no members remain.
func Equally(total float64, members []string) map[string]float64 {
	kept := make([]string, 0, len(members))
	for _, m := range members {
		if m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return map[string]float64{}
	}

	each := round2(decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(len(kept)))))
	shares := make(map[string]float64, len(kept))
	for _, m := range kept {
		shares[m] = each
	}
	return shares
}

// ByPercentage allocates total according to each member's percentage. It
// fails when the percentages do not sum to 100 within Tolerance.
func ByPercentage(total float64, percentages map[string]float64) (map[string]float64, error) {
	sum := decimal.Zero
	for _, pct := range percentages {
		sum = sum.Add(decimal.NewFromFloat(pct))
	}
	sum = sum.Round(2)

	hundred := decimal.NewFromInt(100)
	if sum.Sub(hundred).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("percentages must sum to 100, got %s", sum)
	}

	totalDec := decimal.NewFromFloat(total)
	shares := make(map[string]float64, len(percentages))
	for m, pct := range percentages {
		shares[m] = round2(decimal.NewFromFloat(pct).Div(hundred).Mul(totalDec))
	}
	return shares, nil
}

// ByCustomAmounts validates per-member amounts against the stated total and
// returns them rounded to 2 places. It fails when the entered amounts differ
// from the total by more than Tolerance, reporting both sums.
func ByCustomAmounts(total float64, amounts map[string]float64) (map[string]float64, error) {
	entered := decimal.Zero
	shares := make(map[string]float64, len(amounts))
	for m, amt := range amounts {
		rounded := decimal.NewFromFloat(amt).Round(2)
		shares[m] = rounded.InexactFloat64()
		entered = entered.Add(rounded)
	}
	entered = entered.Round(2)

	if entered.Sub(decimal.NewFromFloat(total)).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("entered amounts sum to %s but the total is %.2f", entered, total)
	}
	return shares, nil
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
