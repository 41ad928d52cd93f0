package aggregation

import "github.com/shopspring/decimal"

// divisionPrecision is the number of decimal places kept by SafeDiv.
const divisionPrecision = 6

// SafeDiv divides num by den. ok is false when den is zero, so callers can
// treat the result as "not applicable" instead of producing a non-finite value.
func SafeDiv(num, den decimal.Decimal) (quotient decimal.Decimal, ok bool) {
	if den.IsZero() {
		return decimal.Zero, false
	}
	return num.DivRound(den, divisionPrecision), true
}

// Mean returns the arithmetic mean of values, or zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	mean, _ := SafeDiv(decimal.Sum(decimal.Zero, values...), decimal.NewFromInt(int64(len(values))))
	return mean
}
