package ingredient

import (
	"math"
	"strconv"
)

// MilliDenominator is the fixed denominator used when a decimal amount is
// stored as an exact rational, giving three decimal digits of precision.
const MilliDenominator = 1000

// Quantity is an exact rational amount. Keeping the numerator as an integer
// over a fixed denominator avoids floating-point drift when the same base
// quantity is scaled for different serving counts.
type Quantity struct {
	Numerator   int
	Denominator int
}

// NewQuantity converts a decimal amount into its exact rational form over
// the milli denominator.
func NewQuantity(amount float64) Quantity {
	return Quantity{
		Numerator:   int(math.Round(amount * MilliDenominator)),
		Denominator: MilliDenominator,
	}
}

// Value returns the decimal value of the quantity. A zero denominator yields
// zero rather than dividing by it.
func (q Quantity) Value() float64 {
	if q.Denominator == 0 {
		return 0
	}
	return float64(q.Numerator) / float64(q.Denominator)
}

// Scale multiplies the quantity by the given factor. The denominator stays
// fixed and the numerator is rounded exactly once, so scaling is always
// computed fresh from the stored base and never compounds.
func (q Quantity) Scale(factor float64) Quantity {
	return Quantity{
		Numerator:   int(math.Round(float64(q.Numerator) * factor)),
		Denominator: q.Denominator,
	}
}

// Format renders the quantity as a whole number when possible, otherwise
// with two decimal places.
func (q Quantity) Format() string {
	value := q.Value()
	if value == math.Trunc(value) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}
