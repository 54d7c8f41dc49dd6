package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	two = decimal.NewFromInt(2)

	// convergence threshold for Newton-Raphson, a couple digits tighter
	// than decimal.DivisionPrecision
	sqrtEpsilon = decimal.New(1, -18)
)

// Sqrt computes the square root of d with Newton-Raphson iteration, staying
// in decimal arithmetic throughout. shopspring/decimal has no square root of
// its own.
func Sqrt(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("cannot take square root of negative value %s", d.String())
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}

	guess := d.Add(decimal.NewFromInt(1)).Div(two)
	for i := 0; i < 64; i++ {
		next := guess.Add(d.Div(guess)).Div(two)
		if next.Sub(guess).Abs().LessThan(sqrtEpsilon) {
			return next, nil
		}
		guess = next
	}

	return guess, nil
}

// SampleStdev is the sample standard deviation (n-1 denominator) of xs.
// Fewer than two observations yields exactly zero.
func SampleStdev(xs []decimal.Decimal) (decimal.Decimal, error) {
	if len(xs) < 2 {
		return decimal.Zero, nil
	}

	sum := decimal.Zero
	for _, x := range xs {
		sum = sum.Add(x)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(xs))))

	sumSquares := decimal.Zero
	for _, x := range xs {
		diff := x.Sub(mean)
		sumSquares = sumSquares.Add(diff.Mul(diff))
	}
	variance := sumSquares.Div(decimal.NewFromInt(int64(len(xs) - 1)))

	return Sqrt(variance)
}
