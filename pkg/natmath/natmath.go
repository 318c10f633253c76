// Package natmath provides exact integer helpers for sector arithmetic:
// greatest common divisor, granularity-relative rounding and alignment.
package natmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
)

// Sentinel errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDivisionByZero  = errors.New("division by zero")
)

// GreatestCommonDivisor returns the largest integer dividing both a and b.
// gcd(x, 0) and gcd(0, x) are x. Negative operands are rejected.
func GreatestCommonDivisor(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: gcd of negative operand (%d, %d)", ErrInvalidArgument, a, b)
	}

	for b != 0 {
		a, b = b, a%b
	}

	return a, nil
}

// DivRoundToNearest divides numerator by divisor, rounding the quotient to the
// nearest integer. Halves round away from zero: 10/4 == 3, -10/4 == -3.
func DivRoundToNearest(numerator, divisor int64) (int64, error) {
	quotient, rem, err := divide(numerator, divisor)
	if err != nil {
		return 0, err
	}

	// |rem| >= |divisor| - |rem| is 2|rem| >= |divisor| without the doubling.
	absRem, absDiv := magnitude(rem), magnitude(divisor)
	if rem != 0 && absRem >= absDiv-absRem {
		quotient += sameSignStep(numerator, divisor)
	}

	return quotient, nil
}

// DivRoundUp divides numerator by divisor, rounding the quotient toward
// positive infinity: -6/4 == -1, 100/-3 == -33.
func DivRoundUp(numerator, divisor int64) (int64, error) {
	quotient, rem, err := divide(numerator, divisor)
	if err != nil {
		return 0, err
	}

	if rem != 0 && (numerator < 0) == (divisor < 0) {
		quotient++
	}

	return quotient, nil
}

// RoundDownTo returns the largest multiple of |grain| not above value, so the
// sign of grain does not matter: RoundDownTo(100, 17) == RoundDownTo(100, -17) == 85
// and RoundDownTo(-100, 17) == -102.
func RoundDownTo(value, grain int64) (int64, error) {
	step, err := grainMagnitude(grain)
	if err != nil {
		return 0, err
	}

	return floorMultiple(value, step)
}

// RoundUpTo leaves multiples of grain alone and otherwise steps one grain from
// RoundDownTo in the direction of grain. A positive grain gives the smallest
// multiple not below value; a negative one gives RoundUpTo(100, -17) == 68.
func RoundUpTo(value, grain int64) (int64, error) {
	step, err := grainMagnitude(grain)
	if err != nil {
		return 0, err
	}

	return stepFromFloor(value, grain, step)
}

// RoundToNearest rounds value to a multiple of grain. With a positive grain it
// rounds up when the distance past the lower multiple exceeds half the grain and
// down otherwise (ties go down). A negative grain always moves like RoundUpTo:
// RoundToNearest(100, 17) == 102, RoundToNearest(100, -17) == 68.
func RoundToNearest(value, grain int64) (int64, error) {
	step, err := grainMagnitude(grain)
	if err != nil {
		return 0, err
	}

	if grain < 0 {
		return stepFromFloor(value, grain, step)
	}

	if absMod(value, step) > step/2 {
		return stepFromFloor(value, grain, step)
	}

	return floorMultiple(value, step)
}

// divide is truncated division that reports the one overflowing case.
func divide(numerator, divisor int64) (int64, int64, error) {
	if divisor == 0 {
		return 0, 0, ErrDivisionByZero
	}

	if numerator == math.MinInt64 && divisor == -1 {
		return 0, 0, fmt.Errorf("%w: %d / %d", safeconv.ErrOverflow, numerator, divisor)
	}

	return numerator / divisor, numerator % divisor, nil
}

func grainMagnitude(grain int64) (int64, error) {
	switch grain {
	case 0:
		return 0, ErrDivisionByZero
	case math.MinInt64:
		return 0, fmt.Errorf("%w: grain %d has no int64 magnitude", safeconv.ErrOverflow, grain)
	}

	return Abs(grain), nil
}

// floorMultiple rounds value toward negative infinity to a multiple of a
// positive step.
func floorMultiple(value, step int64) (int64, error) {
	rem := absMod(value, step)
	if value < math.MinInt64+rem {
		return 0, fmt.Errorf("%w: %d rounded down to %d", safeconv.ErrOverflow, value, step)
	}

	return value - rem, nil
}

func stepFromFloor(value, grain, step int64) (int64, error) {
	floor, err := floorMultiple(value, step)
	if err != nil {
		return 0, err
	}

	if floor == value {
		return value, nil
	}

	if (grain > 0 && floor > math.MaxInt64-grain) || (grain < 0 && floor < math.MinInt64-grain) {
		return 0, fmt.Errorf("%w: %d rounded up to %d", safeconv.ErrOverflow, value, grain)
	}

	return floor + grain, nil
}

// magnitude is |n| as uint64, defined for math.MinInt64 too.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}

	return uint64(n)
}

// sameSignStep is 1 when a and b share a sign and -1 otherwise.
func sameSignStep(a, b int64) int64 {
	if (a < 0) == (b < 0) {
		return 1
	}

	return -1
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// Abs returns the absolute value of n.
func Abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
