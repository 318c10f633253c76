// Package safeconv provides checked numeric conversions that report overflow
// instead of wrapping.
package safeconv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("numeric overflow")

// maxInt64Float is the smallest float64 above every int64 (2^63).
const maxInt64Float = float64(1 << 63)

// Uint64ToInt64 converts v to int64.
func Uint64ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d exceeds int64", ErrOverflow, v)
	}

	return int64(v), nil
}

// Float64ToInt64 truncates v toward zero. NaN and values outside the int64
// range are rejected.
func Float64ToInt64(v float64) (int64, error) {
	if math.IsNaN(v) || v >= maxInt64Float || v < -maxInt64Float {
		return 0, fmt.Errorf("%w: %g does not fit int64", ErrOverflow, v)
	}

	return int64(v), nil
}

// MulInt64 returns a*b, or ErrOverflow when the product does not fit.
func MulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}

	return product, nil
}
