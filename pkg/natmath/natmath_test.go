package natmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
)

func TestGreatestCommonDivisor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b int64
		want int64
	}{
		{"second operand zero", 40, 0, 40},
		{"first operand zero", 0, 40, 40},
		{"both zero", 0, 0, 0},
		{"divisible", 40, 10, 10},
		{"coprime", 47, 19, 1},
		{"smaller first", 12, 18, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := natmath.GreatestCommonDivisor(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGreatestCommonDivisor_NegativeOperand(t *testing.T) {
	t.Parallel()

	_, err := natmath.GreatestCommonDivisor(-4, 2)
	require.ErrorIs(t, err, natmath.ErrInvalidArgument)

	_, err = natmath.GreatestCommonDivisor(4, -2)
	require.ErrorIs(t, err, natmath.ErrInvalidArgument)
}

func TestDivRoundToNearest(t *testing.T) {
	t.Parallel()

	got, err := natmath.DivRoundToNearest(0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	got, err = natmath.DivRoundToNearest(100, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got)

	got, err = natmath.DivRoundToNearest(100, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got)

	_, err = natmath.DivRoundToNearest(100, 0)
	require.ErrorIs(t, err, natmath.ErrDivisionByZero)
}

func TestDivision_Signs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		numerator int64
		divisor   int64
		nearest   int64
		up        int64
	}{
		{"negative numerator", -100, 6, -17, -16},
		{"negative divisor", 100, -6, -17, -16},
		{"both negative", -100, -6, 17, 17},
		{"negative exact", -6, 3, -2, -2},
		{"half rounds away from zero", 10, 4, 3, 3},
		{"negative half rounds away from zero", -10, 4, -3, -2},
		{"small negative numerator", -6, 4, -2, -1},
		{"negative thirds", 100, -3, -33, -33},
		{"max int", math.MaxInt64, 2, 1 << 62, 1 << 62},
		{"min int", math.MinInt64, 2, math.MinInt64 / 2, math.MinInt64 / 2},
		{"min int by itself", math.MinInt64, math.MinInt64, 1, 1},
		{"max int by min int", math.MaxInt64, math.MinInt64, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nearest, err := natmath.DivRoundToNearest(tt.numerator, tt.divisor)
			require.NoError(t, err)
			assert.Equal(t, tt.nearest, nearest, "nearest")

			up, err := natmath.DivRoundUp(tt.numerator, tt.divisor)
			require.NoError(t, err)
			assert.Equal(t, tt.up, up, "up")
		})
	}
}

func TestDivision_Overflow(t *testing.T) {
	t.Parallel()

	_, err := natmath.DivRoundUp(math.MinInt64, -1)
	require.ErrorIs(t, err, safeconv.ErrOverflow)

	_, err = natmath.DivRoundToNearest(math.MinInt64, -1)
	require.ErrorIs(t, err, safeconv.ErrOverflow)
}

func TestDivRoundUp(t *testing.T) {
	t.Parallel()

	got, err := natmath.DivRoundUp(0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	got, err = natmath.DivRoundUp(100, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got)

	got, err = natmath.DivRoundUp(100, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got)

	_, err = natmath.DivRoundUp(100, 0)
	require.ErrorIs(t, err, natmath.ErrDivisionByZero)
}

func TestRounding(t *testing.T) {
	t.Parallel()

	type roundFunc func(value, grain int64) (int64, error)

	tests := []struct {
		name  string
		fn    roundFunc
		value int64
		grain int64
		want  int64
	}{
		{"down zero", natmath.RoundDownTo, 0, 100, 0},
		{"down positive grain", natmath.RoundDownTo, 100, 17, 85},
		{"down negative grain", natmath.RoundDownTo, 100, -17, 85},
		{"down exact", natmath.RoundDownTo, 102, 17, 102},
		{"nearest zero", natmath.RoundToNearest, 0, 100, 0},
		{"nearest positive grain", natmath.RoundToNearest, 100, 17, 102},
		{"nearest negative grain", natmath.RoundToNearest, 100, -17, 68},
		{"nearest below half", natmath.RoundToNearest, 90, 17, 85},
		{"up zero", natmath.RoundUpTo, 0, 100, 0},
		{"up positive grain", natmath.RoundUpTo, 100, 17, 102},
		{"up negative grain", natmath.RoundUpTo, 100, -17, 68},
		{"up exact", natmath.RoundUpTo, 85, 17, 85},
		{"down negative value", natmath.RoundDownTo, -100, 17, -102},
		{"down negative value and grain", natmath.RoundDownTo, -100, -17, -102},
		{"down negative exact", natmath.RoundDownTo, -102, 17, -102},
		{"up negative value", natmath.RoundUpTo, -100, 17, -85},
		{"up negative exact", natmath.RoundUpTo, -85, 17, -85},
		{"nearest negative value down", natmath.RoundToNearest, -100, 17, -102},
		{"nearest negative value up", natmath.RoundToNearest, -90, 17, -85},
		{"nearest tie goes down", natmath.RoundToNearest, 5, 10, 0},
		{"nearest negative grain exact", natmath.RoundToNearest, 102, -17, 102},
		{"down min int", natmath.RoundDownTo, math.MinInt64, 1 << 20, math.MinInt64},
		{"up max int exact", natmath.RoundUpTo, math.MaxInt64, 1, math.MaxInt64},
		{"down max int", natmath.RoundDownTo, math.MaxInt64, 1 << 20, math.MaxInt64 - (1<<20 - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.fn(tt.value, tt.grain)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRounding_Overflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    func(int64, int64) (int64, error)
		value int64
		grain int64
	}{
		{"up past max int", natmath.RoundUpTo, math.MaxInt64 - 1, 1 << 20},
		{"nearest past max int", natmath.RoundToNearest, math.MaxInt64 - 1, 1 << 20},
		{"down past min int", natmath.RoundDownTo, math.MinInt64, 3},
		{"negative grain past min int", natmath.RoundUpTo, math.MinInt64 + 1, -2},
		{"grain without magnitude", natmath.RoundDownTo, 100, math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.fn(tt.value, tt.grain)
			require.ErrorIs(t, err, safeconv.ErrOverflow)
		})
	}
}

func TestRounding_ZeroGrain(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func(int64, int64) (int64, error){
		"RoundDownTo":    natmath.RoundDownTo,
		"RoundUpTo":      natmath.RoundUpTo,
		"RoundToNearest": natmath.RoundToNearest,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := fn(100, 0)
			require.ErrorIs(t, err, natmath.ErrDivisionByZero)
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	t.Parallel()

	assert.True(t, natmath.IsPowerOfTwo(1))
	assert.True(t, natmath.IsPowerOfTwo(1<<20))
	assert.False(t, natmath.IsPowerOfTwo(0))
	assert.False(t, natmath.IsPowerOfTwo(-2))
	assert.False(t, natmath.IsPowerOfTwo(1000))
}
