package natmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
)

func TestNewAlignment(t *testing.T) {
	t.Parallel()

	align, err := natmath.NewAlignment(-4, 12)
	require.NoError(t, err)
	assert.Equal(t, natmath.Alignment{Offset: 8, GrainSize: 12}, align)

	align, err = natmath.NewAlignment(7, 0)
	require.NoError(t, err)
	assert.Equal(t, natmath.Alignment{Offset: 7, GrainSize: 0}, align)

	_, err = natmath.NewAlignment(0, -1)
	require.ErrorIs(t, err, natmath.ErrInvalidArgument)
}

func TestAlignment_Align(t *testing.T) {
	t.Parallel()

	align, err := natmath.NewAlignment(34, 2048)
	require.NoError(t, err)

	assert.Equal(t, int64(2082), align.AlignUp(100))
	assert.Equal(t, int64(34), align.AlignDown(100))
	assert.Equal(t, int64(34), align.AlignNearest(100))
	assert.Equal(t, int64(2082), align.AlignNearest(2000))
	assert.Equal(t, int64(2082), align.AlignUp(2082))
	assert.Equal(t, int64(2082), align.AlignDown(2082))

	assert.True(t, align.IsAligned(34))
	assert.True(t, align.IsAligned(4130))
	assert.False(t, align.IsAligned(2048))
}

func TestAlignment_BelowOffset(t *testing.T) {
	t.Parallel()

	align, err := natmath.NewAlignment(8, 12)
	require.NoError(t, err)

	assert.Equal(t, int64(8), align.AlignUp(3))
	assert.Equal(t, int64(-4), align.AlignDown(3))
	assert.True(t, align.IsAligned(-4))
}

func TestAlignment_NearestTieGoesDown(t *testing.T) {
	t.Parallel()

	align, err := natmath.NewAlignment(0, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), align.AlignNearest(15))
	assert.Equal(t, int64(20), align.AlignNearest(16))
}

func TestAlignment_ZeroGrain(t *testing.T) {
	t.Parallel()

	align, err := natmath.NewAlignment(5, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(5), align.AlignUp(100))
	assert.Equal(t, int64(5), align.AlignDown(0))
	assert.True(t, align.IsAligned(5))
	assert.False(t, align.IsAligned(6))
}

func TestAlignment_Intersect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b natmath.Alignment
		want natmath.Alignment
	}{
		{
			name: "coprime residues",
			a:    natmath.Alignment{Offset: 2, GrainSize: 6},
			b:    natmath.Alignment{Offset: 0, GrainSize: 4},
			want: natmath.Alignment{Offset: 8, GrainSize: 12},
		},
		{
			name: "order independent",
			a:    natmath.Alignment{Offset: 0, GrainSize: 4},
			b:    natmath.Alignment{Offset: 2, GrainSize: 6},
			want: natmath.Alignment{Offset: 8, GrainSize: 12},
		},
		{
			name: "nested grains",
			a:    natmath.Alignment{Offset: 0, GrainSize: 2048},
			b:    natmath.Alignment{Offset: 0, GrainSize: 8},
			want: natmath.Alignment{Offset: 0, GrainSize: 2048},
		},
		{
			name: "single sector inside grid",
			a:    natmath.Alignment{Offset: 0, GrainSize: 8},
			b:    natmath.Alignment{Offset: 64, GrainSize: 0},
			want: natmath.Alignment{Offset: 64, GrainSize: 0},
		},
		{
			name: "equal single sectors",
			a:    natmath.Alignment{Offset: 3, GrainSize: 0},
			b:    natmath.Alignment{Offset: 3, GrainSize: 0},
			want: natmath.Alignment{Offset: 3, GrainSize: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.a.Intersect(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlignment_IntersectIncompatible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b natmath.Alignment
	}{
		{"odd and even", natmath.Alignment{Offset: 1, GrainSize: 4}, natmath.Alignment{Offset: 0, GrainSize: 2}},
		{"different single sectors", natmath.Alignment{Offset: 1}, natmath.Alignment{Offset: 2}},
		{"sector off grid", natmath.Alignment{Offset: 0, GrainSize: 8}, natmath.Alignment{Offset: 63}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.a.Intersect(tt.b)
			require.ErrorIs(t, err, natmath.ErrNoIntersection)
		})
	}
}
