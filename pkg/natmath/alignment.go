package natmath

import (
	"errors"
	"fmt"
)

// ErrNoIntersection is returned when two alignments admit no common sector.
var ErrNoIntersection = errors.New("alignments have no common sector")

// Alignment constrains sectors to Offset + k*GrainSize. A zero GrainSize admits
// the single sector Offset.
type Alignment struct {
	Offset    int64
	GrainSize int64
}

// NewAlignment builds an alignment, normalising the offset into [0, grain).
func NewAlignment(offset, grain int64) (Alignment, error) {
	if grain < 0 {
		return Alignment{}, fmt.Errorf("%w: negative grain size %d", ErrInvalidArgument, grain)
	}

	if grain > 0 {
		offset = absMod(offset, grain)
	}

	return Alignment{Offset: offset, GrainSize: grain}, nil
}

// AlignUp returns the smallest aligned sector not below sector.
func (a Alignment) AlignUp(sector int64) int64 {
	if a.GrainSize == 0 {
		return a.Offset
	}

	return ceilTo(sector-a.Offset, a.GrainSize) + a.Offset
}

// AlignDown returns the largest aligned sector not above sector.
func (a Alignment) AlignDown(sector int64) int64 {
	if a.GrainSize == 0 {
		return a.Offset
	}

	return floorTo(sector-a.Offset, a.GrainSize) + a.Offset
}

// AlignNearest returns the aligned sector closest to sector. Ties go down.
func (a Alignment) AlignNearest(sector int64) int64 {
	up := a.AlignUp(sector)
	down := a.AlignDown(sector)

	if Abs(sector-up) < Abs(sector-down) {
		return up
	}

	return down
}

// IsAligned reports whether sector satisfies the alignment.
func (a Alignment) IsAligned(sector int64) bool {
	if a.GrainSize == 0 {
		return sector == a.Offset
	}

	return absMod(sector-a.Offset, a.GrainSize) == 0
}

// Intersect returns the alignment satisfied exactly by sectors aligned to both
// a and b.
func (a Alignment) Intersect(b Alignment) (Alignment, error) {
	if a.GrainSize < b.GrainSize {
		a, b = b, a
	}

	if a.GrainSize == 0 && b.GrainSize == 0 {
		if a.Offset == b.Offset {
			return a, nil
		}

		return Alignment{}, fmt.Errorf("%w: offsets %d and %d", ErrNoIntersection, a.Offset, b.Offset)
	}

	gcd, x, y := extendedEuclid(a.GrainSize, b.GrainSize)

	deltaOnGCD := (b.Offset - a.Offset) / gcd
	offset := a.Offset + x*deltaOnGCD*a.GrainSize
	grain := a.GrainSize * b.GrainSize / gcd

	if offset != b.Offset-y*deltaOnGCD*b.GrainSize {
		return Alignment{}, fmt.Errorf("%w: %+v and %+v", ErrNoIntersection, a, b)
	}

	return NewAlignment(offset, grain)
}

// extendedEuclid returns gcd(a, b) and x, y with a*x + b*y == gcd.
func extendedEuclid(a, b int64) (gcd, x, y int64) {
	if b == 0 {
		return a, 1, 0
	}

	gcd, x1, y1 := extendedEuclid(b, a%b)

	return gcd, y1, x1 - (a/b)*y1
}

// absMod is the non-negative remainder of a modulo a positive b.
func absMod(a, b int64) int64 {
	rem := a % b
	if rem < 0 {
		rem += b
	}

	return rem
}

// floorTo and ceilTo round toward negative and positive infinity. The result
// must fit in int64.
func floorTo(value, grain int64) int64 {
	return value - absMod(value, grain)
}

func ceilTo(value, grain int64) int64 {
	if absMod(value, grain) == 0 {
		return value
	}

	return floorTo(value, grain) + grain
}
