package unit

import (
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
	"github.com/Sumatoshi-tech/diskunit/pkg/units"
)

// dblEpsilon nudges values so that halfway cases round away from zero, which
// plain IEEE 754 formatting does not do for numbers like 100.5.
const dblEpsilon = 0x1p-52

// compactThreshold is how many of a unit a size must reach before Compact
// switches to that unit.
const compactThreshold = 10

// Precision cut-offs: two decimals below 10, one below 100, none above.
const (
	twoDecimalsBelow = 10.0
	oneDecimalBelow  = 100.0
)

// compactScale lists the candidate units for Compact, largest first.
var compactScale = []struct {
	unit Unit
	size int64
}{
	{Terabyte, units.TB},
	{Gigabyte, units.GB},
	{Megabyte, units.MB},
	{Kilobyte, units.KB},
}

// FormatCustomByte renders a byte count in unit u, e.g. "1.00MiB", "2048s" or
// "3,12,7" for CHS.
func FormatCustomByte(dev Device, bytes int64, u Unit) (string, error) {
	if !u.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidUnit, int(u))
	}

	switch u {
	case CHS:
		return formatCHS(dev, bytes)
	case Sector, Byte, Cylinder:
		// Whole units only, rounded down.
		size, err := GetSize(dev, u)
		if err != nil {
			return "", err
		}

		return strconv.FormatInt(bytes/size, 10) + names[u], nil
	case Compact:
		u = compactUnit(bytes)
	}

	size, err := GetSize(dev, u)
	if err != nil {
		return "", err
	}

	value := float64(bytes) / float64(size) * (1 + dblEpsilon)

	return strconv.FormatFloat(value, 'f', precision(value), 64) + names[u], nil
}

// FormatCustom renders a sector count in unit u.
func FormatCustom(dev Device, sector int64, u Unit) (string, error) {
	if dev.SectorSize <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSectorSize, dev.SectorSize)
	}

	bytes, err := safeconv.MulInt64(sector, dev.SectorSize)
	if err != nil {
		return "", fmt.Errorf("sector %d: %w", sector, err)
	}

	return FormatCustomByte(dev, bytes, u)
}

func compactUnit(bytes int64) Unit {
	for _, candidate := range compactScale {
		if bytes >= compactThreshold*candidate.size {
			return candidate.unit
		}
	}

	return Byte
}

// precision picks the number of decimals so that about three significant
// digits are shown after rounding.
func precision(value float64) int {
	switch {
	case value+0.005 < twoDecimalsBelow:
		return 2
	case value+0.05 < oneDecimalBelow:
		return 1
	default:
		return 0
	}
}

func formatCHS(dev Device, bytes int64) (string, error) {
	if dev.SectorSize <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSectorSize, dev.SectorSize)
	}

	geom := dev.BIOSGeometry
	if !geom.valid() {
		return "", fmt.Errorf("%w: %s", ErrNoGeometry, dev.name())
	}

	sector := bytes / dev.SectorSize

	return fmt.Sprintf("%d,%d,%d",
		sector/geom.Sectors/geom.Heads,
		(sector/geom.Sectors)%geom.Heads,
		sector%geom.Sectors,
	), nil
}
