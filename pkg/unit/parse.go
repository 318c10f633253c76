package unit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
)

// Parse errors.
var (
	ErrInvalidNumber   = errors.New("invalid number")
	ErrFractionalValue = errors.New("use a smaller unit instead of a value < 1")
	ErrOutsideDevice   = errors.New("location is outside of the device")
	ErrInvalidCHS      = errors.New("invalid CHS location")
)

// chsSeparators is the number of commas in a "c,h,s" location.
const chsSeparators = 2

// Range is an inclusive sector interval.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of sectors in r.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

// Contains reports whether sector lies in r.
func (r Range) Contains(sector int64) bool {
	return sector >= r.Start && sector <= r.End
}

func parseCustom(dev Device, str string, suggested, def Unit) (int64, Range, error) {
	if !suggested.Valid() {
		return 0, Range{}, fmt.Errorf("%w: %d", ErrInvalidUnit, int(suggested))
	}

	if dev.SectorSize <= 0 {
		return 0, Range{}, fmt.Errorf("%w: %d", ErrInvalidSectorSize, dev.SectorSize)
	}

	if dev.Length <= 0 {
		return 0, Range{}, fmt.Errorf("%w: %s", ErrNoLength, dev.name())
	}

	trimmed := strings.TrimSpace(str)
	if strings.Count(trimmed, ",") == chsSeparators {
		return parseCHS(dev, trimmed)
	}

	number, suffix := splitSuffix(trimmed)

	u, err := resolveSuffix(suffix, suggested, def)
	if err != nil {
		return 0, Range{}, err
	}

	num, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, Range{}, fmt.Errorf("%w: %q", ErrInvalidNumber, str)
	}

	if num > 0 && num < 1 {
		return 0, Range{}, fmt.Errorf("%w: %q", ErrFractionalValue, str)
	}

	size, err := GetSize(dev, u)
	if err != nil {
		return 0, Range{}, err
	}

	sector, err := safeconv.Float64ToInt64(num * float64(size) / float64(dev.SectorSize))
	if err != nil {
		return 0, Range{}, fmt.Errorf("%w: %q", ErrOutsideDevice, str)
	}

	// Negative locations count back from the end of the device.
	if strings.HasPrefix(number, "-") {
		sector += dev.Length
	}

	radius, err := parseRadius(size, dev.SectorSize)
	if err != nil {
		return 0, Range{}, err
	}

	start := clip(dev, sector-radius)
	end := clip(dev, sector+radius)

	if sector-end > radius || start-sector > radius {
		return 0, Range{}, fmt.Errorf("%w: %q on %s", ErrOutsideDevice, str, dev.name())
	}

	return clip(dev, sector), Range{Start: start, End: end}, nil
}

// splitSuffix separates the numeric prefix (digits, sign, decimal point) from
// the unit suffix.
func splitSuffix(str string) (string, string) {
	idx := strings.IndexFunc(str, func(r rune) bool {
		return (r < '0' || r > '9') && !strings.ContainsRune(".-+", r)
	})
	if idx < 0 {
		return str, ""
	}

	return strings.TrimSpace(str[:idx]), strings.TrimSpace(str[idx:])
}

func resolveSuffix(suffix string, suggested, def Unit) (Unit, error) {
	if suffix != "" {
		return ByName(suffix)
	}

	if suggested != Compact {
		return suggested, nil
	}

	if def == Compact {
		return Megabyte, nil
	}

	return def, nil
}

// parseRadius returns the half-width, in sectors, of the window a location
// given in a unit of size bytes may fall into. Power-of-two units are taken
// as exact.
func parseRadius(size, sectorSize int64) (int64, error) {
	if natmath.IsPowerOfTwo(size) {
		return 0, nil
	}

	sectors, err := natmath.DivRoundUp(size, sectorSize)
	if err != nil {
		return 0, err
	}

	return max(sectors/2-1, 0), nil
}

func parseCHS(dev Device, str string) (int64, Range, error) {
	geom := dev.BIOSGeometry
	if !geom.valid() {
		return 0, Range{}, fmt.Errorf("%w: %s", ErrNoGeometry, dev.name())
	}

	parts := strings.Split(str, ",")

	var chs [3]int64

	for i, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || v < 0 {
			return 0, Range{}, fmt.Errorf("%w: %q has invalid syntax", ErrInvalidCHS, str)
		}

		chs[i] = v
	}

	cyl, head, sec := chs[0], chs[1], chs[2]

	if head >= geom.Heads {
		return 0, Range{}, fmt.Errorf("%w: the maximum head value is %d", ErrInvalidCHS, geom.Heads-1)
	}

	if sec >= geom.Sectors {
		return 0, Range{}, fmt.Errorf("%w: the maximum sector value is %d", ErrInvalidCHS, geom.Sectors-1)
	}

	outside := fmt.Errorf("%w: %q on %s", ErrOutsideDevice, str, dev.name())

	cylSectors, err := safeconv.MulInt64(geom.Heads, geom.Sectors)
	if err != nil {
		return 0, Range{}, fmt.Errorf("%w: %w", ErrNoGeometry, err)
	}

	base, err := safeconv.MulInt64(cyl, cylSectors)
	if err != nil {
		return 0, Range{}, outside
	}

	// head*Sectors + sec < cylSectors, so this cannot overflow.
	within := head*geom.Sectors + sec
	if base > dev.Length-1-within {
		return 0, Range{}, outside
	}

	sector := base + within

	return sector, Range{Start: sector, End: sector}, nil
}

func clip(dev Device, sector int64) int64 {
	return min(max(sector, 0), dev.Length-1)
}
