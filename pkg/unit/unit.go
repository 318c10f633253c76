// Package unit implements the disk size unit registry: a closed set of units,
// name lookup, the default unit and conversion between sector counts and
// human-readable size strings.
package unit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
	"github.com/Sumatoshi-tech/diskunit/pkg/units"
)

// Sentinel errors.
var (
	// ErrInvalidUnit is returned for unit codes outside the enumeration.
	ErrInvalidUnit = fmt.Errorf("%w: unit out of range", natmath.ErrInvalidArgument)
	// ErrUnknownUnit is returned when a name matches no unit or alias.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Unit is a disk size or location unit.
type Unit int

// Units in code order. Values are stable and match the order used by
// partitioning tools.
const (
	Sector Unit = iota
	Byte
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
	Compact
	Cylinder
	CHS
	Percent
	Kibibyte
	Mebibyte
	Gibibyte
	Tebibyte
)

// First and Last bound the valid unit codes.
const (
	First = Sector
	Last  = Tebibyte
)

var names = [...]string{
	Sector:   "s",
	Byte:     "B",
	Kilobyte: "kB",
	Megabyte: "MB",
	Gigabyte: "GB",
	Terabyte: "TB",
	Compact:  "compact",
	Cylinder: "cyl",
	CHS:      "chs",
	Percent:  "%",
	Kibibyte: "KiB",
	Mebibyte: "MiB",
	Gibibyte: "GiB",
	Tebibyte: "TiB",
}

var aliases = map[Unit][]string{
	Sector:   {"sector", "sectors"},
	Byte:     {"b", "byte", "bytes"},
	Kilobyte: {"k", "kilobyte", "kilobytes"},
	Megabyte: {"m", "megabyte", "megabytes"},
	Gigabyte: {"g", "gigabyte", "gigabytes"},
	Terabyte: {"t", "terabyte", "terabytes"},
	Cylinder: {"c", "cylinder", "cylinders"},
	Percent:  {"percent"},
	Kibibyte: {"ki", "kibibyte", "kibibytes"},
	Mebibyte: {"mi", "mebibyte", "mebibytes"},
	Gibibyte: {"gi", "gibibyte", "gibibytes"},
	Tebibyte: {"ti", "tebibyte", "tebibytes"},
}

// byName indexes canonical names and aliases by their lower-case form.
var byName = buildNameIndex()

func buildNameIndex() map[string]Unit {
	index := make(map[string]Unit, len(names)*4)

	for u := First; u <= Last; u++ {
		index[strings.ToLower(names[u])] = u

		for _, alias := range aliases[u] {
			index[strings.ToLower(alias)] = u
		}
	}

	return index
}

// Valid reports whether u is a member of the enumeration.
func (u Unit) Valid() bool {
	return u >= First && u <= Last
}

// String returns the canonical name, or Unit(n) for invalid codes.
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}

	return names[u]
}

// Name returns the canonical short name of u, e.g. "MB" or "compact".
func Name(u Unit) (string, error) {
	if !u.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidUnit, int(u))
	}

	return names[u], nil
}

// ByName resolves a canonical name or alias, ignoring case.
func ByName(name string) (Unit, error) {
	u, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}

	return u, nil
}

// Aliases returns the alternative names accepted for u.
func Aliases(u Unit) []string {
	return append([]string(nil), aliases[u]...)
}

// All returns every valid unit in code order.
func All() []Unit {
	all := make([]Unit, 0, Last-First+1)
	for u := First; u <= Last; u++ {
		all = append(all, u)
	}

	return all
}

// fixedSizes holds the byte size of units that do not depend on a device.
var fixedSizes = map[Unit]int64{
	Byte:     1,
	Kilobyte: units.KB,
	Megabyte: units.MB,
	Gigabyte: units.GB,
	Terabyte: units.TB,
	Kibibyte: units.KiB,
	Mebibyte: units.MiB,
	Gibibyte: units.GiB,
	Tebibyte: units.TiB,
}
