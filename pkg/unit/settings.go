package unit

import (
	"fmt"
	"sync/atomic"
)

// InitialDefault is the default unit of a process that never set one.
const InitialDefault = Compact

// Settings owns a default unit. It is safe for concurrent use: the default is
// replaced atomically and readers always observe a valid unit.
type Settings struct {
	def atomic.Int32
}

// NewSettings returns settings whose default unit is u.
func NewSettings(u Unit) (*Settings, error) {
	s := &Settings{}

	err := s.SetDefault(u)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Default returns the current default unit.
func (s *Settings) Default() Unit {
	return Unit(s.def.Load())
}

// SetDefault replaces the default unit. Invalid units leave it unchanged.
func (s *Settings) SetDefault(u Unit) error {
	if !u.Valid() {
		return fmt.Errorf("%w: cannot set default to %d", ErrInvalidUnit, int(u))
	}

	s.def.Store(int32(u))

	return nil
}

// FormatByte formats a byte count in the default unit.
func (s *Settings) FormatByte(dev Device, bytes int64) (string, error) {
	return FormatCustomByte(dev, bytes, s.Default())
}

// Format formats a sector count in the default unit.
func (s *Settings) Format(dev Device, sector int64) (string, error) {
	return FormatCustom(dev, sector, s.Default())
}

// Parse parses a location, using the default unit when str carries no suffix.
func (s *Settings) Parse(dev Device, str string) (int64, Range, error) {
	return s.ParseCustom(dev, str, s.Default())
}

// ParseCustom parses a location, using u when str carries no suffix. A Compact
// u stands for the default unit, and a Compact default for megabytes.
func (s *Settings) ParseCustom(dev Device, str string, u Unit) (int64, Range, error) {
	return parseCustom(dev, str, u, s.Default())
}

// process holds the process-wide default unit used by the package-level
// functions.
var process = mustSettings(InitialDefault)

func mustSettings(u Unit) *Settings {
	s, err := NewSettings(u)
	if err != nil {
		panic(err)
	}

	return s
}

// Process returns the process-wide settings.
func Process() *Settings {
	return process
}

// Default returns the process-wide default unit.
func Default() Unit {
	return process.Default()
}

// SetDefault replaces the process-wide default unit.
func SetDefault(u Unit) error {
	return process.SetDefault(u)
}

// FormatByte formats a byte count in the process-wide default unit.
func FormatByte(dev Device, bytes int64) (string, error) {
	return process.FormatByte(dev, bytes)
}

// Format formats a sector count in the process-wide default unit.
func Format(dev Device, sector int64) (string, error) {
	return process.Format(dev, sector)
}

// Parse parses a location with the process-wide default unit.
func Parse(dev Device, str string) (int64, Range, error) {
	return process.Parse(dev, str)
}

// ParseCustom parses a location with an explicit fallback unit.
func ParseCustom(dev Device, str string, u Unit) (int64, Range, error) {
	return process.ParseCustom(dev, str, u)
}
