package unit

import (
	"errors"
	"fmt"
)

// Device context errors.
var (
	ErrContextRequired   = errors.New("unit has no fixed size")
	ErrInvalidSectorSize = errors.New("sector size must be positive")
	ErrNoGeometry        = errors.New("device has no BIOS geometry")
	ErrNoLength          = errors.New("device length is unknown")
)

// percentDivisor converts a device size into the size of one percent.
const percentDivisor = 100

// Geometry is a cylinder/head/sector addressing layout.
type Geometry struct {
	Cylinders int64
	Heads     int64
	Sectors   int64
}

// CylinderSectors returns the number of sectors in one cylinder.
func (g Geometry) CylinderSectors() int64 {
	return g.Heads * g.Sectors
}

func (g Geometry) valid() bool {
	return g.Heads > 0 && g.Sectors > 0
}

// Device is the context that sector-relative units are resolved against.
type Device struct {
	// Path identifies the device in error messages.
	Path string
	// SectorSize is the logical sector size in bytes.
	SectorSize int64
	// Length is the device size in sectors.
	Length int64
	// BIOSGeometry is the legacy CHS layout.
	BIOSGeometry Geometry
}

// SizeBytes returns the device size in bytes.
func (d Device) SizeBytes() int64 {
	return d.Length * d.SectorSize
}

func (d Device) name() string {
	if d.Path == "" {
		return "device"
	}

	return d.Path
}

// GetSize returns the number of bytes in one u on dev. Fixed-scale units ignore
// the device. Compact has no size of its own and fails with ErrContextRequired.
func GetSize(dev Device, u Unit) (int64, error) {
	if !u.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidUnit, int(u))
	}

	if size, ok := fixedSizes[u]; ok {
		return size, nil
	}

	if u == Compact {
		return 0, fmt.Errorf("%w: %s", ErrContextRequired, u)
	}

	if dev.SectorSize <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSectorSize, dev.SectorSize)
	}

	switch u {
	case Cylinder:
		if !dev.BIOSGeometry.valid() {
			return 0, fmt.Errorf("%w: %s", ErrNoGeometry, dev.name())
		}

		return dev.BIOSGeometry.CylinderSectors() * dev.SectorSize, nil
	case Percent:
		if dev.Length <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrNoLength, dev.name())
		}

		size := dev.SizeBytes() / percentDivisor
		if size == 0 {
			return 0, fmt.Errorf("%w: %s is smaller than %d bytes", ErrNoLength, dev.name(), percentDivisor)
		}

		return size, nil
	default:
		// Sector and CHS.
		return dev.SectorSize, nil
	}
}
