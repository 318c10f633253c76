// Package units provides byte multipliers for the decimal (SI) and binary
// (IEC) size prefixes used by disk tooling.
package units

// Decimal size multipliers.
const (
	KB int64 = 1000
	MB       = 1000 * KB
	GB       = 1000 * MB
	TB       = 1000 * GB
)

// Binary size multipliers.
const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
	TiB       = 1024 * GiB
)

// DefaultSectorSize is the logical sector size assumed when a device does not
// report one.
const DefaultSectorSize int64 = 512
