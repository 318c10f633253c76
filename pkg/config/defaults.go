// Package config provides YAML-based configuration for diskunit.
package config

import "github.com/Sumatoshi-tech/diskunit/pkg/units"

// Device defaults describe a 1 TiB disk with 512-byte sectors and the usual
// 255 heads / 63 sectors BIOS translation.
const (
	DefaultDevicePath            = ""
	DefaultDeviceSize            = "1TiB"
	DefaultDeviceSectorSize      = units.DefaultSectorSize
	DefaultDeviceHeads           = 255
	DefaultDeviceSectorsPerTrack = 63
)

// Unit defaults.
const (
	DefaultUnit = "compact"
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

// Tracing defaults.
const (
	DefaultTraceSampleRatio = 1.0
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)
