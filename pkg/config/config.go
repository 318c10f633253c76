package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/diskunit/pkg/safeconv"
	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
)

// Sentinel validation errors.
var (
	ErrInvalidSectorSize  = errors.New("sector size must be positive")
	ErrInvalidDeviceSize  = errors.New("invalid device size")
	ErrInvalidGeometry    = errors.New("heads and sectors per track must be positive")
	ErrInvalidDefaultUnit = errors.New("invalid default unit")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidSampleRatio = errors.New("trace sample ratio must be within [0, 1]")
)

const (
	configName = "diskunit"
	envPrefix  = "DISKUNIT"
)

// Config holds all configuration for diskunit.
type Config struct {
	Device  DeviceConfig  `mapstructure:"device"`
	Units   UnitsConfig   `mapstructure:"units"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// DeviceConfig describes the device that sector-relative units resolve against.
type DeviceConfig struct {
	Path            string `mapstructure:"path"`
	Size            string `mapstructure:"size"`
	SectorSize      int64  `mapstructure:"sector_size"`
	Heads           int64  `mapstructure:"heads"`
	SectorsPerTrack int64  `mapstructure:"sectors_per_track"`
}

// UnitsConfig holds unit selection settings.
type UnitsConfig struct {
	Default string `mapstructure:"default"`
}

// TracingConfig holds span sampling settings used when tracing is enabled.
type TracingConfig struct {
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches the working directory, ./config and
// /etc/diskunit for diskunit.yaml; an explicit path must exist.
// The result is not validated; call Validate after applying overrides.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/diskunit")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Device defaults.
	viperCfg.SetDefault("device.path", DefaultDevicePath)
	viperCfg.SetDefault("device.size", DefaultDeviceSize)
	viperCfg.SetDefault("device.sector_size", DefaultDeviceSectorSize)
	viperCfg.SetDefault("device.heads", DefaultDeviceHeads)
	viperCfg.SetDefault("device.sectors_per_track", DefaultDeviceSectorsPerTrack)

	// Unit defaults.
	viperCfg.SetDefault("units.default", DefaultUnit)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Tracing defaults.
	viperCfg.SetDefault("tracing.sample_ratio", DefaultTraceSampleRatio)
}

// Validate checks the configuration and reports the first problem found.
func (c *Config) Validate() error {
	_, err := c.Device.Build()
	if err != nil {
		return err
	}

	_, err = c.Units.DefaultUnit()
	if err != nil {
		return err
	}

	_, err = c.Logging.SlogLevel()
	if err != nil {
		return err
	}

	if c.Logging.Format != LogFormatText && c.Logging.Format != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, c.Tracing.SampleRatio)
	}

	return nil
}

// Build converts the configuration into a unit.Device. The length is the
// device size rounded down to whole sectors and the cylinder count follows
// from the BIOS geometry.
func (d DeviceConfig) Build() (unit.Device, error) {
	if d.SectorSize <= 0 {
		return unit.Device{}, fmt.Errorf("%w: %d", ErrInvalidSectorSize, d.SectorSize)
	}

	if d.Heads <= 0 || d.SectorsPerTrack <= 0 {
		return unit.Device{}, fmt.Errorf("%w: %d/%d", ErrInvalidGeometry, d.Heads, d.SectorsPerTrack)
	}

	size, err := humanize.ParseBytes(d.Size)
	if err != nil {
		return unit.Device{}, fmt.Errorf("%w: %q: %w", ErrInvalidDeviceSize, d.Size, err)
	}

	sizeBytes, err := safeconv.Uint64ToInt64(size)
	if err != nil {
		return unit.Device{}, fmt.Errorf("%w: %q: %w", ErrInvalidDeviceSize, d.Size, err)
	}

	length := sizeBytes / d.SectorSize
	if length == 0 {
		return unit.Device{}, fmt.Errorf("%w: %q is smaller than one sector", ErrInvalidDeviceSize, d.Size)
	}

	geometry := unit.Geometry{Heads: d.Heads, Sectors: d.SectorsPerTrack}
	geometry.Cylinders = length / geometry.CylinderSectors()

	return unit.Device{
		Path:         d.Path,
		SectorSize:   d.SectorSize,
		Length:       length,
		BIOSGeometry: geometry,
	}, nil
}

// DefaultUnit resolves the configured default unit name.
func (u UnitsConfig) DefaultUnit() (unit.Unit, error) {
	resolved, err := unit.ByName(u.Default)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDefaultUnit, err)
	}

	return resolved, nil
}

// SlogLevel parses the configured level name.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(l.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}

	return level, nil
}
