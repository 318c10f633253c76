// Package observability provides structured logging correlated with
// OpenTelemetry traces for the diskunit CLI.
package observability

import (
	"io"
	"log/slog"
)

// AppMode identifies how the code is being driven.
type AppMode string

// ModeCLI is the CLI command execution mode.
const ModeCLI AppMode = "cli"

// defaultServiceName is the default OTel service name.
const defaultServiceName = "diskunit"

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// Tracing enables the SDK tracer provider. When false spans are no-ops
	// and log records carry no trace context.
	Tracing bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0) used when
	// OTEL_TRACES_SAMPLER is unset. Zero samples everything.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// Output receives log records. Nil means stderr.
	Output io.Writer
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		Mode:        ModeCLI,
		LogLevel:    slog.LevelInfo,
	}
}
