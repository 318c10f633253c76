// Package commands implements CLI command handlers for diskunit.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/diskunit/pkg/config"
	"github.com/Sumatoshi-tech/diskunit/pkg/observability"
	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
	"github.com/Sumatoshi-tech/diskunit/pkg/version"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	configPath  string
	verbose     bool
	quiet       bool
	logJSON     bool
	sectorSize  int64
	deviceSize  string
	defaultUnit string
}

// environment is everything a command needs once configuration is resolved.
type environment struct {
	device   unit.Device
	settings *unit.Settings
	logger   *slog.Logger
	tracer   trace.Tracer
}

type action func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error

// NewRootCommand creates the diskunit root command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "diskunit",
		Short: "Disk size units and sector arithmetic",
		Long: `diskunit converts between sectors, bytes and disk size units.

Commands:
  units     List known units and their sizes on the configured device
  format    Render a sector or byte count in a unit
  parse     Resolve a location string to a sector and range
  math      Exact integer rounding and division helpers
  align     Align a sector to an offset and grain`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to diskunit.yaml (default: search ., ./config, /etc/diskunit)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output with tracing")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress informational logs")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON")
	flags.Int64Var(&opts.sectorSize, "sector-size", 0, "Override the device sector size in bytes")
	flags.StringVar(&opts.deviceSize, "device-size", "", "Override the device size (e.g. '500GB', '2TiB')")
	flags.StringVar(&opts.defaultUnit, "default-unit", "", "Override the default unit (e.g. 'MiB', 'compact')")

	rootCmd.AddCommand(newUnitsCommand(opts))
	rootCmd.AddCommand(newFormatCommand(opts))
	rootCmd.AddCommand(newParseCommand(opts))
	rootCmd.AddCommand(newMathCommand(opts))
	rootCmd.AddCommand(newAlignCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// runE resolves the environment and runs fn inside a span named after the command.
func (opts *GlobalOptions) runE(fn action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, shutdown, err := opts.setup(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		defer func() {
			shutdownErr := shutdown(context.WithoutCancel(ctx))
			if shutdownErr != nil {
				env.logger.Warn("tracer shutdown failed", slog.Any("error", shutdownErr))
			}
		}()

		ctx, span := env.tracer.Start(ctx, "diskunit."+cmd.Name(),
			trace.WithAttributes(
				attribute.StringSlice("args", args),
				attribute.Int64("device.sector_size", env.device.SectorSize),
				attribute.Int64("device.length", env.device.Length),
			))
		defer span.End()

		env.logger.DebugContext(ctx, "command started",
			slog.String("command", cmd.CommandPath()),
			slog.String("default_unit", env.settings.Default().String()))

		err = fn(ctx, env, cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			env.logger.DebugContext(ctx, "command failed", slog.Any("error", err))

			return err
		}

		return nil
	}
}

func (opts *GlobalOptions) setup(cmd *cobra.Command) (*environment, func(context.Context) error, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	opts.applyOverrides(cmd, cfg)

	err = cfg.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	obsCfg, err := opts.observabilityConfig(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init observability: %w", err)
	}

	device, err := cfg.Device.Build()
	if err != nil {
		return nil, nil, err
	}

	def, err := cfg.Units.DefaultUnit()
	if err != nil {
		return nil, nil, err
	}

	settings, err := unit.NewSettings(def)
	if err != nil {
		return nil, nil, err
	}

	return &environment{
		device:   device,
		settings: settings,
		logger:   providers.Logger,
		tracer:   providers.Tracer,
	}, providers.Shutdown, nil
}

func (opts *GlobalOptions) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("sector-size") {
		cfg.Device.SectorSize = opts.sectorSize
	}

	if flags.Changed("device-size") {
		cfg.Device.Size = opts.deviceSize
	}

	if flags.Changed("default-unit") {
		cfg.Units.Default = opts.defaultUnit
	}

	if opts.logJSON {
		cfg.Logging.Format = config.LogFormatJSON
	}
}

func (opts *GlobalOptions) observabilityConfig(cmd *cobra.Command, cfg *config.Config) (observability.Config, error) {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return observability.Config{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.Output = cmd.ErrOrStderr()
	obsCfg.SampleRatio = cfg.Tracing.SampleRatio

	switch {
	case opts.quiet:
		obsCfg.LogLevel = slog.LevelWarn
	case opts.verbose:
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.Tracing = true
	}

	return obsCfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "diskunit %s\n", version.String())
		},
	}
}
