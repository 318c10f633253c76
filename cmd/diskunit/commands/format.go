package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
)

// ErrInvalidInteger is returned when a numeric argument is not an integer.
var ErrInvalidInteger = errors.New("not an integer")

func newFormatCommand(opts *GlobalOptions) *cobra.Command {
	var (
		unitName string
		asBytes  bool
	)

	cmd := &cobra.Command{
		Use:   "format <count>",
		Short: "Render a sector (or byte) count in a unit",
		Long: `Render a sector count, or a byte count with --bytes, as a size string.

Without --unit the default unit is used; compact picks a readable unit.`,
		Example: `  diskunit format 2048 --unit MiB
  diskunit format --bytes 1073741824`,
		Args: cobra.ExactArgs(1),
		RunE: opts.runE(func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error {
			count, err := parseInteger(args[0])
			if err != nil {
				return err
			}

			formatted, err := formatCount(env, count, unitName, asBytes)
			if err != nil {
				return err
			}

			env.logger.DebugContext(ctx, "formatted",
				slog.Int64("count", count), slog.Bool("bytes", asBytes), slog.String("result", formatted))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatted)

			return err
		}),
	}

	cmd.Flags().StringVarP(&unitName, "unit", "u", "", "Unit to format in (default: configured default unit)")
	cmd.Flags().BoolVar(&asBytes, "bytes", false, "Treat the count as bytes instead of sectors")

	return cmd
}

func formatCount(env *environment, count int64, unitName string, asBytes bool) (string, error) {
	if unitName == "" {
		if asBytes {
			return env.settings.FormatByte(env.device, count)
		}

		return env.settings.Format(env.device, count)
	}

	u, err := unit.ByName(unitName)
	if err != nil {
		return "", err
	}

	if asBytes {
		return unit.FormatCustomByte(env.device, count, u)
	}

	return unit.FormatCustom(env.device, count, u)
}

func parseInteger(arg string) (int64, error) {
	value, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, arg)
	}

	return value, nil
}
