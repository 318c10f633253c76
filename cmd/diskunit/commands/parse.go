package commands

import (
	"context"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
)

type parseResult struct {
	Location string `json:"location" yaml:"location"`
	Sector   int64  `json:"sector"   yaml:"sector"`
	Start    int64  `json:"start"    yaml:"start"`
	End      int64  `json:"end"      yaml:"end"`
	Size     string `json:"size"     yaml:"size"`
}

func newParseCommand(opts *GlobalOptions) *cobra.Command {
	var (
		unitName string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "parse <location>",
		Short: "Resolve a location string to a sector and the range it may denote",
		Example: `  diskunit parse 100MB
  diskunit parse -- -1MiB
  diskunit parse 2,3,7`,
		Args: cobra.ExactArgs(1),
		RunE: opts.runE(func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error {
			err := validOutput(output)
			if err != nil {
				return err
			}

			suggested := unit.Compact

			if unitName != "" {
				suggested, err = unit.ByName(unitName)
				if err != nil {
					return err
				}
			}

			sector, rng, err := env.settings.ParseCustom(env.device, args[0], suggested)
			if err != nil {
				return err
			}

			size, err := env.settings.Format(env.device, sector)
			if err != nil {
				return err
			}

			env.logger.DebugContext(ctx, "location parsed",
				slog.String("location", args[0]), slog.Int64("sector", sector),
				slog.Int64("start", rng.Start), slog.Int64("end", rng.End))

			result := parseResult{
				Location: args[0],
				Sector:   sector,
				Start:    rng.Start,
				End:      rng.End,
				Size:     size,
			}

			if output != OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, result)
			}

			tbl := newTable()
			tbl.AppendHeader(table.Row{"Location", "Sector", "Start", "End", "Size"})
			tbl.AppendRow(table.Row{result.Location, result.Sector, result.Start, result.End, result.Size})

			return writeTable(cmd.OutOrStdout(), tbl)
		}),
	}

	cmd.Flags().StringVarP(&unitName, "unit", "u", "", "Unit for a location without a suffix")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "Output format: table, json, yaml")

	return cmd
}
