package commands

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
)

// defaultGrain is 1 MiB in 512-byte sectors.
const defaultGrain = 2048

type alignResult struct {
	Sector  int64 `json:"sector"  yaml:"sector"`
	Offset  int64 `json:"offset"  yaml:"offset"`
	Grain   int64 `json:"grain"   yaml:"grain"`
	Up      int64 `json:"up"      yaml:"up"`
	Down    int64 `json:"down"    yaml:"down"`
	Nearest int64 `json:"nearest" yaml:"nearest"`
	Aligned bool  `json:"aligned" yaml:"aligned"`
}

func newAlignCommand(opts *GlobalOptions) *cobra.Command {
	var (
		offset int64
		grain  int64
		output string
	)

	cmd := &cobra.Command{
		Use:     "align <sector>",
		Short:   "Align a sector to sectors of the form offset + k*grain",
		Example: `  diskunit align 2049 --grain 2048`,
		Args:    cobra.ExactArgs(1),
		RunE: opts.runE(func(_ context.Context, _ *environment, cmd *cobra.Command, args []string) error {
			err := validOutput(output)
			if err != nil {
				return err
			}

			sector, err := parseInteger(args[0])
			if err != nil {
				return err
			}

			alignment, err := natmath.NewAlignment(offset, grain)
			if err != nil {
				return err
			}

			result := alignResult{
				Sector:  sector,
				Offset:  alignment.Offset,
				Grain:   alignment.GrainSize,
				Up:      alignment.AlignUp(sector),
				Down:    alignment.AlignDown(sector),
				Nearest: alignment.AlignNearest(sector),
				Aligned: alignment.IsAligned(sector),
			}

			if output != OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, result)
			}

			tbl := newTable()
			tbl.AppendHeader(table.Row{"Sector", "Down", "Nearest", "Up", "Aligned"})
			tbl.AppendRow(table.Row{result.Sector, result.Down, result.Nearest, result.Up, result.Aligned})

			return writeTable(cmd.OutOrStdout(), tbl)
		}),
	}

	cmd.Flags().Int64Var(&offset, "offset", 0, "Alignment offset in sectors")
	cmd.Flags().Int64Var(&grain, "grain", defaultGrain, "Grain size in sectors (0 pins to the offset)")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "Output format: table, json, yaml")

	return cmd
}
