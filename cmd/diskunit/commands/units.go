package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diskunit/pkg/unit"
)

// unitRow describes one unit for listing. Size is nil for units whose size
// depends on the value being formatted.
type unitRow struct {
	Code    int      `json:"code"              yaml:"code"`
	Name    string   `json:"name"              yaml:"name"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Size    *int64   `json:"size,omitempty"    yaml:"size,omitempty"`
	Default bool     `json:"default"           yaml:"default"`
}

func newUnitsCommand(opts *GlobalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List units and their sizes on the configured device",
		Args:  cobra.NoArgs,
		RunE: opts.runE(func(_ context.Context, env *environment, cmd *cobra.Command, _ []string) error {
			err := validOutput(output)
			if err != nil {
				return err
			}

			rows, err := collectUnits(env)
			if err != nil {
				return err
			}

			if output != OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, rows)
			}

			return writeTable(cmd.OutOrStdout(), unitsTable(rows))
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "Output format: table, json, yaml")

	return cmd
}

func collectUnits(env *environment) ([]unitRow, error) {
	def := env.settings.Default()
	rows := make([]unitRow, 0, len(unit.All()))

	for _, u := range unit.All() {
		row := unitRow{
			Code:    int(u),
			Name:    u.String(),
			Aliases: unit.Aliases(u),
			Default: u == def,
		}

		size, err := unit.GetSize(env.device, u)

		switch {
		case err == nil:
			row.Size = &size
		case errors.Is(err, unit.ErrContextRequired):
			// Compact has no size of its own.
		default:
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func unitsTable(rows []unitRow) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Code", "Name", "Aliases", "Bytes", "Default"})

	for _, row := range rows {
		size := "-"
		if row.Size != nil {
			size = humanize.Comma(*row.Size)
		}

		marker := ""
		if row.Default {
			marker = "*"
		}

		tbl.AppendRow(table.Row{row.Code, row.Name, strings.Join(row.Aliases, ", "), size, marker})
	}

	return tbl
}
