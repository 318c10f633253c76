package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrUnknownOutput is returned for an unsupported --output value.
var ErrUnknownOutput = errors.New("unknown output format")

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func writeTable(writer io.Writer, tbl table.Writer) error {
	_, err := fmt.Fprintln(writer, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// writeStructured encodes value as JSON or YAML.
func writeStructured(writer io.Writer, format string, value any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")

		err := enc.Encode(value)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case OutputYAML:
		enc := yaml.NewEncoder(writer)
		enc.SetIndent(2)

		err := enc.Encode(value)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}

	return nil
}

func validOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (want table, json or yaml)", ErrUnknownOutput, format)
	}
}
