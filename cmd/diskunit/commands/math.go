package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/diskunit/pkg/natmath"
)

type binaryOp struct {
	use   string
	short string
	fn    func(a, b int64) (int64, error)
}

var mathOps = []binaryOp{
	{"gcd <a> <b>", "Greatest common divisor", natmath.GreatestCommonDivisor},
	{"div-round-up <numerator> <divisor>", "Divide rounding up", natmath.DivRoundUp},
	{"div-round-nearest <numerator> <divisor>", "Divide rounding to nearest", natmath.DivRoundToNearest},
	{"round-down <value> <grain>", "Round down to a multiple of grain", natmath.RoundDownTo},
	{"round-up <value> <grain>", "Round up to a multiple of grain", natmath.RoundUpTo},
	{"round-nearest <value> <grain>", "Round to the nearest multiple of grain", natmath.RoundToNearest},
}

func newMathCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "math",
		Short: "Exact integer rounding and division helpers",
		Long: `Exact integer rounding and division helpers.

Negative operands must follow "--", e.g. diskunit math round-nearest -- 100 -17.`,
	}

	for _, op := range mathOps {
		cmd.AddCommand(newBinaryOpCommand(opts, op))
	}

	return cmd
}

func newBinaryOpCommand(opts *GlobalOptions, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   op.use,
		Short: op.short,
		Args:  cobra.ExactArgs(2),
		RunE: opts.runE(func(_ context.Context, _ *environment, cmd *cobra.Command, args []string) error {
			a, err := parseInteger(args[0])
			if err != nil {
				return err
			}

			b, err := parseInteger(args[1])
			if err != nil {
				return err
			}

			result, err := op.fn(a, b)
			if err != nil {
				return fmt.Errorf("%s: %w", cmd.Name(), err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

			return err
		}),
	}
}
