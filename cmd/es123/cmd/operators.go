package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/psantana5/es123/internal/console"
	"github.com/psantana5/es123/internal/exercise"
	"github.com/spf13/cobra"
)

// operatorsCmd represents the floating-point operators exercise
var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Apply arithmetic operators to a floating-point value",
	Long: `Prompts for a floating-point value v and prints v, v+1, 3*v, v+v, v*v
and v/2, one per line.

Example:
  es123 operators
  echo 2.0 | es123 operators --output table`,
	Args: cobra.NoArgs,
	RunE: runOperators,
}

type operatorsOutput struct {
	Value      float64              `json:"value" yaml:"value"`
	Operations []exercise.Operation `json:"operations" yaml:"operations"`
}

func init() {
	rootCmd.AddCommand(operatorsCmd)
}

func runOperators(cmd *cobra.Command, args []string) error {
	s := console.NewScanner(cmd.InOrStdin(), reportWriter(cmd))

	v, err := exercise.ReadValue(s)
	metrics.RecordExercise("operators", exerciseOutcome(err))
	if err != nil {
		logger.Warn("invalid input", map[string]interface{}{"error": err.Error()})
		return err
	}
	ops := exercise.Operators(v)

	return render(cmd.OutOrStdout(), view{
		data: operatorsOutput{Value: v, Operations: ops},
		text: func(w io.Writer) error {
			return exercise.WriteOperations(w, ops)
		},
		table: func(t *tablewriter.Table) {
			t.Header("Expression", "Value")
			for _, op := range ops {
				t.Append(op.Expr, console.FormatFloat(op.Value))
			}
		},
	})
}
