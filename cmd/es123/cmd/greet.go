package cmd

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/psantana5/es123/internal/console"
	"github.com/psantana5/es123/internal/exercise"
	"github.com/spf13/cobra"
)

// greetCmd represents the greeting exercise
var greetCmd = &cobra.Command{
	Use:   "greet",
	Short: "Read a first name and an age, then greet",
	Long: `Prompts for a first name (one word) and an age (an integer) and prints
"Hello, <name> (age <age>)".

Example:
  es123 greet
  printf 'Ada 30\n' | es123 greet`,
	Args: cobra.NoArgs,
	RunE: runGreet,
}

type greetOutput struct {
	exercise.Greeting `yaml:",inline"`
	Message           string `json:"message" yaml:"message"`
}

func init() {
	rootCmd.AddCommand(greetCmd)
}

func runGreet(cmd *cobra.Command, args []string) error {
	s := console.NewScanner(cmd.InOrStdin(), reportWriter(cmd))

	g, err := exercise.ReadGreeting(s)
	metrics.RecordExercise("greet", exerciseOutcome(err))
	if err != nil {
		logger.Warn("invalid input", map[string]interface{}{"error": err.Error()})
		return err
	}
	logger.Debug("greeting read", map[string]interface{}{"first_name": g.FirstName, "age": g.Age})

	return render(cmd.OutOrStdout(), view{
		data: greetOutput{Greeting: g, Message: g.Message()},
		text: func(w io.Writer) error {
			return exercise.WriteGreeting(w, g)
		},
		table: func(t *tablewriter.Table) {
			t.Header("First Name", "Age", "Message")
			t.Append(g.FirstName, strconv.Itoa(g.Age), g.Message())
		},
	})
}
