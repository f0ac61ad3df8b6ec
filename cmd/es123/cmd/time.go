package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/psantana5/es123/internal/console"
	"github.com/psantana5/es123/internal/observe"
	"github.com/psantana5/es123/internal/wrapper"
	"github.com/spf13/cobra"
)

var (
	timeLabel   string
	timeWorkDir string
)

var timeCmd = &cobra.Command{
	Use:   "time [flags] -- <command> [args...]",
	Short: "Run a command and report its elapsed time",
	Long: `Starts a timer, runs the command with this terminal's stdin, stdout and
stderr, then prints "elapsed time: <seconds> seconds".

The wall clock is used unless --clock is given explicitly, since the
CPU clock of this process does not include the child's work. The child's own
user and system CPU time is part of the structured output. The exit status
of the command becomes the exit status of es123.

Example:
  es123 time -- sleep 1
  es123 time --label build -o json -- make all`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTime,
}

func init() {
	rootCmd.AddCommand(timeCmd)

	timeCmd.Flags().StringVar(&timeLabel, "label", "", "Label recorded with the result")
	timeCmd.Flags().StringVar(&timeWorkDir, "workdir", "", "Working directory for the command")
}

func runTime(cmd *cobra.Command, args []string) error {
	name := "wall"
	if cmd.Flags().Changed("clock") {
		name = clockLabel(cfg.GetString("clock"))
	}
	c, err := observe.ParseClock(name)
	if err != nil {
		return err
	}
	timer := observe.NewTimer(c)

	// The child shares our process group, so the terminal signals it directly.
	// Keep running until it exits so the report is still printed.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		for sig := range sigChan {
			logger.Info("signal received, waiting for command", map[string]interface{}{"signal": sig.String()})
		}
	}()

	result, err := wrapper.Run(context.Background(), timer, name, wrapper.Command{
		Label:  timeLabel,
		Name:   args[0],
		Args:   args[1:],
		Dir:    timeWorkDir,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	metrics.RecordResult(result)
	result.LogSummary(logger)
	childExit = result.ExitCode

	return render(cmd.OutOrStdout(), view{
		data: result,
		text: func(w io.Writer) error {
			return observe.WriteElapsed(w, result.ElapsedSeconds)
		},
		table: func(t *tablewriter.Table) {
			t.Header("Command", "Clock", "Elapsed (s)", "User CPU (s)", "System CPU (s)", "Exit")
			t.Append(
				strings.Join(result.Command, " "),
				result.Clock,
				console.FormatFloat(result.ElapsedSeconds),
				console.FormatFloat(result.UserCPUSeconds),
				console.FormatFloat(result.SystemCPUSeconds),
				fmt.Sprintf("%d", result.ExitCode),
			)
		},
	})
}
