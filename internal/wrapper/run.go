package wrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/psantana5/es123/internal/observe"
	"github.com/psantana5/es123/internal/report"
)

// Command describes a child process to time
type Command struct {
	Label string
	Name  string
	Args  []string
	Dir   string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the timer, runs the command to completion and reads the timer.
// A non-zero exit is a result, not an error. Only failing to start is an error.
func Run(ctx context.Context, timer *observe.Timer, clockName string, c Command) (*report.Result, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("no command specified")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)

	startTime := time.Now()
	timer.Start()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	waitErr := cmd.Wait()
	elapsed := timer.ElapsedSeconds()
	endTime := time.Now()

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("failed waiting for %s: %w", c.Name, waitErr)
		}
		exitCode = exitErr.ExitCode()
	}

	argv := append([]string{c.Name}, c.Args...)
	result := report.NewResult(c.Label, argv, cmd.Process.Pid, clockName, startTime, endTime, elapsed, exitCode)
	if cmd.ProcessState != nil {
		result.SetChildCPU(cmd.ProcessState.UserTime(), cmd.ProcessState.SystemTime())
	}
	return result, nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
