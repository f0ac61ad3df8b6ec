package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/psantana5/es123/internal/console"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var elapsedLine = regexp.MustCompile(`elapsed time: -?[0-9]+(\.[0-9]+)?(e[+-][0-9]+)? seconds\n$`)

// execute runs es123 in-process with a clean flag set and environment
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeEnv(t, nil, stdin, args...)
}

func executeEnv(t *testing.T, env map[string]string, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"ES123_CLOCK", "ES123_OUTPUT", "ES123_LOG_LEVEL", "ES123_LOG_FORMAT", "ES123_LOG_FILE", "ES123_METRICS_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestGreetText(t *testing.T) {
	stdout, _, err := execute(t, "Ada\n30\n", "greet")
	require.NoError(t, err)

	assert.Equal(t, "Please enter your first name: Please enter your age: Hello, Ada (age 30)\n", stdout)
	assert.Equal(t, 0, ExitCode(err))
}

func TestGreetJSON(t *testing.T) {
	stdout, stderr, err := execute(t, "Ada 30", "greet", "--output", "json")
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "Ada", out["first_name"])
	assert.Equal(t, 30.0, out["age"])
	assert.Equal(t, "Hello, Ada (age 30)", out["message"])

	// Prompts move off stdout for structured output
	assert.Contains(t, stderr, "Please enter your first name: ")
}

func TestGreetInvalidAge(t *testing.T) {
	_, _, err := execute(t, "Ada thirty", "greet")

	var parseErr *console.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, ExitCode(err))
}

func TestOperatorsText(t *testing.T) {
	stdout, _, err := execute(t, "2.0\n", "operators")
	require.NoError(t, err)

	expected := "Please enter a floating point value: " +
		"v == 2\nv+1 == 3\n3*v == 6\nv+v == 4\nv*v == 4\nv/2 == 1\n"
	assert.Equal(t, expected, stdout)
}

func TestOperatorsYAML(t *testing.T) {
	stdout, _, err := execute(t, "1.5", "operators", "-o", "yaml")
	require.NoError(t, err)

	var out operatorsOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 1.5, out.Value)
	require.Len(t, out.Operations, 6)
	assert.Equal(t, "v*v", out.Operations[4].Expr)
	assert.Equal(t, 2.25, out.Operations[4].Value)
}

func TestOperatorsTable(t *testing.T) {
	stdout, _, err := execute(t, "2", "operators", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, stdout, "v/2")
	assert.Contains(t, stdout, "3*v")
	assert.NotContains(t, stdout, "Please enter")
}

func TestOperatorsNoInput(t *testing.T) {
	_, _, err := execute(t, "", "operators")
	assert.ErrorIs(t, err, console.ErrNoInput)
}

func TestTimeFlagReportsAfterCommand(t *testing.T) {
	stdout, _, err := execute(t, "2", "operators", "--time")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "Please enter a floating point value: v == 2\n"))
	assert.Regexp(t, elapsedLine, stdout)
}

func TestTimeFlagWallClock(t *testing.T) {
	stdout, _, err := execute(t, "Ada 30", "greet", "--time", "--clock", "wall")
	require.NoError(t, err)
	assert.Regexp(t, elapsedLine, stdout)
}

func TestTimeCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "time", "--", "sh", "-c", "echo working")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "working\n"))
	assert.Regexp(t, elapsedLine, stdout)
	assert.Equal(t, 0, ExitCode(err))
}

func TestTimeCommandPropagatesExitCode(t *testing.T) {
	stdout, _, err := execute(t, "", "time", "--", "sh", "-c", "exit 3")
	require.NoError(t, err)

	assert.Regexp(t, elapsedLine, stdout)
	assert.Equal(t, 3, ExitCode(err))
}

func TestTimeCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "", "time", "--label", "noop", "-o", "json", "--", "true")
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "noop", out["label"])
	assert.Equal(t, "wall", out["clock"])
	assert.Equal(t, 0.0, out["exit_code"])
}

func TestTimeCommandMissingBinary(t *testing.T) {
	_, _, err := execute(t, "", "time", "--", "es123-no-such-binary")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "es123.prom")

	_, _, err := execute(t, "2", "operators", "--time", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `es123_exercise_runs_total{exercise="operators",outcome="ok"} 1`)
	assert.Contains(t, string(data), `es123_timer_reports_total{clock="cpu"} 1`)
}

func TestMetricsFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "es123.prom")

	_, _, err := execute(t, "Ada thirty", "greet", "--metrics-file", path)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `es123_exercise_runs_total{exercise="greet",outcome="invalid_input"} 1`)
}

func TestConfigFromEnvironment(t *testing.T) {
	stdout, _, err := executeEnv(t, map[string]string{"ES123_CLOCK": "wall"}, "", "config", "-o", "json")
	require.NoError(t, err)

	var ec EffectiveConfig
	require.NoError(t, json.Unmarshal([]byte(stdout), &ec))
	assert.Equal(t, "wall", ec.Clock)
	assert.Equal(t, "json", ec.Output)
	assert.Equal(t, "warn", ec.LogLevel)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock: wall\nlog_level: debug\n"), 0644))

	stdout, _, err := execute(t, "", "config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "config_file:  "+path)
	assert.Contains(t, stdout, "clock:        wall")
	assert.Contains(t, stdout, "log_level:    debug")
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock: wall\n"), 0644))

	stdout, _, err := execute(t, "", "config", "--config", path, "--clock", "cpu", "-o", "yaml")
	require.NoError(t, err)

	var ec EffectiveConfig
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &ec))
	assert.Equal(t, "cpu", ec.Clock)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, _, err := execute(t, "", "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := execute(t, "2", "operators", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestUnknownClock(t *testing.T) {
	_, _, err := execute(t, "2", "operators", "--clock", "sundial")
	assert.Error(t, err)
}

func TestDebugLogsGoToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "Ada 30", "greet", "--log-level", "debug")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "DEBUG")
	assert.Contains(t, stderr, "DEBUG: greeting read")
	assert.Contains(t, stderr, "command=greet")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "es123.log")

	stdout, stderr, err := execute(t, "Ada 30", "greet", "--log-level", "debug", "--log-file", path)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "DEBUG")
	assert.NotContains(t, stderr, "DEBUG")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG: greeting read")
	assert.Contains(t, string(data), "command=greet")

	// teardown already closed the file
	assert.ErrorIs(t, logger.Close(), os.ErrClosed)
}
