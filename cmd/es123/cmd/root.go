package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/psantana5/es123/internal/console"
	"github.com/psantana5/es123/internal/logging"
	"github.com/psantana5/es123/internal/observe"
	"github.com/psantana5/es123/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	outputFormat string
	clockName    string
	logLevel     string
	logFormat    string
	logFile      string
	metricsFile  string
	timeIt       bool
)

// Per-invocation state, built in setup
var (
	cfg     *viper.Viper
	logger  = logging.Discard()
	metrics = report.NewMetrics()
	clock   observe.Clock
	session *observe.Timer

	// childExit is the exit status of a timed child, reported after teardown
	childExit int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "es123",
	Short: "ES123 course exercises",
	Long: `es123 bundles the ES123 introductory exercises: console programs that read
a value and print derived output, and an elapsed-time timer that brackets any
of them (or an external command) and reports how long it took.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	cfg = nil
	err := rootCmd.Execute()
	if err != nil && cfg != nil {
		// teardown is skipped when a command fails, the failure still counts
		if path := cfg.GetString("metrics_file"); path != "" {
			if werr := report.WriteFile(path, metrics.Registry()); werr != nil {
				logger.Error("failed to write metrics", map[string]interface{}{"path": path, "error": werr.Error()})
			}
		}
		logger.Close()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.es123/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml or table")
	rootCmd.PersistentFlags().StringVar(&clockName, "clock", "cpu", "timer clock: cpu (process CPU time) or wall")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text metrics to this file on exit")
	rootCmd.PersistentFlags().BoolVar(&timeIt, "time", false, "report elapsed time after the command")
}

// initConfig layers flags over ES123_* environment variables over the config file
func initConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".es123"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ES123")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"output":       "output",
		"clock":        "clock",
		"log_level":    "log-level",
		"log_format":   "log-format",
		"log_file":     "log-file",
		"metrics_file": "metrics-file",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

func setup(cmd *cobra.Command, args []string) error {
	v, err := initConfig(cmd)
	if err != nil {
		return err
	}
	cfg = v
	metrics = report.NewMetrics()
	session = nil
	childExit = 0

	switch f := cfg.GetString("output"); f {
	case "text", "json", "yaml", "table":
	default:
		return fmt.Errorf("unknown output format %q (want text, json, yaml or table)", f)
	}

	level := logging.ParseLevel(cfg.GetString("log_level"))
	jsonLogs := cfg.GetString("log_format") == "json"
	if path := cfg.GetString("log_file"); path != "" {
		fl, err := logging.NewFileLogger(path, level, jsonLogs)
		if err != nil {
			return err
		}
		logger = fl
	} else {
		logger = logging.NewLogger(level, jsonLogs)
		logger.SetOutput(cmd.ErrOrStderr())
	}
	logger = logger.WithField("command", cmd.Name())

	clock, err = observe.ParseClock(cfg.GetString("clock"))
	if err != nil {
		return err
	}

	if timeIt {
		session = observe.NewTimer(clock)
		session.Start()
		logger.Debug("timer started", map[string]interface{}{"clock": clockLabel(cfg.GetString("clock"))})
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	defer logger.Close()

	if session != nil {
		seconds := session.ElapsedSeconds()
		label := clockLabel(cfg.GetString("clock"))
		metrics.RecordReport(label, seconds)
		logger.Debug("timer reported", map[string]interface{}{"clock": label, "seconds": seconds})
		if err := observe.WriteElapsed(reportWriter(cmd), seconds); err != nil {
			return err
		}
		session = nil
	}

	if path := cfg.GetString("metrics_file"); path != "" {
		if err := report.WriteFile(path, metrics.Registry()); err != nil {
			return err
		}
		logger.Info("metrics written", map[string]interface{}{"path": path})
	}
	return nil
}

// IsTextOutput returns true if the plain console protocol is requested
func IsTextOutput() bool {
	return cfg == nil || cfg.GetString("output") == "text"
}

// reportWriter keeps structured stdout parseable by moving side output to stderr
func reportWriter(cmd *cobra.Command) io.Writer {
	if IsTextOutput() {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

// clockLabel normalizes a clock name for metrics and results
func clockLabel(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wall":
		return "wall"
	default:
		return "cpu"
	}
}

// exerciseOutcome classifies an exercise error for metrics
func exerciseOutcome(err error) string {
	var parseErr *console.ParseError
	switch {
	case err == nil:
		return report.OutcomeOK
	case errors.As(err, &parseErr), errors.Is(err, console.ErrNoInput):
		return report.OutcomeInvalidInput
	default:
		return report.OutcomeError
	}
}

// ExitCode maps the outcome of Execute to a process exit code
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	if childExit < 0 {
		return 1
	}
	return childExit
}
