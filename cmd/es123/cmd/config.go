package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration es123 runs with after layering flags over
ES123_* environment variables over the config file.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// EffectiveConfig is the resolved configuration
type EffectiveConfig struct {
	ConfigFile  string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	Clock       string `json:"clock" yaml:"clock"`
	Output      string `json:"output" yaml:"output"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFormat   string `json:"log_format" yaml:"log_format"`
	LogFile     string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

func effectiveConfig() EffectiveConfig {
	return EffectiveConfig{
		ConfigFile:  cfg.ConfigFileUsed(),
		Clock:       clockLabel(cfg.GetString("clock")),
		Output:      cfg.GetString("output"),
		LogLevel:    cfg.GetString("log_level"),
		LogFormat:   cfg.GetString("log_format"),
		LogFile:     cfg.GetString("log_file"),
		MetricsFile: cfg.GetString("metrics_file"),
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	ec := effectiveConfig()

	rows := [][2]string{
		{"config_file", orNone(ec.ConfigFile)},
		{"clock", ec.Clock},
		{"output", ec.Output},
		{"log_level", ec.LogLevel},
		{"log_format", ec.LogFormat},
		{"log_file", orNone(ec.LogFile)},
		{"metrics_file", orNone(ec.MetricsFile)},
	}

	return render(cmd.OutOrStdout(), view{
		data: ec,
		text: func(w io.Writer) error {
			for _, r := range rows {
				if _, err := fmt.Fprintf(w, "%-13s %s\n", r[0]+":", r[1]); err != nil {
					return err
				}
			}
			return nil
		},
		table: func(t *tablewriter.Table) {
			t.Header("Key", "Value")
			for _, r := range rows {
				t.Append(r[0], r[1])
			}
		},
	})
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
