package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// view is one command result in every output format
type view struct {
	data  interface{}
	text  func(w io.Writer) error
	table func(t *tablewriter.Table)
}

// render writes v in the configured output format
func render(w io.Writer, v view) error {
	format := "text"
	if cfg != nil {
		format = cfg.GetString("output")
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v.data)

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v.data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()

	case "table":
		if v.table == nil {
			return v.text(w)
		}
		table := tablewriter.NewWriter(w)
		v.table(table)
		return table.Render()

	default: // text
		return v.text(w)
	}
}
