// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-geometry/internal/export"
	"github.com/pdiddy/extract-geometry/internal/graph"
	"github.com/pdiddy/extract-geometry/internal/pipeline"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Extract element graphs and print them without touching the database",
	Long: `Inspect runs the same extraction as export and prints, per element, the
normalized graph and the rows that export would insert.`,
	RunE: runInspect,
}

// inspected is the printed form of one element.
type inspected struct {
	Record types.ElementRecord `json:"record" yaml:"record"`
	Ends   []graph.EdgeEnds    `json:"ends" yaml:"ends"`
	Rows   export.ElementRows  `json:"rows" yaml:"rows"`
}

type inspectOutput struct {
	Category    types.Category     `json:"category" yaml:"category"`
	Elements    []inspected        `json:"elements" yaml:"elements"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	names, _ := cmd.Flags().GetStringSlice("category")
	categories, err := categoriesFrom(names)
	if err != nil {
		return err
	}
	rawIDs, _ := cmd.Flags().GetStringSlice("element")
	only, err := elementIDs(rawIDs)
	if err != nil {
		return err
	}

	model, err := openModel()
	if err != nil {
		return err
	}
	r := pipeline.NewRunner(model, pipeline.Options{Only: only, Logger: logger, Out: os.Stderr})

	var out []inspectOutput
	for _, c := range categories {
		var diags types.Diagnostics
		records, err := r.Extract(c, &diags)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", c, err)
		}
		o := inspectOutput{Category: c, Diagnostics: diags.All()}
		for _, rec := range records {
			o.Elements = append(o.Elements, inspected{Record: rec, Ends: graph.Endpoints(rec.Graph), Rows: export.Rows(rec)})
		}
		out = append(out, o)
	}

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return fmt.Errorf("unsupported format %q: use yaml or json", format)
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format: yaml or json")
	inspectCmd.Flags().StringSlice("category", nil, "categories to inspect (default all)")
	inspectCmd.Flags().StringSlice("element", nil, "inspect only these element ids")

	rootCmd.AddCommand(inspectCmd)
}
