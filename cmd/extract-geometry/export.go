// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/extract-geometry/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract element graphs and write them to the database",
	Long: `Export runs each selected category in turn: collect its elements, strip
openings, hosted instances and joins inside a rolled-back transaction, read
and normalize every element's edges, and insert the rows.

A category whose sandbox fails is skipped; the others still run. The command
exits non-zero when any category was skipped.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	categories, err := categoriesFrom(cfg.Export.Categories)
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
	db, err := openSink()
	if err != nil {
		return err
	}
	defer db.Close()

	r := pipeline.NewRunner(model, pipeline.Options{
		CreationInfo: cfg.Database.CreationInfo,
		Only:         only,
		Logger:       logger,
		Out:          os.Stdout,
	})
	summaries := r.RunAll(context.Background(), categories, db)

	fmt.Fprintln(os.Stdout)
	aborted := 0
	for _, s := range summaries {
		fmt.Fprintf(os.Stdout, "%-8s %4d elements  %6d rows  %3d failed  %3d warnings  %3d errors\n",
			s.Category, s.Elements, s.Inserted, s.Failed, len(s.Warnings), len(s.Errors))
		printDiagnostics(os.Stdout, s.Warnings)
		printDiagnostics(os.Stdout, s.Errors)
		if s.Aborted() {
			aborted++
		}
	}
	if aborted > 0 {
		return fmt.Errorf("%d category run(s) aborted", aborted)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringSlice("category", nil, "categories to export: wall, floor, column, framing (default all)")
	exportCmd.Flags().StringSlice("element", nil, "export only these element ids")
	_ = viper.BindPFlag("export.categories", exportCmd.Flags().Lookup("category"))

	rootCmd.AddCommand(exportCmd)
}
