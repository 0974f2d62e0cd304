// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-geometry/internal/export"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create, drop, or inspect the export tables",
	Long: `Schema manages the export tables: Elements, Vertexes, ElementAndEdges,
EdgesAndVertexes and, unless --creation-info=false, ModelCreationInfo.`,
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create every export table that does not exist yet",
	Long: `Create adds each missing table. Tables that already exist are left
untouched and reported, one line per table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSchema(func(ctx context.Context, s *export.Schema, diags *types.Diagnostics) error {
			created, err := s.CreateSchema(ctx, diags)
			for _, name := range created {
				fmt.Fprintf(os.Stdout, "created: %s\n", name)
			}
			return err
		})
	},
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the export tables",
	Long: `Drop removes every export table, but only when all of them exist.
Otherwise each missing table is reported and nothing is dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSchema(func(ctx context.Context, s *export.Schema, diags *types.Diagnostics) error {
			dropped, err := s.DropSchema(ctx, diags)
			for _, name := range dropped {
				fmt.Fprintf(os.Stdout, "dropped: %s\n", name)
			}
			return err
		})
	},
}

var schemaExistsCmd = &cobra.Command{
	Use:   "exists",
	Short: "Report which export tables exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSchema(func(ctx context.Context, s *export.Schema, _ *types.Diagnostics) error {
			for _, name := range s.Tables() {
				ok, err := s.TableExists(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "%-20s %t\n", name, ok)
			}
			return nil
		})
	},
}

func withSchema(fn func(context.Context, *export.Schema, *types.Diagnostics) error) error {
	db, err := openSink()
	if err != nil {
		return err
	}
	defer db.Close()

	var diags types.Diagnostics
	if err := fn(context.Background(), db.Schema(cfg.Database.CreationInfo), &diags); err != nil {
		return err
	}
	printDiagnostics(os.Stdout, diags.All())
	if n := len(diags.Errors()); n > 0 {
		return fmt.Errorf("%d table(s) not in the expected state", n)
	}
	return nil
}

func init() {
	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDropCmd)
	schemaCmd.AddCommand(schemaExistsCmd)
	rootCmd.AddCommand(schemaCmd)
}
