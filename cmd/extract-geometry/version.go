package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-geometry/internal/export"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of extract-geometry",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return writeVersion(cmd.OutOrStdout(), verbose)
	},
}

func writeVersion(w io.Writer, verbose bool) error {
	if _, err := fmt.Fprintf(w, "extract-geometry %s\n", version); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	dialects := []string{string(export.SQLite3), string(export.SQLite), string(export.Postgres), string(export.MySQL)}
	cats := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		cats[i] = string(c)
	}
	_, err := fmt.Fprintf(w, "dialects:   %s\ncategories: %s\n", strings.Join(dialects, ", "), strings.Join(cats, ", "))
	return err
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "also list supported dialects and categories")
	rootCmd.AddCommand(versionCmd)
}
