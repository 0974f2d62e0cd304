// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/extract-geometry/internal/export"
	"github.com/pdiddy/extract-geometry/internal/host/memory"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// openSink opens the configured database, taking the DSN from secrets when
// neither the config nor the flags set one.
func openSink() (*export.Database, error) {
	dbCfg := cfg.Database
	if dbCfg.DSN == "" {
		if dsn, ok := loadedSecrets.DSN(dbCfg.Dialect); ok {
			dbCfg.DSN = dsn
		}
	}
	return export.Open(dbCfg)
}

func openModel() (*memory.Model, error) {
	if cfg.Model.Path == "" {
		return nil, fmt.Errorf("no model file: set --model or model.path")
	}
	m, err := memory.LoadFile(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Model.LengthUnit != "" {
		if err := m.SetDisplay(memory.Display{LengthUnit: cfg.Model.LengthUnit, Precision: cfg.Model.Precision}); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// categoriesFrom parses category names; an empty list selects every category.
func categoriesFrom(names []string) ([]types.Category, error) {
	if len(names) == 0 {
		return append([]types.Category(nil), types.Categories...), nil
	}
	out := make([]types.Category, 0, len(names))
	for _, n := range names {
		c, err := types.ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func elementIDs(raw []string) ([]types.ElementID, error) {
	out := make([]types.ElementID, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid element id %q: %w", s, err)
		}
		out = append(out, types.ElementID(n))
	}
	return out, nil
}

func printDiagnostics(w io.Writer, diags []types.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
