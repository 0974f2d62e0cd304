// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Result counts what one Export call wrote.
type Result struct {
	Elements int `json:"elements" yaml:"elements"`
	Inserted int `json:"inserted" yaml:"inserted"`
	Failed   int `json:"failed" yaml:"failed"`
}

// Exporter writes element records into the export schema. Each row is
// inserted on its own; a failed insert is reported and the rest of the
// batch still runs.
type Exporter struct {
	db           *Database
	creationInfo bool
	logger       *slog.Logger
}

// NewExporter returns an exporter for db. ModelCreationInfo rows are
// written only when creationInfo is set.
func NewExporter(db *Database, creationInfo bool, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{db: db, creationInfo: creationInfo, logger: logger}
}

// Export writes every record. The returned error is non-nil only when no
// connection could be acquired; row failures land in diags.
func (x *Exporter) Export(ctx context.Context, records []types.ElementRecord, diags *types.Diagnostics) (Result, error) {
	var res Result
	conn, err := x.db.db.Conn(ctx)
	if err != nil {
		return res, fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	d := x.db.dialect
	insert := func(rec types.ElementRecord, t table, args ...any) {
		if _, err := conn.ExecContext(ctx, d.insertSQL(t), args...); err != nil {
			res.Failed++
			diags.Add(types.RowExportError, rec.ID, "inserting into %s: %v", t.name, err)
			x.logger.Warn("row insert failed", "table", t.name, "element", int64(rec.ID), "error", err)
			return
		}
		res.Inserted++
	}

	for _, rec := range records {
		rows := Rows(rec)
		res.Elements++

		e := rows.Element
		insert(rec, elementsTable, e.ID, e.UniqueID, e.TypeName, e.Category, e.Width)
		for _, r := range rows.Edges {
			insert(rec, elementAndEdgesTable, r.ElementID, r.EdgeID, r.IsAxisCurve)
		}
		for _, r := range rows.Vertexes {
			insert(rec, vertexesTable, r.ID, r.X, r.Y, r.Z)
		}
		for _, r := range rows.EdgeVertexes {
			insert(rec, edgesAndVerticesTable, r.VertexID, r.EdgeID, r.Status)
		}

		if !x.creationInfo {
			continue
		}
		switch {
		case rows.Creation != nil:
			c := rows.Creation
			insert(rec, creationInfoTable, c.ElementID, c.LevelID, c.WallTypeID, c.Height,
				c.BaseOffset, c.Flip, c.TopConstraint, c.TopOffset, c.IsStructural)
		case rows.CreationSkipped != "":
			diags.Add(types.MetadataSkipped, rec.ID, "creation info not written: %s", rows.CreationSkipped)
		}
	}

	x.logger.Debug("export finished", "elements", res.Elements, "inserted", res.Inserted, "failed", res.Failed)
	return res, nil
}
