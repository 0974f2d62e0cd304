// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/extract-geometry/pkg/types"
)

// ErrElementNotExported is returned when the sink holds no Elements row
// for the requested id.
var ErrElementNotExported = errors.New("element not exported")

// Reader reads exported rows back out of a sink.
//
// Vertexes and EdgesAndVertexes rows carry no element id, so ReadElement
// only yields an unambiguous graph from a sink that holds one element.
type Reader struct {
	db *Database
}

// NewReader returns a reader for db.
func NewReader(db *Database) *Reader {
	return &Reader{db: db}
}

// ReadElement loads every row of the element with the given id.
func (r *Reader) ReadElement(ctx context.Context, id types.ElementID) (ElementRows, error) {
	d := r.db.dialect
	db := r.db.db
	var out ElementRows

	err := db.QueryRowContext(ctx, d.selectSQL(elementsTable, "Id"), int64(id)).Scan(
		&out.Element.ID, &out.Element.UniqueID, &out.Element.TypeName, &out.Element.Category, &out.Element.Width)
	if errors.Is(err, sql.ErrNoRows) {
		return out, fmt.Errorf("%w: %d", ErrElementNotExported, id)
	}
	if err != nil {
		return out, fmt.Errorf("reading element %d: %w", id, err)
	}

	if err := queryRows(ctx, db, d.selectSQL(elementAndEdgesTable, "ElementId", "EdgeId"), []any{int64(id)}, func(s scanner) error {
		var e EdgeRow
		if err := s.Scan(&e.ElementID, &e.EdgeID, &e.IsAxisCurve); err != nil {
			return err
		}
		out.Edges = append(out.Edges, e)
		return nil
	}); err != nil {
		return out, fmt.Errorf("reading edges of %d: %w", id, err)
	}

	if err := queryRows(ctx, db, d.selectSQL(vertexesTable, "", "Id"), nil, func(s scanner) error {
		var v VertexRow
		if err := s.Scan(&v.ID, &v.X, &v.Y, &v.Z); err != nil {
			return err
		}
		out.Vertexes = append(out.Vertexes, v)
		return nil
	}); err != nil {
		return out, fmt.Errorf("reading vertexes: %w", err)
	}

	if err := queryRows(ctx, db, d.selectSQL(edgesAndVerticesTable, "", "EdgeId", "VertexId"), nil, func(s scanner) error {
		var ev EdgeVertexRow
		if err := s.Scan(&ev.VertexID, &ev.EdgeID, &ev.Status); err != nil {
			return err
		}
		out.EdgeVertexes = append(out.EdgeVertexes, ev)
		return nil
	}); err != nil {
		return out, fmt.Errorf("reading edge vertexes: %w", err)
	}
	sortEdgeVertexes(out.EdgeVertexes)

	exists, err := r.db.Schema(true).TableExists(ctx, TableModelCreationInfo)
	if err != nil || !exists {
		return out, err
	}
	var c CreationRow
	err = db.QueryRowContext(ctx, d.selectSQL(creationInfoTable, "ElementId"), int64(id)).Scan(
		&c.ElementID, &c.LevelID, &c.WallTypeID, &c.Height, &c.BaseOffset,
		&c.Flip, &c.TopConstraint, &c.TopOffset, &c.IsStructural)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return out, fmt.Errorf("reading creation info of %d: %w", id, err)
	default:
		out.Creation = &c
	}
	return out, nil
}

// sortEdgeVertexes puts each edge's start row before its end row. A closing
// edge ends on a lower vertex id than it starts on, so the query order alone
// does not.
func sortEdgeVertexes(evs []EdgeVertexRow) {
	rank := func(status string) int {
		r, err := types.ParseRole(status)
		if err != nil {
			return 2
		}
		return int(r)
	}
	sort.SliceStable(evs, func(i, j int) bool {
		if evs[i].EdgeID != evs[j].EdgeID {
			return evs[i].EdgeID < evs[j].EdgeID
		}
		return rank(evs[i].Status) < rank(evs[j].Status)
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func queryRows(ctx context.Context, db *sql.DB, query string, args []any, fn func(scanner) error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
