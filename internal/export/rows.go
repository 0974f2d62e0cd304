// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/extract-geometry/internal/graph"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// ElementRow is one Elements row.
type ElementRow struct {
	ID       int64  `json:"id" yaml:"id"`
	UniqueID string `json:"unique_id" yaml:"unique_id"`
	TypeName string `json:"type_name" yaml:"type_name"`
	Category string `json:"category" yaml:"category"`
	Width    string `json:"width" yaml:"width"`
}

// EdgeRow is one ElementAndEdges row.
type EdgeRow struct {
	ElementID   int64 `json:"element_id" yaml:"element_id"`
	EdgeID      int   `json:"edge_id" yaml:"edge_id"`
	IsAxisCurve bool  `json:"is_axis_curve" yaml:"is_axis_curve"`
}

// VertexRow is one Vertexes row.
type VertexRow struct {
	ID int    `json:"id" yaml:"id"`
	X  string `json:"x" yaml:"x"`
	Y  string `json:"y" yaml:"y"`
	Z  string `json:"z" yaml:"z"`
}

// EdgeVertexRow is one EdgesAndVertexes row.
type EdgeVertexRow struct {
	VertexID int    `json:"vertex_id" yaml:"vertex_id"`
	EdgeID   int    `json:"edge_id" yaml:"edge_id"`
	Status   string `json:"status" yaml:"status"`
}

// CreationRow is one ModelCreationInfo row.
type CreationRow struct {
	ElementID     int64   `json:"element_id" yaml:"element_id"`
	LevelID       int64   `json:"level_id" yaml:"level_id"`
	WallTypeID    int64   `json:"wall_type_id" yaml:"wall_type_id"`
	Height        float64 `json:"height" yaml:"height"`
	BaseOffset    float64 `json:"base_offset" yaml:"base_offset"`
	Flip          bool    `json:"flip" yaml:"flip"`
	TopConstraint int64   `json:"top_constraint" yaml:"top_constraint"`
	TopOffset     float64 `json:"top_offset" yaml:"top_offset"`
	IsStructural  bool    `json:"is_structural" yaml:"is_structural"`
}

// ElementRows is every row one element exports to.
type ElementRows struct {
	Element      ElementRow      `json:"element" yaml:"element"`
	Edges        []EdgeRow       `json:"edges" yaml:"edges"`
	Vertexes     []VertexRow     `json:"vertexes" yaml:"vertexes"`
	EdgeVertexes []EdgeVertexRow `json:"edge_vertexes" yaml:"edge_vertexes"`
	Creation     *CreationRow    `json:"creation,omitempty" yaml:"creation,omitempty"`

	// CreationSkipped explains why a wall's creation metadata has no row.
	CreationSkipped string `json:"creation_skipped,omitempty" yaml:"creation_skipped,omitempty"`
}

// Rows maps one element record onto its relational rows.
func Rows(rec types.ElementRecord) ElementRows {
	id := int64(rec.ID)
	rows := ElementRows{
		Element: ElementRow{
			ID:       id,
			UniqueID: rec.UniqueID,
			TypeName: rec.TypeName,
			Category: rec.CategoryName,
			Width:    strconv.FormatFloat(rec.Width, 'f', -1, 64),
		},
	}

	g := rec.Graph
	for _, e := range g.Edges {
		rows.Edges = append(rows.Edges, EdgeRow{ElementID: id, EdgeID: e.Index, IsAxisCurve: e.IsPrimaryAxis})
	}
	for i, v := range g.Vertices {
		x, y, z := v.Strings()
		rows.Vertexes = append(rows.Vertexes, VertexRow{ID: i, X: x, Y: y, Z: z})
	}
	idx := g.VertexIndex()
	for _, r := range g.Roles {
		vid, ok := idx[r.Point]
		if !ok {
			vid = -1
		}
		rows.EdgeVertexes = append(rows.EdgeVertexes, EdgeVertexRow{VertexID: vid, EdgeID: r.EdgeIndex, Status: r.Role.String()})
	}

	if rec.Creation != nil {
		if w, ok := rec.Creation.Wall(); ok {
			if missing := w.MissingReferences(rec.Creation.LevelID); len(missing) > 0 {
				rows.CreationSkipped = "missing " + strings.Join(missing, ", ")
			} else {
				rows.Creation = &CreationRow{
					ElementID:     id,
					LevelID:       int64(rec.Creation.LevelID),
					WallTypeID:    int64(w.WallTypeID),
					Height:        w.Height,
					BaseOffset:    w.BaseOffset,
					Flip:          w.Flipped,
					TopConstraint: int64(w.TopConstraintID),
					TopOffset:     w.TopOffset,
					IsStructural:  w.IsStructural,
				}
			}
		}
	}
	return rows
}

// Reconstructed is an element graph rebuilt from its rows.
type Reconstructed struct {
	Vertices []types.Point
	Edges    []graph.EdgeEnds
}

// Reconstruct rebuilds the vertex list and the edge/vertex pairing from
// an element's rows.
func Reconstruct(rows ElementRows) (Reconstructed, error) {
	vertexes := append([]VertexRow(nil), rows.Vertexes...)
	sort.Slice(vertexes, func(i, j int) bool { return vertexes[i].ID < vertexes[j].ID })

	var out Reconstructed
	for i, v := range vertexes {
		if v.ID != i {
			return Reconstructed{}, fmt.Errorf("vertex ids are not contiguous: expected %d, found %d", i, v.ID)
		}
		p, err := types.ParsePoint(v.X, v.Y, v.Z)
		if err != nil {
			return Reconstructed{}, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
		out.Vertices = append(out.Vertices, p)
	}

	edges := append([]EdgeRow(nil), rows.Edges...)
	sort.Slice(edges, func(i, j int) bool { return edges[i].EdgeID < edges[j].EdgeID })
	pos := make(map[int]int, len(edges))
	for i, e := range edges {
		pos[e.EdgeID] = i
		out.Edges = append(out.Edges, graph.EdgeEnds{Edge: e.EdgeID, Start: -1, End: -1, IsPrimaryAxis: e.IsAxisCurve})
	}

	for _, ev := range rows.EdgeVertexes {
		i, ok := pos[ev.EdgeID]
		if !ok {
			return Reconstructed{}, fmt.Errorf("vertex %d refers to unknown edge %d", ev.VertexID, ev.EdgeID)
		}
		if ev.VertexID < 0 || ev.VertexID >= len(out.Vertices) {
			return Reconstructed{}, fmt.Errorf("edge %d refers to unknown vertex %d", ev.EdgeID, ev.VertexID)
		}
		role, err := types.ParseRole(ev.Status)
		if err != nil {
			return Reconstructed{}, err
		}
		if role == types.RoleStart {
			out.Edges[i].Start = ev.VertexID
		} else {
			out.Edges[i].End = ev.VertexID
		}
	}
	return out, nil
}
