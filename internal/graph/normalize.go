// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph turns an element's edges into a deduplicated vertex graph.
package graph

import "github.com/pdiddy/extract-geometry/pkg/types"

// Normalize builds the graph of one element. Edges keep their order and
// are indexed from 0; a non-nil axis is appended as a final edge marked as
// the primary axis. Each edge contributes a Start and an End role entry.
// A point becomes a vertex the first time it is seen; later points that
// are exactly equal, component by component, reuse it. There is no
// tolerance: points that differ by rounding noise stay distinct.
func Normalize(edges []types.Curve, axis types.Curve) types.ElementGraph {
	n := len(edges)
	if axis != nil {
		n++
	}
	g := types.ElementGraph{
		Edges: make([]types.Edge, 0, n),
		Roles: make([]types.VertexRole, 0, 2*n),
	}
	seen := make(map[types.Point]struct{}, 2*n)

	add := func(c types.Curve, primary bool) {
		idx := len(g.Edges)
		g.Edges = append(g.Edges, types.Edge{Index: idx, Curve: c, IsPrimaryAxis: primary})

		start, end := c.EndPoint(0), c.EndPoint(1)
		g.Roles = append(g.Roles,
			types.VertexRole{Point: start, EdgeIndex: idx, Role: types.RoleStart},
			types.VertexRole{Point: end, EdgeIndex: idx, Role: types.RoleEnd},
		)
		for _, p := range [2]types.Point{start, end} {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				g.Vertices = append(g.Vertices, p)
			}
		}
	}

	for _, c := range edges {
		add(c, false)
	}
	if axis != nil {
		add(axis, true)
	}
	return g
}

// EdgeEnds is the pair of vertex positions an edge runs between.
type EdgeEnds struct {
	Edge          int  `json:"edge" yaml:"edge"`
	Start         int  `json:"start" yaml:"start"`
	End           int  `json:"end" yaml:"end"`
	IsPrimaryAxis bool `json:"is_primary_axis" yaml:"is_primary_axis"`
}

// Endpoints resolves every role entry to its vertex position and returns
// one EdgeEnds per edge, in edge order. A role whose point is not a vertex
// resolves to -1.
func Endpoints(g types.ElementGraph) []EdgeEnds {
	idx := g.VertexIndex()
	out := make([]EdgeEnds, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = EdgeEnds{Edge: i, Start: -1, End: -1, IsPrimaryAxis: e.IsPrimaryAxis}
	}
	for _, r := range g.Roles {
		if r.EdgeIndex < 0 || r.EdgeIndex >= len(out) {
			continue
		}
		v, ok := idx[r.Point]
		if !ok {
			v = -1
		}
		if r.Role == types.RoleStart {
			out[r.EdgeIndex].Start = v
		} else {
			out[r.EdgeIndex].End = v
		}
	}
	return out
}
