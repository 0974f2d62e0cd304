// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/extract-geometry/pkg/types"
)

func pt(x, y, z float64) types.Point { return types.Point{X: x, Y: y, Z: z} }

func seg(a, b types.Point) types.Curve { return types.Line{From: a, To: b} }

func TestNormalize_SharedEndpoint(t *testing.T) {
	p0, p1, p2 := pt(0, 0, 0), pt(1, 0, 0), pt(1, 1, 0)

	g := Normalize([]types.Curve{seg(p0, p1), seg(p1, p2)}, nil)

	assert.Equal(t, []types.Point{p0, p1, p2}, g.Vertices)
	assert.Equal(t, []types.VertexRole{
		{Point: p0, EdgeIndex: 0, Role: types.RoleStart},
		{Point: p1, EdgeIndex: 0, Role: types.RoleEnd},
		{Point: p1, EdgeIndex: 1, Role: types.RoleStart},
		{Point: p2, EdgeIndex: 1, Role: types.RoleEnd},
	}, g.Roles)
	require.NoError(t, g.Validate())
}

func TestNormalize_AxisAppendedLast(t *testing.T) {
	a, b, c := pt(0, 0, 0), pt(4, 0, 0), pt(4, 0, 3)
	axis := seg(pt(0, 0, 0), pt(4, 0, 0))

	g := Normalize([]types.Curve{seg(a, b), seg(b, c)}, axis)

	require.Len(t, g.Edges, 3)
	assert.False(t, g.Edges[0].IsPrimaryAxis)
	assert.False(t, g.Edges[1].IsPrimaryAxis)
	assert.True(t, g.Edges[2].IsPrimaryAxis)
	assert.Equal(t, 2, g.Edges[2].Index)
	// The axis end points coincide with existing vertices.
	assert.Len(t, g.Vertices, 3)
	assert.Len(t, g.Roles, 6)
	require.NoError(t, g.Validate())
}

func TestNormalize_ExactMatchOnly(t *testing.T) {
	noisy := pt(1+1e-12, 0, 0)

	g := Normalize([]types.Curve{seg(pt(0, 0, 0), pt(1, 0, 0)), seg(noisy, pt(2, 0, 0))}, nil)

	assert.Len(t, g.Vertices, 4, "near-equal points are distinct vertices")
	require.NoError(t, g.Validate())
}

func TestNormalize_NegativeZeroEqualsZero(t *testing.T) {
	g := Normalize([]types.Curve{
		seg(pt(0, 0, 0), pt(1, 0, 0)),
		seg(pt(1, 0, 0), pt(math.Copysign(0, -1), 0, 0)),
	}, nil)

	assert.Len(t, g.Vertices, 2)
}

func TestNormalize_Empty(t *testing.T) {
	g := Normalize(nil, nil)

	assert.Empty(t, g.Edges)
	assert.Empty(t, g.Vertices)
	assert.Empty(t, g.Roles)
	require.NoError(t, g.Validate())
}

func TestNormalize_ClosedLoopInvariants(t *testing.T) {
	// Box outline: 12 edges, 8 corners.
	corners := []types.Point{
		pt(0, 0, 0), pt(2, 0, 0), pt(2, 1, 0), pt(0, 1, 0),
		pt(0, 0, 3), pt(2, 0, 3), pt(2, 1, 3), pt(0, 1, 3),
	}
	pairs := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	var edges []types.Curve
	for _, p := range pairs {
		edges = append(edges, seg(corners[p[0]], corners[p[1]]))
	}

	g := Normalize(edges, nil)

	assert.Len(t, g.Vertices, 8)
	assert.Len(t, g.Roles, 24)
	require.NoError(t, g.Validate())

	ends := Endpoints(g)
	require.Len(t, ends, 12)
	for i, e := range ends {
		assert.Equal(t, corners[pairs[i][0]], g.Vertices[e.Start])
		assert.Equal(t, corners[pairs[i][1]], g.Vertices[e.End])
	}
}

func TestNormalize_ArcEndpoints(t *testing.T) {
	arc := types.Arc{Start: pt(1, 0, 0), End: pt(0, 1, 0), Center: pt(0, 0, 0)}

	g := Normalize([]types.Curve{arc}, nil)

	assert.Equal(t, []types.Point{pt(1, 0, 0), pt(0, 1, 0)}, g.Vertices)
}

func TestEndpoints_DegenerateEdge(t *testing.T) {
	p := pt(3, 3, 3)

	g := Normalize([]types.Curve{seg(p, p)}, nil)

	assert.Len(t, g.Vertices, 1)
	assert.Equal(t, []EdgeEnds{{Edge: 0, Start: 0, End: 0}}, Endpoints(g))
	require.NoError(t, g.Validate())
}
