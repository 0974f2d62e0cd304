// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func seg(x0, y0, x1, y1 float64) Line {
	return Line{From: Point{X: x0, Y: y0}, To: Point{X: x1, Y: y1}}
}

func square() ElementGraph {
	p := []Point{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	g := ElementGraph{Vertices: p}
	for i := 0; i < 4; i++ {
		from, to := p[i], p[(i+1)%4]
		g.Edges = append(g.Edges, Edge{Index: i, Curve: Line{From: from, To: to}})
		g.Roles = append(g.Roles,
			VertexRole{Point: from, EdgeIndex: i, Role: RoleStart},
			VertexRole{Point: to, EdgeIndex: i, Role: RoleEnd})
	}
	return g
}

func TestElementGraphValidate(t *testing.T) {
	g := square()
	require.NoError(t, g.Validate())
	require.NoError(t, (&ElementGraph{}).Validate())

	tests := []struct {
		name   string
		mutate func(g *ElementGraph)
	}{
		{"missing role", func(g *ElementGraph) { g.Roles = g.Roles[:7] }},
		{"edge index out of order", func(g *ElementGraph) { g.Edges[2].Index = 5 }},
		{"two starts", func(g *ElementGraph) { g.Roles[1].Role = RoleStart }},
		{"duplicate vertex", func(g *ElementGraph) { g.Vertices = append(g.Vertices, g.Vertices[0]) }},
		{"unreferenced vertex", func(g *ElementGraph) { g.Vertices = append(g.Vertices, Point{Z: 9}) }},
		{"role point not a vertex", func(g *ElementGraph) { g.Roles[0].Point = Point{Z: 9} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := square()
			tt.mutate(&g)
			assert.Error(t, g.Validate())
		})
	}
}

func TestPointStringsRoundTrip(t *testing.T) {
	for _, p := range []Point{
		{X: 0.1, Y: 0.2, Z: 0.30000000000000004},
		{X: -12.5, Y: 1e-9, Z: 123456789.123},
		{X: math.Copysign(0, -1)},
	} {
		x, y, z := p.Strings()
		got, err := ParsePoint(x, y, z)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "(1, 2.5, -3)", Point{X: 1, Y: 2.5, Z: -3}.String())

	_, err := ParsePoint("1", "two", "3")
	assert.Error(t, err)
}

func TestRoleText(t *testing.T) {
	out, err := yaml.Marshal(VertexRole{Point: Point{X: 1}, EdgeIndex: 3, Role: RoleEnd})
	require.NoError(t, err)
	assert.Contains(t, string(out), "role: End Point")

	var r VertexRole
	require.NoError(t, yaml.Unmarshal(out, &r))
	assert.Equal(t, RoleEnd, r.Role)

	_, err = ParseRole("Mid Point")
	assert.Error(t, err)
}

func TestCurveEndPoints(t *testing.T) {
	l := seg(0, 0, 3, 4)
	assert.Equal(t, Point{}, l.EndPoint(0))
	assert.Equal(t, Point{X: 3, Y: 4}, l.EndPoint(1))

	a := Arc{Start: Point{X: 1}, End: Point{Y: 1}}
	assert.Equal(t, Point{X: 1}, a.EndPoint(0))
	assert.Equal(t, Point{Y: 1}, a.EndPoint(1))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"wall", CategoryWall},
		{"Walls", CategoryWall},
		{" FLOOR ", CategoryFloor},
		{"structural columns", CategoryColumn},
		{"framing", CategoryStructuralFraming},
		{"Structural Framing", CategoryStructuralFraming},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseCategory("roof")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestWallMissingReferences(t *testing.T) {
	w := NewWallCreation()
	assert.Equal(t, []string{"level", "wall type", "top constraint"}, w.MissingReferences(InvalidElementID))

	w.WallTypeID = 301
	w.TopConstraintID = 12
	assert.Empty(t, w.MissingReferences(11))

	md := CreationMetadata{Category: CategoryFloor, Payload: &FloorCreation{}}
	_, ok := md.Wall()
	assert.False(t, ok)
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	d.Add(DeletionWarning, 6001, "unable to delete %s", "Shaft Opening")
	d.Add(RowExportError, 1002, "inserting into Elements: %v", "duplicate key")
	d.Append(Diagnostic{Kind: SchemaStateError, ElementID: InvalidElementID, Message: "Elements table already exists"})

	assert.Equal(t, 3, d.Len())
	assert.Len(t, d.Warnings(), 1)
	assert.Len(t, d.Errors(), 2)
	assert.Len(t, d.OfKind(RowExportError), 1)
	assert.Equal(t, "deletion-warning: element 6001: unable to delete Shaft Opening", d.All()[0].String())
	assert.Equal(t, "schema-state-error: Elements table already exists", d.All()[2].String())

	all := d.All()
	all[0].Message = "changed"
	assert.NotEqual(t, "changed", d.All()[0].Message)
}
