// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ElementID identifies an element within one host model.
type ElementID int64

// InvalidElementID marks an absent optional element reference.
const InvalidElementID ElementID = -1

// Valid reports whether id refers to an element.
func (id ElementID) Valid() bool {
	return id != InvalidElementID
}

// Role says which end of an edge a vertex role entry describes.
type Role int

const (
	RoleStart Role = iota
	RoleEnd
)

// String returns the label stored in the EdgesAndVertexes.Status column.
func (r Role) String() string {
	if r == RoleStart {
		return "Start Point"
	}
	return "End Point"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole parses a Status column value.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Start Point":
		return RoleStart, nil
	case "End Point":
		return RoleEnd, nil
	}
	return 0, fmt.Errorf("unknown vertex role %q", s)
}

// Edge is one boundary curve of an element, or its modeling axis.
type Edge struct {
	// Index is the 0-based position assigned during extraction.
	Index int `json:"index" yaml:"index"`

	Curve Curve `json:"-" yaml:"-"`

	// IsPrimaryAxis marks an edge taken from the element's modeling axis
	// (a wall's centerline) rather than from its solids.
	IsPrimaryAxis bool `json:"is_primary_axis" yaml:"is_primary_axis"`
}

// VertexRole records one end point of one edge before deduplication.
type VertexRole struct {
	Point     Point `json:"point" yaml:"point"`
	EdgeIndex int   `json:"edge_index" yaml:"edge_index"`
	Role      Role  `json:"role" yaml:"role"`
}

// ElementGraph is the deduplicated edge/vertex graph of one element.
type ElementGraph struct {
	Edges    []Edge       `json:"edges" yaml:"edges"`
	Vertices []Point      `json:"vertices" yaml:"vertices"`
	Roles    []VertexRole `json:"roles" yaml:"roles"`
}

// VertexIndex maps each vertex to its position in Vertices.
func (g *ElementGraph) VertexIndex() map[Point]int {
	idx := make(map[Point]int, len(g.Vertices))
	for i, v := range g.Vertices {
		if _, ok := idx[v]; !ok {
			idx[v] = i
		}
	}
	return idx
}

// Validate checks the structural invariants of the graph: two role entries
// per edge (one Start, one End), role edge indexes in range, distinct
// vertices each referenced by a role.
func (g *ElementGraph) Validate() error {
	if len(g.Roles) != 2*len(g.Edges) {
		return fmt.Errorf("graph has %d roles for %d edges", len(g.Roles), len(g.Edges))
	}
	for i, e := range g.Edges {
		if e.Index != i {
			return fmt.Errorf("edge at position %d has index %d", i, e.Index)
		}
	}

	starts := make([]int, len(g.Edges))
	ends := make([]int, len(g.Edges))
	for _, r := range g.Roles {
		if r.EdgeIndex < 0 || r.EdgeIndex >= len(g.Edges) {
			return fmt.Errorf("role references edge %d of %d", r.EdgeIndex, len(g.Edges))
		}
		if r.Role == RoleStart {
			starts[r.EdgeIndex]++
		} else {
			ends[r.EdgeIndex]++
		}
	}
	for i := range g.Edges {
		if starts[i] != 1 || ends[i] != 1 {
			return fmt.Errorf("edge %d has %d start and %d end roles", i, starts[i], ends[i])
		}
	}

	idx := g.VertexIndex()
	if len(idx) != len(g.Vertices) {
		return fmt.Errorf("graph has duplicate vertices")
	}
	used := make([]bool, len(g.Vertices))
	for _, r := range g.Roles {
		i, ok := idx[r.Point]
		if !ok {
			return fmt.Errorf("role point %s is not a vertex", r.Point)
		}
		used[i] = true
	}
	for i, u := range used {
		if !u {
			return fmt.Errorf("vertex %d is not referenced by any role", i)
		}
	}
	return nil
}

// ElementRecord is everything extracted from one model element.
type ElementRecord struct {
	ID           ElementID `json:"id" yaml:"id"`
	UniqueID     string    `json:"unique_id" yaml:"unique_id"`
	CategoryName string    `json:"category" yaml:"category"`
	TypeName     string    `json:"type_name" yaml:"type_name"`
	Width        float64   `json:"width" yaml:"width"`

	Graph ElementGraph `json:"graph" yaml:"graph"`

	// Creation is nil when no modeling metadata was extracted.
	Creation *CreationMetadata `json:"creation,omitempty" yaml:"creation,omitempty"`
}
