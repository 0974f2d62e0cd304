// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// fileSpec is the YAML layout of a model file.
type fileSpec struct {
	Display  Display       `yaml:"display"`
	Elements []elementSpec `yaml:"elements"`
}

type elementSpec struct {
	ID       types.ElementID  `yaml:"id"`
	UniqueID string           `yaml:"unique_id"`
	Category string           `yaml:"category"`
	Name     string           `yaml:"name"`
	LevelID  *types.ElementID `yaml:"level_id"`
	TypeID   *types.ElementID `yaml:"type_id"`
	HostID   *types.ElementID `yaml:"host_id"`
	Location *curveSpec       `yaml:"location"`
	Flipped  bool             `yaml:"flipped"`
	Width    float64          `yaml:"width"`

	// Pinned elements refuse deletion.
	Pinned     bool            `yaml:"pinned"`
	Geometry   []objectSpec    `yaml:"geometry"`
	Parameters []parameterSpec `yaml:"parameters"`
}

// curveSpec is stored as-is in model state, so it carries msgpack tags too.
type curveSpec struct {
	Kind   string       `yaml:"kind" msgpack:"kind"`
	Points [][3]float64 `yaml:"points" msgpack:"points"`

	// CutBy names the element whose cut produced this edge; the edge is
	// gone once that element is deleted and the model regenerated.
	CutBy *types.ElementID `yaml:"cut_by,omitempty" msgpack:"cut_by"`

	// Join marks an edge produced by a join with a neighbouring element.
	Join bool `yaml:"join,omitempty" msgpack:"join"`
}

type objectSpec struct {
	Solid    *solidSpec    `yaml:"solid,omitempty" msgpack:"solid"`
	Instance *instanceSpec `yaml:"instance,omitempty" msgpack:"instance"`
}

type solidSpec struct {
	Edges []curveSpec `yaml:"edges" msgpack:"edges"`
}

type instanceSpec struct {
	Objects []objectSpec `yaml:"objects" msgpack:"objects"`
}

type parameterSpec struct {
	Name string `yaml:"name"`

	// Storage is double, length, integer, yes_no, string, element_id, or none.
	Storage string `yaml:"storage"`
	Value   string `yaml:"value"`
	Display string `yaml:"display"`
}

func (c curveSpec) validate() error {
	switch c.Kind {
	case "line", "":
		if len(c.Points) != 2 {
			return fmt.Errorf("line needs 2 points, got %d", len(c.Points))
		}
	case "arc":
		if len(c.Points) != 3 {
			return fmt.Errorf("arc needs start, end and center points, got %d", len(c.Points))
		}
	default:
		return fmt.Errorf("unsupported curve kind %q", c.Kind)
	}
	return nil
}

func (c curveSpec) curve() types.Curve {
	pt := func(i int) types.Point {
		return types.Point{X: c.Points[i][0], Y: c.Points[i][1], Z: c.Points[i][2]}
	}
	if c.Kind == "arc" {
		return types.Arc{Start: pt(0), End: pt(1), Center: pt(2)}
	}
	return types.Line{From: pt(0), To: pt(1)}
}

func validateObjects(objs []objectSpec) error {
	for _, o := range objs {
		if (o.Solid == nil) == (o.Instance == nil) {
			return fmt.Errorf("geometry object must be exactly one of solid or instance")
		}
		if o.Solid != nil {
			for _, e := range o.Solid.Edges {
				if err := e.validate(); err != nil {
					return err
				}
			}
		}
		if o.Instance != nil {
			if err := validateObjects(o.Instance.Objects); err != nil {
				return err
			}
		}
	}
	return nil
}

func optionalID(id *types.ElementID) types.ElementID {
	if id == nil {
		return types.InvalidElementID
	}
	return *id
}

// toState converts a loaded element into model state.
func (s elementSpec) toState() (elementState, error) {
	if s.Category == "" {
		return elementState{}, fmt.Errorf("element %d: category is required", s.ID)
	}
	if s.Location != nil {
		if err := s.Location.validate(); err != nil {
			return elementState{}, fmt.Errorf("element %d location: %w", s.ID, err)
		}
	}
	if err := validateObjects(s.Geometry); err != nil {
		return elementState{}, fmt.Errorf("element %d geometry: %w", s.ID, err)
	}

	uniqueID := s.UniqueID
	if uniqueID == "" {
		uniqueID = fmt.Sprintf("%s-%08x", uuid.NewString(), int64(s.ID))
	}

	st := elementState{
		ID:           s.ID,
		UniqueID:     uniqueID,
		Category:     s.Category,
		Name:         s.Name,
		LevelID:      optionalID(s.LevelID),
		TypeID:       optionalID(s.TypeID),
		HostID:       optionalID(s.HostID),
		Location:     s.Location,
		Flipped:      s.Flipped,
		Width:        s.Width,
		Pinned:       s.Pinned,
		JoinsAllowed: true,
		Geometry:     s.Geometry,
	}
	for _, p := range s.Parameters {
		ps, err := p.toState()
		if err != nil {
			return elementState{}, fmt.Errorf("element %d parameter %q: %w", s.ID, p.Name, err)
		}
		st.Parameters = append(st.Parameters, ps)
	}
	return st, nil
}

func (p parameterSpec) toState() (parameterState, error) {
	ps := parameterState{Name: p.Name, Display: p.Display}
	value := strings.TrimSpace(p.Value)
	var err error

	switch p.Storage {
	case "double", "length":
		ps.Storage = host.StorageDouble
		ps.Length = p.Storage == "length"
		if value != "" {
			ps.Double, err = strconv.ParseFloat(value, 64)
		}
	case "integer":
		ps.Storage = host.StorageInteger
		if value != "" {
			ps.Integer, err = strconv.ParseInt(value, 10, 64)
		}
	case "yes_no":
		ps.Storage = host.StorageInteger
		ps.YesNo = true
		var b bool
		if value != "" {
			b, err = strconv.ParseBool(value)
		}
		if b {
			ps.Integer = 1
		}
	case "string":
		ps.Storage = host.StorageString
		ps.Text = p.Value
	case "element_id":
		ps.Storage = host.StorageElementID
		ps.ID = types.InvalidElementID
		if value != "" {
			var n int64
			n, err = strconv.ParseInt(value, 10, 64)
			ps.ID = types.ElementID(n)
		}
	case "none", "":
		ps.Storage = host.StorageNone
	default:
		return parameterState{}, fmt.Errorf("unsupported storage %q", p.Storage)
	}
	if err != nil {
		return parameterState{}, fmt.Errorf("parsing value %q: %w", p.Value, err)
	}
	return ps, nil
}
