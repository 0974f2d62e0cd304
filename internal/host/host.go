// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package host defines the narrow view of a building model that extraction
// consumes. The model owns element selection, geometry evaluation, and the
// transaction primitive; nothing in this package implements them.
package host

import (
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// DetailLevel is the level of detail geometry is evaluated at.
type DetailLevel int

const (
	DetailCoarse DetailLevel = iota
	DetailMedium
	DetailFine
)

// GeometryOptions controls geometry evaluation.
type GeometryOptions struct {
	DetailLevel       DetailLevel
	ComputeReferences bool
}

// GeometryObject is a *Solid or an *Instance.
type GeometryObject interface {
	geometryObject()
}

// Solid is a closed volume; only its boundary edges are exposed.
type Solid struct {
	Edges []types.Curve
}

// Instance is an indirection to nested geometry, such as a family symbol
// placed in the model.
type Instance struct {
	Objects []GeometryObject
}

func (*Solid) geometryObject()    {}
func (*Instance) geometryObject() {}

// GeometryElement is the top-level geometry of one element.
type GeometryElement []GeometryObject

// Element is a handle to one model element with the properties extraction
// reads directly.
type Element struct {
	ID       types.ElementID
	UniqueID string

	// Category is the host category name, e.g. "Walls" or "Doors".
	Category string
	Name     string

	LevelID types.ElementID
	TypeID  types.ElementID

	// HostID is the element this one is hosted on, or InvalidElementID.
	HostID types.ElementID

	// Location is the modeling axis (a wall's centerline), or nil.
	Location types.Curve
	Flipped  bool
	Width    float64
}

// StorageKind is how a parameter value is stored.
type StorageKind int

const (
	StorageNone StorageKind = iota
	StorageDouble
	StorageInteger
	StorageString
	StorageElementID
)

func (k StorageKind) String() string {
	switch k {
	case StorageDouble:
		return "double"
	case StorageInteger:
		return "integer"
	case StorageString:
		return "string"
	case StorageElementID:
		return "element_id"
	}
	return "none"
}

// Parameter is one named parameter value of an element. Only the field
// matching Storage is meaningful; Display is the value as the host formats
// it for users.
type Parameter struct {
	Name    string
	Storage StorageKind

	// YesNo marks an integer parameter holding a boolean.
	YesNo bool

	Double  float64
	Integer int64
	Text    string
	ID      types.ElementID
	Display string
}

// Model is the host building model.
type Model interface {
	// CollectElements returns the non-type elements of one category.
	CollectElements(category types.Category) ([]Element, error)

	// CollectOpenings returns every opening element (shaft, floor, wall
	// openings and similar cutters).
	CollectOpenings() ([]Element, error)

	// CollectHostedInstances returns door, window, and generic model
	// instances that have a host.
	CollectHostedInstances() ([]Element, error)

	Geometry(id types.ElementID, opts GeometryOptions) (GeometryElement, error)
	Parameters(id types.ElementID) ([]Parameter, error)
	Parameter(id types.ElementID, name string) (Parameter, bool, error)

	DisallowJoins(id types.ElementID) error

	// DeleteElement deletes an element and returns the ids actually
	// deleted. An empty result means the host declined the deletion.
	DeleteElement(id types.ElementID) ([]types.ElementID, error)

	BeginTransaction(name string) error
	Rollback() error
	Regenerate() error
}
