// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CreationMetadata holds the modeling attributes needed to recreate an
// element. Payload carries the category-specific fields.
type CreationMetadata struct {
	Category Category `json:"category" yaml:"category"`

	// LevelID is InvalidElementID when the element has no level.
	LevelID ElementID `json:"level_id" yaml:"level_id"`

	Payload CreationPayload `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Wall returns the wall payload, if the metadata carries one.
func (m *CreationMetadata) Wall() (*WallCreation, bool) {
	w, ok := m.Payload.(*WallCreation)
	return w, ok
}

// CreationPayload is implemented only by the per-category payload types in
// this package.
type CreationPayload interface {
	creationCategory() Category
}

// WallCreation holds the parameters a wall was modeled with.
type WallCreation struct {
	BaseCurve  Curve     `json:"-" yaml:"-"`
	WallTypeID ElementID `json:"wall_type_id" yaml:"wall_type_id"`
	Height     float64   `json:"height" yaml:"height"`
	BaseOffset float64   `json:"base_offset" yaml:"base_offset"`

	// TopConstraintID is InvalidElementID for an unconnected wall.
	TopConstraintID ElementID `json:"top_constraint_id" yaml:"top_constraint_id"`
	TopOffset       float64   `json:"top_offset" yaml:"top_offset"`
	Flipped         bool      `json:"flipped" yaml:"flipped"`
	IsStructural    bool      `json:"is_structural" yaml:"is_structural"`
}

// NewWallCreation returns a wall payload with every reference unset.
func NewWallCreation() *WallCreation {
	return &WallCreation{
		WallTypeID:      InvalidElementID,
		TopConstraintID: InvalidElementID,
	}
}

// MissingReferences names the required references that are unset.
func (w *WallCreation) MissingReferences(levelID ElementID) []string {
	var missing []string
	if !levelID.Valid() {
		missing = append(missing, "level")
	}
	if !w.WallTypeID.Valid() {
		missing = append(missing, "wall type")
	}
	if !w.TopConstraintID.Valid() {
		missing = append(missing, "top constraint")
	}
	return missing
}

// FloorCreation, ColumnCreation and FramingCreation carry no fields yet.
type (
	FloorCreation   struct{}
	ColumnCreation  struct{}
	FramingCreation struct{}
)

func (*WallCreation) creationCategory() Category    { return CategoryWall }
func (*FloorCreation) creationCategory() Category   { return CategoryFloor }
func (*ColumnCreation) creationCategory() Category  { return CategoryColumn }
func (*FramingCreation) creationCategory() Category { return CategoryStructuralFraming }
