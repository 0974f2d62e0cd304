// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata reads category-specific modeling parameters from
// element parameter sets.
package metadata

import (
	"strconv"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Parameter names matched on element parameter sets.
const (
	ParamFamilyAndType     = "Family and Type"
	ParamTopConstraint     = "Top Constraint"
	ParamTopOffset         = "Top Offset"
	ParamStructural        = "Structural"
	ParamUnconnectedHeight = "Unconnected Height"
	ParamBaseOffset        = "Base Offset"
)

// Unexposed is the display value for parameters with an unknown storage kind.
const Unexposed = "Unexposed parameter."

// DisplayValue renders a parameter as text. Doubles, strings and element
// references use the host's display string; integers flagged yes/no become
// "True" or "False"; other integers are printed in decimal.
func DisplayValue(p host.Parameter) string {
	switch p.Storage {
	case host.StorageDouble, host.StorageString, host.StorageElementID:
		return p.Display
	case host.StorageInteger:
		if p.YesNo {
			if p.Integer == 0 {
				return "False"
			}
			return "True"
		}
		return strconv.FormatInt(p.Integer, 10)
	}
	return Unexposed
}

// TypeName returns the display value of the "Family and Type" parameter,
// or "" when the element has none.
func TypeName(params []host.Parameter) string {
	for _, p := range params {
		if p.Name == ParamFamilyAndType {
			return DisplayValue(p)
		}
	}
	return ""
}

// Extract builds the creation metadata of one element of the given
// category. Categories without a payload of their own get the common
// fields only. Missing parameters leave their fields at the default.
func Extract(category types.Category, el host.Element, params []host.Parameter) types.CreationMetadata {
	md := types.CreationMetadata{
		Category: category,
		LevelID:  el.LevelID,
	}

	switch category {
	case types.CategoryWall:
		md.Payload = wall(el, params)
	case types.CategoryFloor:
		md.Payload = &types.FloorCreation{}
	case types.CategoryColumn:
		md.Payload = &types.ColumnCreation{}
	case types.CategoryStructuralFraming:
		md.Payload = &types.FramingCreation{}
	}
	return md
}

func wall(el host.Element, params []host.Parameter) *types.WallCreation {
	w := types.NewWallCreation()
	w.BaseCurve = el.Location
	w.Flipped = el.Flipped
	if el.TypeID.Valid() {
		w.WallTypeID = el.TypeID
	}

	for _, p := range params {
		switch p.Name {
		case ParamFamilyAndType:
			if id, ok := asID(p); ok {
				w.WallTypeID = id
			}
		case ParamTopConstraint:
			if id, ok := asID(p); ok {
				w.TopConstraintID = id
			}
		case ParamTopOffset:
			if v, ok := asDouble(p); ok {
				w.TopOffset = v
			}
		case ParamUnconnectedHeight:
			if v, ok := asDouble(p); ok {
				w.Height = v
			}
		case ParamBaseOffset:
			if v, ok := asDouble(p); ok {
				w.BaseOffset = v
			}
		case ParamStructural:
			if p.Storage == host.StorageInteger {
				w.IsStructural = p.Integer != 0
			}
		}
	}
	return w
}

func asID(p host.Parameter) (types.ElementID, bool) {
	if p.Storage != host.StorageElementID {
		return types.InvalidElementID, false
	}
	return p.ID, true
}

func asDouble(p host.Parameter) (float64, bool) {
	if p.Storage != host.StorageDouble {
		return 0, false
	}
	return p.Double, true
}
