// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// variant is what the pipeline does differently per element category.
type variant struct {
	category types.Category

	// metadata enables creation metadata extraction.
	metadata bool

	// joinable elements get their end joins disallowed before extraction.
	joinable bool

	// axis appends the element's location curve as the primary axis edge.
	axis bool
}

var variants = map[types.Category]variant{
	types.CategoryWall:              {category: types.CategoryWall, metadata: true, joinable: true, axis: true},
	types.CategoryFloor:             {category: types.CategoryFloor, metadata: true},
	types.CategoryColumn:            {category: types.CategoryColumn, metadata: true},
	types.CategoryStructuralFraming: {category: types.CategoryStructuralFraming, metadata: true, joinable: true},
}

func lookup(c types.Category) (variant, error) {
	v, ok := variants[c]
	if !ok {
		return variant{}, fmt.Errorf("%w: %q", types.ErrUnknownCategory, c)
	}
	return v, nil
}

// axisOf returns the primary axis edge of el, or nil.
func (v variant) axisOf(el host.Element) types.Curve {
	if !v.axis {
		return nil
	}
	return el.Location
}
