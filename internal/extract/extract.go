// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls boundary edges out of element geometry.
package extract

import (
	"fmt"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Options is the fixed evaluation setting for boundary extraction: full
// detail with references computed.
var Options = host.GeometryOptions{
	DetailLevel:       host.DetailFine,
	ComputeReferences: true,
}

// GeometrySource is the part of the host model the extractor reads.
type GeometrySource interface {
	Geometry(id types.ElementID, opts host.GeometryOptions) (host.GeometryElement, error)
}

// Extractor reads element edges from a geometry source.
type Extractor struct {
	src GeometrySource
}

// New returns an Extractor reading from src.
func New(src GeometrySource) *Extractor {
	return &Extractor{src: src}
}

// ExtractEdges returns the element's boundary edges in traversal order:
// solid by solid, edge by edge. When the top level holds instance geometry,
// each instance is opened one level and its solids are read; otherwise
// the top-level solids are read. An element with neither yields no edges
// and an ExtractionWarning diagnostic. Errors from the source are returned
// unchanged in meaning.
func (x *Extractor) ExtractEdges(el host.Element) ([]types.Curve, *types.Diagnostic, error) {
	geom, err := x.src.Geometry(el.ID, Options)
	if err != nil {
		return nil, nil, fmt.Errorf("reading geometry of element %d: %w", el.ID, err)
	}

	var instances []*host.Instance
	var solids []*host.Solid
	for _, obj := range geom {
		switch o := obj.(type) {
		case *host.Instance:
			instances = append(instances, o)
		case *host.Solid:
			solids = append(solids, o)
		}
	}

	var curves []types.Curve
	switch {
	case len(instances) > 0:
		for _, inst := range instances {
			for _, obj := range inst.Objects {
				if s, ok := obj.(*host.Solid); ok {
					curves = append(curves, s.Edges...)
				}
			}
		}
	case len(solids) > 0:
		for _, s := range solids {
			curves = append(curves, s.Edges...)
		}
	default:
		return nil, &types.Diagnostic{
			Kind:      types.ExtractionWarning,
			ElementID: el.ID,
			Message:   fmt.Sprintf("no solid geometry found on %s %q", el.Category, el.Name),
		}, nil
	}
	return curves, nil, nil
}
