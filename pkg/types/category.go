// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category tag is not one of the
// supported element categories.
var ErrUnknownCategory = errors.New("unknown element category")

// Category is the closed set of element categories the pipeline exports.
type Category string

const (
	CategoryWall              Category = "wall"
	CategoryFloor             Category = "floor"
	CategoryColumn            Category = "column"
	CategoryStructuralFraming Category = "framing"
)

// Categories lists the supported categories in export order.
var Categories = []Category{
	CategoryWall,
	CategoryFloor,
	CategoryColumn,
	CategoryStructuralFraming,
}

// HostName returns the host model's category name, which is what the
// Elements.Category column stores.
func (c Category) HostName() string {
	switch c {
	case CategoryWall:
		return "Walls"
	case CategoryFloor:
		return "Floors"
	case CategoryColumn:
		return "Structural Columns"
	case CategoryStructuralFraming:
		return "Structural Framing"
	}
	return string(c)
}

// ParseCategory accepts a category tag ("wall") or a host category name
// ("Walls"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.HostName()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
