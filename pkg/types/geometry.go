// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across extraction, normalization,
// and export.
package types

import (
	"fmt"
	"strconv"
)

// Point is a location in model space. Two points are equal only when all
// three components are exactly equal.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Strings returns the coordinates formatted with the shortest
// representation that parses back to the same float64.
func (p Point) Strings() (x, y, z string) {
	return formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z)
}

func (p Point) String() string {
	x, y, z := p.Strings()
	return fmt.Sprintf("(%s, %s, %s)", x, y, z)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParsePoint parses three coordinate strings written by Point.Strings.
func ParsePoint(x, y, z string) (Point, error) {
	var p Point
	var err error
	if p.X, err = strconv.ParseFloat(x, 64); err != nil {
		return Point{}, fmt.Errorf("parsing x %q: %w", x, err)
	}
	if p.Y, err = strconv.ParseFloat(y, 64); err != nil {
		return Point{}, fmt.Errorf("parsing y %q: %w", y, err)
	}
	if p.Z, err = strconv.ParseFloat(z, 64); err != nil {
		return Point{}, fmt.Errorf("parsing z %q: %w", z, err)
	}
	return p, nil
}

// Curve is a bounded curve handed out by the host model. Only its end
// points take part in normalization.
type Curve interface {
	// EndPoint returns the start point for index 0 and the end point for
	// index 1.
	EndPoint(index int) Point
}

// Line is a straight segment.
type Line struct {
	From Point `json:"from" yaml:"from"`
	To   Point `json:"to" yaml:"to"`
}

func (l Line) EndPoint(index int) Point {
	if index == 0 {
		return l.From
	}
	return l.To
}

// Arc is a circular arc from Start to End around Center.
type Arc struct {
	Start  Point `json:"start" yaml:"start"`
	End    Point `json:"end" yaml:"end"`
	Center Point `json:"center" yaml:"center"`
}

func (a Arc) EndPoint(index int) Point {
	if index == 0 {
		return a.Start
	}
	return a.End
}
