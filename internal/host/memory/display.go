// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Lengths are stored in feet, the way the host stores them internally.
var feetPer = map[string]float64{
	"ft": 1,
	"in": 12,
	"m":  0.3048,
	"cm": 30.48,
	"mm": 304.8,
}

// Display holds the model's formatting rules for parameter values.
type Display struct {
	LengthUnit string `yaml:"length_unit"`
	Precision  int    `yaml:"precision"`
}

// DefaultDisplay formats lengths in millimetres without fraction digits.
var DefaultDisplay = Display{LengthUnit: "mm", Precision: 0}

func (d Display) validate() error {
	if _, ok := feetPer[strings.ToLower(d.LengthUnit)]; !ok {
		return fmt.Errorf("unsupported length unit %q", d.LengthUnit)
	}
	if d.Precision < 0 || d.Precision > 9 {
		return fmt.Errorf("precision %d out of range 0-9", d.Precision)
	}
	return nil
}

func (d Display) printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// formatLength renders a length stored in feet in the display unit.
func (d Display) formatLength(feet float64) string {
	unit := strings.ToLower(d.LengthUnit)
	v := feet * feetPer[unit]
	return d.printer().Sprintf("%v %s", number.Decimal(v, number.Scale(d.Precision)), unit)
}

func (d Display) formatNumber(v float64) string {
	return d.printer().Sprint(number.Decimal(v, number.Scale(d.Precision)))
}

func (d Display) formatInteger(v int64) string {
	return d.printer().Sprint(number.Decimal(v))
}
