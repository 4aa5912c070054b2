// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Unit conversion constants. SVG defines 96 user units (px) per inch;
// PostScript big points run 72 per inch.
const (
	UserUnitsPerInch = 96.0
	PointsPerInch    = 72.0

	// UserUnitToBigPoint converts user units to big points.
	UserUnitToBigPoint = PointsPerInch / UserUnitsPerInch
)

// ParseLength converts a CSS length such as "210mm", "4in", or "12.5" to
// user units. A bare number is already in user units.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty length")
	}
	unit := ""
	num := s
	for _, u := range []string{"px", "in", "pt", "pc", "mm", "cm"} {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	switch unit {
	case "", "px":
		return v, nil
	case "in":
		return v * UserUnitsPerInch, nil
	case "pt":
		return v / UserUnitToBigPoint, nil
	case "pc":
		// 1 pica = 1/6 inch
		return v * UserUnitsPerInch / 6, nil
	case "mm":
		return v / 25.4 * UserUnitsPerInch, nil
	case "cm":
		return v / 2.54 * UserUnitsPerInch, nil
	}
	return 0, fmt.Errorf("unsupported unit in length %q", s)
}

// Rect is an axis-aligned rectangle in user units.
type Rect struct {
	X, Y, W, H float64
}

// ParseViewBox parses a viewBox attribute: four numbers separated by
// whitespace or commas.
func ParseViewBox(s string) (Rect, error) {
	nums, err := splitNumbers(s)
	if err != nil {
		return Rect{}, fmt.Errorf("viewBox %q: %w", s, err)
	}
	if len(nums) != 4 {
		return Rect{}, fmt.Errorf("viewBox %q: want 4 numbers, got %d", s, len(nums))
	}
	return Rect{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}, nil
}

// splitNumbers parses a comma- or whitespace-separated number list.
func splitNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		nums[i] = v
	}
	return nums, nil
}

// Geometry is the canvas geometry of a document: its size in user units,
// the declared viewBox, and the scale between viewBox units and user units.
type Geometry struct {
	// Width and Height are the canvas size in user units.
	Width, Height float64

	// ViewBox is the declared viewBox, nil when the document has none.
	ViewBox *Rect

	// Scale converts viewBox units to user units. Without a viewBox the
	// two coincide and Scale is 1.
	Scale float64
}

// Geometry reads the canvas geometry from the root element's width,
// height, and viewBox attributes. A document carrying none of them has no
// usable geometry and fails.
func (d *Document) Geometry() (Geometry, error) {
	g := Geometry{Scale: 1}
	if vb := d.Root.Attr("", "viewBox"); vb != "" {
		r, err := ParseViewBox(vb)
		if err != nil {
			return Geometry{}, err
		}
		g.ViewBox = &r
	}

	var err error
	switch w := d.Root.Attr("", "width"); {
	case w != "":
		if g.Width, err = ParseLength(w); err != nil {
			return Geometry{}, fmt.Errorf("width: %w", err)
		}
	case g.ViewBox != nil:
		g.Width = g.ViewBox.W
	default:
		return Geometry{}, errors.New("document has neither width nor viewBox")
	}

	switch h := d.Root.Attr("", "height"); {
	case h != "":
		if g.Height, err = ParseLength(h); err != nil {
			return Geometry{}, fmt.Errorf("height: %w", err)
		}
	case g.ViewBox != nil:
		g.Height = g.ViewBox.H
	default:
		return Geometry{}, errors.New("document has neither height nor viewBox")
	}

	if g.ViewBox != nil && g.ViewBox.W > 0 {
		g.Scale = g.Width / g.ViewBox.W
	}
	return g, nil
}
