// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlay turns the text half of a split SVG into a LaTeX picture
// fragment. Graphics land in the exported PDF or EPS; each text element
// becomes a \put command so the surrounding document typesets the labels
// with its own fonts. Implements: prd001-figures R4 (text overlay);
//
//	docs/ARCHITECTURE § Figure Conversion.
package overlay

import (
	"fmt"
	"strings"

	"github.com/pdiddy/svgtex/internal/svg"
)

// Font weight thresholds follow the CSS numeric scale.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Align places a label relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// FontStyle selects the shape of the label's font.
type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

// RGB is a label color as Inkscape stores it.
type RGB struct {
	R, G, B uint8
}

var black = RGB{}

// fontFamilies maps the font names Inkscape records to LaTeX family
// switches. Labels set in any other font fall back to roman.
var fontFamilies = map[string]string{
	"CMU Serif":           "rm",
	"CMU Sans Serif":      "sf",
	"CMU Typewriter Text": "tt",
	"Calibri":             "rm",
}

// Label is one positioned piece of text lifted out of an SVG document.
// Coordinates are in scaled user units with the SVG y axis pointing down;
// the picture writer flips them.
type Label struct {
	Text   string
	X, Y   float64
	Angle  float64 // rotation in degrees, as \rotatebox expects it
	Align  Align
	Family string // LaTeX family switch: rm, sf, or tt
	Weight int
	Style  FontStyle
	Size   float64 // resolved font size in user units; 0 means inherit
	Color  RGB
}

// ExtractLabels collects one label per text element, in document order.
// A text element holding several tspans yields a single label: the texts
// joined with spaces, positioned at the first tspan, styled by the last.
// Inherited transforms are accumulated down the tree and applied to the
// anchor point; positions are then scaled into rendered user units.
func ExtractLabels(doc *svg.Document) ([]Label, error) {
	g, err := doc.Geometry()
	if err != nil {
		return nil, err
	}

	var labels []Label
	var walk func(e *svg.Element, m svg.Matrix) error
	walk = func(e *svg.Element, m svg.Matrix) error {
		if t := e.Attr("", "transform"); t != "" {
			tm, err := svg.ParseTransform(t)
			if err != nil {
				return fmt.Errorf("element %q: %w", e.Attr("", "id"), err)
			}
			m = m.Mul(tm)
		}
		if e.Is("text") {
			l, err := labelFromText(e, m, g.Scale)
			if err != nil {
				return err
			}
			labels = append(labels, l)
			return nil
		}
		for _, c := range e.Children {
			if err := walk(c, m); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc.Root, svg.Identity); err != nil {
		return nil, err
	}
	return labels, nil
}

func labelFromText(text *svg.Element, m svg.Matrix, scale float64) (Label, error) {
	base := svg.ParseStyle(text.Attr("", "style"))

	spans := make([]*svg.Element, 0, len(text.Children))
	for _, c := range text.Children {
		if c.Is("tspan") {
			spans = append(spans, c)
		}
	}
	if len(spans) == 0 {
		spans = append(spans, text)
	}

	var (
		l     Label
		parts []string
	)
	for i, span := range spans {
		sm := m
		if span != text {
			if t := span.Attr("", "transform"); t != "" {
				tm, err := svg.ParseTransform(t)
				if err != nil {
					return Label{}, fmt.Errorf("element %q: %w", span.Attr("", "id"), err)
				}
				sm = sm.Mul(tm)
			}
		}

		x := firstNumber(span, text, "x")
		y := firstNumber(span, text, "y")
		px, py := sm.Apply(x, y)

		// the first tspan anchors the whole label
		if i == 0 {
			l.X = px * scale
			l.Y = py * scale
		}

		// the last tspan's style wins
		style := mergeStyles(base, svg.ParseStyle(span.Attr("", "style")))
		l.Angle = -round3(sm.RotationDeg())
		l.Align = anchorAlign(style["text-anchor"])
		l.Family = familySwitch(style["font-family"])
		l.Weight = fontWeight(style["font-weight"])
		l.Style = fontStyle(style["font-style"])
		l.Size = fontSize(style["font-size"])
		l.Color = fillColor(style["fill"])

		if s := span.Text; s != "" {
			parts = append(parts, s)
		}
	}
	l.Text = strings.Join(parts, " ")
	return l, nil
}

// firstNumber reads a coordinate attribute, falling back to the enclosing
// text element. Inkscape sometimes writes per-glyph coordinate lists; the
// first entry positions the anchor.
func firstNumber(span, text *svg.Element, name string) float64 {
	v := span.Attr("", name)
	if v == "" && span != text {
		v = text.Attr("", name)
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return 0
	}
	n, err := svg.ParseLength(fields[0])
	if err != nil {
		return 0
	}
	return n
}

func mergeStyles(base, over map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

func anchorAlign(anchor string) Align {
	switch anchor {
	case "middle":
		return AlignCenter
	case "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

func familySwitch(family string) string {
	// Inkscape may quote the name or list fallbacks
	family = strings.TrimSpace(strings.Split(family, ",")[0])
	family = strings.Trim(family, `'"`)
	if f, ok := fontFamilies[family]; ok {
		return f
	}
	return "rm"
}

func fontWeight(weight string) int {
	switch weight {
	case "", "normal":
		return WeightNormal
	case "bold":
		return WeightBold
	}
	var n int
	if _, err := fmt.Sscanf(weight, "%d", &n); err != nil {
		return WeightNormal
	}
	return n
}

func fontStyle(style string) FontStyle {
	switch style {
	case "italic":
		return StyleItalic
	case "oblique":
		return StyleOblique
	}
	return StyleNormal
}

func fontSize(size string) float64 {
	if size == "" {
		return 0
	}
	n, err := svg.ParseLength(size)
	if err != nil {
		return 0
	}
	return n
}

// fillColor parses the #rrggbb and #rgb forms Inkscape writes. Anything
// else, including named colors and "none", renders black.
func fillColor(fill string) RGB {
	fill = strings.TrimSpace(fill)
	if !strings.HasPrefix(fill, "#") {
		return black
	}
	hex := fill[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return black
	}
	var c RGB
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return black
	}
	return c
}
