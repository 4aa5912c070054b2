// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"strconv"
	"strings"
)

// Layer is an Inkscape layer: a group element with groupmode "layer".
type Layer struct {
	// Label is the layer name shown in the Inkscape layers panel.
	Label string

	// Elem is the layer's group element within the document tree.
	Elem *Element
}

// Layers returns the document's layers in document order.
func (d *Document) Layers() []Layer {
	var out []Layer
	d.Root.Walk(func(e *Element) {
		if e.Is("g") && e.Attr(NSInkscape, "groupmode") == "layer" {
			out = append(out, Layer{Label: e.Attr(NSInkscape, "label"), Elem: e})
		}
	})
	return out
}

// Style returns the layer's raw style attribute.
func (l Layer) Style() string {
	return l.Elem.Attr("", "style")
}

// SetStyle replaces the layer's style attribute.
func (l Layer) SetStyle(style string) {
	l.Elem.SetAttr("", "style", style)
}

// Hide sets the layer's display to none, leaving other declarations alone.
func (l Layer) Hide() {
	l.SetStyle(setStyleDecl(l.Style(), "display", "none"))
}

// Show sets the layer's display to inline.
func (l Layer) Show() {
	l.SetStyle(setStyleDecl(l.Style(), "display", "inline"))
}

// SetOpacity sets the layer's opacity declaration.
func (l Layer) SetOpacity(opacity float64) {
	l.SetStyle(setStyleDecl(l.Style(), "opacity", strconv.FormatFloat(opacity, 'g', -1, 64)))
}

// ParseStyle splits a style attribute into property/value pairs.
func ParseStyle(style string) map[string]string {
	m := make(map[string]string)
	for _, part := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k != "" {
			m[k] = strings.TrimSpace(v)
		}
	}
	return m
}

// setStyleDecl updates one property of a style attribute in place, or
// prepends it when absent. Other declarations are untouched.
func setStyleDecl(style, prop, value string) string {
	parts := strings.Split(style, ";")
	for i, part := range parts {
		k, _, ok := strings.Cut(part, ":")
		if ok && strings.TrimSpace(k) == prop {
			parts[i] = prop + ":" + value
			return strings.Join(parts, ";")
		}
	}
	if strings.TrimSpace(style) == "" {
		return prop + ":" + value
	}
	return prop + ":" + value + ";" + style
}
