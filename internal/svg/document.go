// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package svg models Inkscape SVG files as element trees that can be
// inspected, partitioned into text and graphics, and written back out for
// conversion.
// Implements: prd001-figures R1 (document model);
//
//	docs/ARCHITECTURE § Figure Conversion.
package svg

import "encoding/xml"

// Namespace URLs appearing in Inkscape documents.
const (
	NSSVG             = "http://www.w3.org/2000/svg"
	NSXLink           = "http://www.w3.org/1999/xlink"
	NSInkscape        = "http://www.inkscape.org/namespaces/inkscape"
	NSSodipodi        = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
	NSDublinCore      = "http://purl.org/dc/elements/1.1/"
	NSCreativeCommons = "http://creativecommons.org/ns#"
	NSRDF             = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Element is one node of a document tree. Text holds character data before
// the first child element; Tail holds character data between this element's
// end tag and the next sibling, so pruned trees serialize without losing
// surrounding text.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Text     string
	Tail     string
}

// Is reports whether the element is the named element of the SVG namespace.
func (e *Element) Is(local string) bool {
	return e.Name.Space == NSSVG && e.Name.Local == local
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(space, local string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(space, local string) bool {
	for _, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing an existing value.
func (e *Element) SetAttr(space, local, value string) {
	for i, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(space, local string) {
	for i, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// Walk calls fn for e and every descendant, in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	n := &Element{Name: e.Name, Text: e.Text, Tail: e.Tail}
	if len(e.Attrs) > 0 {
		n.Attrs = append([]xml.Attr(nil), e.Attrs...)
	}
	for _, c := range e.Children {
		n.Children = append(n.Children, c.Clone())
	}
	return n
}

// Document is a parsed SVG file.
type Document struct {
	Root *Element

	// Path is the file the document was read from, "" for streams.
	Path string
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{Root: d.Root.Clone(), Path: d.Path}
}

// TextElements returns the outermost text containers in document order.
func (d *Document) TextElements() []*Element {
	var out []*Element
	var visit func(e *Element)
	visit = func(e *Element) {
		if classify(e) == classText {
			out = append(out, e)
			return
		}
		for _, c := range e.Children {
			visit(c)
		}
	}
	visit(d.Root)
	return out
}
