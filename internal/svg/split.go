// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

// class groups SVG elements for document partitioning.
type class int

const (
	// classOther marks unrecognized elements, kept intact in both halves.
	classOther class = iota
	// classContainer marks structural elements whose children are
	// partitioned individually.
	classContainer
	// classText marks text content, moved whole into the text document.
	classText
	// classGraphic marks drawable geometry, moved whole into the
	// graphics document.
	classGraphic
	// classDef marks definitions and metadata, kept whole in both halves.
	classDef
)

var svgClasses = map[string]class{
	"svg":    classContainer,
	"g":      classContainer,
	"a":      classContainer,
	"switch": classContainer,

	"text":       classText,
	"tspan":      classText,
	"textPath":   classText,
	"flowRoot":   classText,
	"flowPara":   classText,
	"flowSpan":   classText,
	"flowRegion": classText,
	"flowDiv":    classText,

	"path":     classGraphic,
	"rect":     classGraphic,
	"circle":   classGraphic,
	"ellipse":  classGraphic,
	"line":     classGraphic,
	"polyline": classGraphic,
	"polygon":  classGraphic,
	"image":    classGraphic,
	"use":      classGraphic,

	"defs":           classDef,
	"linearGradient": classDef,
	"radialGradient": classDef,
	"clipPath":       classDef,
	"mask":           classDef,
	"marker":         classDef,
	"symbol":         classDef,
	"pattern":        classDef,
	"filter":         classDef,
	"style":          classDef,
	"metadata":       classDef,
	"title":          classDef,
	"desc":           classDef,
}

func classify(e *Element) class {
	if e.Name.Space != NSSVG {
		// editor extensions such as sodipodi:namedview stay in both halves
		return classDef
	}
	if c, ok := svgClasses[e.Name.Local]; ok {
		return c
	}
	return classOther
}

// IsGraphic reports whether the element draws geometry itself.
func IsGraphic(e *Element) bool { return classify(e) == classGraphic }

// IsText reports whether the element carries document text.
func IsText(e *Element) bool { return classify(e) == classText }

// Split partitions the document into a graphics-only copy and a text-only
// copy. Both copies keep the root element's attributes, container
// structure, and definitions, so either renders on the same canvas as the
// source. The source document is not modified.
func (d *Document) Split() (graphics, text *Document) {
	graphics = d.Clone()
	text = d.Clone()
	prune(graphics.Root, classText)
	prune(text.Root, classGraphic)
	return graphics, text
}

// prune removes every subtree rooted at an element of the dropped class,
// descending only through containers. Text and graphic subtrees that
// survive keep their internals: a flowed-text region keeps the rectangle
// defining its flow box.
func prune(e *Element, drop class) {
	kept := e.Children[:0]
	for _, c := range e.Children {
		cl := classify(c)
		if cl == drop {
			continue
		}
		if cl == classContainer {
			prune(c, drop)
		}
		kept = append(kept, c)
	}
	e.Children = kept
}
