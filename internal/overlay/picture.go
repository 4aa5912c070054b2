// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/svgtex/internal/svg"
)

// picturePreamble opens every fragment. The \providecommand fallbacks turn
// a missing color.sty or transparent.sty into a readable LaTeX error
// instead of an undefined control sequence.
const picturePreamble = `% Picture generated by svgtex
\makeatletter
\providecommand\color[2][]{%
  \errmessage{(svgtex) Color is used for the text in Inkscape,
    but the package 'color.sty' is not loaded}%
  \renewcommand\color[2][]{}}%
\providecommand\transparent[1]{%
  \errmessage{
    (svgtex) Transparency is used for the text in Inkscape,
    but the package 'transparent.sty' is not loaded}%
  \renewcommand\transparent[1]{}}%
\setlength{\unitlength}{\svgwidth}%
\global\let\svgwidth\undefined%
\makeatother
`

// Picture is a LaTeX picture environment pairing an exported graphics
// file with the labels typeset over it. All geometry is in scaled user
// units with SVG orientation; the writer normalizes x by the canvas width
// (matching \unitlength = \svgwidth) and flips y for TeX.
type Picture struct {
	Canvas      svg.Rect // box covering graphics and label anchors
	Graphic     svg.Rect // box of the exported graphics file
	GraphicPath string   // \includegraphics argument; empty for text-only pictures
	Labels      []Label
}

// Write emits the fragment. The surrounding document is expected to set
// \svgwidth before \input of the fragment.
func (p Picture) Write(w io.Writer) error {
	unit := p.Canvas.W
	if unit <= 0 {
		return fmt.Errorf("picture canvas has width %g", unit)
	}
	xmin, ymin, h := p.Canvas.X, p.Canvas.Y, p.Canvas.H

	var lines []string
	if p.GraphicPath != "" {
		x := p.Graphic.X - xmin
		// the SVG origin is the top left corner, the picture origin
		// the bottom left one
		y := (h + ymin) - (p.Graphic.Y + p.Graphic.H)
		lines = append(lines, fmt.Sprintf(
			`\put(%s, %s){\includegraphics[width=%s\unitlength]{%s}}%%`,
			fmtNum(round3(x/unit)), fmtNum(round3(y/unit)),
			fmtNum(p.Graphic.W/unit), p.GraphicPath))
	}
	for _, l := range p.Labels {
		x := l.X - xmin
		y := (h + ymin) - l.Y
		lines = append(lines, fmt.Sprintf(`\put(%s, %s){%s}%%`,
			fmtNum(round3(x/unit)), fmtNum(round3(y/unit)), l.TeX()))
	}

	var b strings.Builder
	b.WriteString("\\begingroup%\n")
	b.WriteString(picturePreamble)
	fmt.Fprintf(&b, "\\begin{picture}(%s, %s)%%\n",
		fmtNum(round3(p.Canvas.W/unit)), fmtNum(round3(h/unit)))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\\end{picture}%\n\\endgroup%\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// TeX renders the label body placed by \put: font switches, color, an
// anchored zero-size box, and a rotation wrapper when needed.
func (l Label) TeX() string {
	var b strings.Builder
	b.WriteString(`\`)
	family := l.Family
	if family == "" {
		family = "rm"
	}
	b.WriteString(family)
	b.WriteString("family")
	if l.Weight >= WeightBold {
		b.WriteString(`\bfseries`)
	}
	switch l.Style {
	case StyleItalic:
		b.WriteString(`\itshape`)
	case StyleOblique:
		b.WriteString(`\slshape`)
	}
	if l.Size > 0 {
		// user units scale to points at 72/96; baseline spacing is
		// the conventional 1.2 times the size
		size := round3(l.Size * svg.UserUnitToBigPoint)
		fmt.Fprintf(&b, `\fontsize{%s}{%s}\selectfont`,
			fmtNum(size), fmtNum(round3(size*1.2)))
	}
	if l.Color != black {
		fmt.Fprintf(&b, `\color[RGB]{%d,%d,%d}`, l.Color.R, l.Color.G, l.Color.B)
	}
	switch l.Align {
	case AlignCenter:
		b.WriteString(`\makebox(0,0)[b]`)
	case AlignRight:
		b.WriteString(`\makebox(0,0)[br]`)
	default:
		b.WriteString(`\makebox(0,0)[bl]`)
	}
	b.WriteString(`{\smash{`)
	b.WriteString(l.Text)
	b.WriteString(`}}`)

	body := b.String()
	if l.Angle != 0 {
		return fmt.Sprintf(`\rotatebox{%s}{%s}`, fmtNum(l.Angle), body)
	}
	return body
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func fmtNum(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
