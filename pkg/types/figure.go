// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the svgtex conversion
// pipeline.
package types

import "fmt"

// Format identifies the output file format of a figure export.
// Per prd001-figures R2.1.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatEPS Format = "eps"
	FormatPNG Format = "png"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatEPS, FormatPNG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want pdf, eps, or png)", s)
}

// Ext returns the output filename extension, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// FragmentExt returns the extension of the LaTeX fragment that accompanies
// a text-separated export (".pdf_tex" for PDF). PNG exports carry no
// fragment and return "".
func (f Format) FragmentExt() string {
	switch f {
	case FormatPDF:
		return ".pdf_tex"
	case FormatEPS:
		return ".eps_tex"
	}
	return ""
}

// Area selects the region of the drawing an export covers: the full page
// canvas or the tight bounding box of the drawn objects.
// Per prd001-figures R2.4.
type Area string

const (
	AreaPage    Area = "page"
	AreaDrawing Area = "drawing"
)

// ParseArea returns the Area named by s.
func ParseArea(s string) (Area, error) {
	switch Area(s) {
	case AreaPage, AreaDrawing:
		return Area(s), nil
	}
	return "", fmt.Errorf("unknown export area %q (want page or drawing)", s)
}

// Mode names the figure conversion recipes accepted by the CLI and the
// figure manifest. The "latex-" prefix selects text separation: graphics go
// to the output file, text to a LaTeX fragment.
type Mode string

const (
	ModePDF      Mode = "pdf"
	ModeLatexPDF Mode = "latex-pdf"
	ModeEPS      Mode = "eps"
	ModeLatexEPS Mode = "latex-eps"
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePDF, ModeLatexPDF, ModeEPS, ModeLatexEPS:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown conversion mode %q (want pdf, latex-pdf, eps, or latex-eps)", s)
}

// Format returns the output format the mode produces.
func (m Mode) Format() Format {
	switch m {
	case ModeEPS, ModeLatexEPS:
		return FormatEPS
	}
	return FormatPDF
}

// SplitText reports whether the mode separates text into a LaTeX fragment.
func (m Mode) SplitText() bool {
	return m == ModeLatexPDF || m == ModeLatexEPS
}

// Status indicates the outcome of one figure conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Artifact records one conversion output: where it came from, what was
// written, and whether the staleness gate skipped the work.
// Per prd001-figures R4.1.
type Artifact struct {
	// Source is the SVG file the artifact was derived from.
	Source string `json:"source" yaml:"source"`

	// Output is the produced PDF, EPS, or PNG path.
	Output string `json:"output" yaml:"output"`

	// Fragment is the LaTeX fragment path for text-separated exports,
	// empty otherwise.
	Fragment string `json:"fragment,omitempty" yaml:"fragment,omitempty"`

	// Layer is the label of the newest layer for scene artifacts.
	Layer string `json:"layer,omitempty" yaml:"layer,omitempty"`

	// Index is the scene ordinal for scene artifacts, zero-based.
	Index int `json:"index" yaml:"index"`

	// Skipped reports that the output was already up to date and no
	// conversion ran.
	Skipped bool `json:"skipped" yaml:"skipped"`
}
