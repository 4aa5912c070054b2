// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inkscape

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/svgtex/pkg/types"
)

// DefaultDPI is the resolution Inkscape rasterizes filters and PNG
// exports at when a request does not set one.
const DefaultDPI = 96

// Request describes one export of an SVG file.
type Request struct {
	Input      string       // source SVG path
	Output     string       // target file path
	Format     types.Format // pdf, eps, or png
	Area       types.Area   // page or drawing bounding box
	TextToPath bool         // render text as outlines instead of fonts
	Latex      bool         // also emit Inkscape's own LaTeX overlay file
	DPI        int          // raster resolution; 0 means DefaultDPI
}

// args builds the 0.92-dialect command line. Flag order matches what the
// tool prints in its own usage text, which keeps failure logs easy to
// compare against manual runs.
func (r Request) args() []string {
	args := []string{"--without-gui"}
	if r.Area == types.AreaDrawing {
		args = append(args, "--export-area-drawing")
	} else {
		args = append(args, "--export-area-page")
	}
	args = append(args, "--export-ignore-filters")
	if r.TextToPath {
		args = append(args, "--export-text-to-path")
	}
	if r.Latex {
		args = append(args, "--export-latex")
	}
	dpi := r.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	args = append(args, fmt.Sprintf("--export-dpi=%d", dpi))
	switch r.Format {
	case types.FormatEPS:
		args = append(args, "--export-eps="+r.Output)
	case types.FormatPNG:
		args = append(args, "--export-png="+r.Output)
	default:
		args = append(args, "--export-pdf="+r.Output)
	}
	return append(args, "--file="+r.Input)
}

// ConversionError reports a failed Inkscape invocation. Stderr carries the
// tool's own diagnostics, which usually name the offending element.
type ConversionError struct {
	Input  string
	Output string // empty for geometry queries
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	if e.Output != "" {
		fmt.Fprintf(&b, "inkscape: exporting %s to %s: %v", e.Input, e.Output, e.Err)
	} else {
		fmt.Fprintf(&b, "inkscape: querying %s: %v", e.Input, e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, "\n%s", s)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Export runs one conversion. A failed run must not leave a fresh partial
// file behind, or the staleness check would skip the figure next time, so
// any output the failed invocation touched is removed. Outputs that
// predate the call and were not touched stay as they were.
func (t *Tool) Export(req Request) error {
	switch req.Format {
	case types.FormatPDF, types.FormatEPS, types.FormatPNG:
	default:
		return fmt.Errorf("unsupported export format %q", req.Format)
	}

	before, beforeErr := os.Stat(req.Output)

	_, stderr, err := t.exec.Run(t.path, req.args()...)
	if err != nil {
		if after, statErr := os.Stat(req.Output); statErr == nil {
			touched := beforeErr != nil ||
				!after.ModTime().Equal(before.ModTime()) ||
				after.Size() != before.Size()
			if touched {
				_ = os.Remove(req.Output)
			}
		}
		return &ConversionError{Input: req.Input, Output: req.Output, Stderr: stderr, Err: err}
	}

	if _, statErr := os.Stat(req.Output); statErr != nil {
		return &ConversionError{
			Input:  req.Input,
			Output: req.Output,
			Stderr: stderr,
			Err:    fmt.Errorf("no output produced: %w", statErr),
		}
	}
	return nil
}
