// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/svgtex/internal/inkscape"
	"github.com/pdiddy/svgtex/internal/overlay"
	"github.com/pdiddy/svgtex/internal/svg"
	"github.com/pdiddy/svgtex/pkg/types"
)

// Exporter runs the external conversion tool. *inkscape.Tool implements
// it; tests substitute a fake.
type Exporter interface {
	// Export converts one file according to the request.
	Export(req inkscape.Request) error

	// QueryAll returns the bounding box of every object in the file.
	QueryAll(path string) ([]inkscape.ObjectBounds, error)
}

// Options control how a figure is converted.
type Options struct {
	// Format selects the output file format; empty means PDF.
	Format types.Format

	// SplitText routes graphics to the output file and text to a LaTeX
	// fragment next to it.
	SplitText bool

	// Area selects the exported region; the zero value exports the page.
	Area types.Area

	// TextToPath renders text as outlines instead of fonts. Only
	// meaningful when the text is not split out.
	TextToPath bool

	// Force converts even when outputs are up to date.
	Force bool

	// Verify validates the produced PDF after conversion.
	Verify bool

	// DPI overrides the rasterization resolution.
	DPI int
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of figures processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any figures failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Summary writes the closing tally line batch commands print.
func (r BatchResult) Summary(w io.Writer) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Skipped, r.Failed, r.Total())
}

// Convert converts one SVG figure. Outputs land next to the source with
// the source's base name. Returns the artifact describing what was
// produced, or what would have been produced when the staleness check
// skips the work.
func Convert(e Exporter, svgPath string, opts Options) (types.Artifact, error) {
	art := types.Artifact{Source: svgPath}
	if ext := filepath.Ext(svgPath); !strings.EqualFold(ext, ".svg") {
		return art, fmt.Errorf("%s: not an SVG file", svgPath)
	}

	format := opts.Format
	if format == "" {
		format = types.FormatPDF
	}
	base := strings.TrimSuffix(svgPath, filepath.Ext(svgPath))
	art.Output = base + format.Ext()

	split := opts.SplitText && format.FragmentExt() != ""
	outputs := []string{art.Output}
	if split {
		art.Fragment = base + format.FragmentExt()
		outputs = append(outputs, art.Fragment)
	}

	if !opts.Force {
		fresh, err := UpToDate(svgPath, outputs...)
		if err != nil {
			return art, err
		}
		if fresh {
			art.Skipped = true
			return art, nil
		}
	}

	if split {
		if err := convertSplit(e, svgPath, art.Output, art.Fragment, opts, format); err != nil {
			return art, err
		}
	} else {
		err := e.Export(inkscape.Request{
			Input:      svgPath,
			Output:     art.Output,
			Format:     format,
			Area:       opts.Area,
			TextToPath: opts.TextToPath,
			DPI:        opts.DPI,
		})
		if err != nil {
			return art, err
		}
	}

	if opts.Verify && format == types.FormatPDF {
		if err := api.ValidateFile(art.Output, nil); err != nil {
			// an invalid output must not satisfy the next staleness check
			_ = os.Remove(art.Output)
			return art, fmt.Errorf("verifying %s: %w", art.Output, err)
		}
	}
	return art, nil
}

// convertSplit exports the graphics half of the document and writes the
// LaTeX fragment carrying the text half.
func convertSplit(e Exporter, svgPath, outPath, fragPath string, opts Options, format types.Format) error {
	doc, err := svg.ParseFile(svgPath)
	if err != nil {
		return err
	}
	geom, err := doc.Geometry()
	if err != nil {
		return fmt.Errorf("%s: %w", svgPath, err)
	}
	labels, err := overlay.ExtractLabels(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", svgPath, err)
	}

	graphics, _ := doc.Split()

	tmpDir, err := os.MkdirTemp("", "svgtex-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	tmpSVG := filepath.Join(tmpDir, filepath.Base(svgPath))
	if err := graphics.WriteFile(tmpSVG); err != nil {
		return err
	}

	err = e.Export(inkscape.Request{
		Input:  tmpSVG,
		Output: outPath,
		Format: format,
		Area:   opts.Area,
		DPI:    opts.DPI,
	})
	if err != nil {
		return err
	}

	pic := overlay.Picture{GraphicPath: outPath, Labels: labels}
	if opts.Area == types.AreaDrawing {
		pic.Canvas, pic.Graphic, err = drawingBoxes(e, doc, geom)
		if err != nil {
			return err
		}
	} else {
		page := pageBox(geom)
		pic.Canvas, pic.Graphic = page, page
	}

	var buf bytes.Buffer
	if err := pic.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(fragPath, buf.Bytes(), 0o644); err != nil {
		return &OutputWriteError{Path: fragPath, Err: err}
	}
	return nil
}

// pageBox is the full canvas in rendered user units, placed so that it
// shares a coordinate system with extracted labels.
func pageBox(g svg.Geometry) svg.Rect {
	r := svg.Rect{W: g.Width, H: g.Height}
	if g.ViewBox != nil {
		r.X = g.ViewBox.X * g.Scale
		r.Y = g.ViewBox.Y * g.Scale
	}
	return r
}

// drawingBoxes derives the canvas and graphics boxes for a drawing-area
// export from a single geometry query: the graphics box is the union of
// the drawable elements' rows, and the canvas additionally covers every
// text anchor so no label falls outside the picture.
func drawingBoxes(e Exporter, doc *svg.Document, g svg.Geometry) (canvas, graphic svg.Rect, err error) {
	rows, err := e.QueryAll(doc.Path)
	if err != nil {
		return svg.Rect{}, svg.Rect{}, err
	}
	rowByID := make(map[string]inkscape.ObjectBounds, len(rows))
	for _, r := range rows {
		rowByID[r.ID] = r
	}

	graphicIDs, textIDs := elementIDs(doc)

	var gbox inkscape.ObjectBounds
	matched := false
	for _, id := range graphicIDs {
		r, ok := rowByID[id]
		if !ok {
			continue
		}
		if !matched {
			gbox, matched = r, true
		} else {
			gbox = inkscape.Union(gbox, r)
		}
	}
	if !matched {
		root, ok := inkscape.RootBounds(rows)
		if !ok {
			return svg.Rect{}, svg.Rect{}, fmt.Errorf("%s: no geometry reported", doc.Path)
		}
		gbox = root
	}

	cbox := gbox
	for _, id := range textIDs {
		if r, ok := rowByID[id]; ok {
			cbox = extendToPoint(cbox, r.X, r.Y)
		}
	}

	var sx, sy float64
	if g.ViewBox != nil {
		sx = g.ViewBox.X * g.Scale
		sy = g.ViewBox.Y * g.Scale
	}
	shift := func(b inkscape.ObjectBounds) svg.Rect {
		return svg.Rect{X: b.X + sx, Y: b.Y + sy, W: b.W, H: b.H}
	}
	return shift(cbox), shift(gbox), nil
}

// elementIDs collects the ids of drawable elements and of outermost text
// elements, skipping definitions. Text internals stay with their text
// element, matching how labels are extracted.
func elementIDs(doc *svg.Document) (graphicIDs, textIDs []string) {
	var walk func(e *svg.Element, inDefs bool)
	walk = func(e *svg.Element, inDefs bool) {
		if e.Is("defs") {
			inDefs = true
		}
		if id := e.Attr("", "id"); id != "" && !inDefs {
			switch {
			case svg.IsGraphic(e):
				graphicIDs = append(graphicIDs, id)
			case svg.IsText(e):
				textIDs = append(textIDs, id)
			}
		}
		if svg.IsText(e) {
			return
		}
		for _, c := range e.Children {
			walk(c, inDefs)
		}
	}
	walk(doc.Root, false)
	return graphicIDs, textIDs
}

func extendToPoint(b inkscape.ObjectBounds, x, y float64) inkscape.ObjectBounds {
	x0 := min(b.X, x)
	y0 := min(b.Y, y)
	x1 := max(b.X+b.W, x)
	y1 := max(b.Y+b.H, y)
	return inkscape.ObjectBounds{ID: b.ID, X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ConvertFigure converts a single figure, printing one status line to w.
// It returns the outcome so batch callers can tally it.
func ConvertFigure(e Exporter, svgPath string, opts Options, w io.Writer) types.Status {
	base := strings.TrimSuffix(filepath.Base(svgPath), filepath.Ext(svgPath))
	art, err := Convert(e, svgPath, opts)
	switch {
	case err != nil:
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.StatusFailed
	case art.Skipped:
		fmt.Fprintf(w, "skipped: %s (%s)\n", base, skipReason(art.Output))
		return types.StatusSkipped
	default:
		fmt.Fprintf(w, "converted: %s\n", base)
		return types.StatusConverted
	}
}

func skipReason(output string) string {
	fi, err := os.Stat(output)
	if err != nil {
		return "up to date"
	}
	return fmt.Sprintf("up to date, output from %s", humanize.Time(fi.ModTime()))
}

// ConvertBatch processes the figures in order, printing per-file status
// to w and returning a summary. Failures do not stop the batch.
func ConvertBatch(e Exporter, svgPaths []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range svgPaths {
		switch ConvertFigure(e, p, opts, w) {
		case types.StatusConverted:
			result.Converted++
		case types.StatusSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}
	result.Summary(w)
	return result
}
