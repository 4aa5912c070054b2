// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scenes

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/svgtex/internal/convert"
	"github.com/pdiddy/svgtex/internal/inkscape"
	"github.com/pdiddy/svgtex/internal/svg"
	"github.com/pdiddy/svgtex/pkg/types"
)

// DefaultRasterDPI is the PNG frame density when none is configured.
const DefaultRasterDPI = 180

// LayerNotFoundError reports a scene naming a layer the drawing does
// not have.
type LayerNotFoundError struct {
	Layer string
	Path  string
}

func (e *LayerNotFoundError) Error() string {
	return fmt.Sprintf("%s: no layer labeled %q", e.Path, e.Layer)
}

// Options control scene export.
type Options struct {
	// Format selects the per-frame output: pdf, eps, or png. Empty
	// means pdf.
	Format types.Format

	// Latex additionally writes the converter's LaTeX overlay file next
	// to each pdf or eps frame.
	Latex bool

	// Area picks the export region. Empty selects the drawing bounding
	// box for pdf and eps frames and the page for png, matching how
	// decks usually embed the two.
	Area types.Area

	// DPI is the raster density for png frames; 0 means
	// DefaultRasterDPI.
	DPI int

	// OutDir receives the frames. Empty means alongside the source.
	OutDir string

	// Force reconverts even when frames are newer than the source.
	Force bool
}

func (o Options) format() types.Format {
	if o.Format == "" {
		return types.FormatPDF
	}
	return o.Format
}

func (o Options) area() types.Area {
	if o.Area != "" {
		return o.Area
	}
	if o.format() == types.FormatPNG {
		return types.AreaPage
	}
	return types.AreaDrawing
}

// SceneName returns a frame's output stem: the source stem, the
// one-based scene ordinal, and the newest layer's label slugged.
// Deterministic names let a rerun gate each frame on its previous
// output.
func SceneName(svgPath string, sc Scene) string {
	base := strings.TrimSuffix(filepath.Base(svgPath), filepath.Ext(svgPath))
	name := fmt.Sprintf("%s_scene%02d", base, sc.Index+1)
	if len(sc.Layers) > 0 {
		if s := slug(sc.Layers[len(sc.Layers)-1]); s != "" {
			name += "_" + s
		}
	}
	return name
}

// slug lowercases a layer label and squeezes runs of anything but
// letters and digits to single dashes.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// ExportScene derives one frame from the drawing and converts it. The
// derived document goes to a scratch directory that is removed before
// returning. A frame whose outputs are newer than the source comes back
// with Skipped set and no converter run.
func ExportScene(e convert.Exporter, doc *svg.Document, sc Scene, opts Options) (types.Artifact, error) {
	art := types.Artifact{Source: doc.Path, Index: sc.Index}
	if len(sc.Layers) > 0 {
		art.Layer = sc.Layers[len(sc.Layers)-1]
	}

	format := opts.format()
	if opts.Latex && format.FragmentExt() == "" {
		return art, fmt.Errorf("latex overlays require pdf or eps frames, not %s", format)
	}

	known := make(map[string]bool)
	for _, l := range doc.Layers() {
		known[l.Label] = true
	}
	for _, name := range sc.Layers {
		if !known[name] {
			return art, &LayerNotFoundError{Layer: name, Path: doc.Path}
		}
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(doc.Path)
	}
	stem := SceneName(doc.Path, sc)
	art.Output = filepath.Join(outDir, stem+format.Ext())
	outputs := []string{art.Output}
	if opts.Latex {
		art.Fragment = filepath.Join(outDir, stem+format.FragmentExt())
		outputs = append(outputs, art.Fragment)
	}

	if !opts.Force {
		fresh, err := convert.UpToDate(doc.Path, outputs...)
		if err != nil {
			return art, err
		}
		if fresh {
			art.Skipped = true
			return art, nil
		}
	}

	derived := doc.Clone()
	visible := make(map[string]bool, len(sc.Layers))
	for _, name := range sc.Layers {
		visible[name] = true
	}
	for _, l := range derived.Layers() {
		if !visible[l.Label] {
			l.Hide()
			continue
		}
		l.Show()
		if op, ok := sc.Opacity[l.Label]; ok {
			l.SetOpacity(op)
		}
	}

	tmpDir, err := os.MkdirTemp("", "svgtex-")
	if err != nil {
		return art, err
	}
	defer os.RemoveAll(tmpDir)

	tmpSVG := filepath.Join(tmpDir, stem+".svg")
	if err := derived.WriteFile(tmpSVG); err != nil {
		return art, err
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return art, &convert.OutputWriteError{Path: opts.OutDir, Err: err}
		}
	}

	dpi := opts.DPI
	if format == types.FormatPNG && dpi == 0 {
		dpi = DefaultRasterDPI
	}
	return art, e.Export(inkscape.Request{
		Input:  tmpSVG,
		Output: art.Output,
		Format: format,
		Area:   opts.area(),
		Latex:  opts.Latex,
		DPI:    dpi,
	})
}

// Export converts every scene of the drawing in order, printing one
// status line per frame to w. A failing frame does not stop the rest.
// The returned artifacts cover every frame present afterwards, skipped
// ones included, so callers can join or reference the full sequence.
func Export(e convert.Exporter, svgPath string, list []Scene, opts Options, w io.Writer) ([]types.Artifact, convert.BatchResult) {
	var result convert.BatchResult
	doc, err := svg.ParseFile(svgPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", svgPath, err)
		result.Failed++
		result.Summary(w)
		return nil, result
	}

	arts := make([]types.Artifact, 0, len(list))
	for _, sc := range list {
		stem := SceneName(svgPath, sc)
		art, err := ExportScene(e, doc, sc, opts)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", stem, err)
			result.Failed++
		case art.Skipped:
			fmt.Fprintf(w, "skipped: %s (%s)\n", stem, skipReason(art.Output))
			result.Skipped++
			arts = append(arts, art)
		default:
			fmt.Fprintf(w, "converted: %s\n", stem)
			result.Converted++
			arts = append(arts, art)
		}
	}
	result.Summary(w)
	return arts, result
}

func skipReason(output string) string {
	fi, err := os.Stat(output)
	if err != nil {
		return "up to date"
	}
	return fmt.Sprintf("up to date, output from %s", humanize.Time(fi.ModTime()))
}
