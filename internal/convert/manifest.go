// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/svgtex/pkg/types"
)

// Manifest is the on-disk list of a document's figures. Checking it into
// the repository makes a full rebuild one command instead of one command
// per figure.
type Manifest struct {
	Figures []ManifestEntry `yaml:"figures"`
}

// ManifestEntry names one figure and its conversion settings. Empty
// fields fall back to the options the batch was invoked with.
type ManifestEntry struct {
	SVG  string `yaml:"svg"`
	Mode string `yaml:"mode,omitempty"`
	Area string `yaml:"area,omitempty"`
	DPI  int    `yaml:"dpi,omitempty"`
}

// ReadManifest loads a figure manifest from disk.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// WriteManifest saves a figure manifest.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}

// ScanManifest builds a manifest skeleton from the SVG files under dir,
// with paths relative to baseDir when possible.
func ScanManifest(dir, baseDir, mode string) (*Manifest, error) {
	paths, err := ListSVGs(dir)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Figures: make([]ManifestEntry, 0, len(paths))}
	for _, p := range paths {
		if rel, err := filepath.Rel(baseDir, p); err == nil {
			p = rel
		}
		m.Figures = append(m.Figures, ManifestEntry{SVG: p, Mode: mode})
	}
	return m, nil
}

// ConvertManifest converts every figure in the manifest. Per-entry
// settings override the defaults; paths are resolved against baseDir.
// Entries with unknown modes or areas count as failures, and the batch
// keeps going.
func ConvertManifest(e Exporter, m *Manifest, baseDir string, defaults Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, entry := range m.Figures {
		opts, err := entry.options(defaults)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", entry.SVG, err)
			result.Failed++
			continue
		}
		path := entry.SVG
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		switch ConvertFigure(e, path, opts, w) {
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

func (entry ManifestEntry) options(defaults Options) (Options, error) {
	opts := defaults
	if entry.Mode != "" {
		mode, err := types.ParseMode(entry.Mode)
		if err != nil {
			return opts, err
		}
		opts.Format = mode.Format()
		opts.SplitText = mode.SplitText()
	}
	if entry.Area != "" {
		area, err := types.ParseArea(entry.Area)
		if err != nil {
			return opts, err
		}
		opts.Area = area
	}
	if entry.DPI != 0 {
		opts.DPI = entry.DPI
	}
	return opts, nil
}
