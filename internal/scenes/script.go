// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scenes derives presentation frames from a layered drawing.
// A scene names the layers visible in one frame; exporting walks the
// scene list, rewrites layer visibility on a copy of the drawing, and
// converts each copy in turn.
//
// Implements: prd002-scenes R1 (scene scripts), R2 (frame export);
//
//	docs/ARCHITECTURE § Scene Export.
package scenes

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/svgtex/internal/svg"
)

// Scene is one frame of a layered drawing.
type Scene struct {
	// Index is the zero-based position in the scene sequence.
	Index int

	// Layers lists the visible layer labels in the order named.
	Layers []string

	// Opacity carries per-layer opacity overrides. Layers without an
	// entry keep whatever opacity the drawing stores.
	Opacity map[string]float64
}

// ParseScript reads a scene script. Each line describes one frame as a
// comma-separated list of layer labels, each with an optional
// "* opacity" suffix. A line starting with "+" extends the previous
// frame's layers instead of starting from none:
//
//	background, axes
//	background, axes, data * 0.5
//	+fit
//
// Blank lines are skipped. Mentioning an inherited layer again without
// a suffix drops its inherited opacity override.
func ParseScript(lines []string) ([]Scene, error) {
	var scenes []Scene
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sc := Scene{Index: len(scenes), Opacity: make(map[string]float64)}
		if rest, ok := strings.CutPrefix(line, "+"); ok {
			if len(scenes) == 0 {
				return nil, fmt.Errorf("scene 1 starts with \"+\" but there is no scene before it to extend")
			}
			prev := scenes[len(scenes)-1]
			sc.Layers = slices.Clone(prev.Layers)
			maps.Copy(sc.Opacity, prev.Opacity)
			line = rest
		}
		for _, item := range strings.Split(line, ",") {
			name, opacity, hasOpacity := strings.Cut(item, "*")
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("scene %d: empty layer name", sc.Index+1)
			}
			if !slices.Contains(sc.Layers, name) {
				sc.Layers = append(sc.Layers, name)
			}
			if hasOpacity {
				v, err := strconv.ParseFloat(strings.TrimSpace(opacity), 64)
				if err != nil {
					return nil, fmt.Errorf("scene %d: layer %s: opacity %q is not a number",
						sc.Index+1, name, strings.TrimSpace(opacity))
				}
				sc.Opacity[name] = v
			} else {
				delete(sc.Opacity, name)
			}
		}
		scenes = append(scenes, sc)
	}
	return scenes, nil
}

// CumulativeScenes builds one scene per prefix of layers: frame k shows
// layers[0] through layers[k], so every frame is a visual superset of
// the one before it.
func CumulativeScenes(layers []string) []Scene {
	scenes := make([]Scene, len(layers))
	for i := range layers {
		scenes[i] = Scene{Index: i, Layers: slices.Clone(layers[:i+1])}
	}
	return scenes
}

// IndividualScenes builds one scene per layer, each showing that layer
// alone.
func IndividualScenes(layers []string) []Scene {
	scenes := make([]Scene, len(layers))
	for i, name := range layers {
		scenes[i] = Scene{Index: i, Layers: []string{name}}
	}
	return scenes
}

// ContentLayer is the label of the layer holding an embedded scene
// script.
const ContentLayer = "content"

// EmbeddedScript reads the scene script stored in the drawing itself: a
// plain text box in a layer labeled "content" (case-insensitive), one
// scene per line. The authoring convention keeps a drawing and its
// build-up order in one file.
func EmbeddedScript(doc *svg.Document) ([]string, error) {
	var content *svg.Element
	for _, l := range doc.Layers() {
		if strings.EqualFold(l.Label, ContentLayer) {
			content = l.Elem
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no %q layer: add one holding a text box with one scene per line", ContentLayer)
	}
	var lines []string
	for _, text := range content.Children {
		if !text.Is("text") {
			continue
		}
		for _, span := range text.Children {
			if span.Is("tspan") && strings.TrimSpace(span.Text) != "" {
				lines = append(lines, span.Text)
			}
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("the %q layer has no script lines: use a plain text box, not flowed text", ContentLayer)
	}
	return lines, nil
}
