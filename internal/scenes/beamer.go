// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scenes

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/svgtex/pkg/types"
)

// OverlayOptions shape the beamer inclusion script.
type OverlayOptions struct {
	// Order holds one beamer overlay spec per scene, like "1-2" or "3".
	// Empty gives each scene its own numbered slide.
	Order []string

	// Width is the \svgwidth value frames are scaled to, like
	// "0.8\columnwidth". Empty leaves frames at natural size.
	Width string

	// Overprint wraps the scenes in an overprint environment so they
	// stack on the same frame area.
	Overprint bool
}

// ParseSceneOrder splits a comma-separated overlay spec list like
// "1-2,3,4-" into per-scene entries.
func ParseSceneOrder(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// WriteOverlayScript emits the beamer snippet playing the scene frames
// in order: one \onslide per frame wrapping an \input of its overlay
// fragment, or an \includegraphics for frames without one. The width
// must be restated before every \input because each fragment undefines
// \svgwidth after use.
func WriteOverlayScript(w io.Writer, arts []types.Artifact, opts OverlayOptions) error {
	order := opts.Order
	if len(order) == 0 {
		order = make([]string, len(arts))
		for i := range arts {
			order[i] = strconv.Itoa(i + 1)
		}
	}
	if len(order) != len(arts) {
		return fmt.Errorf("scene order has %d entries for %d scenes", len(order), len(arts))
	}

	var b strings.Builder
	if opts.Width != "" {
		fmt.Fprintf(&b, "\\def\\tempsvgwidth{%s}\n", opts.Width)
	} else {
		b.WriteString("\\global\\let\\svgwidth\\undefined\n")
	}
	if opts.Overprint {
		b.WriteString("\\begin{overprint}\n")
	}
	for i, art := range arts {
		fmt.Fprintf(&b, "\t\\onslide<%s>\n", order[i])
		switch {
		case art.Fragment != "":
			if opts.Width != "" {
				b.WriteString("\t\t\\def\\svgwidth{\\tempsvgwidth}\n")
			} else {
				b.WriteString("\t\t\\global\\let\\svgwidth\\undefined\n")
			}
			fmt.Fprintf(&b, "\t\t\\input{%s}\n", art.Fragment)
		case opts.Width != "":
			fmt.Fprintf(&b, "\t\t\\includegraphics[width=%s]{%s}\n", opts.Width, art.Output)
		default:
			fmt.Fprintf(&b, "\t\t\\includegraphics{%s}\n", art.Output)
		}
	}
	if opts.Overprint {
		b.WriteString("\\end{overprint}\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
