// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inkscape

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ObjectBounds is one row of Inkscape's --query-all output: an element id
// and its bounding box in user units, measured in drawing coordinates.
type ObjectBounds struct {
	ID         string
	X, Y, W, H float64
}

// QueryAll returns the bounding box of every object in the file, in
// document order. One invocation covers the whole tree, so callers that
// need several boxes pay for a single Inkscape start-up.
func (t *Tool) QueryAll(path string) ([]ObjectBounds, error) {
	stdout, stderr, err := t.exec.Run(t.path, "--without-gui", "--query-all", "--file="+path)
	if err != nil {
		return nil, &ConversionError{Input: path, Stderr: stderr, Err: err}
	}
	rows, err := parseQueryAll(stdout)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	return rows, nil
}

func parseQueryAll(out string) ([]ObjectBounds, error) {
	var rows []ObjectBounds
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// id,x,y,width,height; the id itself never contains a comma
		parts := strings.SplitN(line, ",", 5)
		if len(parts) != 5 {
			return nil, fmt.Errorf("malformed query row %q", line)
		}
		b := ObjectBounds{ID: parts[0]}
		for i, dst := range []*float64{&b.X, &b.Y, &b.W, &b.H} {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("malformed query row %q: %w", line, err)
			}
			*dst = v
		}
		rows = append(rows, b)
	}
	return rows, sc.Err()
}

// RootBounds picks the document's own box out of a query result. Inkscape
// lists the root element first with an id starting with "svg".
func RootBounds(rows []ObjectBounds) (ObjectBounds, bool) {
	for _, r := range rows {
		if strings.HasPrefix(r.ID, "svg") {
			return r, true
		}
	}
	return ObjectBounds{}, false
}

// Union returns the smallest box covering both operands. A zero-size box
// on either side yields the other.
func Union(a, b ObjectBounds) ObjectBounds {
	if a.W == 0 && a.H == 0 {
		return b
	}
	if b.W == 0 && b.H == 0 {
		return a
	}
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.X+a.W, b.X+b.W)
	y1 := max(a.Y+a.H, b.Y+b.H)
	return ObjectBounds{ID: a.ID, X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
