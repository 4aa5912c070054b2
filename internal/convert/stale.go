// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates SVG-to-LaTeX figure conversion: the
// staleness check, the graphics/text split, the Inkscape invocation, and
// the fragment write. Implements: prd001-figures (R1, R2, R4);
//
//	docs/ARCHITECTURE § Figure Conversion.
package convert

import (
	"fmt"
	"os"
)

// InputNotFoundError reports a missing or unreadable SVG source. A build
// that references a figure whose source is gone must stop, unlike a stale
// output which is simply regenerated.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// OutputWriteError reports a failure writing a conversion product.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// UpToDate reports whether every output is at least as new as the source.
// A missing output is stale; a missing source is an error. Outputs with
// the same timestamp as the source count as current, so rebuilds on
// filesystems with coarse timestamps do not loop.
func UpToDate(source string, outputs ...string) (bool, error) {
	src, err := os.Stat(source)
	if err != nil {
		return false, &InputNotFoundError{Path: source, Err: err}
	}
	if src.IsDir() {
		return false, &InputNotFoundError{
			Path: source,
			Err:  fmt.Errorf("is a directory"),
		}
	}
	for _, out := range outputs {
		tgt, err := os.Stat(out)
		if err != nil {
			return false, nil
		}
		if tgt.ModTime().Before(src.ModTime()) {
			return false, nil
		}
	}
	return len(outputs) > 0, nil
}
