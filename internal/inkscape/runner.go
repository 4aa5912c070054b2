// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inkscape drives an external Inkscape binary for vector exports
// and geometry queries. Implements: prd001-figures R3 (external conversion);
//
//	docs/ARCHITECTURE § Figure Conversion.
package inkscape

import (
	"bytes"
	"fmt"
	"os/exec"
)

const binInkscape = "inkscape"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (stdout, stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Tool is a located Inkscape binary. All exports and queries in a run go
// through one Tool so the binary is resolved exactly once.
type Tool struct {
	path string
	exec executor
}

var defaultExec = &osExecutor{}

// Find resolves the Inkscape binary. An empty path searches PATH for the
// standard binary name; a non-empty path names the binary or a directory
// entry to use instead, letting configuration pin a specific build.
func Find(path string) (*Tool, error) {
	return find(path, defaultExec)
}

func find(path string, exec executor) (*Tool, error) {
	if path == "" {
		path = binInkscape
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("inkscape not found (looked for %q): %w", path, err)
	}
	return &Tool{path: resolved, exec: exec}, nil
}

// Path returns the resolved binary path.
func (t *Tool) Path() string { return t.path }
