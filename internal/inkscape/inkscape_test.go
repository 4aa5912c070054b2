// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inkscape

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/svgtex/pkg/types"
)

// fakeExecutor records invocations and returns configured responses.
type fakeExecutor struct {
	paths map[string]string // LookPath results
	run   func(name string, args []string) (stdout, stderr string, err error)
	calls [][]string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if p, ok := f.paths[file]; ok {
		return p, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) Run(name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.run != nil {
		return f.run(name, args)
	}
	return "", "", nil
}

func fakeTool(exec *fakeExecutor) *Tool {
	return &Tool{path: "/usr/bin/inkscape", exec: exec}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		paths    map[string]string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "default binary on PATH",
			path:     "",
			paths:    map[string]string{"inkscape": "/usr/bin/inkscape"},
			wantPath: "/usr/bin/inkscape",
		},
		{
			name:     "configured binary",
			path:     "/opt/inkscape-0.92/bin/inkscape",
			paths:    map[string]string{"/opt/inkscape-0.92/bin/inkscape": "/opt/inkscape-0.92/bin/inkscape"},
			wantPath: "/opt/inkscape-0.92/bin/inkscape",
		},
		{
			name:    "not installed",
			path:    "",
			paths:   map[string]string{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, err := find(tt.path, &fakeExecutor{paths: tt.paths})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "inkscape not found") {
					t.Errorf("error should mention inkscape, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tool.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", tool.Path(), tt.wantPath)
			}
		})
	}
}

func TestRequestArgs(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "pdf with page area",
			req:  Request{Input: "in.svg", Output: "out.pdf", Format: types.FormatPDF},
			want: []string{
				"--without-gui", "--export-area-page", "--export-ignore-filters",
				"--export-dpi=96", "--export-pdf=out.pdf", "--file=in.svg",
			},
		},
		{
			name: "eps with drawing area and outlined text",
			req: Request{
				Input: "in.svg", Output: "out.eps", Format: types.FormatEPS,
				Area: types.AreaDrawing, TextToPath: true,
			},
			want: []string{
				"--without-gui", "--export-area-drawing", "--export-ignore-filters",
				"--export-text-to-path", "--export-dpi=96", "--export-eps=out.eps",
				"--file=in.svg",
			},
		},
		{
			name: "pdf with latex overlay",
			req: Request{
				Input: "in.svg", Output: "out.pdf", Format: types.FormatPDF,
				Area: types.AreaDrawing, Latex: true,
			},
			want: []string{
				"--without-gui", "--export-area-drawing", "--export-ignore-filters",
				"--export-latex", "--export-dpi=96", "--export-pdf=out.pdf",
				"--file=in.svg",
			},
		},
		{
			name: "png at explicit resolution",
			req: Request{
				Input: "in.svg", Output: "out.png", Format: types.FormatPNG,
				Area: types.AreaDrawing, DPI: 180,
			},
			want: []string{
				"--without-gui", "--export-area-drawing", "--export-ignore-filters",
				"--export-dpi=180", "--export-png=out.png", "--file=in.svg",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args()\n got: %v\nwant: %v", got, tt.want)
			}
		})
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fig.pdf")

	exec := &fakeExecutor{
		run: func(name string, args []string) (string, string, error) {
			if err := os.WriteFile(out, []byte("%PDF-1.5"), 0o644); err != nil {
				t.Fatal(err)
			}
			return "", "", nil
		},
	}
	err := fakeTool(exec).Export(Request{Input: "fig.svg", Output: out, Format: types.FormatPDF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("inkscape invoked %d times, want 1", len(exec.calls))
	}
}

func TestExportFailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fig.pdf")

	exec := &fakeExecutor{
		run: func(name string, args []string) (string, string, error) {
			// simulate a crash after the output was opened
			if err := os.WriteFile(out, []byte("%PDF-1.5 trunc"), 0o644); err != nil {
				t.Fatal(err)
			}
			return "", "fig.svg: parser error at line 40", errors.New("exit status 1")
		},
	}
	err := fakeTool(exec).Export(Request{Input: "fig.svg", Output: out, Format: types.FormatPDF})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a ConversionError", err)
	}
	if !strings.Contains(ce.Stderr, "parser error at line 40") {
		t.Errorf("stderr not captured: %q", ce.Stderr)
	}
	if !strings.Contains(err.Error(), "parser error at line 40") {
		t.Errorf("error text should surface stderr, got: %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("partial output should have been removed")
	}
}

func TestExportFailureKeepsUntouchedOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fig.pdf")
	if err := os.WriteFile(out, []byte("%PDF-1.5 good"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{
		run: func(name string, args []string) (string, string, error) {
			// fails before ever opening the output
			return "", "cannot load fig.svg", errors.New("exit status 1")
		},
	}
	err := fakeTool(exec).Export(Request{Input: "fig.svg", Output: out, Format: types.FormatPDF})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	data, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("previous output was removed: %v", readErr)
	}
	if string(data) != "%PDF-1.5 good" {
		t.Errorf("previous output changed: %q", data)
	}
}

func TestExportNoOutputProduced(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fig.pdf")
	err := fakeTool(&fakeExecutor{}).Export(Request{Input: "fig.svg", Output: out, Format: types.FormatPDF})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no output produced") {
		t.Errorf("error = %v, want mention of missing output", err)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	exec := &fakeExecutor{}
	err := fakeTool(exec).Export(Request{Input: "a.svg", Output: "a.gif", Format: types.Format("gif")})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(exec.calls) != 0 {
		t.Error("inkscape should not be invoked for an unknown format")
	}
}

func TestQueryAll(t *testing.T) {
	exec := &fakeExecutor{
		run: func(name string, args []string) (string, string, error) {
			want := []string{"--without-gui", "--query-all", "--file=fig.svg"}
			if !reflect.DeepEqual(args, want) {
				t.Errorf("query args = %v, want %v", args, want)
			}
			return "svg2,0,0,744.094,1052.362\nlayer1,10,20,100,50\ntext4,12.5,30.25,40,8.75\n", "", nil
		},
	}
	rows, err := fakeTool(exec).QueryAll("fig.svg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[2] != (ObjectBounds{ID: "text4", X: 12.5, Y: 30.25, W: 40, H: 8.75}) {
		t.Errorf("row 2 = %+v", rows[2])
	}

	root, ok := RootBounds(rows)
	if !ok || root.ID != "svg2" {
		t.Errorf("RootBounds = %+v, %v", root, ok)
	}
}

func TestQueryAllErrors(t *testing.T) {
	t.Run("nonzero exit", func(t *testing.T) {
		exec := &fakeExecutor{
			run: func(string, []string) (string, string, error) {
				return "", "cannot open fig.svg", errors.New("exit status 1")
			},
		}
		_, err := fakeTool(exec).QueryAll("fig.svg")
		var ce *ConversionError
		if !errors.As(err, &ce) {
			t.Fatalf("error %v is not a ConversionError", err)
		}
		if !strings.Contains(err.Error(), "querying fig.svg") {
			t.Errorf("error = %v, want querying context", err)
		}
	})

	t.Run("malformed row", func(t *testing.T) {
		exec := &fakeExecutor{
			run: func(string, []string) (string, string, error) {
				return "svg2,0,0,not-a-number,5\n", "", nil
			},
		}
		if _, err := fakeTool(exec).QueryAll("fig.svg"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestRootBoundsMissing(t *testing.T) {
	rows := []ObjectBounds{{ID: "layer1"}, {ID: "rect2"}}
	if _, ok := RootBounds(rows); ok {
		t.Error("RootBounds should report absence")
	}
}

func TestUnion(t *testing.T) {
	a := ObjectBounds{ID: "a", X: 0, Y: 0, W: 10, H: 10}
	b := ObjectBounds{ID: "b", X: 5, Y: -5, W: 10, H: 10}
	got := Union(a, b)
	want := ObjectBounds{ID: "a", X: 0, Y: -5, W: 15, H: 15}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	var zero ObjectBounds
	if Union(zero, a) != a {
		t.Error("union with zero box should yield the other box")
	}
	if Union(a, zero) != a {
		t.Error("union with zero box should yield the other box")
	}
}
