// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svg

import (
	"strings"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"100", 100},
		{"10px", 10},
		{"1in", 96},
		{"25.4mm", 96},
		{"2.54cm", 96},
		{"72pt", 96},
		{"1pc", 16},
		{"210mm", 793.700787401575},
		{" 12 ", 12},
		{"-4.5", -4.5},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("ParseLength(%q) = %g, want %g", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLengthErrors(t *testing.T) {
	for _, input := range []string{"", "abc", "10em", "100%", "px"} {
		if _, err := ParseLength(input); err == nil {
			t.Errorf("ParseLength(%q) should fail", input)
		}
	}
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		input string
		want  Rect
	}{
		{"0 0 744.094 1052.362", Rect{0, 0, 744.094, 1052.362}},
		{"0,0,100,200", Rect{0, 0, 100, 200}},
		{"10, 20 30,40", Rect{10, 20, 30, 40}},
		{"-5 -5 10 10", Rect{-5, -5, 10, 10}},
	}
	for _, tt := range tests {
		got, err := ParseViewBox(tt.input)
		if err != nil {
			t.Fatalf("ParseViewBox(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseViewBox(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	for _, input := range []string{"", "1 2 3", "1 2 3 4 5", "a b c d"} {
		if _, err := ParseViewBox(input); err == nil {
			t.Errorf("ParseViewBox(%q) should fail", input)
		}
	}
}

func geometryDoc(t *testing.T, attrs string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(
		`<svg xmlns="http://www.w3.org/2000/svg" ` + attrs + `/>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		name       string
		attrs      string
		wantWidth  float64
		wantHeight float64
		wantScale  float64
	}{
		{
			name:       "pixel dimensions without viewBox",
			attrs:      `width="400" height="300"`,
			wantWidth:  400,
			wantHeight: 300,
			wantScale:  1,
		},
		{
			name:       "millimetre dimensions with viewBox",
			attrs:      `width="210mm" height="297mm" viewBox="0 0 744.094 1052.362"`,
			wantWidth:  793.700787401575,
			wantHeight: 1122.519685039370,
			wantScale:  793.700787401575 / 744.094,
		},
		{
			name:       "viewBox only",
			attrs:      `viewBox="0 0 640 480"`,
			wantWidth:  640,
			wantHeight: 480,
			wantScale:  1,
		},
		{
			name:       "width only falls back to viewBox height",
			attrs:      `width="100" viewBox="0 0 50 25"`,
			wantWidth:  100,
			wantHeight: 25,
			wantScale:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := geometryDoc(t, tt.attrs).Geometry()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(g.Width, tt.wantWidth) {
				t.Errorf("Width = %g, want %g", g.Width, tt.wantWidth)
			}
			if !almostEqual(g.Height, tt.wantHeight) {
				t.Errorf("Height = %g, want %g", g.Height, tt.wantHeight)
			}
			if !almostEqual(g.Scale, tt.wantScale) {
				t.Errorf("Scale = %g, want %g", g.Scale, tt.wantScale)
			}
		})
	}
}

func TestGeometryErrors(t *testing.T) {
	if _, err := geometryDoc(t, `id="svg1"`).Geometry(); err == nil {
		t.Error("document without width or viewBox should fail")
	}
	if _, err := geometryDoc(t, `width="100%" height="100%"`).Geometry(); err == nil {
		t.Error("percentage dimensions should fail")
	}
}
