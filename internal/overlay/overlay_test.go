// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/svgtex/internal/svg"
)

func parseDoc(t *testing.T, body string) *svg.Document {
	t.Helper()
	doc, err := svg.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestExtractLabels_Styles(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">
  <text x="20" y="40" style="font-size:10px;font-family:CMU Sans Serif;font-weight:bold;font-style:italic;text-anchor:middle;fill:#ff0000">hi</text>
</svg>`)

	labels, err := ExtractLabels(doc)
	require.NoError(t, err)
	require.Len(t, labels, 1)

	l := labels[0]
	assert.Equal(t, "hi", l.Text)
	assert.Equal(t, 20.0, l.X)
	assert.Equal(t, 40.0, l.Y)
	assert.Equal(t, 10.0, l.Size)
	assert.Equal(t, "sf", l.Family)
	assert.Equal(t, WeightBold, l.Weight)
	assert.Equal(t, StyleItalic, l.Style)
	assert.Equal(t, AlignCenter, l.Align)
	assert.Equal(t, RGB{R: 255}, l.Color)
}

func TestExtractLabels_Defaults(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <text x="1" y="2">plain</text>
</svg>`)

	labels, err := ExtractLabels(doc)
	require.NoError(t, err)
	require.Len(t, labels, 1)

	l := labels[0]
	assert.Equal(t, "rm", l.Family)
	assert.Equal(t, WeightNormal, l.Weight)
	assert.Equal(t, StyleNormal, l.Style)
	assert.Equal(t, AlignLeft, l.Align)
	assert.Equal(t, 0.0, l.Size)
	assert.Equal(t, RGB{}, l.Color)
	assert.Equal(t, 0.0, l.Angle)
}

func TestExtractLabels_TspanJoin(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">
  <text x="10" y="10" style="font-size:10px;fill:#00ff00"><tspan x="10" y="10">first</tspan><tspan x="10" y="22" style="font-size:12px;fill:#0000ff">second</tspan></text>
</svg>`)

	labels, err := ExtractLabels(doc)
	require.NoError(t, err)
	require.Len(t, labels, 1)

	l := labels[0]
	// texts joined, anchored at the first span, styled by the last
	assert.Equal(t, "first second", l.Text)
	assert.Equal(t, 10.0, l.X)
	assert.Equal(t, 10.0, l.Y)
	assert.Equal(t, 12.0, l.Size)
	assert.Equal(t, RGB{B: 255}, l.Color)
}

func TestExtractLabels_Transforms(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">
  <g transform="translate(100,50)">
    <text x="10" y="20">moved</text>
  </g>
  <text x="0" y="0" transform="rotate(30)">tilted</text>
</svg>`)

	labels, err := ExtractLabels(doc)
	require.NoError(t, err)
	require.Len(t, labels, 2)

	assert.Equal(t, 110.0, labels[0].X)
	assert.Equal(t, 70.0, labels[0].Y)
	assert.Equal(t, 0.0, labels[0].Angle)

	assert.InDelta(t, -30.0, labels[1].Angle, 1e-9)
}

func TestExtractLabels_DocumentScale(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="210mm" height="297mm" viewBox="0 0 744.094 1052.362">
  <text x="100" y="200">scaled</text>
</svg>`)

	labels, err := ExtractLabels(doc)
	require.NoError(t, err)
	require.Len(t, labels, 1)

	scale := 210.0 / 25.4 * 96 / 744.094
	assert.InDelta(t, 100*scale, labels[0].X, 1e-9)
	assert.InDelta(t, 200*scale, labels[0].Y, 1e-9)
}

func TestExtractLabels_BadTransform(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
  <text x="0" y="0" transform="spin(9)">x</text>
</svg>`)

	_, err := ExtractLabels(doc)
	assert.Error(t, err)
}

func TestFillColor(t *testing.T) {
	tests := []struct {
		fill string
		want RGB
	}{
		{"#ff8000", RGB{R: 255, G: 128}},
		{"#f80", RGB{R: 255, G: 136}},
		{"#000000", RGB{}},
		{"none", RGB{}},
		{"", RGB{}},
		{"currentColor", RGB{}},
		{"#zzzzzz", RGB{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fillColor(tt.fill), "fill %q", tt.fill)
	}
}

func TestLabelTeX(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{
			name:  "plain",
			label: Label{Text: "hello"},
			want:  `\rmfamily\makebox(0,0)[bl]{\smash{hello}}`,
		},
		{
			name: "full dress",
			label: Label{
				Text: "$x_1$", Family: "sf", Weight: 700,
				Style: StyleItalic, Size: 12,
				Color: RGB{G: 128, B: 255}, Align: AlignCenter,
			},
			want: `\sffamily\bfseries\itshape\fontsize{9}{10.8}\selectfont\color[RGB]{0,128,255}\makebox(0,0)[b]{\smash{$x_1$}}`,
		},
		{
			name:  "oblique right aligned",
			label: Label{Text: "q", Family: "tt", Style: StyleOblique, Align: AlignRight},
			want:  `\ttfamily\slshape\makebox(0,0)[br]{\smash{q}}`,
		},
		{
			name:  "rotated",
			label: Label{Text: "r", Angle: -30},
			want:  `\rotatebox{-30}{\rmfamily\makebox(0,0)[bl]{\smash{r}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label.TeX())
		})
	}
}

func TestPictureWrite(t *testing.T) {
	p := Picture{
		Canvas:      svg.Rect{X: 0, Y: 0, W: 100, H: 80},
		Graphic:     svg.Rect{X: 10, Y: 20, W: 50, H: 30},
		GraphicPath: "fig.pdf",
		Labels:      []Label{{Text: "hello", X: 30, Y: 40}},
	}

	var b strings.Builder
	require.NoError(t, p.Write(&b))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "\\begingroup%\n"))
	assert.True(t, strings.HasSuffix(out, "\\end{picture}%\n\\endgroup%\n"))
	assert.Contains(t, out, `\setlength{\unitlength}{\svgwidth}`)
	assert.Contains(t, out, `\global\let\svgwidth\undefined`)
	assert.Contains(t, out, "\\begin{picture}(1, 0.8)%\n")

	// graphics box: x = 10/100, y = (80 - (20+30))/100, width = 50/100
	assert.Contains(t, out,
		`\put(0.1, 0.3){\includegraphics[width=0.5\unitlength]{fig.pdf}}%`)
	// label: x = 30/100, y = (80 - 40)/100
	assert.Contains(t, out,
		`\put(0.3, 0.4){\rmfamily\makebox(0,0)[bl]{\smash{hello}}}%`)
}

func TestPictureWrite_OffsetCanvas(t *testing.T) {
	// drawing-area exports have a canvas that does not start at the origin
	p := Picture{
		Canvas:      svg.Rect{X: 50, Y: 25, W: 200, H: 100},
		Graphic:     svg.Rect{X: 50, Y: 25, W: 200, H: 100},
		GraphicPath: "fig.pdf",
		Labels:      []Label{{Text: "corner", X: 50, Y: 125}},
	}

	var b strings.Builder
	require.NoError(t, p.Write(&b))
	out := b.String()

	// the graphics fill the whole picture
	assert.Contains(t, out,
		`\put(0, 0){\includegraphics[width=1\unitlength]{fig.pdf}}%`)
	// the label sits at the bottom left corner
	assert.Contains(t, out, `\put(0, 0){\rmfamily`)
}

func TestPictureWrite_TextOnly(t *testing.T) {
	p := Picture{
		Canvas: svg.Rect{W: 100, H: 50},
		Labels: []Label{{Text: "only text", X: 10, Y: 10}},
	}

	var b strings.Builder
	require.NoError(t, p.Write(&b))
	out := b.String()

	assert.NotContains(t, out, `\includegraphics`)
	assert.Contains(t, out, `\put(0.1, 0.4){`)
}

func TestPictureWrite_EmptyCanvas(t *testing.T) {
	var b strings.Builder
	err := Picture{}.Write(&b)
	assert.Error(t, err)
}
