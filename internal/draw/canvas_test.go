package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

// newTestCanvas returns a 10x5 cell canvas with one pixel per logical unit.
func newTestCanvas() *Canvas {
	return NewCanvas(10, 5, 10, 10)
}

func TestCanvasPlotFlipsY(t *testing.T) {
	c := newTestCanvas()

	c.Plot(vec.New2(0.5, 9.5), InkShape)
	c.Plot(vec.New2(0.5, 0.5), InkShape)

	assert.Equal(t, InkShape, c.Pixel(0, 0))
	assert.Equal(t, InkShape, c.Pixel(0, 9))
	assert.Equal(t, InkNone, c.Pixel(0, 5))
	assert.Equal(t, InkNone, c.Pixel(-1, 0), "outside")
}

func TestCanvasHigherInkWins(t *testing.T) {
	c := newTestCanvas()
	p := vec.New2(3.5, 3.5)

	c.Plot(p, InkHit)
	c.Plot(p, InkShape)
	assert.Equal(t, InkHit, c.Pixel(3, 6))

	c.Plot(p, InkViewer)
	assert.Equal(t, InkViewer, c.Pixel(3, 6))

	c.Clear()
	assert.Equal(t, InkNone, c.Pixel(3, 6))
}

func TestCanvasDrawLineClips(t *testing.T) {
	c := newTestCanvas()

	c.DrawLine(vec.New2(-100, 5.5), vec.New2(100, 5.5), InkRay)
	for x := range 10 {
		assert.Equal(t, InkRay, c.Pixel(x, 4), "x=%d", x)
		assert.Equal(t, InkNone, c.Pixel(x, 3), "x=%d", x)
	}

	c.Clear()
	c.DrawLine(vec.New2(20, 20), vec.New2(30, 25), InkRay)
	c.DrawLine(vec.New2(math.Inf(1), 1), vec.New2(1, 1), InkRay)
	c.DrawLine(vec.New2(math.NaN(), 1), vec.New2(1, 1), InkRay)
	for y := range 10 {
		for x := range 10 {
			require.Equal(t, InkNone, c.Pixel(x, y))
		}
	}
}

func TestClipLine(t *testing.T) {
	x1, y1, x2, y2, ok := clipLine(-5, 5, 15, 5, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 5, 10, 5}, []float64{x1, y1, x2, y2})

	x1, y1, x2, y2, ok = clipLine(2, 2, 4, 4, 10, 10)
	require.True(t, ok)
	assert.Equal(t, []float64{2, 2, 4, 4}, []float64{x1, y1, x2, y2})

	_, _, _, _, ok = clipLine(-5, -5, -1, 20, 10, 10)
	assert.False(t, ok)
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := newTestCanvas()
	var out bytes.Buffer

	c.Plot(vec.New2(0.5, 9.5), InkShape)
	c.Render(&out)
	first := out.String()
	assert.Contains(t, first, "\033[1;1H▀")
	assert.Equal(t, 50, strings.Count(first, "H"), "first render writes every cell")

	out.Reset()
	c.Render(&out)
	assert.Empty(t, out.String())

	c.Plot(vec.New2(2.5, 8.5), InkHit)
	c.Render(&out)
	assert.Equal(t, "\033[1;3H"+ColorBrightRed+"▄"+ColorReset, out.String())

	out.Reset()
	c.MarkTextDirty(3, 1, 2)
	c.Render(&out)
	assert.Equal(t, 2, strings.Count(out.String(), "H"))

	out.Reset()
	c.ForceRedraw()
	c.Render(&out)
	assert.Equal(t, 50, strings.Count(out.String(), "H"))
}

func TestCanvasRenderOffset(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(4, 2)
	c.Plot(vec.New2(9.5, 0.5), InkShape)

	var out bytes.Buffer
	c.Render(&out)
	assert.Contains(t, out.String(), "\033[7;14H▄")

	col, row := c.LogicalToTerminal(vec.New2(9.5, 0.5))
	assert.Equal(t, 10, col)
	assert.Equal(t, 5, row)
}

func TestCanvasRenderBorder(t *testing.T) {
	c := newTestCanvas()
	c.SetOffset(1, 1)

	var out bytes.Buffer
	c.RenderBorder(&out)
	s := out.String()
	assert.Contains(t, s, "\033[1;1H┌"+strings.Repeat("─", 10)+"┐")
	assert.Contains(t, s, "\033[7;1H└")
	assert.Equal(t, 5*2, strings.Count(s, "│"))
}

func TestCanvasResize(t *testing.T) {
	c := newTestCanvas()
	c.Resize(20, 10)

	assert.Equal(t, 20, c.TerminalWidth())
	assert.Equal(t, 10, c.TerminalHeight())
	sx, sy := c.Scale()
	assert.Equal(t, 2.0, sx)
	assert.Equal(t, 2.0, sy)

	c.SetLogicalSize(40, 20)
	sx, sy = c.Scale()
	assert.Equal(t, 0.5, sx)
	assert.Equal(t, 1.0, sy)
}

func TestDrawCollider(t *testing.T) {
	tests := []struct {
		name  string
		col   physics.Collider
		inked [][2]int
		blank [][2]int
	}{
		{
			name:  "segment",
			col:   physics.NewSegment(vec.New2(0.5, 0.5), vec.New2(9.5, 0.5)),
			inked: [][2]int{{0, 9}, {5, 9}, {9, 9}},
			blank: [][2]int{{5, 8}},
		},
		{
			name:  "circle",
			col:   physics.NewCircle(vec.New2(5, 5), 3),
			inked: [][2]int{{8, 5}, {5, 2}},
			blank: [][2]int{{5, 5}},
		},
		{
			name:  "rect",
			col:   physics.NewRect(vec.New2(5, 5), vec.New2(4, 2)),
			inked: [][2]int{{5, 6}, {5, 4}, {3, 5}},
			blank: [][2]int{{5, 5}},
		},
		{
			name:  "ray",
			col:   physics.NewRay(vec.New2(5, 2.5), vec.New2(1, 0)),
			inked: [][2]int{{0, 7}, {9, 7}},
			blank: [][2]int{{0, 6}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas()
			c.DrawCollider(tt.col, InkShape)
			for _, p := range tt.inked {
				assert.Equal(t, InkShape, c.Pixel(p[0], p[1]), "pixel %v", p)
			}
			for _, p := range tt.blank {
				assert.Equal(t, InkNone, c.Pixel(p[0], p[1]), "pixel %v", p)
			}
		})
	}
}

func TestOutline(t *testing.T) {
	pts, closed := Outline(nil, physics.NewSegment(vec.New2(1, 2), vec.New2(3, 4)), 0, 10)
	assert.False(t, closed)
	assert.Equal(t, []vec.Vec2{vec.New2(1, 2), vec.New2(3, 4)}, pts)

	pts, closed = Outline(nil, physics.NewRay(vec.New2(1, 1), vec.New2(2, 0)), 0, 10)
	assert.False(t, closed)
	assert.Equal(t, []vec.Vec2{vec.New2(-9, 1), vec.New2(11, 1)}, pts)

	pts, closed = Outline(nil, physics.NewCircle(vec.Zero2, 1), 1, 0)
	assert.True(t, closed)
	assert.Len(t, pts, minOutlineSamples)

	pts, _ = Outline(nil, physics.NewCircle(vec.Zero2, 1), 10000, 0)
	assert.Len(t, pts, maxOutlineSamples)

	pts, closed = Outline(nil, physics.NewRect(vec.Zero2, vec.New2(4, 2)), 0, 0)
	assert.True(t, closed)
	require.Len(t, pts, 4)
	assert.InDelta(t, -2, pts[0].X, 1e-9)
	assert.InDelta(t, 1, pts[1].Y, 1e-9)
	assert.InDelta(t, 2, pts[2].X, 1e-9)
	assert.InDelta(t, -1, pts[3].Y, 1e-9)
}

func TestDrawRay(t *testing.T) {
	c := newTestCanvas()
	r := physics.NewRay(vec.New2(0.5, 5.5), vec.New2(1, 0))
	res := physics.Raycast(r, []physics.Collider{physics.NewSegment(vec.New2(6.5, 0), vec.New2(6.5, 10))})
	require.True(t, res.DidHit)

	c.DrawRay(res, 1)
	assert.Equal(t, InkRay, c.Pixel(2, 4))
	assert.Equal(t, InkHit, c.Pixel(6, 4))
	assert.Equal(t, InkHit, c.Pixel(7, 5))
	assert.Equal(t, InkNone, c.Pixel(9, 4))
}

func TestFitTerminal(t *testing.T) {
	tests := []struct {
		name                       string
		termW, termH               int
		w, h                       float64
		cols, rows, offCol, offRow int
	}{
		{"exact", 120, 40, 120, 80, 120, 40, 0, 0},
		{"wide terminal", 200, 40, 120, 80, 120, 40, 40, 0},
		{"tall terminal", 120, 60, 120, 80, 120, 40, 0, 10},
		{"no size", 0, 0, 120, 80, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offCol, offRow := FitTerminal(tt.termW, tt.termH, tt.w, tt.h)
			assert.Equal(t, []int{tt.cols, tt.rows, tt.offCol, tt.offRow}, []int{cols, rows, offCol, offRow})
		})
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 1)

	n := cw.WriteAt(2, 2, "héllo")
	assert.Equal(t, 5, n)
	cw.WriteRune('!')
	assert.Empty(t, out.String(), "nothing is written before Flush")

	long := strings.Repeat("x", 3*maxChunkSize)
	cw.WriteString(long)
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;12Hhéllo!"+long, out.String())
	assert.Zero(t, cw.Len())

	out.Reset()
	cw.SetOffset(0, 0)
	cw.MoveCursor(1, 1)
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[1;1H", out.String())
}
