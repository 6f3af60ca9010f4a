package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/raycaster/internal/vec"
)

// Ink is what a pixel shows. Higher inks cover lower ones.
type Ink uint8

const (
	InkNone Ink = iota
	InkShape
	InkRay
	InkHit
	InkViewer
)

// color returns the escape sequence an ink is rendered with, or "" for the
// terminal default.
func (i Ink) color() string {
	switch i {
	case InkRay:
		return ColorYellow
	case InkHit:
		return ColorBrightRed
	case InkViewer:
		return ColorBrightCyan
	}
	return ""
}

// dirtyCell marks a cell that must be written on the next Render.
const dirtyCell = math.MaxUint16

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps a logical area with the y axis pointing up onto terminal pixels, and
// only rewrites cells that changed since the previous Render.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]
	shown          []uint16

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when the terminal is larger than
	// the drawing. These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []vec.Vec2 // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64  // Reusable buffer for scanline intersections
	polygonBuf      []vec.Vec2 // Reusable buffer for outline generation
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing the
// logical area [0, logicalWidth] x [0, logicalHeight].
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
		c.shown = make([]uint16, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.rescale()
}

// SetLogicalSize changes the logical area shown by the canvas.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth, c.logicalHeight = width, height
	c.rescale()
}

func (c *Canvas) rescale() {
	c.scaleX, c.scaleY = 0, 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(c.termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = dirtyCell
	}
}

// MarkTextDirty marks n cells starting at the 1-based canvas position
// (col, row) for rewriting. Use it where text was drawn over the canvas.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[row*c.termWidth+x] = dirtyCell
	}
}

// setPixel inks a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		if ink > c.pixels[i] {
			c.pixels[i] = ink
		}
	}
}

// Pixel returns the ink at actual terminal pixel coordinates.
func (c *Canvas) Pixel(x, y int) Ink {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return InkNone
}

// toPixel maps a logical point to fractional pixel coordinates.
func (c *Canvas) toPixel(p vec.Vec2) (float64, float64) {
	return p.X * c.scaleX, (c.logicalHeight - p.Y) * c.scaleY
}

// Plot inks the pixel under a logical point.
func (c *Canvas) Plot(p vec.Vec2, ink Ink) {
	x, y := c.toPixel(p)
	c.setPixel(int(math.Floor(x)), int(math.Floor(y)), ink)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space; the part outside the canvas is clipped
// before rasterising.
func (c *Canvas) DrawLine(p1, p2 vec.Vec2, ink Ink) {
	fx1, fy1 := c.toPixel(p1)
	fx2, fy2 := c.toPixel(p2)
	fx1, fy1, fx2, fy2, ok := clipLine(fx1, fy1, fx2, fy2, float64(c.termWidth), float64(c.subPixelHeight))
	if !ok {
		return
	}

	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))
	x2, y2 := int(math.Floor(fx2)), int(math.Floor(fy2))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, ink)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// clipLine clips the line to the box [0, w] x [0, h] (Liang-Barsky).
func clipLine(x1, y1, x2, y2, w, h float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{{-dx, x1}, {dx, w - x1}, {-dy, y1}, {dy, h - y1}} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// DrawPolygon draws a closed polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []vec.Vec2, filled bool, ink Ink) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, ink)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], ink)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []vec.Vec2, ink Ink) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]vec.Vec2, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i].X, scaled[i].Y = c.toPixel(p)
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		slices.Sort(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i]-0.5)), 0)
			xEnd := min(int(math.Floor(intersections[i+1]-0.5)), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, ink)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every cell that changed since the last Render using
// half-block characters.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := uint16(top)<<8 | uint16(bottom)
			i := row*c.termWidth + col
			if c.shown[i] == cell {
				continue
			}
			c.shown[i] = cell

			var ch rune
			switch {
			case top != InkNone && bottom != InkNone:
				ch = BlockFull
			case top != InkNone:
				ch = BlockUpperHalf
			case bottom != InkNone:
				ch = BlockLowerHalf
			default:
				ch = BlockEmpty
			}

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')
			if color := max(top, bottom).color(); color != "" {
				buf = append(buf, color...)
				buf = appendRune(buf, ch)
				buf = append(buf, ColorReset...)
			} else {
				buf = appendRune(buf, ch)
			}
		}
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		_, _ = w.Write(chunk)
		buf = buf[len(chunk):]
	}
}

func appendRune(buf []byte, r rune) []byte {
	if r < 0x80 {
		return append(buf, byte(r))
	}
	return append(buf, string(r)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the drawing on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursor(top, left) + "┌" + line + "┐")
			buf.WriteString(cursor(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursor(top, c.offsetCol+1) + line)
			buf.WriteString(cursor(bottom, c.offsetCol+1) + line)
		}
	}

	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursor(row, left) + "│" + cursor(row, right) + "│")
		}
	}

	_, _ = io.WriteString(w, buf.String())
}

func cursor(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the width of the logical area.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the height of the logical area.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Scale returns the number of pixels per logical unit on each axis.
func (c *Canvas) Scale() (float64, float64) {
	return c.scaleX, c.scaleY
}

// LogicalToTerminal converts a logical point to a 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(p vec.Vec2) (col, row int) {
	x, y := c.toPixel(p)
	return int(math.Floor(x)) + 1, int(math.Floor(y))/2 + 1
}

// BorrowPoints returns a reusable slice of points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Thread-safe as long as each goroutine uses its own Canvas instance.
func (c *Canvas) BorrowPoints(n int) []vec.Vec2 {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]vec.Vec2, n)
	}
	return c.polygonBuf[:n]
}
