package draw

import (
	"math"

	"github.com/tomz197/raycaster/internal/physics"
	"github.com/tomz197/raycaster/internal/vec"
)

const (
	minOutlineSamples = 12
	maxOutlineSamples = 360
)

// Outline appends points tracing col to dst and reports whether they form a
// closed loop. Circles and other curved colliders are sampled through PointAt
// with the given number of samples. Rays are cut to the part within reach of
// their origin.
func Outline(dst []vec.Vec2, col physics.Collider, samples int, reach float64) ([]vec.Vec2, bool) {
	switch s := col.(type) {
	case physics.Segment:
		return append(dst, s.A, s.B), false
	case physics.Ray:
		l := s.Direction.Abs()
		if l == 0 {
			return append(dst, s.Origin), false
		}
		t := reach / l
		return append(dst, s.PointAt(-t), s.PointAt(t)), false
	case physics.Rect:
		p := s.Size.X + s.Size.Y
		if p == 0 {
			return append(dst, s.Center), false
		}
		fy := s.Size.Y / (2 * p)
		return append(dst, s.PointAt(0), s.PointAt(fy), s.PointAt(0.5), s.PointAt(0.5+fy)), true
	}
	samples = min(max(samples, minOutlineSamples), maxOutlineSamples)
	for i := range samples {
		dst = append(dst, col.PointAt(float64(i)/float64(samples)))
	}
	return dst, true
}

// outlineSamples picks a sample count giving roughly one point every two
// pixels along the collider.
func (c *Canvas) outlineSamples(col physics.Collider) int {
	l := col.Length()
	if math.IsInf(l, 0) || math.IsNaN(l) {
		return minOutlineSamples
	}
	sx, sy := c.Scale()
	return int(l * max(sx, sy) / 2)
}

// DrawCollider draws the outline of col.
func (c *Canvas) DrawCollider(col physics.Collider, ink Ink) {
	reach := math.Hypot(c.logicalWidth, c.logicalHeight)
	pts, closed := Outline(c.BorrowPoints(0), col, c.outlineSamples(col), reach)
	c.polygonBuf = pts[:0]

	switch {
	case len(pts) == 1:
		c.Plot(pts[0], ink)
	case closed:
		c.DrawPolygon(pts, false, ink)
	default:
		for i := 0; i+1 < len(pts); i++ {
			c.DrawLine(pts[i], pts[i+1], ink)
		}
	}
}

// DrawRay draws res as a line from the ray origin to where it stopped, with
// a marker of the given radius on the hit point.
func (c *Canvas) DrawRay(res physics.Result, markerRadius int) {
	end := res.Point()
	c.DrawLine(res.Ray.Origin, end, InkRay)
	if res.DidHit {
		c.DrawMarker(end, markerRadius, InkHit)
	}
}

// DrawMarker inks a square of (2*radius+1) pixels centred on p.
func (c *Canvas) DrawMarker(p vec.Vec2, radius int, ink Ink) {
	x, y := c.toPixel(p)
	px, py := int(math.Floor(x)), int(math.Floor(y))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c.setPixel(px+dx, py+dy, ink)
		}
	}
}
