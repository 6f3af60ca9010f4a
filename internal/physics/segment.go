package physics

import (
	"fmt"

	"github.com/tomz197/raycaster/internal/vec"
)

// Segment is the line segment from A to B. Its front side is on the left
// when walking from A to B (the side NormalAt points to).
type Segment struct {
	A, B        vec.Vec2
	DoubleSided bool
}

// NewSegment returns a single-sided segment from a to b.
func NewSegment(a, b vec.Vec2) Segment {
	return Segment{A: a, B: b}
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment{%v to %v}", s.A, s.B)
}

func (s Segment) Length() float64 {
	return vec.Dist(s.A, s.B)
}

// PointAt interpolates linearly from A (0) to B (1). Parameters outside
// [0, 1] extrapolate along the segment's line.
func (s Segment) PointAt(param float64) vec.Vec2 {
	return s.A.Lerp(s.B, param)
}

func (s Segment) NormalAt(float64) vec.Vec2 {
	return vec.Vec2{X: s.A.Y - s.B.Y, Y: s.B.X - s.A.X}
}

func (s Segment) Intersect(r Ray, maxSqrDistance float64) (Hit, bool) {
	return intersectLine(r, s.A, s.B.Sub(s.A), s.DoubleSided, false, true, maxSqrDistance)
}

// Contains reports whether p lies exactly on the segment.
func (s Segment) Contains(p vec.Vec2) bool {
	ab := s.B.Sub(s.A)
	ap := p.Sub(s.A)
	l := ab.SqrAbs()
	if l == 0 {
		return p == s.A
	}
	if ap.Cross(ab) != 0 {
		return false
	}
	t := ap.Dot(ab) / l
	return t >= 0 && t <= 1
}
