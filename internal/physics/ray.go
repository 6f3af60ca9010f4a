package physics

import (
	"fmt"
	"math"

	"github.com/tomz197/raycaster/internal/vec"
)

// Ray is a half-line from Origin along Direction.
//
// As a query, Origin + t*Direction is the hit point for a Hit with
// RayParam t. InsideOut on a query ray makes circles report the far
// intersection instead of the near one.
//
// As a collider, a ray behaves like the infinite line through Origin: hits on
// either side of Origin count, and ShapeParam is unbounded. Rays are hit from
// the side their normal points to unless DoubleSided is set; InsideOut swaps
// that side.
type Ray struct {
	Origin      vec.Vec2
	Direction   vec.Vec2
	DoubleSided bool
	InsideOut   bool
}

// NewRay returns a single-sided ray.
func NewRay(origin, direction vec.Vec2) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray{%v -> %v}", r.Origin, r.Direction)
}

// Length is infinite, or zero when the direction is zero.
func (r Ray) Length() float64 {
	if r.Direction.IsZero() {
		return 0
	}
	return math.Inf(1)
}

// PointAt returns Origin + t*Direction.
func (r Ray) PointAt(t float64) vec.Vec2 {
	return vec.Vec2{X: r.Origin.X + t*r.Direction.X, Y: r.Origin.Y + t*r.Direction.Y}
}

// NormalAt returns the direction rotated by 90 degrees counter-clockwise.
func (r Ray) NormalAt(float64) vec.Vec2 {
	n := vec.Vec2{X: -r.Direction.Y, Y: r.Direction.X}
	if r.InsideOut {
		return n.Neg()
	}
	return n
}

func (r Ray) Intersect(q Ray, maxSqrDistance float64) (Hit, bool) {
	return intersectLine(q, r.Origin, r.Direction, r.DoubleSided, r.InsideOut, false, maxSqrDistance)
}

// Contains reports whether p lies exactly on the line through the ray. A
// zero-direction ray contains only its origin.
func (r Ray) Contains(p vec.Vec2) bool {
	if r.Direction.IsZero() {
		return p == r.Origin
	}
	return p.Sub(r.Origin).Cross(r.Direction) == 0
}
