package physics

import (
	"fmt"
	"math"

	"github.com/tomz197/raycaster/internal/vec"
)

// Hit describes where a ray meets a collider.
type Hit struct {
	// RayParam is the multiple of the query ray's direction at which the hit
	// occurs. It is never negative.
	RayParam float64
	// ShapeParam locates the hit on the collider: the position along a
	// segment in [0, 1], the position along a circle or rectangle perimeter
	// in [0, 1), or the unbounded parameter along a target ray.
	ShapeParam float64
	// SqrDistance is the squared distance from the ray origin to the hit.
	SqrDistance float64
}

// Distance returns the distance from the ray origin to the hit.
func (h Hit) Distance() float64 {
	return math.Sqrt(h.SqrDistance)
}

func (h Hit) String() string {
	return fmt.Sprintf("Hit{ray=%g shape=%g sqrDist=%g}", h.RayParam, h.ShapeParam, h.SqrDistance)
}

// Collider is a shape that can be hit by a ray.
type Collider interface {
	// Length returns the perimeter of the shape. Rays are infinitely long
	// unless their direction is zero.
	Length() float64

	// PointAt maps a shape parameter to a point on the shape.
	PointAt(param float64) vec.Vec2

	// NormalAt returns the normal at the given shape parameter. It points
	// outwards, or inwards for inside-out shapes, and is not necessarily of
	// unit length.
	NormalAt(param float64) vec.Vec2

	// Intersect returns the hit of r on the shape, if there is one in front
	// of the ray origin that faces the ray and lies within maxSqrDistance.
	Intersect(r Ray, maxSqrDistance float64) (Hit, bool)

	// Contains reports whether p lies in the shape.
	Contains(p vec.Vec2) bool
}

// Intersect intersects r with c without a distance limit.
func Intersect(c Collider, r Ray) (Hit, bool) {
	return c.Intersect(r, math.Inf(1))
}

// Compile-time checks that all shapes implement Collider.
var (
	_ Collider = Ray{}
	_ Collider = Segment{}
	_ Collider = Circle{}
	_ Collider = Rect{}
)
