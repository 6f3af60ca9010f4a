package physics

import (
	"fmt"
	"math"

	"github.com/tomz197/raycaster/internal/fastmath"
	"github.com/tomz197/raycaster/internal/vec"
)

// Circle is a circle around Center.
//
// Rotation (degrees) places parameter 0 on the circumference; parameters run
// counter-clockwise. A solid circle reports where a ray enters it, an
// InsideOut circle (a circular wall seen from inside) where the ray leaves it.
type Circle struct {
	Center    vec.Vec2
	Radius    float64
	Rotation  float64
	InsideOut bool
}

// NewCircle returns a solid, unrotated circle.
func NewCircle(center vec.Vec2, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle{%v r=%g}", c.Center, c.Radius)
}

func (c Circle) Length() float64 {
	return 2 * math.Pi * c.Radius
}

func (c Circle) PointAt(param float64) vec.Vec2 {
	angle := c.Rotation + param*360
	return vec.Vec2{
		X: c.Center.X + fastmath.Cos(angle)*c.Radius,
		Y: c.Center.Y + fastmath.Sin(angle)*c.Radius,
	}
}

// NormalAt returns the unit normal at param.
func (c Circle) NormalAt(param float64) vec.Vec2 {
	angle := c.Rotation + param*360
	n := vec.Vec2{X: fastmath.Cos(angle), Y: fastmath.Sin(angle)}
	if c.InsideOut {
		return n.Neg()
	}
	return n
}

// Intersect solves |o + t*d - center|² = radius² for t. The near root is
// used for solid circles and the far root for inside-out ones; an inside-out
// query ray swaps the choice again.
func (c Circle) Intersect(r Ray, maxSqrDistance float64) (Hit, bool) {
	dx, dy := r.Origin.X-c.Center.X, r.Origin.Y-c.Center.Y

	a := 2 * (r.Direction.X*r.Direction.X + r.Direction.Y*r.Direction.Y)
	if a == 0 {
		return Hit{}, false
	}
	b := 2 * (dx*r.Direction.X + dy*r.Direction.Y)
	disc := b*b - 2*a*(dx*dx+dy*dy-c.Radius*c.Radius)
	if disc < 0 {
		return Hit{}, false
	}
	disc = math.Sqrt(disc)

	var t float64
	if c.InsideOut != r.InsideOut {
		t = (-b + disc) / a
	} else {
		t = (-b - disc) / a
	}
	if t < 0 {
		return Hit{}, false
	}

	hx, hy := t*r.Direction.X, t*r.Direction.Y
	sqr := hx*hx + hy*hy
	if sqr > maxSqrDistance {
		return Hit{}, false
	}

	angle := fastmath.Atan2(dy+hy, dx+hx)
	return Hit{RayParam: t, ShapeParam: wrap01((angle - c.Rotation) / 360), SqrDistance: sqr}, true
}

// Contains reports whether p lies within the circle, border included. For
// inside-out circles the result is inverted.
func (c Circle) Contains(p vec.Vec2) bool {
	return PointInCircle(p.X, p.Y, c.Center.X, c.Center.Y, c.Radius) != c.InsideOut
}
