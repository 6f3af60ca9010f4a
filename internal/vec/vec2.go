// Package vec provides fixed-size 2D and 3D float64 vectors.
//
// Vectors are plain values. Methods on the value receiver never modify the
// vector and return a new one; the ...InPlace methods on the pointer receiver
// mutate the vector and return it for chaining, which keeps hot loops free of
// temporaries.
package vec

import (
	"fmt"
	"math"

	"github.com/tomz197/raycaster/internal/fastmath"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Common 2D vectors.
var (
	Zero2 = Vec2{}
	One2  = Vec2{1, 1}
	UnitX = Vec2{1, 0}
	UnitY = Vec2{0, 1}
)

// New2 returns the vector (x, y).
func New2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Angled returns a vector of the given length pointing angle degrees
// counter-clockwise from the positive x axis.
func Angled(angle, length float64) Vec2 {
	return Vec2{fastmath.Cos(angle) * length, fastmath.Sin(angle) * length}
}

// Between returns the vector pointing from a to b.
func Between(a, b Vec2) Vec2 {
	return Vec2{b.X - a.X, b.Y - a.Y}
}

// Average returns the midpoint of a and b.
func Average(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5}
}

// Dist returns the distance between a and b.
func Dist(a, b Vec2) float64 {
	return math.Sqrt(SqrDist(a, b))
}

// SqrDist returns the squared distance between a and b.
func SqrDist(a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

// Reflect mirrors v at a surface with normal n. n does not need to be
// normalized but must not be zero.
func Reflect(v, n Vec2) Vec2 {
	f := 2 * v.Dot(n) / n.SqrAbs()
	return Vec2{v.X - f*n.X, v.Y - f*n.Y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Dim returns component d (0 for x, 1 for y). It panics for any other index.
func (v Vec2) Dim(d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("vec: dimension %d out of range for Vec2", d))
}

// Abs returns the length of v.
func (v Vec2) Abs() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// SqrAbs returns the squared length of v.
func (v Vec2) SqrAbs() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o. It is
// positive when o lies counter-clockwise of v.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Angle returns the direction of v in degrees, in (-180, 180].
func (v Vec2) Angle() float64 {
	return fastmath.Atan2(v.Y, v.X)
}

// AngleTo returns the unsigned angle between v and o in degrees.
func (v Vec2) AngleTo(o Vec2) float64 {
	l := v.Abs() * o.Abs()
	if l == 0 {
		return 0
	}
	c := v.Dot(o) / l
	// Rounding can push the cosine slightly outside [-1, 1].
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return fastmath.Acos(c)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Div returns v / f.
func (v Vec2) Div(f float64) Vec2 {
	return Vec2{v.X / f, v.Y / f}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Normalize returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Abs()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by angle degrees.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := fastmath.Sin(angle), fastmath.Cos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Rotate90 returns v rotated counter-clockwise by n quarter turns. It is
// exact, unlike Rotate.
func (v Vec2) Rotate90(n int) Vec2 {
	switch ((n % 4) + 4) % 4 {
	case 1:
		return Vec2{-v.Y, v.X}
	case 2:
		return Vec2{-v.X, -v.Y}
	case 3:
		return Vec2{v.Y, -v.X}
	}
	return v
}

// Lerp returns the linear interpolation from v towards t by a.
func (v Vec2) Lerp(t Vec2, a float64) Vec2 {
	return Vec2{v.X + (t.X-v.X)*a, v.Y + (t.Y-v.Y)*a}
}

// Project returns the projection of v onto o. Projecting onto the zero
// vector yields the zero vector.
func (v Vec2) Project(o Vec2) Vec2 {
	l := o.SqrAbs()
	if l == 0 {
		return Vec2{}
	}
	return o.Scale(v.Dot(o) / l)
}

// To3 returns v extended with z = 0.
func (v Vec2) To3() Vec3 {
	return Vec3{v.X, v.Y, 0}
}

// Set assigns x and y and returns v.
func (v *Vec2) Set(x, y float64) *Vec2 {
	v.X, v.Y = x, y
	return v
}

// AddInPlace adds o to v and returns v.
func (v *Vec2) AddInPlace(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// SubInPlace subtracts o from v and returns v.
func (v *Vec2) SubInPlace(o Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// MulInPlace multiplies v component-wise by o and returns v.
func (v *Vec2) MulInPlace(o Vec2) *Vec2 {
	v.X *= o.X
	v.Y *= o.Y
	return v
}

// ScaleInPlace multiplies v by f and returns v.
func (v *Vec2) ScaleInPlace(f float64) *Vec2 {
	v.X *= f
	v.Y *= f
	return v
}

// DivInPlace divides v by f and returns v.
func (v *Vec2) DivInPlace(f float64) *Vec2 {
	v.X /= f
	v.Y /= f
	return v
}

// NegInPlace negates v and returns it.
func (v *Vec2) NegInPlace() *Vec2 {
	v.X, v.Y = -v.X, -v.Y
	return v
}

// NormalizeInPlace scales v to length 1 and returns it. A zero vector stays zero.
func (v *Vec2) NormalizeInPlace() *Vec2 {
	*v = v.Normalize()
	return v
}

// RotateInPlace rotates v counter-clockwise by angle degrees and returns it.
func (v *Vec2) RotateInPlace(angle float64) *Vec2 {
	*v = v.Rotate(angle)
	return v
}

// LerpInPlace moves v towards t by a and returns v.
func (v *Vec2) LerpInPlace(t Vec2, a float64) *Vec2 {
	v.X += (t.X - v.X) * a
	v.Y += (t.Y - v.Y) * a
	return v
}
