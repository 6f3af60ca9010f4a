package vec

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// New3 returns the vector (x, y, z).
func New3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Cross returns the cross product a × b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Dim returns component d (0 for x, 1 for y, 2 for z). It panics for any
// other index.
func (v Vec3) Dim(d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vec: dimension %d out of range for Vec3", d))
}

func (v Vec3) Abs() float64 {
	return math.Sqrt(v.SqrAbs())
}

func (v Vec3) SqrAbs() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Cross(v, o)
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Div(f float64) Vec3 {
	return Vec3{v.X / f, v.Y / f, v.Z / f}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Normalize returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Abs()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (v Vec3) Lerp(t Vec3, a float64) Vec3 {
	return Vec3{v.X + (t.X-v.X)*a, v.Y + (t.Y-v.Y)*a, v.Z + (t.Z-v.Z)*a}
}

// To2 drops the z component.
func (v Vec3) To2() Vec2 {
	return Vec2{v.X, v.Y}
}

func (v *Vec3) Set(x, y, z float64) *Vec3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

func (v *Vec3) AddInPlace(o Vec3) *Vec3 {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

func (v *Vec3) SubInPlace(o Vec3) *Vec3 {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
	return v
}

func (v *Vec3) ScaleInPlace(f float64) *Vec3 {
	v.X *= f
	v.Y *= f
	v.Z *= f
	return v
}

func (v *Vec3) NegInPlace() *Vec3 {
	v.X, v.Y, v.Z = -v.X, -v.Y, -v.Z
	return v
}

func (v *Vec3) NormalizeInPlace() *Vec3 {
	*v = v.Normalize()
	return v
}
