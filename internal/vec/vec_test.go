package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2CopyOperationsLeaveReceiver(t *testing.T) {
	v := New2(3, 4)
	o := New2(1, -2)

	assert.Equal(t, New2(4, 2), v.Add(o))
	assert.Equal(t, New2(2, 6), v.Sub(o))
	assert.Equal(t, New2(3, -8), v.Mul(o))
	assert.Equal(t, New2(6, 8), v.Scale(2))
	assert.Equal(t, New2(1.5, 2), v.Div(2))
	assert.Equal(t, New2(-3, -4), v.Neg())
	assert.Equal(t, New2(3, 4), v, "copy operations must not mutate")
}

func TestVec2InPlaceOperationsChain(t *testing.T) {
	v := New2(3, 4)
	got := v.AddInPlace(New2(1, 1)).ScaleInPlace(2).SubInPlace(New2(8, 0))

	assert.Same(t, &v, got)
	assert.Equal(t, New2(0, 10), v)

	v.DivInPlace(10).NegInPlace()
	assert.Equal(t, New2(0, -1), v)

	v.Set(2, 3).MulInPlace(New2(2, -1))
	assert.Equal(t, New2(4, -3), v)

	v.LerpInPlace(New2(0, -3), 0.5)
	assert.Equal(t, New2(2, -3), v)
}

func TestVec2Metrics(t *testing.T) {
	v := New2(3, 4)
	assert.Equal(t, 5.0, v.Abs())
	assert.Equal(t, 25.0, v.SqrAbs())
	assert.Equal(t, 11.0, v.Dot(New2(1, 2)))
	assert.Equal(t, 2.0, v.Cross(New2(1, 2)))
	assert.True(t, Zero2.IsZero())
	assert.False(t, UnitX.IsZero())
	assert.Equal(t, 5.0, Dist(Zero2, v))
	assert.Equal(t, 25.0, SqrDist(v, Zero2))
	assert.Equal(t, New2(1.5, 2), Average(Zero2, v))
	assert.Equal(t, New2(-3, -4), Between(v, Zero2))
}

func TestVec2Normalize(t *testing.T) {
	n := New2(3, 4).Normalize()
	assert.InDelta(t, 1, n.Abs(), 1e-12)
	assert.Equal(t, Zero2, Zero2.Normalize())

	v := New2(0, 5)
	v.NormalizeInPlace()
	assert.Equal(t, UnitY, v)
}

func TestVec2Rotation(t *testing.T) {
	assert.Equal(t, New2(0, 1), UnitX.Rotate(90))
	assert.Equal(t, New2(-1, 0), UnitX.Rotate(180))

	r := New2(2, 0).Rotate(45)
	assert.InDelta(t, 1.41421356, r.X, 1e-6)
	assert.InDelta(t, 1.41421356, r.Y, 1e-6)

	v := New2(2, 1)
	assert.Equal(t, New2(-1, 2), v.Rotate90(1))
	assert.Equal(t, New2(-2, -1), v.Rotate90(2))
	assert.Equal(t, New2(1, -2), v.Rotate90(3))
	assert.Equal(t, New2(1, -2), v.Rotate90(-1))
	assert.Equal(t, v, v.Rotate90(4))

	v.RotateInPlace(90)
	assert.Equal(t, New2(-1, 2), v)
}

func TestVec2Angles(t *testing.T) {
	assert.InDelta(t, 90, UnitY.Angle(), 1e-9)
	assert.InDelta(t, -135, New2(-1, -1).Angle(), 1e-3)
	assert.InDelta(t, 90, UnitX.AngleTo(UnitY), 1e-9)
	assert.InDelta(t, 180, UnitX.AngleTo(New2(-3, 0)), 1e-9)
	assert.Equal(t, 0.0, Zero2.AngleTo(UnitX))

	a := Angled(30, 2)
	assert.InDelta(t, 1.7320508, a.X, 1e-6)
	assert.InDelta(t, 1, a.Y, 1e-9)
}

func TestVec2ProjectReflectLerp(t *testing.T) {
	assert.Equal(t, New2(3, 0), New2(3, 4).Project(UnitX))
	assert.Equal(t, Zero2, New2(3, 4).Project(Zero2))
	assert.Equal(t, New2(1, 1), Reflect(New2(1, -1), UnitY))
	assert.Equal(t, New2(1, 1), Reflect(New2(1, -1), New2(0, 2)))
	assert.Equal(t, New2(2.5, 5), New2(0, 0).Lerp(New2(5, 10), 0.5))
}

func TestVec2Dim(t *testing.T) {
	v := New2(7, 8)
	assert.Equal(t, 7.0, v.Dim(0))
	assert.Equal(t, 8.0, v.Dim(1))
	assert.Panics(t, func() { v.Dim(2) })
	assert.Equal(t, New3(7, 8, 0), v.To3())
	assert.Equal(t, "(7, 8)", v.String())
}

func TestVec3(t *testing.T) {
	a := New3(1, 2, 3)
	b := New3(4, 5, 6)

	assert.Equal(t, New3(5, 7, 9), a.Add(b))
	assert.Equal(t, New3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, New3(4, 10, 18), a.Mul(b))
	assert.Equal(t, New3(2, 4, 6), a.Scale(2))
	assert.Equal(t, New3(0.5, 1, 1.5), a.Div(2))
	assert.Equal(t, New3(-1, -2, -3), a.Neg())
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, New3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, New3(0, 0, 1), Cross(New3(1, 0, 0), New3(0, 1, 0)))
	assert.Equal(t, 14.0, a.SqrAbs())
	assert.Equal(t, New2(1, 2), a.To2())
	assert.Equal(t, New3(2.5, 3.5, 4.5), a.Lerp(b, 0.5))
	assert.InDelta(t, 1, b.Normalize().Abs(), 1e-12)
	assert.True(t, Vec3{}.IsZero())
	assert.Equal(t, 3.0, a.Dim(2))
	assert.Panics(t, func() { a.Dim(3) })

	c := a
	c.AddInPlace(b).ScaleInPlace(2).SubInPlace(New3(10, 14, 18)).NegInPlace()
	assert.Equal(t, New3(0, 0, 0), c)
	assert.Equal(t, New3(1, 2, 3), a)

	c.Set(0, 0, 2).NormalizeInPlace()
	assert.Equal(t, New3(0, 0, 1), c)
}
