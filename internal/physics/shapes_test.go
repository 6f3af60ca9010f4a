package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/raycaster/internal/vec"
)

const eps = 1e-9

func assertVecNear(t *testing.T, want, got vec.Vec2, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, delta, "y of %v", got)
}

func TestWrap01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.5, 0.5},
		{-0.25, 0.75},
		{-1, 0},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := wrap01(tt.in)
		assert.InDelta(t, tt.want, got, eps, "wrap01(%g)", tt.in)
		assert.True(t, got >= 0 && got < 1, "wrap01(%g) = %g out of range", tt.in, got)
	}
}

func TestSegmentHitAtMidpoint(t *testing.T) {
	r := NewRay(vec.New2(-1, -1), vec.New2(1, 1))
	s := NewSegment(vec.New2(1, 0), vec.New2(0, 1))

	h, ok := Intersect(s, r)
	require.True(t, ok)
	assert.Equal(t, 1.5, h.RayParam)
	assert.Equal(t, 0.5, h.ShapeParam)
	assert.Equal(t, 4.5, h.SqrDistance)
	assert.Equal(t, vec.New2(0.5, 0.5), r.PointAt(h.RayParam))
	assert.Equal(t, vec.New2(0.5, 0.5), s.PointAt(h.ShapeParam))
}

func TestSegmentFacing(t *testing.T) {
	r := NewRay(vec.New2(-1, -1), vec.New2(1, 1))
	back := NewSegment(vec.New2(0, 1), vec.New2(1, 0))

	_, ok := Intersect(back, r)
	assert.False(t, ok, "single-sided segment hit from behind")

	back.DoubleSided = true
	h, ok := Intersect(back, r)
	require.True(t, ok)
	assert.Equal(t, 1.5, h.RayParam)
	assert.Equal(t, 0.5, h.ShapeParam)
}

func TestSegmentMisses(t *testing.T) {
	s := NewSegment(vec.New2(1, 0), vec.New2(0, 1))

	tests := []struct {
		name string
		ray  Ray
	}{
		{"behind origin", NewRay(vec.New2(2, 2), vec.New2(1, 1))},
		{"past endpoint", NewRay(vec.New2(-1, 2), vec.New2(1, 0))},
		{"parallel", NewRay(vec.New2(0, 0), vec.New2(-1, 1))},
		{"collinear", NewRay(vec.New2(2, -1), vec.New2(-1, 1))},
		{"zero direction", NewRay(vec.New2(0.5, 0.5), vec.Zero2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Intersect(s, tt.ray)
			assert.False(t, ok)
		})
	}

	_, ok := Intersect(NewSegment(vec.New2(1, 1), vec.New2(1, 1)), NewRay(vec.Zero2, vec.New2(1, 1)))
	assert.False(t, ok, "degenerate segment")
}

func TestSegmentMaxDistance(t *testing.T) {
	r := NewRay(vec.New2(-1, -1), vec.New2(1, 1))
	s := NewSegment(vec.New2(1, 0), vec.New2(0, 1))

	_, ok := s.Intersect(r, 4.4)
	assert.False(t, ok)
	_, ok = s.Intersect(r, 4.5)
	assert.True(t, ok)
}

func TestSegmentGeometry(t *testing.T) {
	s := NewSegment(vec.New2(0, 0), vec.New2(3, 4))

	assert.Equal(t, 5.0, s.Length())
	assert.Equal(t, vec.New2(6, 8), s.PointAt(2), "parameters are not clamped")
	assert.Equal(t, vec.New2(-4, 3), s.NormalAt(0.3))

	assert.True(t, s.Contains(vec.New2(1.5, 2)))
	assert.True(t, s.Contains(vec.New2(0, 0)))
	assert.True(t, s.Contains(vec.New2(3, 4)))
	assert.False(t, s.Contains(vec.New2(6, 8)))
	assert.False(t, s.Contains(vec.New2(1.5, 2.1)))

	p := NewSegment(vec.New2(1, 1), vec.New2(1, 1))
	assert.True(t, p.Contains(vec.New2(1, 1)))
	assert.False(t, p.Contains(vec.New2(1, 2)))
}

func TestRayTargetIsUnbounded(t *testing.T) {
	q := NewRay(vec.Zero2, vec.New2(1, 0))
	target := NewRay(vec.New2(3, 5), vec.New2(0, 1))

	h, ok := Intersect(target, q)
	require.True(t, ok)
	assert.Equal(t, 3.0, h.RayParam)
	assert.Equal(t, -5.0, h.ShapeParam)
	assert.Equal(t, 9.0, h.SqrDistance)
}

func TestRayTargetFacing(t *testing.T) {
	q := NewRay(vec.Zero2, vec.New2(1, 0))

	front := NewRay(vec.New2(3, 0), vec.New2(0, 1))
	_, ok := Intersect(front, q)
	assert.True(t, ok)

	back := NewRay(vec.New2(3, 0), vec.New2(0, -1))
	_, ok = Intersect(back, q)
	assert.False(t, ok)

	back.InsideOut = true
	_, ok = Intersect(back, q)
	assert.True(t, ok, "inside-out swaps the facing side")

	back.InsideOut = false
	back.DoubleSided = true
	_, ok = Intersect(back, q)
	assert.True(t, ok)

	_, ok = Intersect(NewRay(vec.New2(0, 1), vec.New2(2, 0)), q)
	assert.False(t, ok, "parallel")
}

func TestRayIntersectionIsSymmetric(t *testing.T) {
	r1 := Ray{Origin: vec.New2(1, 1), Direction: vec.New2(2, 1), DoubleSided: true}
	r2 := Ray{Origin: vec.New2(4, -3), Direction: vec.New2(-1, 3), DoubleSided: true}

	h12, ok := Intersect(r2, r1)
	require.True(t, ok)
	h21, ok := Intersect(r1, r2)
	require.True(t, ok)

	assertVecNear(t, r1.PointAt(h12.RayParam), r2.PointAt(h21.RayParam), eps)
	assert.InDelta(t, h12.RayParam, h21.ShapeParam, eps)
	assert.InDelta(t, h12.ShapeParam, h21.RayParam, eps)
	assert.InDelta(t, 5.0/7, h12.RayParam, eps)
	assert.InDelta(t, 11.0/7, h21.RayParam, eps)
}

func TestRayGeometry(t *testing.T) {
	r := NewRay(vec.New2(1, 1), vec.New2(1, 2))

	assert.True(t, math.IsInf(r.Length(), 1))
	assert.Equal(t, 0.0, NewRay(vec.New2(1, 1), vec.Zero2).Length())
	assert.Equal(t, vec.New2(3, 5), r.PointAt(2))
	assert.Equal(t, vec.New2(-2, 1), r.NormalAt(0))

	assert.True(t, r.Contains(vec.New2(0, -1)), "the line extends behind the origin")
	assert.True(t, r.Contains(vec.New2(2, 3)))
	assert.False(t, r.Contains(vec.New2(2, 2)))

	p := NewRay(vec.New2(1, 1), vec.Zero2)
	assert.True(t, p.Contains(vec.New2(1, 1)))
	assert.False(t, p.Contains(vec.New2(1, 2)))
}

func TestCircleHit(t *testing.T) {
	r := NewRay(vec.Zero2, vec.New2(1, 0))
	c := NewCircle(vec.New2(5, 0), 1)

	h, ok := Intersect(c, r)
	require.True(t, ok)
	assert.Equal(t, 4.0, h.RayParam)
	assert.Equal(t, 16.0, h.SqrDistance)
	assert.Equal(t, vec.New2(4, 0), r.PointAt(h.RayParam))
	assert.InDelta(t, 0.5, h.ShapeParam, 1e-6)

	c.InsideOut = true
	h, ok = Intersect(c, r)
	require.True(t, ok)
	assert.Equal(t, 6.0, h.RayParam)
	assert.InDelta(t, 0.0, h.ShapeParam, 1e-6)

	r.InsideOut = true
	h, ok = Intersect(c, r)
	require.True(t, ok)
	assert.Equal(t, 4.0, h.RayParam, "an inside-out ray flips the root back")
}

func TestCircleFromInside(t *testing.T) {
	r := NewRay(vec.New2(5, 0), vec.New2(0, 1))
	solid := NewCircle(vec.New2(5, 0), 1)

	_, ok := Intersect(solid, r)
	assert.False(t, ok, "near root lies behind the origin")

	wall := Circle{Center: vec.New2(5, 0), Radius: 1, InsideOut: true}
	h, ok := Intersect(wall, r)
	require.True(t, ok)
	assert.Equal(t, 1.0, h.RayParam)
	assert.InDelta(t, 0.25, h.ShapeParam, 1e-6)
}

func TestCircleMisses(t *testing.T) {
	c := NewCircle(vec.New2(5, 0), 1)

	_, ok := Intersect(c, NewRay(vec.Zero2, vec.New2(0, 1)))
	assert.False(t, ok, "passes beside")
	_, ok = Intersect(c, NewRay(vec.Zero2, vec.New2(-1, 0)))
	assert.False(t, ok, "behind")
	_, ok = Intersect(c, NewRay(vec.Zero2, vec.Zero2))
	assert.False(t, ok, "zero direction")
	_, ok = c.Intersect(NewRay(vec.Zero2, vec.New2(1, 0)), 15.99)
	assert.False(t, ok, "beyond max distance")
}

func TestCircleRoundTrip(t *testing.T) {
	c := Circle{Center: vec.New2(2, 3), Radius: 5, Rotation: 30, InsideOut: true}

	for i := range 40 {
		param := float64(i) / 40
		p := c.PointAt(param)
		r := NewRay(c.Center, p.Sub(c.Center).Normalize())

		h, ok := Intersect(c, r)
		require.True(t, ok, "param %g", param)
		assert.InDelta(t, c.Radius, h.RayParam, 1e-9, "param %g", param)

		d := math.Abs(h.ShapeParam - param)
		d = min(d, 1-d)
		assert.Less(t, d, 1e-4, "param %g came back as %g", param, h.ShapeParam)
	}
}

func TestCircleGeometry(t *testing.T) {
	c := Circle{Center: vec.New2(1, 1), Radius: 2, Rotation: 90}

	assert.InDelta(t, 4*math.Pi, c.Length(), eps)
	assertVecNear(t, vec.New2(1, 3), c.PointAt(0), eps)
	assertVecNear(t, vec.New2(-1, 1), c.PointAt(0.25), eps)
	assertVecNear(t, c.PointAt(0.25), c.PointAt(1.25), eps)
	assertVecNear(t, vec.New2(0, 1), c.NormalAt(0), eps)

	assert.True(t, c.Contains(vec.New2(1, 1)))
	assert.True(t, c.Contains(vec.New2(3, 1)), "border")
	assert.False(t, c.Contains(vec.New2(3, 1.5)))
	assert.False(t, c.Contains(vec.New2(2.5, 2.5)), "outside radius but inside radius squared")

	c.InsideOut = true
	assert.False(t, c.Contains(vec.New2(1, 1)))
	assert.True(t, c.Contains(vec.New2(4, 4)))
	assertVecNear(t, vec.New2(0, -1), c.NormalAt(0), eps)
}

func TestRectContainmentBoundary(t *testing.T) {
	r := NewRect(vec.Zero2, vec.New2(4, 2))

	assert.True(t, r.Contains(vec.New2(2, 0)))
	assert.False(t, r.Contains(vec.New2(2.0001, 0)))
	assert.True(t, r.Contains(vec.New2(0, 1)))
	assert.False(t, r.Contains(vec.New2(0, 1.0001)))

	rot := r
	rot.Rotation = 90
	assert.Equal(t, r.Contains(vec.New2(2, 0)), rot.Contains(vec.New2(0, 2)))
	assert.Equal(t, r.Contains(vec.New2(2.0001, 0)), rot.Contains(vec.New2(0, 2.0001)))
	assert.False(t, rot.Contains(vec.New2(2, 0)))

	r.InsideOut = true
	assert.False(t, r.Contains(vec.New2(0, 0)))
	assert.True(t, r.Contains(vec.New2(3, 0)))
}

func TestRectHitEdges(t *testing.T) {
	r := NewRect(vec.Zero2, vec.New2(4, 2))

	tests := []struct {
		name      string
		ray       Ray
		wantT     float64
		wantParam float64
		wantPoint vec.Vec2
	}{
		{"left", NewRay(vec.New2(-5, 0), vec.New2(1, 0)), 3, 1.0 / 12, vec.New2(-2, 0)},
		{"top", NewRay(vec.New2(0, 5), vec.New2(0, -1)), 4, 1.0 / 3, vec.New2(0, 1)},
		{"right", NewRay(vec.New2(5, 0), vec.New2(-1, 0)), 3, 7.0 / 12, vec.New2(2, 0)},
		{"bottom", NewRay(vec.New2(0, -5), vec.New2(0, 1)), 4, 5.0 / 6, vec.New2(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := Intersect(r, tt.ray)
			require.True(t, ok)
			assert.InDelta(t, tt.wantT, h.RayParam, eps)
			assert.InDelta(t, tt.wantParam, h.ShapeParam, eps)
			assertVecNear(t, tt.wantPoint, tt.ray.PointAt(h.RayParam), eps)
			assertVecNear(t, tt.wantPoint, r.PointAt(h.ShapeParam), eps)
		})
	}
}

func TestRectFromInside(t *testing.T) {
	ray := NewRay(vec.Zero2, vec.New2(1, 0))

	_, ok := Intersect(NewRect(vec.Zero2, vec.New2(4, 2)), ray)
	assert.False(t, ok, "solid rect seen from inside")

	room := Rect{Size: vec.New2(4, 2), InsideOut: true}
	h, ok := Intersect(room, ray)
	require.True(t, ok)
	assert.InDelta(t, 2.0, h.RayParam, eps)
	assert.InDelta(t, 7.0/12, h.ShapeParam, eps)
}

func TestRectNegativeSize(t *testing.T) {
	ray := NewRay(vec.New2(-5, 0), vec.New2(1, 0))
	want, ok := Intersect(NewRect(vec.Zero2, vec.New2(4, 2)), ray)
	require.True(t, ok)

	for _, size := range []vec.Vec2{vec.New2(-4, 2), vec.New2(4, -2), vec.New2(-4, -2)} {
		h, ok := Intersect(NewRect(vec.Zero2, size), ray)
		require.True(t, ok, "size %v", size)
		assert.Equal(t, want, h, "size %v", size)

		_, ok = Intersect(NewRect(vec.Zero2, size), NewRay(vec.Zero2, vec.New2(1, 0)))
		assert.False(t, ok, "solid rect of size %v seen from inside", size)
	}
}

func TestRectHugeRotation(t *testing.T) {
	r := Rect{Size: vec.New2(4, 2), Rotation: 1e18}
	h, ok := Intersect(r, NewRay(vec.New2(-5, 0), vec.New2(1, 0)))
	require.True(t, ok)
	assert.True(t, h.RayParam > 0 && h.RayParam < 5)
	assert.True(t, r.Contains(vec.Zero2))
}

func TestRectDoubleSidedReturnsNearest(t *testing.T) {
	r := Rect{Size: vec.New2(4, 2), DoubleSided: true}

	h, ok := Intersect(r, NewRay(vec.New2(-5, 0), vec.New2(1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 3.0, h.RayParam, eps)

	h, ok = Intersect(r, NewRay(vec.New2(5, 0), vec.New2(-1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 3.0, h.RayParam, eps)
	assert.InDelta(t, 7.0/12, h.ShapeParam, eps)

	h, ok = Intersect(r, NewRay(vec.Zero2, vec.New2(-1, 0)))
	require.True(t, ok, "the far side is hit from inside")
	assert.InDelta(t, 2.0, h.RayParam, eps)
}

func TestRectRotated(t *testing.T) {
	r := Rect{Size: vec.New2(4, 2), Rotation: 90}

	h, ok := Intersect(r, NewRay(vec.New2(-5, 0), vec.New2(1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 4.0, h.RayParam, eps)
	assertVecNear(t, vec.New2(-1, 0), r.PointAt(h.ShapeParam), eps)

	_, ok = r.Intersect(NewRay(vec.New2(-5, 0), vec.New2(1, 0)), 15)
	assert.False(t, ok)
}

func TestRectGeometry(t *testing.T) {
	r := NewRect(vec.Zero2, vec.New2(4, 2))

	assert.Equal(t, 12.0, r.Length())
	assertVecNear(t, vec.New2(-2, -1), r.PointAt(0), eps)
	assertVecNear(t, vec.New2(-2, 1), r.PointAt(1.0/6), eps)
	assertVecNear(t, vec.New2(2, 1), r.PointAt(0.5), eps)
	assertVecNear(t, vec.New2(2, -1), r.PointAt(2.0/3), eps)
	assertVecNear(t, r.PointAt(0), r.PointAt(1), eps)
	assertVecNear(t, r.PointAt(0.9), r.PointAt(-0.1), eps)

	assertVecNear(t, vec.New2(-1, 0), r.NormalAt(0.05), eps)
	assertVecNear(t, vec.New2(0, 1), r.NormalAt(0.3), eps)
	assertVecNear(t, vec.New2(1, 0), r.NormalAt(0.6), eps)
	assertVecNear(t, vec.New2(0, -1), r.NormalAt(0.8), eps)

	r.InsideOut = true
	assertVecNear(t, vec.New2(1, 0), r.NormalAt(0.05), eps)

	empty := NewRect(vec.New2(3, 3), vec.Zero2)
	assert.Equal(t, vec.New2(3, 3), empty.PointAt(0.4))
	_, ok := Intersect(empty, NewRay(vec.Zero2, vec.New2(1, 1)))
	assert.False(t, ok)
}

func TestHitDistance(t *testing.T) {
	h := Hit{RayParam: 2, ShapeParam: 0.5, SqrDistance: 25}
	assert.Equal(t, 5.0, h.Distance())
	assert.Equal(t, "Hit{ray=2 shape=0.5 sqrDist=25}", h.String())
}
