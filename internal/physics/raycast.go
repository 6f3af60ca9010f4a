package physics

import (
	"iter"
	"math"

	"github.com/tomz197/raycaster/internal/vec"
)

// Result is the outcome of a raycast.
type Result struct {
	Ray Ray
	// Collider is the nearest collider hit, or nil.
	Collider Collider
	Hit      Hit
	DidHit   bool
	// MaxLength is the distance limit the cast ran with.
	MaxLength float64
	// Index is the position of Collider in the scanned sequence, or -1.
	Index int

	length float64
}

func newResult(r Ray, maxLength float64) Result {
	return Result{Ray: r, MaxLength: maxLength, Index: -1, length: maxLength}
}

// Length returns the distance to the hit, or MaxLength without one.
func (res Result) Length() float64 {
	return res.length
}

// Point returns the hit point. Without a hit it returns the point MaxLength
// away from the origin along the ray.
func (res Result) Point() vec.Vec2 {
	if res.DidHit {
		return res.Ray.PointAt(res.Hit.RayParam)
	}
	d := res.Ray.Direction
	l := d.Abs()
	if l == 0 {
		return res.Ray.Origin
	}
	if math.IsInf(res.MaxLength, 1) {
		return vec.Vec2{X: res.Ray.Origin.X + inf(d.X), Y: res.Ray.Origin.Y + inf(d.Y)}
	}
	return res.Ray.PointAt(res.MaxLength / l)
}

// Normal returns the normal of the hit collider at the hit, or zero.
func (res Result) Normal() vec.Vec2 {
	if !res.DidHit {
		return vec.Zero2
	}
	return res.Collider.NormalAt(res.Hit.ShapeParam)
}

func inf(f float64) float64 {
	switch {
	case f > 0:
		return math.Inf(1)
	case f < 0:
		return math.Inf(-1)
	}
	return 0
}

// Raycast returns the nearest hit of r among colliders.
func Raycast(r Ray, colliders []Collider) Result {
	return RaycastWithin(r, colliders, math.Inf(1))
}

// clampLength maps a negative limit to 0 and NaN to no limit.
func clampLength(maxLength float64) float64 {
	if math.IsNaN(maxLength) {
		return math.Inf(1)
	}
	return max(maxLength, 0)
}

// RaycastWithin returns the nearest hit of r among colliders that is at most
// maxLength away from the ray origin. On equal distances the collider that
// comes first wins. A NaN maxLength means no limit.
func RaycastWithin(r Ray, colliders []Collider, maxLength float64) Result {
	maxLength = clampLength(maxLength)
	res := newResult(r, maxLength)
	if len(colliders) == 0 {
		return res
	}
	maxSqr := maxLength * maxLength
	for i, c := range colliders {
		h, ok := c.Intersect(r, maxSqr)
		if !ok {
			continue
		}
		if !res.DidHit || h.SqrDistance < res.Hit.SqrDistance {
			res.Collider, res.Hit, res.DidHit, res.Index = c, h, true, i
		}
	}
	if res.DidHit {
		res.length = res.Hit.Distance()
	}
	return res
}

// RaycastSeq is RaycastWithin over an iterator.
func RaycastSeq(r Ray, colliders iter.Seq[Collider], maxLength float64) Result {
	maxLength = clampLength(maxLength)
	res := newResult(r, maxLength)
	maxSqr := maxLength * maxLength
	i := 0
	for c := range colliders {
		if h, ok := c.Intersect(r, maxSqr); ok {
			if !res.DidHit || h.SqrDistance < res.Hit.SqrDistance {
				res.Collider, res.Hit, res.DidHit, res.Index = c, h, true, i
			}
		}
		i++
	}
	if res.DidHit {
		res.length = res.Hit.Distance()
	}
	return res
}
