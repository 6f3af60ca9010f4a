package physics

import (
	"fmt"
	"math"

	"github.com/tomz197/raycaster/internal/vec"
)

// Ray3 is a half-line in space.
type Ray3 struct {
	Origin    vec.Vec3
	Direction vec.Vec3
}

// Hit3 describes where a Ray3 meets a planar polygon. U and V are the
// coordinates of the hit along the polygon's two edge vectors.
type Hit3 struct {
	RayParam    float64
	U, V        float64
	SqrDistance float64
}

func (h Hit3) Distance() float64 {
	return math.Sqrt(h.SqrDistance)
}

func (h Hit3) String() string {
	return fmt.Sprintf("Hit3{ray=%g u=%g v=%g sqrDist=%g}", h.RayParam, h.U, h.V, h.SqrDistance)
}

func NewRay3(origin, direction vec.Vec3) Ray3 {
	return Ray3{Origin: origin, Direction: direction}
}

func (r Ray3) PointAt(t float64) vec.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectTriangle intersects r with the triangle p, p+e1, p+e2.
func (r Ray3) IntersectTriangle(p, e1, e2 vec.Vec3) (Hit3, bool) {
	return r.intersectPolygon(p, e1, e2, true)
}

// IntersectParallelogram intersects r with the parallelogram spanned by e1
// and e2 from corner p.
func (r Ray3) IntersectParallelogram(p, e1, e2 vec.Vec3) (Hit3, bool) {
	return r.intersectPolygon(p, e1, e2, false)
}

// intersectPolygon solves p + u*e1 + v*e2 = o + t*d by Cramer's rule. Both
// faces of the polygon can be hit.
func (r Ray3) intersectPolygon(p, e1, e2 vec.Vec3, tri bool) (Hit3, bool) {
	n := vec.Cross(e1, e2)
	nd := r.Direction.Neg()
	det := nd.Dot(n)
	if det == 0 {
		return Hit3{}, false
	}
	inv := 1 / det
	w := r.Origin.Sub(p)

	t := n.Dot(w) * inv
	if t < 0 {
		return Hit3{}, false
	}
	u := vec.Cross(e2, nd).Dot(w) * inv
	if u < 0 || u > 1 {
		return Hit3{}, false
	}
	v := vec.Cross(nd, e1).Dot(w) * inv
	if v < 0 || v > 1 || (tri && u+v > 1) {
		return Hit3{}, false
	}
	return Hit3{RayParam: t, U: u, V: v, SqrDistance: t * t * r.Direction.SqrAbs()}, true
}
