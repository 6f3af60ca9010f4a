package physics

import (
	"fmt"

	"github.com/tomz197/raycaster/internal/fastmath"
	"github.com/tomz197/raycaster/internal/vec"
)

// Rect is a rectangle of the given full Size, rotated by Rotation degrees
// about its Center.
//
// The perimeter parameter starts at the bottom-left corner and walks the
// left, top, right and bottom edges in that order. Each edge gets a share of
// [0, 1) proportional to its length.
type Rect struct {
	Center      vec.Vec2
	Size        vec.Vec2
	Rotation    float64
	InsideOut   bool
	DoubleSided bool
}

// NewRect returns a solid, single-sided, unrotated rectangle.
func NewRect(center, size vec.Vec2) Rect {
	return Rect{Center: center, Size: size}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%v size=%v rot=%g}", r.Center, r.Size, r.Rotation)
}

type rectEdge struct {
	origin vec.Vec2
	dir    vec.Vec2
	start  float64
	span   float64
}

const (
	edgeLeft = iota
	edgeTop
	edgeRight
	edgeBottom
)

// edges returns the four edges in perimeter order. Each edge runs clockwise
// around the rectangle so that its left-hand normal points outwards.
func (r Rect) edges() [4]rectEdge {
	// A negative size describes the same rectangle with the same winding.
	w, h := abs(r.Size.X), abs(r.Size.Y)
	sin, cos := fastmath.Sin(r.Rotation), fastmath.Cos(r.Rotation)
	ex := vec.Vec2{X: w * cos, Y: w * sin}
	ey := vec.Vec2{X: -h * sin, Y: h * cos}
	hx, hy := ex.Scale(0.5), ey.Scale(0.5)

	var fx, fy float64
	if p := w + h; p != 0 {
		fx = w / (2 * p)
		fy = h / (2 * p)
	}

	return [4]rectEdge{
		edgeLeft:   {origin: r.Center.Sub(hx).Sub(hy), dir: ey, start: 0, span: fy},
		edgeTop:    {origin: r.Center.Sub(hx).Add(hy), dir: ex, start: fy, span: fx},
		edgeRight:  {origin: r.Center.Add(hx).Add(hy), dir: ey.Neg(), start: fy + fx, span: fy},
		edgeBottom: {origin: r.Center.Add(hx).Sub(hy), dir: ex.Neg(), start: fy + fx + fy, span: fx},
	}
}

func (r Rect) Length() float64 {
	return 2 * (abs(r.Size.X) + abs(r.Size.Y))
}

// locate finds the edge holding the wrapped perimeter parameter and the
// position along it in [0, 1].
func (r Rect) locate(param float64) (rectEdge, float64, bool) {
	es := r.edges()
	p := wrap01(param)
	for i, e := range es {
		if e.span == 0 {
			continue
		}
		if p < e.start+e.span || i == len(es)-1 {
			return e, (p - e.start) / e.span, true
		}
	}
	return rectEdge{}, 0, false
}

func (r Rect) PointAt(param float64) vec.Vec2 {
	e, s, ok := r.locate(param)
	if !ok {
		return r.Center
	}
	return e.origin.Add(e.dir.Scale(s))
}

// NormalAt returns the unit normal of the edge holding param.
func (r Rect) NormalAt(param float64) vec.Vec2 {
	e, _, ok := r.locate(param)
	if !ok {
		return vec.Zero2
	}
	n := vec.Vec2{X: -e.dir.Y, Y: e.dir.X}.Normalize()
	if r.InsideOut {
		return n.Neg()
	}
	return n
}

// Intersect tries the left, right, top and bottom edges in turn. A
// single-sided rectangle returns the first edge hit, since a ray can meet at
// most one front-facing edge of it. A double-sided one can be hit on two
// edges and returns the nearer.
func (r Rect) Intersect(ray Ray, maxSqrDistance float64) (Hit, bool) {
	es := r.edges()
	var (
		best  Hit
		found bool
	)
	for _, i := range [4]int{edgeLeft, edgeRight, edgeTop, edgeBottom} {
		e := es[i]
		h, ok := intersectLine(ray, e.origin, e.dir, r.DoubleSided, r.InsideOut, true, maxSqrDistance)
		if !ok {
			continue
		}
		h.ShapeParam = wrap01(e.start + h.ShapeParam*e.span)
		if !r.DoubleSided {
			return h, true
		}
		if !found || h.SqrDistance < best.SqrDistance {
			best, found = h, true
		}
	}
	return best, found
}

// Contains reports whether p lies within the rectangle, border included. For
// inside-out rectangles the result is inverted.
func (r Rect) Contains(p vec.Vec2) bool {
	local := p.Sub(r.Center).Rotate(-r.Rotation)
	in := abs(local.X) <= abs(r.Size.X)/2 && abs(local.Y) <= abs(r.Size.Y)/2
	return in != r.InsideOut
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
