package physics

import "github.com/tomz197/raycaster/internal/vec"

// intersectLine solves r.Origin + t*r.Direction = o + s*d for t and s.
//
// The line's front side is the one its normal (-d.Y, d.X) points to; a ray
// approaching from the back is rejected unless doubleSided is set. flipped
// swaps front and back. With bounded set, s must lie in [0, 1].
func intersectLine(r Ray, o, d vec.Vec2, doubleSided, flipped, bounded bool, maxSqrDistance float64) (Hit, bool) {
	det := r.Direction.Cross(d)
	if det == 0 {
		// Parallel, collinear or degenerate.
		return Hit{}, false
	}
	if !doubleSided && (det < 0) != flipped {
		return Hit{}, false
	}

	wx, wy := o.X-r.Origin.X, o.Y-r.Origin.Y

	s := (wx*r.Direction.Y - wy*r.Direction.X) / det
	if bounded && (s < 0 || s > 1) {
		return Hit{}, false
	}

	t := (wx*d.Y - wy*d.X) / det
	if t < 0 {
		return Hit{}, false
	}

	dx, dy := t*r.Direction.X, t*r.Direction.Y
	sqr := dx*dx + dy*dy
	if sqr > maxSqrDistance {
		return Hit{}, false
	}
	return Hit{RayParam: t, ShapeParam: s, SqrDistance: sqr}, true
}
