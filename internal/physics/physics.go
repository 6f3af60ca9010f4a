// Package physics provides 2D ray intersection against a small set of shapes
// and nearest-hit raycasting over collections of them.
//
// Every shape implements Collider. Intersections are measured along the
// querying ray: a Hit's RayParam is the multiple of the ray's direction at
// which the hit occurs, and its SqrDistance is the squared length of that
// offset. Nothing in this package allocates on the intersection path, and
// shapes are never mutated by a query, so concurrent raycasts over shared
// colliders are safe as long as nobody modifies them meanwhile.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// wrap01 maps p onto [0, 1).
func wrap01(p float64) float64 {
	p -= math.Floor(p)
	if p >= 1 {
		return 0
	}
	return p
}
