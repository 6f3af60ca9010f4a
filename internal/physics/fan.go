package physics

import "github.com/tomz197/raycaster/internal/vec"

// AppendFan appends n unit rays from origin spread evenly over spread
// degrees centred on heading. A single ray points along heading.
func AppendFan(dst []Ray, origin vec.Vec2, heading, spread float64, n int) []Ray {
	if n <= 0 {
		return dst
	}
	if n == 1 {
		return append(dst, NewRay(origin, vec.Angled(heading, 1)))
	}
	step := spread / float64(n-1)
	first := heading - spread/2
	for i := range n {
		dst = append(dst, NewRay(origin, vec.Angled(first+float64(i)*step, 1)))
	}
	return dst
}
