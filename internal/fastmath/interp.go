package fastmath

import "math"

// Interpolation maps an input, usually in [0, 1], onto an output that is
// usually in [0, 1].
type Interpolation func(x float64) float64

// Range evaluates f at x and maps the result from [0, 1] onto [min, max].
func (f Interpolation) Range(x, min, max float64) float64 {
	return min + f(x)*(max-min)
}

// Then returns the composition next(f(x)).
func (f Interpolation) Then(next Interpolation) Interpolation {
	return func(x float64) float64 { return next(f(x)) }
}

// Common curves.
var (
	Linear  Interpolation = func(x float64) float64 { return x }
	Invert  Interpolation = func(x float64) float64 { return 1 - x }
	Squared Interpolation = func(x float64) float64 { return x * x }
	Sqrt    Interpolation = math.Sqrt

	// Smooth is the smoothstep curve x²(3-2x).
	Smooth Interpolation = func(x float64) float64 { return x * x * (3 - 2*x) }
	// Fade is the smootherstep curve x³(x(6x-15)+10); it eases slower than Smooth.
	Fade Interpolation = func(x float64) float64 { return x * x * x * (x*(6*x-15) + 10) }

	// Sine maps 0 to 0 and 1 to 1 along a quarter sine wave.
	Sine Interpolation = func(x float64) float64 { return Sin(x * 90) }
	// Sine01 is a full sine period over [0, 1], shifted into [0, 1].
	Sine01 Interpolation = func(x float64) float64 { return 0.5 + 0.5*Sin(x*360) }

	Exp Interpolation = math.Exp
)
