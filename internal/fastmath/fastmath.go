// Package fastmath provides table-driven trigonometry in degrees.
//
// The tables are built once during package initialisation and are read-only
// afterwards, so every function here is safe for concurrent use.
package fastmath

import "math"

const (
	// DegToRad converts an angle in degrees to radians when multiplied.
	DegToRad = math.Pi / 180
	// RadToDeg converts an angle in radians to degrees when multiplied.
	RadToDeg = 180 / math.Pi
)

// Sine table resolution: sinPrecision samples per degree over one full turn.
const (
	sinPrecision = 100
	sinModulus   = 360 * sinPrecision
	sinQuarter   = sinModulus / 4
	sinHalf      = sinModulus / 2
)

// atanSize is the number of steps in the first-octant atan table.
const atanSize = 100000

var (
	sinTab  [sinModulus]float64
	atanTab [atanSize + 1]float64
)

func init() {
	initSin()
	initAtan()
	initAsin()
}

// initSin fills the sine table from its first quadrant so that the values at
// multiples of 90 degrees are exactly 0 and ±1.
func initSin() {
	step := math.Pi / (sinPrecision * 180)
	for i := 0; i <= sinQuarter; i++ {
		s := math.Sin(float64(i) * step)
		if i == sinQuarter {
			s = 1
		}
		sinTab[i] = s
		sinTab[sinHalf-i] = s
		sinTab[sinHalf+i] = -s
		if i > 0 {
			sinTab[sinModulus-i] = -s
		}
	}
	sinTab[0] = 0
	sinTab[sinHalf] = 0
}

func initAtan() {
	for i := 0; i <= atanSize; i++ {
		atanTab[i] = math.Atan(float64(i)/atanSize) * RadToDeg
	}
}

func sinLookup(a int) float64 {
	if a >= 0 {
		return sinTab[a%sinModulus]
	}
	return -sinTab[(-a)%sinModulus]
}

// Sin returns the sine of a, given in degrees. The angle is rounded to the
// nearest 1/100 degree. NaN and infinite inputs yield NaN.
func Sin(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return math.NaN()
	}
	// Reduce first so the index fits in an int for any finite angle.
	a = math.Mod(a, 360)
	return sinLookup(int(math.Floor(a*sinPrecision + 0.5)))
}

// Cos returns the cosine of a, given in degrees.
func Cos(a float64) float64 {
	return Sin(a + 90)
}

// Atan2 returns the angle in degrees, in (-180, 180], of the point (x, y)
// measured from the positive x axis. Atan2(0, 0) is 0.
func Atan2(y, x float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.NaN()
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return math.Atan2(y, x) * RadToDeg
	}

	ax, ay := math.Abs(x), math.Abs(y)
	if ax == 0 && ay == 0 {
		return 0
	}

	// Fold onto the first octant, then unfold.
	var a float64
	if ay <= ax {
		a = atanTab[int(ay/ax*atanSize+0.5)]
	} else {
		a = 90 - atanTab[int(ax/ay*atanSize+0.5)]
	}
	if x < 0 {
		a = 180 - a
	}
	if y < 0 {
		a = -a
	}
	return a
}
