package vmath

import "math"

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// Radians converts degrees to radians
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle wraps an angle into (-Pi, Pi]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a <= -math.Pi {
		a += Tau
	} else if a > math.Pi {
		a -= Tau
	}
	return a
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Map linearly remaps v from [inMin, inMax] to [outMin, outMax]
// Degenerate input range returns outMin
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Lerp performs linear interpolation between a and b, t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns -1, 0, or 1
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// FloorDiv returns floor(v / size) as a cell index
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
