package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap maps v into [0, period). A non-positive period returns 0.
func Wrap(v, period float32) float32 {
	if period <= 0 {
		return 0
	}
	r := float32(math.Mod(float64(v), float64(period)))
	if r < 0 {
		r += period
	}
	return r
}

func Deg2Rad(deg float32) float32 {
	return deg * math.Pi / 180
}
