package anim

import "math"

// EaseInOutCubic maps t in [0,1] to progress in [0,1].
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - 4*(1-t)*(1-t)*(1-t)
}

func roundBy(n, by float64) float64 {
	return math.Round(n*by) / by
}
