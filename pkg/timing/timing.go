// Package timing maps normalized animation progress to eased and damped values.
//
// All functions are pure and expect t in [0, 1]; callers clamp first.
package timing

import "math"

// Ease is a quadratic ease-in-out: 2t² up to the midpoint, then the mirrored ease-out.
func Ease(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Damp is one full sine cycle scaled by the decaying envelope (1-t)².
// It starts and ends at zero.
func Damp(t float64) float64 {
	return Envelope(t) * math.Sin(t*math.Pi*2)
}

// Envelope is the amplitude bound of Damp.
func Envelope(t float64) float64 {
	return (1 - t) * (1 - t)
}

// Clamp01 restricts x to [0, 1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x > 0:
		return x
	default:
		return 0
	}
}

// Progress returns elapsed/total clamped to [0, 1]. A non-positive total is complete.
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp01(elapsed / total)
}
