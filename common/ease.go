package common

import (
	"math"
)

// Ease maps linear animation progress to the material design standard motion curve,
// cubic-bezier(0.4, 0.0, 0.2, 1.0).
//
// The bezier's x polynomial is 1.6s³ - 1.8s² + 1.2s; its root for x = t is found in
// closed form (Cardano, the discriminant is always positive) and the y polynomial
// 3s² - 2s³ is evaluated at that root. The solve runs in float64; in float32 the
// cancellation near t=1 makes the result step backwards by an ulp. Inputs outside
// [0, 1] are clamped.
//
// Parameters:
//   - t: linear progress in [0, 1]
//
// Returns:
//   - float32: eased progress in [0, 1]
func Ease(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	x := float64(t)
	a := math.Cbrt(8*math.Sqrt(400*x*x-225*x+37) + 5*(32*x-9))
	s := (a*a + 3*a - 7) / (8 * a)
	return float32(-s * s * (2*s - 3))
}
