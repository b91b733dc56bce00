package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// bezierReference evaluates cubic-bezier(0.4, 0, 0.2, 1) at x by bisecting the
// curve parameter.
func bezierReference(x float64) float64 {
	bx := func(s float64) float64 { return 3*(1-s)*(1-s)*s*0.4 + 3*(1-s)*s*s*0.2 + s*s*s }
	by := func(s float64) float64 { return 3*(1-s)*s*s + s*s*s }

	lo, hi := 0.0, 1.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if bx(mid) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return by((lo + hi) / 2)
}

func TestEaseEndpoints(t *testing.T) {
	assert.Equal(t, float32(0), Ease(0))
	assert.Equal(t, float32(1), Ease(1))
}

func TestEaseClampsOutOfRange(t *testing.T) {
	assert.Equal(t, float32(0), Ease(-0.5))
	assert.Equal(t, float32(1), Ease(1.5))
}

const easeSamples = 100000

func TestEaseMonotonic(t *testing.T) {
	prev := Ease(0)
	violations := 0
	for i := 1; i <= easeSamples; i++ {
		v := Ease(float32(i) / easeSamples)
		if v < prev {
			violations++
			t.Errorf("ease decreased by %g at t=%v", prev-v, float32(i)/easeSamples)
		}
		if violations > 5 {
			t.FailNow()
		}
		prev = v
	}
}

func TestEaseMatchesBezier(t *testing.T) {
	worst := 0.0
	for i := 1; i < easeSamples; i++ {
		x := float32(i) / easeSamples
		diff := math.Abs(bezierReference(float64(x)) - float64(Ease(x)))
		worst = math.Max(worst, diff)
	}
	assert.Less(t, worst, 1e-6)
}

func TestEaseFrontLoaded(t *testing.T) {
	// The standard curve accelerates quickly and settles slowly.
	assert.Greater(t, Ease(0.5), float32(0.7))
	assert.Less(t, Ease(0.5), float32(0.8))
}
