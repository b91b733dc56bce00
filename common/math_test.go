package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookAtMatrix builds a view matrix directly from the camera basis.
func lookAtMatrix(eye, center, up Vec3) []float32 {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	return []float32{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

func TestComposeInvertMatchesLookAt(t *testing.T) {
	eye := SphericalFromDegrees(0.75, 60, 35).ToCartesian()
	q := LookAtQuaternion(eye, Origin, WorldUp)

	world := make([]float32, 16)
	Compose4(world, eye, q)
	view := make([]float32, 16)
	require.True(t, Invert4(view, world))

	assert.InDeltaSlice(t, lookAtMatrix(eye, Origin, WorldUp), view, tolerance)
}

func TestInvert4Singular(t *testing.T) {
	out := make([]float32, 16)
	assert.False(t, Invert4(out, make([]float32, 16)))
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := make([]float32, 16)
	Compose4(m, Vec3{X: 1, Y: 2, Z: 3}, QuaternionFromAxisAngle(Vec3{Z: 1}, 0.7))

	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := make([]float32, 16)
	Perspective(p, 1, 1.5, 0.1, 100)

	// A point on the near plane maps to depth 0 and one on the far plane to depth 1.
	depth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0, depth(-0.1), tolerance)
	assert.InDelta(t, 1, depth(-100), 1e-3)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestDigitKeyIndex(t *testing.T) {
	i, ok := DigitKeyIndex(Key1)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = DigitKeyIndex(Key0)
	assert.False(t, ok)
	_, ok = DigitKeyIndex(KeyM)
	assert.False(t, ok)
}

func TestKeyRune(t *testing.T) {
	cases := []struct {
		key  int
		want rune
		ok   bool
	}{
		{KeyA, 'a', true},
		{KeyM, 'm', true},
		{KeyZ, 'z', true},
		{Key7, '7', true},
		{KeySpace, ' ', true},
		{KeySlash, 0, false},
		{KeyEnter, 0, false},
	}
	for _, c := range cases {
		r, ok := KeyRune(c.key)
		assert.Equal(t, c.ok, ok, "key %d", c.key)
		assert.Equal(t, c.want, r, "key %d", c.key)
	}
}
