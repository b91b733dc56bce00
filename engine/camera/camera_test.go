package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-4

func assertVecNear(t *testing.T, want, got common.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(WithPosition(common.Vec3{Z: 0.75}), WithAspect(16.0/9.0))

	assert.Equal(t, common.Vec3{Z: 0.75}, c.Position())
	assert.Equal(t, common.IdentityQuaternion(), c.Quaternion())
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)

	// Identity orientation looks down -Z, so a camera on +Z faces the origin.
	view := c.ViewMatrix()
	assert.InDelta(t, -0.75, view[14], tolerance)
}

// transformPoint applies a column-major 4x4 matrix to a point and divides by w.
func transformPoint(m [16]float32, p common.Vec3) common.Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return common.Vec3{X: x / w, Y: y / w, Z: z / w}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	eye := common.Vec3{X: 0.3, Y: 0.4, Z: 0.5}
	c := NewCamera(WithPosition(eye), WithLookAt(common.Origin))

	view := c.ViewMatrix()
	assertVecNear(t, common.Origin, transformPoint(view, eye))
	assertVecNear(t, common.Vec3{Z: -eye.Length()}, transformPoint(view, common.Origin))
}

func TestViewProjectionCentersTarget(t *testing.T) {
	eye := common.SphericalFromDegrees(0.75, 65, 180).ToCartesian()
	c := NewCamera(WithPosition(eye), WithLookAt(common.Origin))

	ndc := transformPoint(c.ViewProjectionMatrix(), common.Origin)
	assert.InDelta(t, 0, ndc.X, tolerance)
	assert.InDelta(t, 0, ndc.Y, tolerance)
	assert.Greater(t, ndc.Z, float32(0))
	assert.Less(t, ndc.Z, float32(1))
}

func TestLookAtFacesTarget(t *testing.T) {
	c := NewCamera(WithPosition(common.Vec3{X: 2, Y: 1}))
	c.LookAt(common.Origin)

	forward := c.Quaternion().RotateVec3(common.Vec3{Z: -1})
	assertVecNear(t, common.Vec3{X: -2, Y: -1}.Normalize(), forward)
}

func TestViewProjectionUpdatesOnAspect(t *testing.T) {
	c := NewCamera(WithPosition(common.Vec3{Z: 1}))
	before := c.ViewProjectionMatrix()
	c.SetAspect(2)
	after := c.ViewProjectionMatrix()

	assert.NotEqual(t, before, after)
	assert.InDelta(t, before[0]/2, after[0], tolerance)
}

func TestSetQuaternionNormalizes(t *testing.T) {
	c := NewCamera()
	c.SetQuaternion(common.Quaternion{W: 2})
	assert.Equal(t, common.IdentityQuaternion(), c.Quaternion())
}
