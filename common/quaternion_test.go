package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVecEqual(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, "x")
	assert.InDelta(t, want.Y, got.Y, tolerance, "y")
	assert.InDelta(t, want.Z, got.Z, tolerance, "z")
}

func TestRotateVec3AxisAngle(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3{Y: 1}, math32.Pi/2)
	assertVecEqual(t, Vec3{X: 1}, q.RotateVec3(Vec3{Z: 1}))
	assertVecEqual(t, Vec3{Z: -1}, q.RotateVec3(Vec3{X: 1}))
}

func TestMultiplyComposesRotations(t *testing.T) {
	a := QuaternionFromAxisAngle(Vec3{Y: 1}, math32.Pi/2)
	b := QuaternionFromAxisAngle(Vec3{X: 1}, math32.Pi/2)

	v := Vec3{Y: 1}
	assertVecEqual(t, a.RotateVec3(b.RotateVec3(v)), a.Multiply(b).RotateVec3(v))
}

func TestConjugateInverts(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3{X: 1, Y: 1}.Normalize(), 1.2)
	v := Vec3{X: 0.3, Y: -2, Z: 5}
	assertVecEqual(t, v, q.Conjugate().RotateVec3(q.RotateVec3(v)))
}

func TestSlerpEndpointsExact(t *testing.T) {
	a := QuaternionFromAxisAngle(Vec3{Y: 1}, 0.4)
	b := QuaternionFromAxisAngle(Vec3{X: 1}, 2.1)

	assert.Equal(t, a, a.Slerp(b, 0))
	assert.Equal(t, b, a.Slerp(b, 1))
}

func TestSlerpHalfway(t *testing.T) {
	a := IdentityQuaternion()
	b := QuaternionFromAxisAngle(Vec3{Y: 1}, math32.Pi/2)

	mid := a.Slerp(b, 0.5)
	want := QuaternionFromAxisAngle(Vec3{Y: 1}, math32.Pi/4)
	assert.InDelta(t, 1, math32.Abs(mid.Dot(want)), tolerance)
	assert.InDelta(t, 1, mid.Length(), tolerance)
}

func TestSlerpShortestPath(t *testing.T) {
	a := QuaternionFromAxisAngle(Vec3{Y: 1}, 0.1)
	b := QuaternionFromAxisAngle(Vec3{Y: 1}, -0.1)
	negB := Quaternion{-b.X, -b.Y, -b.Z, -b.W}

	mid := a.Slerp(negB, 0.5)
	assertVecEqual(t, Vec3{Z: 1}, mid.RotateVec3(Vec3{Z: 1}))
}

func TestSlerpNearlyIdentical(t *testing.T) {
	a := QuaternionFromAxisAngle(Vec3{Y: 1}, 0.5)
	b := QuaternionFromAxisAngle(Vec3{Y: 1}, 0.5000001)
	mid := a.Slerp(b, 0.5)
	assert.InDelta(t, 1, mid.Length(), tolerance)
}

func TestLookAtQuaternionAtPole(t *testing.T) {
	q := LookAtQuaternion(Vec3{Y: 2}, Origin, WorldUp)
	forward := q.RotateVec3(Vec3{Z: -1})
	assert.InDelta(t, -1, forward.Y, 1e-3)
	assert.InDelta(t, 1, q.Length(), tolerance)
}

func TestLookAtQuaternionCoincidentPoints(t *testing.T) {
	q := LookAtQuaternion(Origin, Origin, WorldUp)
	assert.InDelta(t, 1, math32.Abs(q.Dot(IdentityQuaternion())), tolerance)
}
