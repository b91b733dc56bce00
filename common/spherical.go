package common

import (
	"github.com/chewxy/math32"
)

// polarEpsilon keeps the polar angle away from the poles, where the azimuth is undefined.
const polarEpsilon = 0.000001

// Spherical is a point described relative to the origin.
// Phi is the polar angle measured from +Y and Theta the azimuth around +Y measured
// from +Z, both in radians.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// SphericalFromDegrees builds a Spherical from angles given in degrees.
//
// Parameters:
//   - radius: distance from the origin
//   - phiDeg: polar angle from +Y in degrees
//   - thetaDeg: azimuth around +Y from +Z in degrees
//
// Returns:
//   - Spherical: the coordinate with angles in radians
func SphericalFromDegrees(radius, phiDeg, thetaDeg float32) Spherical {
	return Spherical{
		Radius: radius,
		Phi:    DegToRad(phiDeg),
		Theta:  DegToRad(thetaDeg),
	}
}

// SphericalFromCartesian converts a point to spherical coordinates.
// The origin maps to the zero Spherical. Theta is returned in (-π, π].
//
// Parameters:
//   - v: the point
//
// Returns:
//   - Spherical: the equivalent coordinate
func SphericalFromCartesian(v Vec3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math32.Atan2(v.X, v.Z),
		Phi:    math32.Acos(Clamp(v.Y/r, -1, 1)),
	}
}

// ToCartesian converts the coordinate to a point.
func (s Spherical) ToCartesian() Vec3 {
	sinPhiRadius := s.Radius * math32.Sin(s.Phi)
	return Vec3{
		X: sinPhiRadius * math32.Sin(s.Theta),
		Y: s.Radius * math32.Cos(s.Phi),
		Z: sinPhiRadius * math32.Cos(s.Theta),
	}
}

// MakeSafe clamps Phi into (0, π) so the azimuth stays well defined.
func (s Spherical) MakeSafe() Spherical {
	s.Phi = Clamp(s.Phi, polarEpsilon, math32.Pi-polarEpsilon)
	return s
}

// SphericalToQuaternion returns the orientation that makes an object placed at s look
// at the origin with world up (0, 1, 0).
//
// Precondition: s.Radius > 0. At the origin the view direction is undefined.
//
// Parameters:
//   - s: the object's position
//
// Returns:
//   - Quaternion: orientation facing the origin
func SphericalToQuaternion(s Spherical) Quaternion {
	return LookAtQuaternion(s.ToCartesian(), Origin, WorldUp)
}

// LerpSpherical interpolates between two positions around the origin. The direction is
// slerped between the endpoint orientations, so the path follows the shorter great
// arc instead of interpolating the angles component by component; the radius is
// interpolated linearly.
//
// The result comes from SphericalFromCartesian, so its Theta lies in (-π, π] whatever
// range the endpoints used: an end at θ=π can come back as θ=-π. Compare results by
// position or wrapped angle, not field by field.
//
// Parameters:
//   - start: position at t=0
//   - end: position at t=1
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - Spherical: the interpolated position
func LerpSpherical(start, end Spherical, t float32) Spherical {
	rotation := SphericalToQuaternion(start).Slerp(SphericalToQuaternion(end), t)
	radius := start.Radius + t*(end.Radius-start.Radius)

	// Local +Z points away from the origin, so the rotated forward axis is the position.
	return SphericalFromCartesian(rotation.RotateVec3(Vec3{Z: radius}))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
