package common

import (
	"github.com/chewxy/math32"
)

// quaternionEpsilon is the float32 machine epsilon, below which slerp falls back to a
// normalized linear blend.
const quaternionEpsilon = 1.1920929e-7

// Quaternion is a rotation stored as (X, Y, Z, W) with W the scalar part.
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion returns the rotation that leaves every vector unchanged.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds the rotation of angle radians around axis.
// The axis must be normalized.
//
// Parameters:
//   - axis: unit rotation axis
//   - angle: rotation in radians
//
// Returns:
//   - Quaternion: the rotation
func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	half := angle / 2
	s := math32.Sin(half)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math32.Cos(half)}
}

// QuaternionFromBasis converts an orthonormal basis (the columns of a rotation matrix)
// into a quaternion.
//
// Parameters:
//   - x, y, z: the rotated local X, Y and Z axes
//
// Returns:
//   - Quaternion: the equivalent rotation
func QuaternionFromBasis(x, y, z Vec3) Quaternion {
	m11, m12, m13 := x.X, y.X, z.X
	m21, m22, m23 := x.Y, y.Y, z.Y
	m31, m32, m33 := x.Z, y.Z, z.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		return Quaternion{
			X: (m32 - m23) * s,
			Y: (m13 - m31) * s,
			Z: (m21 - m12) * s,
			W: 0.25 / s,
		}
	case m11 > m22 && m11 > m33:
		s := 2 * math32.Sqrt(1+m11-m22-m33)
		return Quaternion{
			X: 0.25 * s,
			Y: (m12 + m21) / s,
			Z: (m13 + m31) / s,
			W: (m32 - m23) / s,
		}
	case m22 > m33:
		s := 2 * math32.Sqrt(1+m22-m11-m33)
		return Quaternion{
			X: (m12 + m21) / s,
			Y: 0.25 * s,
			Z: (m23 + m32) / s,
			W: (m13 - m31) / s,
		}
	default:
		s := 2 * math32.Sqrt(1+m33-m11-m22)
		return Quaternion{
			X: (m13 + m31) / s,
			Y: (m23 + m32) / s,
			Z: 0.25 * s,
			W: (m21 - m12) / s,
		}
	}
}

// LookAtQuaternion returns the orientation of an object at eye whose local -Z axis
// faces target, with its local +Y as close to up as possible. When eye and target
// coincide the local +Z axis defaults to world +Z; when the view direction is parallel
// to up it is nudged off the pole.
//
// Parameters:
//   - eye: the object's position
//   - target: the point to face
//   - up: the reference up direction
//
// Returns:
//   - Quaternion: the orientation
func LookAtQuaternion(eye, target, up Vec3) Quaternion {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		z.Z = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		if math32.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return QuaternionFromBasis(x, y, z)
}

func (q Quaternion) Dot(o Quaternion) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quaternion) Length() float32 {
	return math32.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the identity.
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 {
		return IdentityQuaternion()
	}
	inv := 1 / l
	return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Multiply returns the rotation q*o, which applies o first and then q.
func (q Quaternion) Multiply(o Quaternion) Quaternion {
	return Quaternion{
		X: q.X*o.W + q.W*o.X + q.Y*o.Z - q.Z*o.Y,
		Y: q.Y*o.W + q.W*o.Y + q.Z*o.X - q.X*o.Z,
		Z: q.Z*o.W + q.W*o.Z + q.X*o.Y - q.Y*o.X,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// RotateVec3 applies the rotation to v.
func (q Quaternion) RotateVec3(v Vec3) Vec3 {
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)

	return Vec3{
		X: v.X + q.W*tx + q.Y*tz - q.Z*ty,
		Y: v.Y + q.W*ty + q.Z*tx - q.X*tz,
		Z: v.Z + q.W*tz + q.X*ty - q.Y*tx,
	}
}

// Slerp spherically interpolates from q toward o by factor t, always along the
// shorter of the two arcs. t=0 returns q and t=1 returns o exactly.
//
// Parameters:
//   - o: the end rotation
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - Quaternion: the interpolated rotation
func (q Quaternion) Slerp(o Quaternion, t float32) Quaternion {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return o
	}

	cosHalfTheta := q.Dot(o)
	if cosHalfTheta < 0 {
		// q and -q encode the same rotation; flipping picks the short way round.
		o = Quaternion{-o.X, -o.Y, -o.Z, -o.W}
		cosHalfTheta = -cosHalfTheta
	}
	if cosHalfTheta >= 1 {
		return q
	}

	sqrSinHalfTheta := 1 - cosHalfTheta*cosHalfTheta
	if sqrSinHalfTheta <= quaternionEpsilon {
		s := 1 - t
		return Quaternion{
			X: s*q.X + t*o.X,
			Y: s*q.Y + t*o.Y,
			Z: s*q.Z + t*o.Z,
			W: s*q.W + t*o.W,
		}.Normalize()
	}

	sinHalfTheta := math32.Sqrt(sqrSinHalfTheta)
	halfTheta := math32.Atan2(sinHalfTheta, cosHalfTheta)
	ratioA := math32.Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := math32.Sin(t*halfTheta) / sinHalfTheta

	return Quaternion{
		X: q.X*ratioA + o.X*ratioB,
		Y: q.Y*ratioA + o.Y*ratioB,
		Z: q.Z*ratioA + o.Z*ratioB,
		W: q.W*ratioA + o.W*ratioB,
	}
}
