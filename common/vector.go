package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a three-component float32 vector used for positions and directions.
type Vec3 struct {
	X, Y, Z float32
}

// Origin is the world origin, the point every part viewpoint looks at.
var Origin = Vec3{}

// WorldUp is the fixed up direction used when orienting cameras.
var WorldUp = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
