package vmath

import (
	"math"
)

// Vec3 is a float32 3D vector, single precision to match the render pipeline
type Vec3 struct {
	X, Y, Z float32
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float32 {
	return V3Dot(v, v)
}

func V3Mag(v Vec3) float32 {
	return float32(math.Sqrt(float64(V3MagSq(v))))
}

// V3Normalize returns the unit vector, zero vector stays zero
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Array converts to the [x, y, z] layout used by scene files
func V3Array(v Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// V3FromArray converts from the [x, y, z] layout used by scene files
func V3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

func sincos(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}
