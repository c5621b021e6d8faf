package vmath

import (
	"math"
)

// Mat4 is a 4x4 matrix applied to row vectors: p' = p·M, translation lives in row 3
type Mat4 [4][4]float32

// Projection constants
const (
	FieldOfView float32 = math.Pi / 3
	ZNear       float32 = 0.1
	ZFar        float32 = 1024
)

func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func RotateX(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func RotateY(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func RotateZ(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func ScaleMat(x, y, z float32) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

func Translate(x, y, z float32) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{x, y, z, 1},
	}
}

// Mat4Mul returns a·b
func Mat4Mul(a, b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// ModelMatrix composes scale, then rotation about x, y, z in radians, then translation
func ModelMatrix(position, rotation, scale Vec3) Mat4 {
	m := ScaleMat(scale.X, scale.Y, scale.Z)
	m = Mat4Mul(m, RotateX(rotation.X))
	m = Mat4Mul(m, RotateY(rotation.Y))
	m = Mat4Mul(m, RotateZ(rotation.Z))
	return Mat4Mul(m, Translate(position.X, position.Y, position.Z))
}

// ViewMatrix moves the world by -position, then rotates it about z, y, x
func ViewMatrix(position, rotation Vec3) Mat4 {
	m := RotateX(rotation.X)
	m = Mat4Mul(RotateY(rotation.Y), m)
	m = Mat4Mul(RotateZ(rotation.Z), m)
	return Mat4Mul(Translate(-position.X, -position.Y, -position.Z), m)
}

// PerspectiveMatrix builds the projection for a cols x rows target
// Clip w equals view-space z, so points in front of the camera have w > 0
func PerspectiveMatrix(cols, rows int) Mat4 {
	aspect := float32(1)
	if cols > 0 {
		aspect = float32(rows) / float32(cols)
	}
	f := 1 / float32(math.Tan(float64(FieldOfView/2)))
	return Mat4{
		{f * aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (ZFar + ZNear) / (ZFar - ZNear), 1},
		{0, 0, -(2 * ZFar * ZNear) / (ZFar - ZNear), 0},
	}
}

// TransformPoint applies m to the point (v, 1) and returns homogeneous coordinates
func TransformPoint(v Vec3, m Mat4) (x, y, z, w float32) {
	x = v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + m[3][0]
	y = v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + m[3][1]
	z = v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + m[3][2]
	w = v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + m[3][3]
	return x, y, z, w
}

// TransformVec3 applies m to a point and drops w
func TransformVec3(v Vec3, m Mat4) Vec3 {
	x, y, z, _ := TransformPoint(v, m)
	return Vec3{x, y, z}
}

// TransformDir applies only the linear part of m, for normals under uniform scale
func TransformDir(v Vec3, m Mat4) Vec3 {
	return Vec3{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}
