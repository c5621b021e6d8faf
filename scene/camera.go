package scene

import (
	"math"

	"github.com/lixenwraith/ascii3d/vmath"
)

// Camera is a first-person viewpoint, rotation is pitch (X), yaw (Y), roll (Z) in radians
type Camera struct {
	Position    vmath.Vec3
	Rotation    vmath.Vec3
	MoveSpeed   float32
	Sensitivity float32
	Projection  vmath.Mat4
	View        vmath.Mat4
}

// Default camera tuning, per fixed update step
const (
	DefaultMoveSpeed   float32 = 0.05
	DefaultSensitivity float32 = 0.05
)

// NewCamera places a camera and computes its matrices for a cols x rows target
func NewCamera(pos, rot vmath.Vec3, moveSpeed, sensitivity float32, cols, rows int) *Camera {
	c := &Camera{
		Position:    pos,
		Rotation:    rot,
		MoveSpeed:   moveSpeed,
		Sensitivity: sensitivity,
	}
	c.refresh(cols, rows)
	return c
}

// Update applies one step of movement and look input, then recomputes the matrices
// move is (strafe right+, up+, forward+), look is (yaw right+, pitch up+), each in {-1,0,1}
// Horizontal movement follows yaw only, so looking up does not fly the camera
func (c *Camera) Update(cols, rows int, move [3]int8, look [2]int8) {
	sinYaw, cosYaw := math.Sincos(float64(c.Rotation.Y))
	s, co := float32(sinYaw), float32(cosYaw)
	speed := c.MoveSpeed

	switch move[0] {
	case -1:
		c.Position.X -= co * speed
		c.Position.Z += s * speed
	case 1:
		c.Position.X += co * speed
		c.Position.Z -= s * speed
	}

	switch move[1] {
	case 1:
		c.Position.Y += speed
	case -1:
		c.Position.Y -= speed
	}

	switch move[2] {
	case 1:
		c.Position.X += s * speed
		c.Position.Z += co * speed
	case -1:
		c.Position.X -= s * speed
		c.Position.Z -= co * speed
	}

	switch look[1] {
	case 1:
		c.Rotation.X -= c.Sensitivity
	case -1:
		c.Rotation.X += c.Sensitivity
	}

	switch look[0] {
	case -1:
		c.Rotation.Y -= c.Sensitivity
	case 1:
		c.Rotation.Y += c.Sensitivity
	}

	c.refresh(cols, rows)
}

// Resize recomputes the projection for a new target size
func (c *Camera) Resize(cols, rows int) {
	c.refresh(cols, rows)
}

// Forward returns the horizontal unit direction the camera moves in
func (c *Camera) Forward() vmath.Vec3 {
	s, co := math.Sincos(float64(c.Rotation.Y))
	return vmath.Vec3{X: float32(s), Z: float32(co)}
}

func (c *Camera) refresh(cols, rows int) {
	c.View = vmath.ViewMatrix(c.Position, c.Rotation)
	c.Projection = vmath.PerspectiveMatrix(cols, rows)
}
