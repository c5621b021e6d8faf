package render

import (
	"github.com/gogpu/gg"

	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/vmath"
)

// Frame carries everything a pass may draw for one frame, passed by pointer and read only
type Frame struct {
	Scene  *scene.Scene
	Camera *scene.Camera
	UI     []*scene.UIElement

	// HUD lines are drawn top-left in the HUD pass, empty hides it
	HUD []string

	// Light is the direction toward the light, zero selects DefaultLight
	Light vmath.Vec3
}

// DefaultLight is the sun direction used when a frame leaves Light unset
var DefaultLight = vmath.Vec3{X: 1.4, Y: 0.4, Z: -0.7}

// Pass is one stage of the render pipeline
type Pass interface {
	Render(dc *gg.Context, f *Frame) error
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

func (f *Frame) light() vmath.Vec3 {
	if f.Light == (vmath.Vec3{}) {
		return vmath.V3Normalize(DefaultLight)
	}
	return vmath.V3Normalize(f.Light)
}
