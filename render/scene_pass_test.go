package render

import (
	"testing"

	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/vmath"
)

func cubeScene(z float32) *scene.Scene {
	s := scene.New("cube")
	s.AddObject(scene.NewObject("cube", scene.CubeMesh(), vmath.Translate(0, 0, z)))
	return s
}

func TestScenePassDrawsVisibleCube(t *testing.T) {
	const cols, rows = 64, 32
	r := NewEmptyRasterizer(cols, rows)
	defer r.Close()
	pass := NewScenePass()
	r.Register(pass, PriorityScene)

	cam := scene.NewCamera(vmath.Vec3{}, vmath.Vec3{}, 0.5, 0.1, cols, rows)
	img, err := r.Render(&Frame{Scene: cubeScene(5), Camera: cam})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Back faces are culled, at most three cube faces can face the eye
	if n := pass.Triangles(); n == 0 || n > 6 {
		t.Errorf("Expected between 1 and 6 front facing triangles, got %d", n)
	}

	// Off the face diagonal so both triangles cover the pixel fully
	center := img.RGBAAt(cols/2+4, rows/2)
	if center == scene.DefaultBackground {
		t.Errorf("Expected cube at the centre, got background")
	}
	corner := img.RGBAAt(0, 0)
	if corner != scene.DefaultBackground {
		t.Errorf("Expected background in the corner, got %v", corner)
	}
	// Untextured white lit with at least the ambient term
	if center.R != center.G || center.G != center.B || center.R < 60 {
		t.Errorf("Expected shaded grey, got %v", center)
	}
}

func TestScenePassRejectsBehindCamera(t *testing.T) {
	r := NewEmptyRasterizer(32, 16)
	defer r.Close()
	pass := NewScenePass()
	r.Register(pass, PriorityScene)

	cam := scene.NewCamera(vmath.Vec3{}, vmath.Vec3{}, 0.5, 0.1, 32, 16)
	img, err := r.Render(&Frame{Scene: cubeScene(-5), Camera: cam})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if pass.Triangles() != 0 {
		t.Errorf("Expected no triangles behind the camera, got %d", pass.Triangles())
	}
	if got := img.RGBAAt(16, 8); got != scene.DefaultBackground {
		t.Errorf("Expected untouched background, got %v", got)
	}
}

func TestScenePassNoCamera(t *testing.T) {
	r := NewEmptyRasterizer(8, 8)
	defer r.Close()
	pass := NewScenePass()
	r.Register(pass, PriorityScene)

	if _, err := r.Render(&Frame{Scene: cubeScene(5)}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if pass.Triangles() != 0 {
		t.Errorf("Expected nothing drawn without a camera, got %d", pass.Triangles())
	}
}

func TestShadeLightFacing(t *testing.T) {
	obj := scene.NewObject("tri", nil, vmath.Identity())
	up := vmath.Vec3{Y: 1}
	verts := [3]scene.Vertex{{Normal: up}, {Normal: up}, {Normal: up}}

	lit := shade(obj, verts, vmath.Vec3{Y: 1})
	if lit.R != 255 {
		t.Errorf("Expected full intensity facing the light, got %v", lit)
	}

	dark := shade(obj, verts, vmath.Vec3{Y: -1})
	if want := scaleChannel(255, Ambient); dark.R != want {
		t.Errorf("Expected ambient only facing away, got %d want %d", dark.R, want)
	}
}
