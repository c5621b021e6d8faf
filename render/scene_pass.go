// @lixen: #focus{sys[render,mesh]}
package render

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/vmath"
)

// Lambert shading terms
const (
	Ambient = 0.25
	Diffuse = 0.75
)

// projected is one triangle ready to fill, in target pixels
type projected struct {
	pts   [3][2]float64
	depth float32
	color color.RGBA
}

// ScenePass draws every scene object as flat shaded triangles, far to near
type ScenePass struct {
	tris []projected // reused across frames
}

// NewScenePass creates the mesh pass
func NewScenePass() *ScenePass {
	return &ScenePass{tris: make([]projected, 0, 1024)}
}

// Render transforms, culls, shades and fills the scene
func (p *ScenePass) Render(dc *gg.Context, f *Frame) error {
	if f.Scene == nil || f.Camera == nil {
		return nil
	}

	w, h := float64(dc.Width()), float64(dc.Height())
	light := f.light()
	p.tris = p.tris[:0]

	for _, obj := range f.Scene.Objects {
		p.collect(obj, f.Camera, light, w, h)
	}

	// Stable so coplanar faces keep mesh order
	slices.SortStableFunc(p.tris, func(a, b projected) int {
		return cmp.Compare(b.depth, a.depth)
	})

	for i := range p.tris {
		t := &p.tris[i]
		dc.SetRGB(unit(t.color.R), unit(t.color.G), unit(t.color.B))
		dc.MoveTo(t.pts[0][0], t.pts[0][1])
		dc.LineTo(t.pts[1][0], t.pts[1][1])
		dc.LineTo(t.pts[2][0], t.pts[2][1])
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill triangle: %w", err)
		}
	}
	return nil
}

// Triangles returns how many triangles survived culling in the last frame
func (p *ScenePass) Triangles() int {
	return len(p.tris)
}

func (p *ScenePass) collect(obj *scene.Object, cam *scene.Camera, light vmath.Vec3, w, h float64) {
	if obj.Mesh == nil {
		return
	}
	modelView := vmath.Mat4Mul(obj.Model, cam.View)

	for i := 0; i < obj.Mesh.TriangleCount(); i++ {
		a, b, c := obj.Mesh.Triangle(i)
		verts := [3]scene.Vertex{a, b, c}

		var view [3]vmath.Vec3
		behind := false
		for k, v := range verts {
			view[k] = vmath.TransformVec3(v.Position, modelView)
			if view[k].Z < vmath.ZNear {
				behind = true
				break
			}
		}
		if behind {
			continue
		}

		// Facing away when the normal points along the ray from the eye
		n := vmath.V3Cross(vmath.V3Sub(view[1], view[0]), vmath.V3Sub(view[2], view[0]))
		if vmath.V3Dot(n, view[0]) >= 0 {
			continue
		}

		var t projected
		for k := range view {
			x, y, _, cw := vmath.TransformPoint(view[k], cam.Projection)
			t.pts[k] = [2]float64{
				(float64(x/cw) + 1) / 2 * w,
				(1 - float64(y/cw)) / 2 * h,
			}
		}
		t.depth = (view[0].Z + view[1].Z + view[2].Z) / 3
		t.color = shade(obj, verts, light)
		p.tris = append(p.tris, t)
	}
}

// shade samples the texture at the centroid and applies Lambert lighting
func shade(obj *scene.Object, verts [3]scene.Vertex, light vmath.Vec3) color.RGBA {
	normal := worldNormal(obj.Model, verts)
	intensity := Ambient + Diffuse*max(0, vmath.V3Dot(normal, light))

	uv := [2]float32{
		(verts[0].UV[0] + verts[1].UV[0] + verts[2].UV[0]) / 3,
		(verts[0].UV[1] + verts[1].UV[1] + verts[2].UV[1]) / 3,
	}
	base := obj.SampleTexture(uv)

	return color.RGBA{
		R: scaleChannel(base.R, intensity),
		G: scaleChannel(base.G, intensity),
		B: scaleChannel(base.B, intensity),
		A: 255,
	}
}

// worldNormal averages the vertex normals in world space, falling back to the face normal
func worldNormal(model vmath.Mat4, verts [3]scene.Vertex) vmath.Vec3 {
	sum := vmath.V3Add(vmath.V3Add(verts[0].Normal, verts[1].Normal), verts[2].Normal)
	if vmath.V3MagSq(sum) > 0 {
		return vmath.V3Normalize(vmath.TransformDir(sum, model))
	}

	var world [3]vmath.Vec3
	for k, v := range verts {
		world[k] = vmath.TransformVec3(v.Position, model)
	}
	return vmath.V3Normalize(vmath.V3Cross(vmath.V3Sub(world[1], world[0]), vmath.V3Sub(world[2], world[0])))
}

func scaleChannel(c uint8, k float32) uint8 {
	v := float32(c) * k
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
