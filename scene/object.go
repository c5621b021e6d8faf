package scene

import (
	"image"
	"image/color"
	"slices"

	"github.com/lixenwraith/ascii3d/vmath"
)

// TextureFilter selects how textures are sampled when scaled
type TextureFilter uint8

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// White is the default object tint
var White = color.RGBA{255, 255, 255, 255}

// Object is a mesh instance placed in the world
type Object struct {
	Name    string
	Mesh    *Mesh
	Model   vmath.Mat4
	Color   color.RGBA
	Texture image.Image // nil means untextured
	Filter  TextureFilter
	Tags    []string
}

// NewObject places mesh with the given model matrix, white and untextured
func NewObject(name string, mesh *Mesh, model vmath.Mat4, tags ...string) *Object {
	return &Object{
		Name:  name,
		Mesh:  mesh,
		Model: model,
		Color: White,
		Tags:  tags,
	}
}

// HasTag reports whether the object carries tag
func (o *Object) HasTag(tag string) bool {
	return slices.Contains(o.Tags, tag)
}

// AABB returns the world space bounding box of the transformed mesh
func (o *Object) AABB() vmath.AABB {
	box := vmath.EmptyAABB()
	if o.Mesh == nil {
		return box
	}
	for _, v := range o.Mesh.Vertices {
		box = box.Extend(vmath.TransformVec3(v.Position, o.Model))
	}
	return box
}

// AABBOffset returns the bounding box as if the object moved by d
func (o *Object) AABBOffset(d vmath.Vec3) vmath.AABB {
	return o.AABB().Translated(d)
}

// Collides reports bounding box overlap with other
func (o *Object) Collides(other *Object) bool {
	return o.AABB().Intersects(other.AABB())
}

// CollidesOffset reports overlap with other if this object moved by d
func (o *Object) CollidesOffset(d vmath.Vec3, other *Object) bool {
	return o.AABBOffset(d).Intersects(other.AABB())
}

// Move translates the object in world space
func (o *Object) Move(d vmath.Vec3) {
	o.Model = vmath.Mat4Mul(o.Model, vmath.Translate(d.X, d.Y, d.Z))
}

// SampleTexture returns the texel at uv with v pointing up, or the tint when untextured
func (o *Object) SampleTexture(uv [2]float32) color.RGBA {
	if o.Texture == nil {
		return o.Color
	}
	b := o.Texture.Bounds()
	if b.Empty() {
		return o.Color
	}

	u := wrapUnit(uv[0])
	v := 1 - wrapUnit(uv[1])
	x := b.Min.X + min(int(u*float32(b.Dx())), b.Dx()-1)
	y := b.Min.Y + min(int(v*float32(b.Dy())), b.Dy()-1)

	r, g, bl, _ := o.Texture.At(x, y).RGBA()
	return color.RGBA{
		R: uint8(uint32(o.Color.R) * (r >> 8) / 255),
		G: uint8(uint32(o.Color.G) * (g >> 8) / 255),
		B: uint8(uint32(o.Color.B) * (bl >> 8) / 255),
		A: 255,
	}
}

// wrapUnit maps any coordinate into [0,1) by repeating
func wrapUnit(f float32) float32 {
	f -= float32(int(f))
	if f < 0 {
		f++
	}
	return f
}
