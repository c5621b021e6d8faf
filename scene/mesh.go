package scene

import (
	"github.com/lixenwraith/ascii3d/vmath"
)

// Vertex is one mesh corner in model space
type Vertex struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	UV       [2]float32
}

// Mesh is an indexed triangle list
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of complete triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three corners of triangle i
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	base := i * 3
	return m.Vertices[m.Indices[base]], m.Vertices[m.Indices[base+1]], m.Vertices[m.Indices[base+2]]
}

// Bounds returns the model space bounding box
func (m *Mesh) Bounds() vmath.AABB {
	box := vmath.EmptyAABB()
	for _, v := range m.Vertices {
		box = box.Extend(v.Position)
	}
	return box
}

// Validate checks that every index references a vertex
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return ErrMalformedMesh
	}
	n := uint32(len(m.Vertices))
	for _, idx := range m.Indices {
		if idx >= n {
			return ErrMalformedMesh
		}
	}
	return nil
}

// faceNormal is the unnormalized geometric normal, counter-clockwise winding faces outward
func faceNormal(a, b, c vmath.Vec3) vmath.Vec3 {
	return vmath.V3Cross(vmath.V3Sub(b, a), vmath.V3Sub(c, a))
}
