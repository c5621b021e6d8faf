package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lixenwraith/ascii3d/vmath"
)

// Built-in prefab names
const (
	PrefabCube    = "cube"
	PrefabPyramid = "pyramid"
	PrefabPlane   = "plane"
)

// PrefabList maps names to shared meshes
// Meshes are never mutated after registration, objects share them
type PrefabList struct {
	mu     sync.RWMutex
	meshes map[string]*Mesh
}

// NewPrefabList returns a list holding the built-in primitives
func NewPrefabList() *PrefabList {
	p := &PrefabList{meshes: make(map[string]*Mesh)}
	p.Register(PrefabCube, CubeMesh())
	p.Register(PrefabPyramid, PyramidMesh())
	p.Register(PrefabPlane, PlaneMesh())
	return p
}

// Register adds or replaces a prefab
func (p *PrefabList) Register(name string, mesh *Mesh) {
	p.mu.Lock()
	p.meshes[name] = mesh
	p.mu.Unlock()
}

// Get returns the named mesh or ErrUnknownPrefab
func (p *PrefabList) Get(name string) (*Mesh, error) {
	p.mu.RLock()
	mesh, ok := p.meshes[name]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrefab, name)
	}
	return mesh, nil
}

// Names returns registered prefab names in sorted order
func (p *PrefabList) Names() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.meshes))
	for name := range p.meshes {
		names = append(names, name)
	}
	p.mu.RUnlock()
	sort.Strings(names)
	return names
}

// LoadDir registers every .obj file in dir under its base name without extension
// Returns the number of meshes registered
func (p *PrefabList) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read models dir: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".obj") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		mesh, err := LoadOBJFile(path)
		if err != nil {
			return count, err
		}
		p.Register(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), mesh)
		count++
	}
	return count, nil
}

// quad appends two triangles spanning center±u±v, facing cross(u, v)
func quad(m *Mesh, center, u, v vmath.Vec3) {
	normal := vmath.V3Normalize(vmath.V3Cross(u, v))
	base := uint32(len(m.Vertices))

	corners := [4]struct {
		su, sv float32
		uv     [2]float32
	}{
		{-1, -1, [2]float32{0, 0}},
		{1, -1, [2]float32{1, 0}},
		{1, 1, [2]float32{1, 1}},
		{-1, 1, [2]float32{0, 1}},
	}
	for _, c := range corners {
		pos := vmath.V3Add(center, vmath.V3Add(vmath.V3Scale(u, c.su), vmath.V3Scale(v, c.sv)))
		m.Vertices = append(m.Vertices, Vertex{Position: pos, Normal: normal, UV: c.uv})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// CubeMesh returns a unit cube spanning [-1,1] on every axis
func CubeMesh() *Mesh {
	x := vmath.Vec3{X: 1}
	y := vmath.Vec3{Y: 1}
	z := vmath.Vec3{Z: 1}
	neg := func(v vmath.Vec3) vmath.Vec3 { return vmath.V3Scale(v, -1) }

	m := &Mesh{}
	quad(m, x, y, z)
	quad(m, neg(x), z, y)
	quad(m, y, z, x)
	quad(m, neg(y), x, z)
	quad(m, z, x, y)
	quad(m, neg(z), y, x)
	return m
}

// PlaneMesh returns a flat square on y=0 spanning [-1,1], facing +y
func PlaneMesh() *Mesh {
	m := &Mesh{}
	quad(m, vmath.Vec3{}, vmath.Vec3{Z: 1}, vmath.Vec3{X: 1})
	return m
}

// PyramidMesh returns a square pyramid with base on y=-1 and apex at y=1
func PyramidMesh() *Mesh {
	m := &Mesh{}
	quad(m, vmath.Vec3{Y: -1}, vmath.Vec3{X: 1}, vmath.Vec3{Z: 1})

	apex := vmath.Vec3{Y: 1}
	base := [4]vmath.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: 1},
		{X: -1, Y: -1, Z: 1},
	}
	center := vmath.Vec3{Y: -0.5}

	for i := range base {
		a, b := base[i], base[(i+1)%4]
		n := faceNormal(a, b, apex)
		mid := vmath.V3Scale(vmath.V3Add(vmath.V3Add(a, b), apex), 1.0/3)
		if vmath.V3Dot(n, vmath.V3Sub(mid, center)) < 0 {
			a, b = b, a
			n = vmath.V3Scale(n, -1)
		}
		n = vmath.V3Normalize(n)

		idx := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: a, Normal: n, UV: [2]float32{0, 0}},
			Vertex{Position: b, Normal: n, UV: [2]float32{1, 0}},
			Vertex{Position: apex, Normal: n, UV: [2]float32{0.5, 1}},
		)
		m.Indices = append(m.Indices, idx, idx+1, idx+2)
	}
	return m
}
