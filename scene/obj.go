package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/ascii3d/vmath"
)

type objCorner struct {
	v, vt, vn int // resolved zero-based, -1 when absent
}

// LoadOBJFile reads a Wavefront OBJ mesh from disk
func LoadOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	mesh, err := LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// LoadOBJ parses positions, texture coordinates, normals and polygon faces
// Polygons are fan-triangulated; corners without a normal get the face normal
// Materials, groups and smoothing directives are ignored
func LoadOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []vmath.Vec3
		uvs       [][2]float32
		normals   []vmath.Vec3
	)
	mesh := &Mesh{}
	shared := make(map[objCorner]uint32)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, vmath.Vec3{X: p[0], Y: p[1], Z: p[2]})

		case "vt":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: vt needs a coordinate", lineNo, ErrMalformedMesh)
			}
			t, err := parseFloats(fields[1:], min(2, len(fields)-1))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uv := [2]float32{t[0], 0}
			if len(t) > 1 {
				uv[1] = t[1]
			}
			uvs = append(uvs, uv)

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, vmath.V3Normalize(vmath.Vec3{X: n[0], Y: n[1], Z: n[2]}))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %w: face needs 3 corners", lineNo, ErrMalformedMesh)
			}
			corners := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				c, err := parseCorner(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}

			for i := 1; i+1 < len(corners); i++ {
				tri := [3]objCorner{corners[0], corners[i], corners[i+1]}
				fn := vmath.V3Normalize(faceNormal(
					positions[tri[0].v], positions[tri[1].v], positions[tri[2].v]))

				for _, c := range tri {
					if c.vn >= 0 {
						if idx, ok := shared[c]; ok {
							mesh.Indices = append(mesh.Indices, idx)
							continue
						}
					}

					vert := Vertex{Position: positions[c.v], Normal: fn}
					if c.vt >= 0 {
						vert.UV = uvs[c.vt]
					}
					if c.vn >= 0 {
						vert.Normal = normals[c.vn]
					}

					idx := uint32(len(mesh.Vertices))
					mesh.Vertices = append(mesh.Vertices, vert)
					mesh.Indices = append(mesh.Indices, idx)
					if c.vn >= 0 {
						shared[c] = idx
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformedMesh)
	}
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrMalformedMesh, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMesh, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner reads v, v/vt, v//vn or v/vt/vn with 1-based or negative relative indices
func parseCorner(tok string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("%w: bad face corner %q", ErrMalformedMesh, tok)
	}

	c := objCorner{v: -1, vt: -1, vn: -1}
	counts := [3]int{nv, nvt, nvn}
	targets := [3]*int{&c.v, &c.vt, &c.vn}

	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return objCorner{}, fmt.Errorf("%w: face corner %q has no vertex", ErrMalformedMesh, tok)
			}
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return objCorner{}, fmt.Errorf("%w: bad index %q", ErrMalformedMesh, part)
		}
		resolved, err := resolveIndex(idx, counts[i])
		if err != nil {
			return objCorner{}, err
		}
		*targets[i] = resolved
	}
	return c, nil
}

func resolveIndex(idx, count int) (int, error) {
	switch {
	case idx > 0 && idx <= count:
		return idx - 1, nil
	case idx < 0 && -idx <= count:
		return count + idx, nil
	}
	return 0, fmt.Errorf("%w: index %d out of range (%d defined)", ErrMalformedMesh, idx, count)
}
