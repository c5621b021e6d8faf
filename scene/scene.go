package scene

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii3d/vmath"
)

// DefaultBackground is the clear color of a scene
var DefaultBackground = color.RGBA{105, 109, 219, 255}

// prefabScheme marks a model_path that names a registered prefab instead of a file
const prefabScheme = "prefab:"

// Scene is an ordered collection of objects rendered together
type Scene struct {
	Name       string
	Objects    []*Object
	Background color.RGBA
}

// New returns an empty scene with the default background
func New(name string) *Scene {
	return &Scene{Name: name, Background: DefaultBackground}
}

// AddObject appends an object, draw order follows insertion order among equal depths
func (s *Scene) AddObject(o *Object) {
	s.Objects = append(s.Objects, o)
}

// ObjectsByTags returns objects carrying any of the tags, each at most once, in scene order
func (s *Scene) ObjectsByTags(tags ...string) []*Object {
	var out []*Object
	for _, o := range s.Objects {
		for _, tag := range tags {
			if o.HasTag(tag) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// ObjectByName returns the first object with the given name
func (s *Scene) ObjectByName(name string) (*Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Scene file layout: an array of single-key objects, the key being the object name
//
//	[{"Cube": {"model_path": "/models/Cube.obj", "texture_path": null,
//	  "model_matrix": {"position": [0,0,0], "rotation": [0,0,0], "scale": [1,1,1]},
//	  "tags": ["cube"], "color": "#ff8800"}}]
//
// Coordinates are Z-up as exported from Blender and are swapped to Y-up on load
type objectSpec struct {
	ModelPath   string  `json:"model_path"`
	TexturePath *string `json:"texture_path"`
	ModelMatrix struct {
		Position [3]float32 `json:"position"`
		Rotation [3]float32 `json:"rotation"`
		Scale    [3]float32 `json:"scale"`
	} `json:"model_matrix"`
	Tags   []string `json:"tags"`
	Color  string   `json:"color,omitempty"`
	Filter string   `json:"filter,omitempty"`
}

// LoadFile reads a scene file, asset paths inside it are resolved against assetsDir
func LoadFile(path, assetsDir string, prefabs *PrefabList) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := LoadJSON(f, assetsDir, prefabs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// LoadJSON decodes a scene description
// model_path is either "prefab:<name>" or a path under assetsDir; a missing file falls back
// to the prefab named by the file's base name
func LoadJSON(r io.Reader, assetsDir string, prefabs *PrefabList) (*Scene, error) {
	var entries []map[string]objectSpec
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSceneFormat, err)
	}
	if prefabs == nil {
		prefabs = NewPrefabList()
	}

	s := New("")
	meshCache := make(map[string]*Mesh)
	textureCache := make(map[string]image.Image)

	for i, entry := range entries {
		if len(entry) != 1 {
			return nil, fmt.Errorf("%w: entry %d must have exactly one key, got %d", ErrSceneFormat, i, len(entry))
		}
		for name, spec := range entry {
			obj, err := buildObject(name, spec, assetsDir, prefabs, meshCache, textureCache)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", name, err)
			}
			s.AddObject(obj)
		}
	}
	return s, nil
}

func buildObject(name string, spec objectSpec, assetsDir string, prefabs *PrefabList,
	meshCache map[string]*Mesh, textureCache map[string]image.Image) (*Object, error) {

	mesh, err := resolveMesh(spec.ModelPath, assetsDir, prefabs, meshCache)
	if err != nil {
		return nil, err
	}

	mm := spec.ModelMatrix
	scale := vmath.V3FromArray(mm.Scale)
	if scale == (vmath.Vec3{}) {
		scale = vmath.Vec3{X: 1, Y: 1, Z: 1}
	}
	model := vmath.ModelMatrix(blenderToEngine(mm.Position), blenderToEngine(mm.Rotation), scale)

	obj := NewObject(name, mesh, model, spec.Tags...)

	if spec.Color != "" {
		c, err := colorful.Hex(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: color %q: %v", ErrSceneFormat, spec.Color, err)
		}
		r, g, b := c.RGB255()
		obj.Color = color.RGBA{r, g, b, 255}
	}

	switch strings.ToLower(spec.Filter) {
	case "", "linear":
		obj.Filter = FilterLinear
	case "nearest":
		obj.Filter = FilterNearest
	default:
		return nil, fmt.Errorf("%w: filter %q", ErrSceneFormat, spec.Filter)
	}

	if spec.TexturePath != nil && *spec.TexturePath != "" {
		path := assetPath(assetsDir, *spec.TexturePath)
		tex, ok := textureCache[path]
		if !ok {
			tex, err = LoadTexture(path)
			if err != nil {
				return nil, err
			}
			textureCache[path] = tex
		}
		obj.Texture = tex
	}
	return obj, nil
}

func resolveMesh(modelPath, assetsDir string, prefabs *PrefabList, cache map[string]*Mesh) (*Mesh, error) {
	if name, ok := strings.CutPrefix(modelPath, prefabScheme); ok {
		return prefabs.Get(name)
	}
	if modelPath == "" {
		return nil, fmt.Errorf("%w: empty model_path", ErrSceneFormat)
	}

	path := assetPath(assetsDir, modelPath)
	if mesh, ok := cache[path]; ok {
		return mesh, nil
	}

	if _, err := os.Stat(path); err != nil {
		base := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
		if mesh, perr := prefabs.Get(base); perr == nil {
			return mesh, nil
		}
		if mesh, perr := prefabs.Get(strings.ToLower(base)); perr == nil {
			return mesh, nil
		}
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	mesh, err := LoadOBJFile(path)
	if err != nil {
		return nil, err
	}
	cache[path] = mesh
	return mesh, nil
}

// assetPath joins scene-relative paths, which conventionally start with '/', onto the assets dir
func assetPath(assetsDir, p string) string {
	return filepath.Join(assetsDir, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}

// blenderToEngine swaps Blender's Z-up axes into the engine's Y-up frame
func blenderToEngine(a [3]float32) vmath.Vec3 {
	return vmath.Vec3{X: -a[0], Y: a[2], Z: -a[1]}
}
