package scene

import "errors"

var (
	// ErrUnknownPrefab is returned when a prefab name is not registered
	ErrUnknownPrefab = errors.New("unknown prefab")
	// ErrMalformedMesh is returned for meshes with dangling or partial triangles
	ErrMalformedMesh = errors.New("malformed mesh")
	// ErrSceneFormat is returned when a scene file does not match the expected layout
	ErrSceneFormat = errors.New("invalid scene format")
)
