package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/ascii3d/scene"
)

// ErrNoScene is returned when selecting a scene index that does not exist
var ErrNoScene = errors.New("no such scene")

// Game is the mutable world the frame loop renders
// Scene list access is locked because the file watcher replaces scenes from its own goroutine
type Game struct {
	mu      sync.RWMutex
	scenes  []*scene.Scene
	current int
	ui      []*scene.UIElement

	Camera *scene.Camera
	Paused bool
	HUD    bool
}

// NewGame creates a game with the given camera and no scenes
func NewGame(cam *scene.Camera) *Game {
	return &Game{Camera: cam}
}

// AddScene appends s and returns its index
func (g *Game) AddScene(s *scene.Scene) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scenes = append(g.scenes, s)
	return len(g.scenes) - 1
}

// ReplaceScene swaps the scene at i, used by hot reload
func (g *Game) ReplaceScene(i int, s *scene.Scene) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.scenes) {
		return fmt.Errorf("%w: %d", ErrNoScene, i)
	}
	g.scenes[i] = s
	return nil
}

// SetScene makes scene i current
func (g *Game) SetScene(i int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.scenes) {
		return fmt.Errorf("%w: %d", ErrNoScene, i)
	}
	g.current = i
	return nil
}

// CycleScene moves the current scene by delta, wrapping at both ends
// Returns false when fewer than two scenes exist
func (g *Game) CycleScene(delta int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.scenes)
	if n < 2 {
		return false
	}
	g.current = ((g.current+delta)%n + n) % n
	return true
}

// Scene returns the current scene, nil when none was added
func (g *Game) Scene() *scene.Scene {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.scenes) == 0 {
		return nil
	}
	return g.scenes[g.current]
}

// SceneIndex returns the current scene index
func (g *Game) SceneIndex() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// SceneCount returns how many scenes are loaded
func (g *Game) SceneCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.scenes)
}

// AddUIElem appends an overlay element
func (g *Game) AddUIElem(e *scene.UIElement) {
	g.ui = append(g.ui, e)
}

// AddUIElems appends several overlay elements
func (g *Game) AddUIElems(es ...*scene.UIElement) {
	g.ui = append(g.ui, es...)
}

// UIElems returns the overlay elements in draw order
func (g *Game) UIElems() []*scene.UIElement {
	return g.ui
}
