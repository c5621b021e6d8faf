// @lixen: #focus{sys[render,pipeline]}
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/ascii3d/logging"
)

type passEntry struct {
	pass     Pass
	priority Priority
	index    int // registration order for stable sort
}

// Rasterizer owns the off-screen target and runs registered passes in priority order
type Rasterizer struct {
	dc       *gg.Context
	passes   []passEntry
	regCount int
}

// NewRasterizer creates a cols x rows target with the scene, UI and HUD passes registered
func NewRasterizer(cols, rows int) *Rasterizer {
	r := NewEmptyRasterizer(cols, rows)
	r.Register(NewScenePass(), PriorityScene)
	r.Register(NewUIPass(), PriorityUI)
	r.Register(NewHUDPass(), PriorityHUD)
	return r
}

// NewEmptyRasterizer creates a target with no passes
func NewEmptyRasterizer(cols, rows int) *Rasterizer {
	cols, rows = targetSize(cols, rows)
	return &Rasterizer{
		dc:     gg.NewContext(cols, rows),
		passes: make([]passEntry, 0, 4),
	}
}

// targetSize keeps the context at least one pixel in each dimension
func targetSize(cols, rows int) (int, int) {
	return max(cols, 1), max(rows, 1)
}

// Register adds a pass at the specified priority. Maintains sorted order via insertion sort
func (r *Rasterizer) Register(p Pass, priority Priority) {
	entry := passEntry{
		pass:     p,
		priority: priority,
		index:    r.regCount,
	}
	r.regCount++

	pos := len(r.passes)
	for i, e := range r.passes {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	r.passes = append(r.passes, passEntry{})
	copy(r.passes[pos+1:], r.passes[pos:])
	r.passes[pos] = entry
}

// Resize follows the terminal size, a no-op when unchanged
func (r *Rasterizer) Resize(cols, rows int) error {
	cols, rows = targetSize(cols, rows)
	if err := r.dc.Resize(cols, rows); err != nil {
		return fmt.Errorf("resize rasterizer: %w", err)
	}
	return nil
}

// Size returns the target dimensions in pixels
func (r *Rasterizer) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

// Render clears to the scene background, runs every visible pass and returns a copy of the target
func (r *Rasterizer) Render(f *Frame) (*image.RGBA, error) {
	bg := color.RGBA{0, 0, 0, 255}
	if f.Scene != nil {
		bg = f.Scene.Background
	}
	r.dc.ClearWithColor(channelColor(bg))

	for _, entry := range r.passes {
		if vt, ok := entry.pass.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		if err := entry.pass.Render(r.dc, f); err != nil {
			return nil, fmt.Errorf("render pass %d: %w", entry.priority, err)
		}
	}

	if err := r.dc.FlushGPU(); err != nil {
		logging.L().Debug("gpu flush failed", "error", err)
	}
	img, ok := r.dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("render: unexpected target image type %T", r.dc.Image())
	}
	return img, nil
}

// Close releases the target
func (r *Rasterizer) Close() error {
	return r.dc.Close()
}

// channelColor maps 8-bit channels to gg floats, centred so the truncating store returns the same bytes
func channelColor(c color.RGBA) gg.RGBA {
	return gg.RGB(unit(c.R), unit(c.G), unit(c.B))
}

func unit(v uint8) float64 {
	return (float64(v) + 0.5) / 255
}
