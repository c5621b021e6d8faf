package render

import (
	"github.com/gogpu/gg"
)

// HUDPass prints the frame HUD lines in the top-left corner
type HUDPass struct {
	visible bool
}

// NewHUDPass creates a visible HUD pass
func NewHUDPass() *HUDPass {
	return &HUDPass{visible: true}
}

// IsVisible implements VisibilityToggle
func (p *HUDPass) IsVisible() bool { return p.visible }

// Toggle flips HUD visibility
func (p *HUDPass) Toggle() { p.visible = !p.visible }

func (p *HUDPass) Render(dc *gg.Context, f *Frame) error {
	if len(f.HUD) == 0 {
		return nil
	}
	src, err := defaultFont()
	if err != nil {
		return err
	}

	// One text line per eighth of the target keeps the HUD legible at terminal resolution
	size := max(float64(dc.Height())/8, 4)
	face := src.Face(size)
	dc.SetFont(face)
	dc.SetRGB(1, 1, 1)

	// Blit shows only the middle half of the target width
	x := float64(dc.Width())/4 + 1
	m := face.Metrics()
	y := m.Ascent
	for _, line := range f.HUD {
		dc.DrawString(line, x, y)
		y += m.Ascent + m.Descent
	}
	return nil
}
