package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/lixenwraith/ascii3d/scene"
)

// stripes returns a 2x1 image, red on the left and blue on the right
func stripes() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	return img
}

func renderUI(t *testing.T, pass *UIPass, elems ...*scene.UIElement) *image.RGBA {
	t.Helper()
	r := NewEmptyRasterizer(16, 16)
	t.Cleanup(func() { r.Close() })
	r.Register(pass, PriorityUI)

	img, err := r.Render(&Frame{UI: elems})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return img
}

func TestUIPassNearest(t *testing.T) {
	e := scene.UIRect(0, 0, 1, 1, stripes())
	e.Filter = scene.FilterNearest
	img := renderUI(t, NewUIPass(), e)

	tests := []struct {
		x    int
		want color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}},
		{7, color.RGBA{255, 0, 0, 255}},
		{8, color.RGBA{0, 0, 255, 255}},
		{15, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, 8); !near(got, tt.want, 2) {
			t.Errorf("Pixel %d: expected %v, got %v", tt.x, tt.want, got)
		}
	}
}

func TestUIPassLinearBlends(t *testing.T) {
	e := scene.UIRect(0, 0, 1, 1, stripes())
	img := renderUI(t, NewUIPass(), e)

	got := img.RGBAAt(7, 8)
	if got.R < 40 || got.B < 40 {
		t.Errorf("Expected a red and blue blend at the seam, got %v", got)
	}
}

func TestUIPassPlacement(t *testing.T) {
	// Bottom-left quarter in normalized coordinates with y up
	e := scene.UIRect(0, 0, 0.5, 0.5, stripes())
	e.Filter = scene.FilterNearest
	img := renderUI(t, NewUIPass(), e)

	if got := img.RGBAAt(2, 12); !near(got, color.RGBA{255, 0, 0, 255}, 2) {
		t.Errorf("Expected element in the bottom-left, got %v", got)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected background above the element, got %v", got)
	}
}

func TestUIPassCache(t *testing.T) {
	pass := NewUIPass()
	e := scene.UIRect(0, 0, 1, 1, stripes())

	renderUI(t, pass, e)
	first := pass.cache[e].buf
	renderUI(t, pass, e)
	if pass.cache[e].buf != first {
		t.Errorf("Expected scaled image reused across frames")
	}

	e.Filter = scene.FilterNearest
	renderUI(t, pass, e)
	if pass.cache[e].buf == first {
		t.Errorf("Expected rescale after filter change")
	}

	renderUI(t, pass)
	if len(pass.cache) != 0 {
		t.Errorf("Expected cache pruned for removed elements, got %d", len(pass.cache))
	}
}

func TestUIPassText(t *testing.T) {
	e := scene.UIText(0.1, 0.1, "W", 12, color.RGBA{})
	img := renderUI(t, NewUIPass(), e)

	lit := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Errorf("Expected text pixels drawn")
	}
}

func TestHUDPassToggle(t *testing.T) {
	hud := NewHUDPass()
	r := NewEmptyRasterizer(64, 32)
	defer r.Close()
	r.Register(hud, PriorityHUD)

	count := func() int {
		img, err := r.Render(&Frame{HUD: []string{"1/2"}})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		n := 0
		for y := 0; y < 32; y++ {
			for x := 0; x < 64; x++ {
				if img.RGBAAt(x, y).R > 0 {
					n++
				}
			}
		}
		return n
	}

	if count() == 0 {
		t.Errorf("Expected HUD text drawn while visible")
	}
	hud.Toggle()
	if hud.IsVisible() {
		t.Fatalf("Expected HUD hidden after toggle")
	}
	if n := count(); n != 0 {
		t.Errorf("Expected nothing drawn while hidden, got %d pixels", n)
	}
}

func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool { return abs(int(x)-int(y)) <= tol }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
