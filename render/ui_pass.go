// @lixen: #focus{sys[render,ui]}
package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/lixenwraith/ascii3d/scene"
)

// scaledKey identifies a cached scaled copy of a UI image
type scaledKey struct {
	src    image.Image
	w, h   int
	filter scene.TextureFilter
}

// UIPass composites screen-space UI elements over the scene
type UIPass struct {
	cache map[*scene.UIElement]scaledEntry
}

type scaledEntry struct {
	key scaledKey
	buf *gg.ImageBuf
}

// NewUIPass creates the overlay pass
func NewUIPass() *UIPass {
	return &UIPass{cache: make(map[*scene.UIElement]scaledEntry)}
}

// Render draws image elements in order, then text elements on top of them
func (p *UIPass) Render(dc *gg.Context, f *Frame) error {
	w, h := dc.Width(), dc.Height()
	live := make(map[*scene.UIElement]struct{}, len(f.UI))

	for _, e := range f.UI {
		if e == nil {
			continue
		}
		live[e] = struct{}{}
		if e.Image == nil {
			continue
		}

		x, y, pw, ph := e.PixelRect(w, h)
		iw, ih := int(pw+0.5), int(ph+0.5)
		if iw <= 0 || ih <= 0 || e.Image.Bounds().Empty() {
			continue
		}

		buf := p.scaled(e, iw, ih)
		// Source is pre-scaled, so the copy is 1:1 and the interpolation mode has no effect
		dc.DrawImageEx(buf, gg.DrawImageOptions{
			X:       float64(int(x + 0.5)),
			Y:       float64(int(y + 0.5)),
			Opacity: 1,
		})
	}

	for _, e := range f.UI {
		if e == nil || e.Text == "" {
			continue
		}
		if err := drawText(dc, e, w, h); err != nil {
			return err
		}
	}

	// Drop scaled copies of elements no longer shown
	for e := range p.cache {
		if _, ok := live[e]; !ok {
			delete(p.cache, e)
		}
	}
	return nil
}

// scaled returns the element image resampled to w x h with the element filter
// gg treats a zero interpolation as bilinear, so nearest sampling is done here instead
func (p *UIPass) scaled(e *scene.UIElement, w, h int) *gg.ImageBuf {
	key := scaledKey{src: e.Image, w: w, h: h, filter: e.Filter}
	if entry, ok := p.cache[e]; ok && entry.key == key {
		return entry.buf
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler(e.Filter).Scale(dst, dst.Bounds(), e.Image, e.Image.Bounds(), xdraw.Src, nil)

	buf := gg.ImageBufFromImage(dst)
	p.cache[e] = scaledEntry{key: key, buf: buf}
	return buf
}

func scaler(f scene.TextureFilter) xdraw.Scaler {
	if f == scene.FilterNearest {
		return xdraw.NearestNeighbor
	}
	return xdraw.BiLinear
}

func drawText(dc *gg.Context, e *scene.UIElement, w, h int) error {
	src, err := defaultFont()
	if err != nil {
		return err
	}
	size := e.TextSize
	if size <= 0 {
		size = float64(h) / 16
	}
	dc.SetFont(src.Face(size))

	c := e.TextColor
	if c == (color.RGBA{}) {
		c = color.RGBA{255, 255, 255, 255}
	}
	dc.SetRGBA(unit(c.R), unit(c.G), unit(c.B), float64(c.A)/255)
	dc.DrawString(e.Text, e.X*float64(w), (1-e.Y)*float64(h))
	return nil
}
