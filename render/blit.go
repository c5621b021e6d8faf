package render

import (
	"image"

	"github.com/lixenwraith/ascii3d/terminal"
)

// CellSink receives one color per terminal cell, implemented by terminal.FrameBuffer
type CellSink interface {
	SetPixel(x, y int, c terminal.RGB)
}

// Blit maps every pixel of img onto a terminal of cols x rows character columns
// Cells are two columns wide, so the horizontal ratio is offset by a quarter of the width
// to sample the middle of the image; negative cell columns clamp to 0
// Out of range cells are left to the sink, which ignores them. Alpha is ignored
func Blit(dst CellSink, img *image.RGBA, cols, rows int, flipY bool) {
	b := img.Bounds()
	pw, ph := b.Dx(), b.Dy()
	if pw <= 0 || ph <= 0 {
		return
	}

	for py := 0; py < ph; py++ {
		y := py * rows / ph
		if flipY {
			y = rows - y
		}
		off := img.PixOffset(b.Min.X, b.Min.Y+py)
		for px := 0; px < pw; px++ {
			x := max(px*cols/pw-cols/4, 0)
			p := img.Pix[off : off+3 : off+3]
			dst.SetPixel(x, y, terminal.RGB{R: p[0], G: p[1], B: p[2]})
			off += 4
		}
	}
}
