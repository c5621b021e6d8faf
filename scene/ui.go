package scene

import (
	"image"
	"image/color"
)

// UIElement is a screen-space overlay drawn after the 3D pass
// Coordinates are fractions of the render target with the origin at the bottom-left corner
type UIElement struct {
	X, Y, W, H float64
	Image      image.Image
	Filter     TextureFilter

	// Text elements draw a string instead of an image, Size is in target pixels
	Text      string
	TextSize  float64
	TextColor color.RGBA
}

// UIRect returns a textured rectangle element
func UIRect(x, y, w, h float64, img image.Image) *UIElement {
	return &UIElement{X: x, Y: y, W: w, H: h, Image: img, Filter: FilterLinear}
}

// UIText returns a text element anchored at its bottom-left corner
func UIText(x, y float64, text string, size float64, c color.RGBA) *UIElement {
	return &UIElement{X: x, Y: y, Text: text, TextSize: size, TextColor: c}
}

// PixelRect converts the element to a top-left origin pixel rectangle on a w x h target
func (e *UIElement) PixelRect(w, h int) (x, y, pw, ph float64) {
	fw, fh := float64(w), float64(h)
	pw = e.W * fw
	ph = e.H * fh
	x = e.X * fw
	y = (1-e.Y)*fh - ph
	return x, y, pw, ph
}
