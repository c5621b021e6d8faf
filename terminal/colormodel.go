package terminal

import (
	"math"
)

// GlyphRamp orders glyphs from densest to sparsest ink
// Dark cells take dense glyphs since the terminal background is assumed dark
var GlyphRamp = [...]rune{'@', '#', 'S', '%', '?', '*', '+', ';', ':', ',', '.', '\u00a0'}

// inkLightness is the fixed lightness of every foreground color
// Brightness is carried by glyph density, ink keeps only hue and saturation
const inkLightness float32 = 0.5

// RGBToHSL converts normalized channels in [0,1] to hue in degrees [0,360), saturation and lightness in [0,1]
// Achromatic input yields h=0, s=0
func RGBToHSL(r, g, b float32) (h, s, l float32) {
	cmax := max(r, g, b)
	cmin := min(r, g, b)
	delta := cmax - cmin

	l = (cmax + cmin) / 2

	if delta == 0 {
		return 0, 0, l
	}

	// Channel ties resolve r, then g, then b
	switch {
	case cmax == r:
		h = 60 * euclidMod((g-b)/delta, 6)
	case cmax == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}

	s = delta / (1 - abs32(float32(2*l)-1))
	return h, s, l
}

// HSLToRGB converts hue in degrees and saturation/lightness in [0,1] to 8-bit channels
// Channels are truncated, not rounded
func HSLToRGB(h, s, l float32) RGB {
	c := (1 - abs32(float32(2*l)-1)) * s
	x := c * (1 - abs32(fmod32(h/60, 2)-1))
	m := l - c/2

	var r, g, b float32
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: truncU8(float32(r+m) * 255),
		G: truncU8(float32(g+m) * 255),
		B: truncU8(float32(b+m) * 255),
	}
}

// SelectGlyph returns the GlyphRamp index for a lightness in [0,1]
// Darkness (1-l) is quantized over the ramp and counted from the sparse end, so l=0 selects '@'
func SelectGlyph(l float32) int {
	last := len(GlyphRamp) - 1
	darkness := int((1 - l) * float32(last))
	if darkness < 0 {
		darkness = 0
	}
	if darkness > last {
		darkness = last
	}
	return last - darkness
}

// CellAppearance picks the glyph and ink color used to print a cell of the given color
func CellAppearance(c RGB) (rune, RGB) {
	h, s, l := RGBToHSL(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
	return GlyphRamp[SelectGlyph(l)], HSLToRGB(h, s, inkLightness)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// fmod32 is the truncated remainder; exact for float32 operands
func fmod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}

// euclidMod is the non-negative remainder
func euclidMod(a, b float32) float32 {
	m := fmod32(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// truncU8 truncates toward zero, saturating at the channel limits
func truncU8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
