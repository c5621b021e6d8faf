package terminal

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Pack encodes the color as r<<16 | g<<8 | b
// Cells are stored packed so a diff is a single integer comparison
func (c RGB) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack decodes a packed cell value, bits above 24 are ignored
func Unpack(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16 & 0xff),
		G: uint8(v >> 8 & 0xff),
		B: uint8(v & 0xff),
	}
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c == other
}
