package terminal

import (
	"testing"
)

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// TestHSLRoundTrip verifies RGB -> HSL -> RGB stays within one step per channel
func TestHSLRoundTrip(t *testing.T) {
	worst := 0
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 3 {
				h, s, l := RGBToHSL(float32(r)/255, float32(g)/255, float32(b)/255)
				out := HSLToRGB(h, s, l)

				d := max(absDiff(out.R, uint8(r)), absDiff(out.G, uint8(g)), absDiff(out.B, uint8(b)))
				if d > worst {
					worst = d
				}
				if d > 1 {
					t.Fatalf("Expected (%d,%d,%d) within 1, got %v", r, g, b, out)
				}
			}
		}
	}
	t.Logf("worst channel error: %d", worst)
}

// TestHSLRoundTripGrays verifies achromatic colors survive exactly
func TestHSLRoundTripGrays(t *testing.T) {
	for v := 0; v < 256; v++ {
		f := float32(v) / 255
		h, s, l := RGBToHSL(f, f, f)
		if h != 0 || s != 0 {
			t.Errorf("Expected h=0 s=0 for gray %d, got h=%v s=%v", v, h, s)
		}
		out := HSLToRGB(h, s, l)
		want := RGB{uint8(v), uint8(v), uint8(v)}
		if out != want {
			t.Errorf("Expected %v, got %v", want, out)
		}
	}
}

func TestRGBToHSLPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		h, s, l float32
	}{
		{"Red", 1, 0, 0, 0, 1, 0.5},
		{"Green", 0, 1, 0, 120, 1, 0.5},
		{"Blue", 0, 0, 1, 240, 1, 0.5},
		{"Yellow", 1, 1, 0, 60, 1, 0.5},
		{"Magenta", 1, 0, 1, 300, 1, 0.5},
		{"White", 1, 1, 1, 0, 0, 1},
		{"Black", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := RGBToHSL(tt.r, tt.g, tt.b)
			if h != tt.h || s != tt.s || l != tt.l {
				t.Errorf("Expected (%v,%v,%v), got (%v,%v,%v)", tt.h, tt.s, tt.l, h, s, l)
			}
		})
	}
}

// TestRGBToHSLHueNonNegative covers red-dominant colors with blue above green
func TestRGBToHSLHueNonNegative(t *testing.T) {
	h, _, _ := RGBToHSL(1, 0, 0.5)
	if h < 0 || h >= 360 {
		t.Fatalf("Expected hue in [0,360), got %v", h)
	}
	if h != 330 {
		t.Errorf("Expected hue 330, got %v", h)
	}
}

func TestHSLToRGBTruncates(t *testing.T) {
	// Mid lightness gray is 127.5 before conversion
	got := HSLToRGB(0, 0, 0.5)
	if got != (RGB{127, 127, 127}) {
		t.Errorf("Expected truncated 127 gray, got %v", got)
	}
}

func TestSelectGlyphEndpoints(t *testing.T) {
	if g := GlyphRamp[SelectGlyph(0)]; g != '@' {
		t.Errorf("Expected '@' at lightness 0, got %q", g)
	}
	if g := GlyphRamp[SelectGlyph(1)]; g != '\u00a0' {
		t.Errorf("Expected non-breaking space at lightness 1, got %q", g)
	}
	if idx := SelectGlyph(0.5); idx != 6 {
		t.Errorf("Expected mid ramp index 6, got %d", idx)
	}
}

// TestSelectGlyphMonotonic verifies density never increases with lightness
func TestSelectGlyphMonotonic(t *testing.T) {
	prev := SelectGlyph(0)
	for i := 1; i <= 1000; i++ {
		idx := SelectGlyph(float32(i) / 1000)
		if idx < prev {
			t.Fatalf("Expected non-decreasing ramp index at l=%v, got %d after %d", float32(i)/1000, idx, prev)
		}
		prev = idx
	}
}

func TestSelectGlyphOutOfRange(t *testing.T) {
	if idx := SelectGlyph(-0.5); idx != 0 {
		t.Errorf("Expected clamp to 0, got %d", idx)
	}
	if idx := SelectGlyph(1.5); idx != len(GlyphRamp)-1 {
		t.Errorf("Expected clamp to %d, got %d", len(GlyphRamp)-1, idx)
	}
}

func TestCellAppearance(t *testing.T) {
	tests := []struct {
		name  string
		in    RGB
		glyph rune
		ink   RGB
	}{
		{"Red keeps full ink", RGB{255, 0, 0}, '+', RGB{255, 0, 0}},
		{"Black is densest", RGB{0, 0, 0}, '@', RGB{127, 127, 127}},
		{"White is blank", RGB{255, 255, 255}, '\u00a0', RGB{127, 127, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyph, ink := CellAppearance(tt.in)
			if glyph != tt.glyph {
				t.Errorf("Expected glyph %q, got %q", tt.glyph, glyph)
			}
			if ink != tt.ink {
				t.Errorf("Expected ink %v, got %v", tt.ink, ink)
			}
		})
	}
}

func TestPackUnpack(t *testing.T) {
	c := RGB{0x12, 0x34, 0x56}
	if c.Pack() != 0x123456 {
		t.Errorf("Expected 0x123456, got %#x", c.Pack())
	}
	if Unpack(0xff123456) != c {
		t.Errorf("Expected high bits ignored, got %v", Unpack(0xff123456))
	}
}
