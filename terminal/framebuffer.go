// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// FrameBuffer is a double-buffered grid of packed pixels printed as two-column glyph cells
// Only cells whose packed value differs between front and back are repainted
// Not safe for concurrent use, one frame producer owns it
type FrameBuffer struct {
	front  []uint32
	back   []uint32
	width  int
	height int
	writer *bufio.Writer

	repainted int
}

// NewFrameBuffer allocates both grids filled with initial and paints the whole screen
func NewFrameBuffer(out io.Writer, width, height int, initial RGB) (*FrameBuffer, error) {
	fb := &FrameBuffer{writer: newWriter(out)}
	if err := fb.Reset(width, height, initial); err != nil {
		return nil, err
	}
	return fb, nil
}

func newWriter(out io.Writer) *bufio.Writer {
	return bufio.NewWriterSize(out, 131072) // 128KB buffer
}

// Reset reallocates both grids at the new size filled with initial and repaints the screen
func (fb *FrameBuffer) Reset(width, height int, initial RGB) error {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	fb.front = make([]uint32, size)
	fb.back = make([]uint32, size)
	fb.width = width
	fb.height = height

	packed := initial.Pack()
	for i := range fb.front {
		fb.front[i] = packed
		fb.back[i] = packed
	}

	return fb.Fill(initial)
}

// Fill clears the screen and paints every cell with c
// Buffers are left untouched, callers keep them in sync with the painted color
func (fb *FrameBuffer) Fill(c RGB) error {
	w := fb.writer

	w.Write(csiClear)
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			writeColor(w, csiBgRGB, c)
			w.Write(cellBlank)
		}
		w.Write(rowEnd)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// UpdateRes resizes both grids keeping the existing prefix and zero-padding new cells
// Contents are not relaid out for the new width
func (fb *FrameBuffer) UpdateRes(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	fb.front = resizeCells(fb.front, size)
	fb.back = resizeCells(fb.back, size)
	fb.width = width
	fb.height = height
}

func resizeCells(cells []uint32, size int) []uint32 {
	if size <= len(cells) {
		return cells[:size]
	}
	grown := make([]uint32, size)
	copy(grown, cells)
	return grown
}

// Clear zeroes the back buffer
func (fb *FrameBuffer) Clear() {
	clear(fb.back)
}

// SetPixel writes c into the back buffer, out of range coordinates are ignored
func (fb *FrameBuffer) SetPixel(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	fb.back[y*fb.width+x] = c.Pack()
}

// DrawFrame repaints every cell that changed since the last frame and swaps buffers
func (fb *FrameBuffer) DrawFrame() error {
	w := fb.writer
	fb.repainted = 0

	for y := 0; y < fb.height; y++ {
		rowStart := y * fb.width
		for x := 0; x < fb.width; x++ {
			idx := rowStart + x
			packed := fb.back[idx]
			if packed == fb.front[idx] {
				continue
			}

			// Outgoing front mirrors the painted cell so after the swap back still holds this frame
			fb.front[idx] = packed
			fb.repainted++

			bg := Unpack(packed)
			glyph, fg := CellAppearance(bg)

			writeCursorPos(w, y+1, x*2+1)
			writeColor(w, csiBgRGB, bg)
			writeColor(w, csiFgRGB, fg)
			w.WriteRune(glyph)
			w.WriteRune(glyph)
		}
	}

	writeCursorPos(w, fb.height+1, 1)
	w.Write(csiSGR0)

	fb.front, fb.back = fb.back, fb.front

	if err := w.Flush(); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Repainted returns how many cells the last DrawFrame printed
func (fb *FrameBuffer) Repainted() int { return fb.repainted }

// Width returns the grid width in cells
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the grid height in cells
func (fb *FrameBuffer) Height() int { return fb.height }

// Front returns the packed value last painted at (x, y), 0 when out of range
func (fb *FrameBuffer) Front(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.front[y*fb.width+x]
}

// Back returns the packed value pending at (x, y), 0 when out of range
func (fb *FrameBuffer) Back(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.back[y*fb.width+x]
}
