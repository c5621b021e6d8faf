package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi       = []byte("\x1b[")
	csiSGR0   = []byte("\x1b[0m")
	csiClear  = []byte("\x1b[2J\x1b[1;1H")
	csiFgRGB  = []byte("\x1b[38;2;") // followed by R;G;Bm
	csiBgRGB  = []byte("\x1b[48;2;") // followed by R;G;Bm
	rowEnd    = []byte("\x1b[0m\n")
	cellBlank = []byte("  ")
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (1-indexed row and column)
func writeCursorPos(w *bufio.Writer, row, col int) {
	w.Write(csi)
	writeInt(w, row)
	w.WriteByte(';')
	writeInt(w, col)
	w.WriteByte('H')
}

// writeColor writes a complete 24-bit color sequence after the given prefix
func writeColor(w *bufio.Writer, prefix []byte, c RGB) {
	w.Write(prefix)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}
