// @focus: #sys { term }
// Package terminal prints RGB frames to a text terminal as colored ASCII glyphs.
//
// Features:
//   - Double-buffered packed pixel grid with per-cell diffing
//   - HSL glyph and ink selection, 24-bit background and foreground escapes
//   - Raw stdin input decoded into tcell key events
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with 24-bit color xterm-compatible terminals.
package terminal
