package terminal

import "io"

// Backend abstracts the platform terminal the frame buffer prints to
// Raw mode only, no alternate screen or cursor toggles so output bytes stay exactly the frame stream
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns the terminal size in columns and rows
	Size() (cols, rows int)

	// Output is the stream handed to NewFrameBuffer
	Output() io.Writer

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// An empty slice with nil error means a poll timeout or stop, io.EOF means input ended
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(cols, rows int))
}

// NewBackend returns the backend for the current platform bound to stdin/stdout
func NewBackend() Backend {
	return newBackend()
}
