//go:build !unix

package terminal

import (
	"errors"
	"io"
	"os"
)

// ErrNotTerminal is returned by Init when no terminal backend exists for the platform
var ErrNotTerminal = errors.New("terminal backend not supported on this platform")

type stubBackend struct{}

func newBackend() Backend {
	return stubBackend{}
}

func (stubBackend) Init() error                                  { return ErrNotTerminal }
func (stubBackend) Fini()                                        {}
func (stubBackend) Size() (int, int)                             { return 80, 24 }
func (stubBackend) Output() io.Writer                            { return os.Stdout }
func (stubBackend) Read(stopCh <-chan struct{}) ([]byte, error) { <-stopCh; return nil, nil }
func (stubBackend) SetResizeHandler(handler func(cols, rows int)) {}
