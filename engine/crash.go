package engine

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/ascii3d/logging"
	"github.com/lixenwraith/ascii3d/terminal"
)

// exit is replaced in tests
var (
	osExit = os.Exit
	exit   = osExit
)

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state immediately
	terminal.EmergencyReset(os.Stdout)
	os.Stdout.Sync()

	stack := debug.Stack()
	logging.L().Error("crash", "panic", r, "stack", string(stack))

	// Raw mode may still be active on exotic platforms, \r\n avoids zig-zag output
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mASCII3D CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

// Guard wraps an errgroup task so a panic inside it restores the terminal before exiting
func Guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		return fn()
	}
}
