package terminal

import (
	"io"
	"os"
)

// EmergencyReset clears attributes, parks the cursor on a fresh line and restores cooked mode
// Call this from panic recovery or fatal paths when Backend.Fini cannot run
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write([]byte("\r\n"))

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
