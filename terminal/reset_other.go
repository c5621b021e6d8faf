//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

// resetTerminalMode has no termios to restore on this platform
func resetTerminalMode() {}
