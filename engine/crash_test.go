package engine

import (
	"errors"
	"testing"
)

func TestGuardPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	if err := Guard(func() error { return boom })(); !errors.Is(err, boom) {
		t.Errorf("Expected error passed through, got %v", err)
	}
}

func TestGuardHandlesPanic(t *testing.T) {
	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = osExit }()

	Guard(func() error { panic("kaboom") })()

	if code != 1 {
		t.Errorf("Expected exit code 1 after panic, got %d", code)
	}
}

func TestHandleCrashNil(t *testing.T) {
	called := false
	exit = func(int) { called = true }
	defer func() { exit = osExit }()

	HandleCrash(nil)
	if called {
		t.Errorf("Expected no exit without a panic value")
	}
}
