package terminal

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestDecodeKeysPrintable(t *testing.T) {
	events, consumed := decodeKeys([]byte("wasd"))
	if consumed != 4 {
		t.Fatalf("Expected 4 bytes consumed, got %d", consumed)
	}
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d", len(events))
	}
	for i, want := range "wasd" {
		if events[i].Key() != tcell.KeyRune || events[i].Rune() != want {
			t.Errorf("Expected rune %q, got key %v rune %q", want, events[i].Key(), events[i].Rune())
		}
	}
}

func TestDecodeKeysSequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		key  tcell.Key
		mod  tcell.ModMask
	}{
		{"CSI up", "\x1b[A", tcell.KeyUp, tcell.ModNone},
		{"CSI down", "\x1b[B", tcell.KeyDown, tcell.ModNone},
		{"SS3 right", "\x1bOC", tcell.KeyRight, tcell.ModNone},
		{"SS3 left", "\x1bOD", tcell.KeyLeft, tcell.ModNone},
		{"Ctrl left", "\x1b[1;5D", tcell.KeyLeft, tcell.ModCtrl},
		{"Shift up", "\x1b[1;2A", tcell.KeyUp, tcell.ModShift},
		{"Delete", "\x1b[3~", tcell.KeyDelete, tcell.ModNone},
		{"Page down", "\x1b[6~", tcell.KeyPgDn, tcell.ModNone},
		{"Alt escape", "\x1b\x1b", tcell.KeyEscape, tcell.ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, consumed := decodeKeys([]byte(tt.in))
			if consumed != len(tt.in) {
				t.Fatalf("Expected %d bytes consumed, got %d", len(tt.in), consumed)
			}
			if len(events) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(events))
			}
			if events[0].Key() != tt.key {
				t.Errorf("Expected key %v, got %v", tt.key, events[0].Key())
			}
			if events[0].Modifiers() != tt.mod {
				t.Errorf("Expected modifiers %v, got %v", tt.mod, events[0].Modifiers())
			}
		})
	}
}

func TestDecodeKeysAltRune(t *testing.T) {
	events, _ := decodeKeys([]byte("\x1bx"))
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Rune() != 'x' || events[0].Modifiers()&tcell.ModAlt == 0 {
		t.Errorf("Expected Alt+x, got rune %q mod %v", events[0].Rune(), events[0].Modifiers())
	}
}

func TestDecodeKeysIncomplete(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		consumed int
		events   int
	}{
		{"Lone escape waits", []byte{0x1b}, 0, 0},
		{"Partial CSI waits", []byte("a\x1b[1;5"), 1, 1},
		{"Partial UTF-8 waits", []byte{'q', 0xc3}, 1, 1},
		{"Unknown CSI swallowed", []byte("\x1b[99zq"), 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, consumed := decodeKeys(tt.in)
			if consumed != tt.consumed {
				t.Errorf("Expected %d consumed, got %d", tt.consumed, consumed)
			}
			if len(events) != tt.events {
				t.Errorf("Expected %d events, got %d", tt.events, len(events))
			}
		})
	}
}

func TestDecodeKeysUTF8(t *testing.T) {
	events, consumed := decodeKeys([]byte("é"))
	if consumed != 2 || len(events) != 1 {
		t.Fatalf("Expected 1 event from 2 bytes, got %d from %d", len(events), consumed)
	}
	if events[0].Rune() != 'é' {
		t.Errorf("Expected 'é', got %q", events[0].Rune())
	}
}

func TestDecodeKeysControl(t *testing.T) {
	events, _ := decodeKeys([]byte{0x03})
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if !IsCtrl(events[0], 'c') {
		t.Errorf("Expected Ctrl+C, got key %v rune %q mod %v", events[0].Key(), events[0].Rune(), events[0].Modifiers())
	}
	if IsCtrl(events[0], 'q') {
		t.Error("Expected Ctrl+C not to match Ctrl+Q")
	}
}

// scriptedBackend replays reads then reports EOF
type scriptedBackend struct {
	reads [][]byte
}

func (b *scriptedBackend) Init() error                                  { return nil }
func (b *scriptedBackend) Fini()                                        {}
func (b *scriptedBackend) Size() (int, int)                             { return 80, 24 }
func (b *scriptedBackend) Output() io.Writer                            { return io.Discard }
func (b *scriptedBackend) SetResizeHandler(handler func(cols, rows int)) {}

func (b *scriptedBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if len(b.reads) == 0 {
		return nil, io.EOF
	}
	next := b.reads[0]
	b.reads = b.reads[1:]
	if next == nil {
		// Simulated poll timeout
		time.Sleep(escapeTimeout)
	}
	return next, nil
}

func TestInputReaderRun(t *testing.T) {
	backend := &scriptedBackend{reads: [][]byte{
		[]byte("w"),
		[]byte("\x1b["), // split sequence
		[]byte("A"),
		{0x1b},
		nil, // timeout releases lone ESC
	}}
	reader := NewInputReader(backend)

	if err := reader.Run(context.Background()); err != nil {
		t.Fatalf("Expected clean stop on EOF, got %v", err)
	}

	var keys []tcell.Key
	for ev := range reader.Events() {
		keys = append(keys, ev.Key())
	}

	want := []tcell.Key{tcell.KeyRune, tcell.KeyUp, tcell.KeyEscape}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(keys), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Expected key %v at %d, got %v", want[i], i, keys[i])
		}
	}
}
