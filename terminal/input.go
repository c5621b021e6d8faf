// @lixen: #focus{sys[term,io,input]}
package terminal

import (
	"context"
	"errors"
	"io"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// InputReader decodes raw stdin bytes from a Backend into tcell key events
type InputReader struct {
	backend Backend
	eventCh chan *tcell.EventKey

	// Persistent buffer for stream assembly, partial sequences wait here for the next read
	buf     []byte
	escSeen time.Time
}

// NewInputReader creates a reader bound to the backend
func NewInputReader(backend Backend) *InputReader {
	return &InputReader{
		backend: backend,
		eventCh: make(chan *tcell.EventKey, 256),
		buf:     make([]byte, 0, 256),
	}
}

// Events returns the key event channel, closed when Run returns
func (r *InputReader) Events() <-chan *tcell.EventKey {
	return r.eventCh
}

// Run reads until the context is cancelled or input ends
// EOF is a clean stop, other read errors are returned
func (r *InputReader) Run(ctx context.Context) error {
	defer close(r.eventCh)

	stopCh := ctx.Done()
	for {
		data, err := r.backend.Read(stopCh)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if len(data) == 0 {
			// Poll timeout or stop
			if ctx.Err() != nil {
				return nil
			}
			r.flushPendingEscape(time.Now())
			continue
		}

		r.buf = append(r.buf, data...)
		if len(r.buf) == 1 && r.buf[0] == 0x1b {
			r.escSeen = time.Now()
		}

		events, consumed := decodeKeys(r.buf)
		for _, ev := range events {
			r.sendEvent(ev)
		}
		r.buf = r.buf[:copy(r.buf, r.buf[consumed:])]
	}
}

// flushPendingEscape emits a lone ESC once no sequence followed within escapeTimeout
func (r *InputReader) flushPendingEscape(now time.Time) {
	if len(r.buf) == 1 && r.buf[0] == 0x1b && now.Sub(r.escSeen) >= escapeTimeout {
		r.sendEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
		r.buf = r.buf[:0]
	}
}

// sendEvent sends an event to the channel, non-blocking
func (r *InputReader) sendEvent(ev *tcell.EventKey) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}

// decodeKeys parses as many complete keys as possible and returns bytes consumed
// Incomplete escape or UTF-8 sequences at the tail are left unconsumed
func decodeKeys(data []byte) ([]*tcell.EventKey, int) {
	var events []*tcell.EventKey
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b == 0x1b:
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return events, i
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return events, i
			}
			if ev != nil {
				events = append(events, ev)
			}
			i += consumed

		case b < 0x20 || b == 0x7f:
			// tcell maps control bytes to KeyCtrl* and DEL to KeyBackspace2
			events = append(events, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone))
			i++

		case b < 0x80:
			events = append(events, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone))
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return events, i
			}
			rn, size := utf8.DecodeRune(data[i:])
			if rn != utf8.RuneError {
				events = append(events, tcell.NewEventKey(tcell.KeyRune, rn, tcell.ModNone))
			}
			i += size
		}
	}
	return events, i
}

// parseEscape parses a sequence starting with ESC, returns 0 on incomplete
// A nil event with nonzero length is a swallowed unknown sequence
func parseEscape(data []byte) (int, *tcell.EventKey) {
	if len(data) < 2 {
		return 0, nil
	}

	switch b := data[1]; {
	case b == 0x1b:
		return 2, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModAlt)
	case b == '[':
		return parseCSI(data)
	case b == 'O':
		return parseSS3(data)
	case b < 0x20 || b == 0x7f:
		ev := tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone)
		return 2, tcell.NewEventKey(ev.Key(), ev.Rune(), ev.Modifiers()|tcell.ModAlt)
	case b < 0x80:
		return 2, tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModAlt)
	}

	// ESC followed by non-ASCII is reported as a lone ESC
	return 1, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
}

var csiFinalKeys = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
	'Z': tcell.KeyBacktab,
}

var csiTildeKeys = map[int]tcell.Key{
	1: tcell.KeyHome,
	2: tcell.KeyInsert,
	3: tcell.KeyDelete,
	4: tcell.KeyEnd,
	5: tcell.KeyPgUp,
	6: tcell.KeyPgDn,
}

// parseCSI parses ESC [ params final
func parseCSI(data []byte) (int, *tcell.EventKey) {
	const maxScan = 16

	end := 2
	for ; end < len(data) && end < maxScan; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x7e {
			// Not a CSI body, treat ESC [ as Alt+[
			return 2, tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModAlt)
		}
	}
	if end >= len(data) {
		return 0, nil
	}
	if end >= maxScan {
		// Overlong, discard what was scanned
		return end, nil
	}

	final := data[end]
	params := parseParams(data[2:end])
	mod := tcell.ModNone
	if len(params) > 1 {
		mod = xtermModifiers(params[1])
	}

	if final == '~' {
		if len(params) > 0 {
			if key, ok := csiTildeKeys[params[0]]; ok {
				return end + 1, tcell.NewEventKey(key, 0, mod)
			}
		}
		return end + 1, nil
	}
	if key, ok := csiFinalKeys[final]; ok {
		if key == tcell.KeyBacktab {
			mod |= tcell.ModShift
		}
		return end + 1, tcell.NewEventKey(key, 0, mod)
	}
	return end + 1, nil
}

// parseSS3 parses ESC O final, returns length even for unknown finals
func parseSS3(data []byte) (int, *tcell.EventKey) {
	if len(data) < 3 {
		return 0, nil
	}
	if key, ok := csiFinalKeys[data[2]]; ok {
		return 3, tcell.NewEventKey(key, 0, tcell.ModNone)
	}
	return 3, nil
}

// parseParams splits "1;5" into integers, empty fields read as 0
func parseParams(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	params := []int{0}
	for _, b := range data {
		switch {
		case b == ';':
			params = append(params, 0)
		case b >= '0' && b <= '9':
			last := len(params) - 1
			if params[last] < 10000 {
				params[last] = params[last]*10 + int(b-'0')
			}
		}
	}
	return params
}

// xtermModifiers decodes the xterm modifier parameter (1 + bitmask)
func xtermModifiers(p int) tcell.ModMask {
	if p < 2 {
		return tcell.ModNone
	}
	bits := p - 1
	mod := tcell.ModNone
	if bits&1 != 0 {
		mod |= tcell.ModShift
	}
	if bits&2 != 0 {
		mod |= tcell.ModAlt
	}
	if bits&4 != 0 {
		mod |= tcell.ModCtrl
	}
	if bits&8 != 0 {
		mod |= tcell.ModMeta
	}
	return mod
}

// IsCtrl reports whether ev is Ctrl plus the given lowercase letter
// Both the legacy KeyCtrl* codes and KeyRune with ModCtrl are accepted
func IsCtrl(ev *tcell.EventKey, letter rune) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}
	if ev.Key() == tcell.Key(letter-'a'+1) {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == letter || ev.Rune() == letter-'a'+'A')
}
