// @lixen: #focus{sys[input,controls]}
package engine

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ascii3d/terminal"
)

// Terminals report key repeats, never key releases, so a key counts as held until its
// window lapses. The first press covers the typical auto-repeat delay; every repeat extends
// the hold by a shorter window
const (
	InitialHold = 550 * time.Millisecond
	RepeatHold  = 120 * time.Millisecond
)

// Action is an edge-triggered command produced by a key press
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionPrevScene
	ActionNextScene
	ActionCapture
	ActionToggleHUD
)

// heldKey identifies a continuous control
type heldKey int

const (
	keyForward heldKey = iota
	keyBack
	keyLeft
	keyRight
	keyUp
	keyDown
	keyLookUp
	keyLookDown
	keyLookLeft
	keyLookRight
	heldKeyCount
)

// opposite keys release each other, a terminal cannot report both at once
var opposite = [heldKeyCount]heldKey{
	keyForward:   keyBack,
	keyBack:      keyForward,
	keyLeft:      keyRight,
	keyRight:     keyLeft,
	keyUp:        keyDown,
	keyDown:      keyUp,
	keyLookUp:    keyLookDown,
	keyLookDown:  keyLookUp,
	keyLookLeft:  keyLookRight,
	keyLookRight: keyLookLeft,
}

var runeHeld = map[rune]heldKey{
	'w': keyForward,
	's': keyBack,
	'a': keyLeft,
	'd': keyRight,
	' ': keyUp,
	'x': keyDown,
	'i': keyLookUp,
	'k': keyLookDown,
	'j': keyLookLeft,
	'l': keyLookRight,
}

var specialHeld = map[tcell.Key]heldKey{
	tcell.KeyUp:    keyLookUp,
	tcell.KeyDown:  keyLookDown,
	tcell.KeyLeft:  keyLookLeft,
	tcell.KeyRight: keyLookRight,
}

var runeAction = map[rune]Action{
	'p': ActionPause,
	'q': ActionPrevScene,
	'e': ActionNextScene,
	'c': ActionCapture,
	'h': ActionToggleHUD,
}

// Controls turns key events into held movement state and one-shot actions
// Owned by the frame loop goroutine
type Controls struct {
	until [heldKeyCount]time.Time
}

// NewControls creates controls with nothing held
func NewControls() *Controls {
	return &Controls{}
}

// Handle records ev at now and returns the action it triggers, if any
func (c *Controls) Handle(ev *tcell.EventKey, now time.Time) Action {
	if terminal.IsCtrl(ev, 'c') {
		return ActionQuit
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return ActionPause
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if a, ok := runeAction[r]; ok {
			return a
		}
		if k, ok := runeHeld[r]; ok {
			c.press(k, now)
		}
	default:
		if k, ok := specialHeld[ev.Key()]; ok {
			c.press(k, now)
		}
	}
	return ActionNone
}

func (c *Controls) press(k heldKey, now time.Time) {
	if c.until[k].After(now) {
		c.until[k] = now.Add(RepeatHold)
	} else {
		c.until[k] = now.Add(InitialHold)
	}
	c.until[opposite[k]] = time.Time{}
}

// Release drops every held key, used when pausing
func (c *Controls) Release() {
	c.until = [heldKeyCount]time.Time{}
}

func (c *Controls) held(k heldKey, now time.Time) bool {
	return c.until[k].After(now)
}

func (c *Controls) axis(neg, pos heldKey, now time.Time) int8 {
	switch {
	case c.held(pos, now):
		return 1
	case c.held(neg, now):
		return -1
	}
	return 0
}

// State returns movement (strafe right+, up+, forward+) and look (yaw right+, pitch up+) at now
func (c *Controls) State(now time.Time) (move [3]int8, look [2]int8) {
	move[0] = c.axis(keyLeft, keyRight, now)
	move[1] = c.axis(keyDown, keyUp, now)
	move[2] = c.axis(keyBack, keyForward, now)
	look[0] = c.axis(keyLookLeft, keyLookRight, now)
	look[1] = c.axis(keyLookDown, keyLookUp, now)
	return move, look
}
