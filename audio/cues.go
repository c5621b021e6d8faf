package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// stepInterval throttles footstep blips while the camera keeps moving
const stepInterval = 180 * time.Millisecond

// Cues plays short feedback sounds through the system speaker
// Every method is a no-op when audio is disabled or not initialized
type Cues struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	lastStep    time.Time

	// play hands a streamer to the output, replaced in tests
	play func(beep.Streamer)
}

// NewCues creates an uninitialized cue player
func NewCues(cfg Config) *Cues {
	c := &Cues{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
	c.play = func(s beep.Streamer) {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
	return c
}

// Initialize opens the speaker, a no-op when disabled or already initialized
func (c *Cues) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(c.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences every playing cue and closes the speaker
func (c *Cues) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Enabled reports whether cues will be heard
func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized && c.cfg.Enabled
}

// PlayStep plays a footstep unless one played within stepInterval
func (c *Cues) PlayStep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	now := time.Now()
	if now.Sub(c.lastStep) < stepInterval {
		return
	}
	c.lastStep = now
	c.play(StepSound(c.cfg))
}

// PlaySceneSwitch plays the scene change chime
func (c *Cues) PlaySceneSwitch() {
	c.playCue(CueSceneSwitch)
}

// PlayCapture plays the snapshot shutter
func (c *Cues) PlayCapture() {
	c.playCue(CueCapture)
}

func (c *Cues) playCue(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	if s := CueSound(cue, c.cfg); s != nil {
		c.play(s)
	}
}
