package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue timings
const (
	stepDuration    = 40 * time.Millisecond
	stepAttack      = 5 * time.Millisecond
	stepRelease     = 25 * time.Millisecond
	chimeNote       = 90 * time.Millisecond
	chimeAttack     = 5 * time.Millisecond
	chimeRelease    = 60 * time.Millisecond
	shutterDuration = 120 * time.Millisecond
	shutterAttack   = 2 * time.Millisecond
	shutterRelease  = 100 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed length oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// StepSound is a short soft sine blip
func StepSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// SineTone rejects frequencies above Nyquist, the oscillator has no such limit
	var src beep.Streamer
	if tone, err := generators.SineTone(rate, 330); err == nil {
		src = beep.Take(rate.N(stepDuration), tone)
	} else {
		src = NewOscillator(330, stepDuration, WaveSine, rate)
	}

	shaped := NewEnvelope(src, stepDuration, stepAttack, stepRelease, rate)
	return newVolume(shaped, cfg.volume(CueStep))
}

// SceneSwitchSound is a rising two-note square chime
func SceneSwitchSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// C5 then G5
	n1 := NewEnvelope(NewOscillator(523.25, chimeNote, WaveSquare, rate), chimeNote, chimeAttack, chimeRelease, rate)
	n2 := NewEnvelope(NewOscillator(783.99, chimeNote, WaveSquare, rate), chimeNote, chimeAttack, chimeRelease, rate)

	return newVolume(beep.Seq(n1, n2), cfg.volume(CueSceneSwitch)*0.5)
}

// CaptureSound is a shutter-like noise burst
func CaptureSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, shutterDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, shutterDuration, shutterAttack, shutterRelease, rate)
	return newVolume(shaped, cfg.volume(CueCapture))
}

// CueSound returns the streamer for cue, nil when unknown
func CueSound(cue Cue, cfg Config) beep.Streamer {
	switch cue {
	case CueStep:
		return StepSound(cfg)
	case CueSceneSwitch:
		return SceneSwitchSound(cfg)
	case CueCapture:
		return CaptureSound(cfg)
	}
	return nil
}
