package audio

// Cue identifies a sound effect
type Cue int

const (
	CueStep        Cue = iota // Camera moved
	CueSceneSwitch            // Active scene changed
	CueCapture                // Snapshot written
	cueCount
)

// String returns the cue name used in logs
func (c Cue) String() string {
	switch c {
	case CueStep:
		return "step"
	case CueSceneSwitch:
		return "scene_switch"
	case CueCapture:
		return "capture"
	}
	return "unknown"
}

// Config holds audio settings
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes [cueCount]float64
}

// DefaultConfig returns audio enabled at half volume, 48 kHz
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   48000,
		EffectVolumes: [cueCount]float64{
			CueStep:        0.3,
			CueSceneSwitch: 0.8,
			CueCapture:     0.6,
		},
	}
}

// volume returns the effective gain for cue, clamped to [0,1]
func (c Config) volume(cue Cue) float64 {
	v := c.MasterVolume * c.EffectVolumes[cue]
	return min(max(v, 0), 1)
}
