// Package config resolves runtime settings from defaults, ASCII3D_* environment variables
// and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ascii3d/logging"
	"github.com/lixenwraith/ascii3d/scene"
)

// EnvPrefix starts every environment variable name
const EnvPrefix = "ASCII3D_"

// ErrInvalid is wrapped by every parse and validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds runtime settings
type Config struct {
	FPS         int
	MoveSpeed   float32
	Sensitivity float32

	AudioEnabled bool
	MasterVolume float64 // 0.0-1.0

	LogLevel string
	LogFile  string

	AssetsDir  string
	CaptureDir string
	Watch      bool

	Background color.RGBA
	FlipY      bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		FPS:          60,
		MoveSpeed:    scene.DefaultMoveSpeed,
		Sensitivity:  scene.DefaultSensitivity,
		AudioEnabled: false,
		MasterVolume: 0.5,
		LogLevel:     "info",
		AssetsDir:    "assets",
		CaptureDir:   "captures",
		Background:   scene.DefaultBackground,
	}
}

// LoadFromEnv overlays ASCII3D_* variables read through getenv onto the defaults
// Unset or empty variables keep the default; malformed values are collected into one error
func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var errs []error

	lookup := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}
	fail := func(name, v string, err error) {
		errs = append(errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, name, v, err))
	}

	if v, ok := lookup("FPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("FPS", v, err)
		} else {
			cfg.FPS = n
		}
	}
	if v, ok := lookup("MOVE_SPEED"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			fail("MOVE_SPEED", v, err)
		} else {
			cfg.MoveSpeed = float32(f)
		}
	}
	if v, ok := lookup("MOUSE_SENSITIVITY"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			fail("MOUSE_SENSITIVITY", v, err)
		} else {
			cfg.Sensitivity = float32(f)
		}
	}
	if v, ok := lookup("AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("AUDIO_ENABLED", v, err)
		} else {
			cfg.AudioEnabled = b
		}
	}
	// Master volume is 0-100 as in the other audio settings
	if v, ok := lookup("MASTER_VOLUME"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail("MASTER_VOLUME", v, err)
		} else {
			cfg.MasterVolume = min(max(float64(n)/100, 0), 1)
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("ASSETS_DIR"); ok {
		cfg.AssetsDir = v
	}
	if v, ok := lookup("CAPTURE_DIR"); ok {
		cfg.CaptureDir = v
	}
	if v, ok := lookup("BACKGROUND"); ok {
		c, err := ParseColor(v)
		if err != nil {
			fail("BACKGROUND", v, err)
		} else {
			cfg.Background = c
		}
	}
	if v, ok := lookup("FLIP_Y"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			fail("FLIP_Y", v, err)
		} else {
			cfg.FlipY = b
		}
	}

	return cfg, errors.Join(errs...)
}

// ParseColor reads a #rrggbb hex color
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// FormatColor writes c as #rrggbb
func FormatColor(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Validate reports the first out of range setting
func (c Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d outside [1,240]", ErrInvalid, c.FPS)
	case c.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed %v must be positive", ErrInvalid, c.MoveSpeed)
	case c.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity %v must be positive", ErrInvalid, c.Sensitivity)
	case c.MasterVolume < 0 || c.MasterVolume > 1:
		return fmt.Errorf("%w: master volume %v outside [0,1]", ErrInvalid, c.MasterVolume)
	case c.CaptureDir == "":
		return fmt.Errorf("%w: capture dir is empty", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// LogAttrs lists the settings for the startup log record
func (c Config) LogAttrs() []any {
	return []any{
		"fps", c.FPS,
		"move_speed", c.MoveSpeed,
		"sensitivity", c.Sensitivity,
		"audio", c.AudioEnabled,
		"volume", c.MasterVolume,
		"assets", c.AssetsDir,
		"captures", c.CaptureDir,
		"watch", c.Watch,
		"background", FormatColor(c.Background),
		"flip_y", c.FlipY,
	}
}
