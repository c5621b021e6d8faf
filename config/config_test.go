package config

import (
	"errors"
	"image/color"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config valid, got %v", err)
	}
	if cfg.FPS != 60 {
		t.Errorf("Expected 60 fps, got %d", cfg.FPS)
	}
	if cfg.Background != (color.RGBA{105, 109, 219, 255}) {
		t.Errorf("Expected default background, got %v", cfg.Background)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := LoadFromEnv(envMap(map[string]string{
		"ASCII3D_FPS":               "30",
		"ASCII3D_MOVE_SPEED":        "0.1",
		"ASCII3D_MOUSE_SENSITIVITY": "0.02",
		"ASCII3D_AUDIO_ENABLED":     "true",
		"ASCII3D_MASTER_VOLUME":     "150",
		"ASCII3D_LOG_LEVEL":         "debug",
		"ASCII3D_CAPTURE_DIR":       "/tmp/shots",
		"ASCII3D_BACKGROUND":        "#102030",
		"ASCII3D_FLIP_Y":            "1",
	}))
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.FPS != 30 {
		t.Errorf("Expected fps 30, got %d", cfg.FPS)
	}
	if cfg.MoveSpeed != 0.1 || cfg.Sensitivity != 0.02 {
		t.Errorf("Expected speed 0.1 sensitivity 0.02, got %v %v", cfg.MoveSpeed, cfg.Sensitivity)
	}
	if !cfg.AudioEnabled {
		t.Errorf("Expected audio enabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", cfg.MasterVolume)
	}
	if cfg.LogLevel != "debug" || cfg.CaptureDir != "/tmp/shots" {
		t.Errorf("Expected string overrides, got %q %q", cfg.LogLevel, cfg.CaptureDir)
	}
	if cfg.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("Expected background #102030, got %v", cfg.Background)
	}
	if !cfg.FlipY {
		t.Errorf("Expected flip y")
	}
}

func TestLoadFromEnvEmptyKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFromEnvErrors(t *testing.T) {
	cfg, err := LoadFromEnv(envMap(map[string]string{
		"ASCII3D_FPS":        "fast",
		"ASCII3D_BACKGROUND": "not-a-color",
		"ASCII3D_LOG_LEVEL":  "warn",
	}))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
	// Good values still apply
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log level applied despite errors, got %q", cfg.LogLevel)
	}
	if cfg.FPS != 60 {
		t.Errorf("Expected default fps kept, got %d", cfg.FPS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"huge fps", func(c *Config) { c.FPS = 1000 }},
		{"negative speed", func(c *Config) { c.MoveSpeed = -1 }},
		{"zero sensitivity", func(c *Config) { c.Sensitivity = 0 }},
		{"loud", func(c *Config) { c.MasterVolume = 2 }},
		{"no capture dir", func(c *Config) { c.CaptureDir = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	c := color.RGBA{105, 109, 219, 255}
	s := FormatColor(c)
	if s != "#696ddb" {
		t.Errorf("Expected #696ddb, got %s", s)
	}
	got, err := ParseColor("696ddb")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}
