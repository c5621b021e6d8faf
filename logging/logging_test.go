package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerDiscards(t *testing.T) {
	SetLogger(nil)
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Errorf("Expected default logger to be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(&buf, slog.LevelInfo))
	defer SetLogger(nil)

	L().Info("scene loaded", "objects", 3)
	L().Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "scene loaded") || !strings.Contains(out, "objects=3") {
		t.Errorf("Expected info record, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug record filtered, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
