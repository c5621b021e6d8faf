package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/ascii3d/logging"
)

// Capture writes img as <ulid>.png under dir and returns the path
// ULIDs sort by creation time, so a directory listing is in capture order
func Capture(dir string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("capture dir: %w", err)
	}

	path := filepath.Join(dir, ulid.Make().String()+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("capture encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	logging.L().Info("capture written", "path", path)
	return path, nil
}

// SavePNG writes the current target to path
func (r *Rasterizer) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
