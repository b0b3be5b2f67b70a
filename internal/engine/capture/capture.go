// Package capture saves rendered frames as PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
)

const timestampLayout = "2006-01-02_15-04-05.000"

// Capturer writes frames to timestamped files in one directory.
type Capturer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New returns a capturer writing <dir>/<prefix>_<timestamp>.png files.
// An empty dir writes into the working directory.
func New(dir, prefix string) *Capturer {
	return &Capturer{dir: dir, prefix: prefix, now: time.Now}
}

// Capture reads the current framebuffer from dev and saves it.
func (c *Capturer) Capture(dev gpu.Device, width, height int) (string, error) {
	return c.CaptureFromPixels(dev.ReadPixels(width, height), width, height)
}

// CaptureFromPixels saves tightly packed RGBA pixels read from the GPU.
// GPU rows run bottom-up, so they are flipped on the way into the image.
func (c *Capturer) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if want := width * height * 4; len(pixels) != want {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", want, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*row:][:row]
		copy(img.Pix[y*img.Stride:], src)
	}
	return c.save(img)
}

func (c *Capturer) save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating capture dir: %w", err)
		}
	}
	path := c.filename()

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

func (c *Capturer) filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format(timestampLayout))
	return filepath.Join(c.dir, name)
}
