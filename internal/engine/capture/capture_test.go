package capture

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu/gputest"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, "pendulum")
	c.now = fixedClock

	// Two rows, bottom row first as the GPU returns them.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255, // bottom: red
		0, 0, 255, 255, 0, 0, 255, 255, // top: blue
	}
	path, err := c.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	want := filepath.Join(dir, "pendulum_2024-03-01_12-30-45.123.png")
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	bottom := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if top != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	c := New(t.TempDir(), "pendulum")
	if _, err := c.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
	if _, err := c.CaptureFromPixels(nil, 0, 0); err == nil {
		t.Error("expected error for empty size")
	}
}

func TestCaptureCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	c := New(dir, "frame")

	path, err := c.Capture(gputest.New(), 4, 3)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("capture written to %s, want inside %s", path, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("capture file missing: %v", err)
	}
}
