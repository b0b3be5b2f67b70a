package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu/gputest"
	"github.com/Faultbox/pendulum-gl/internal/engine/renderer"
	"github.com/Faultbox/pendulum-gl/internal/engine/shader"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
	pmath "github.com/Faultbox/pendulum-gl/pkg/math"
)

var testConfig = Config{BobRadius: 0.3, PivotRadius: 0.8, SphereBands: 12, LineWidth: 10}

func newScene(t *testing.T) (*Scene, *gputest.Device, *renderer.Resources) {
	t.Helper()
	s, err := New(testConfig, pendulum.DefaultParams(), pendulum.NewState())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dev := gputest.New()
	res, err := renderer.NewResources(dev, s.Meshes(), s.Params().Sim.Length)
	if err != nil {
		t.Fatalf("NewResources: %v", err)
	}
	return s, dev, res
}

func TestNewRejectsBadBands(t *testing.T) {
	cfg := testConfig
	cfg.SphereBands = 0
	if _, err := New(cfg, pendulum.DefaultParams(), pendulum.NewState()); err == nil {
		t.Error("expected error for zero bands")
	}
}

func TestFrameStepsOnce(t *testing.T) {
	s, dev, res := newScene(t)

	want := pendulum.NewState()
	pendulum.Step(&want, s.Params().Sim, pendulum.Timestep)

	s.Frame(dev, res)
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if s.Frames() != 1 {
		t.Errorf("frames = %d, want 1", s.Frames())
	}
	if dev.Count("DrawLines") != 1 || dev.Count("DrawTriangles") != 2 {
		t.Errorf("unexpected draw calls: %v", dev.Ops())
	}
}

func TestLengthChangeReachesNextFrame(t *testing.T) {
	s, dev, res := newScene(t)
	s.Frame(dev, res)

	if err := s.Params().SetLength(8); err != nil {
		t.Fatal(err)
	}
	s.Frame(dev, res)

	want := []float32{0, 8, 0, 0, 0, 0}
	if diff := cmp.Diff(want, dev.BufferData(res.Line.ID)); diff != "" {
		t.Errorf("rod mismatch (-want +got):\n%s", diff)
	}
}

func TestSetViewport(t *testing.T) {
	s, dev, res := newScene(t)
	s.SetViewport(1600, 800)
	s.Frame(dev, res)

	got, ok := dev.UniformValue(shader.UniformProjection).(pmath.Mat4)
	if !ok {
		t.Fatal("projection not uploaded")
	}
	// Perspective x scale is f/aspect, y scale is f.
	if ratio := got[5] / got[0]; math.Abs(float64(ratio)-2) > 1e-5 {
		t.Errorf("projection aspect = %v, want 2", ratio)
	}

	s.SetViewport(0, 0)
	s.Frame(dev, res)
	got = dev.UniformValue(shader.UniformProjection).(pmath.Mat4)
	if ratio := got[5] / got[0]; math.Abs(float64(ratio)-1) > 1e-5 {
		t.Errorf("degenerate viewport aspect = %v, want 1", ratio)
	}
}
