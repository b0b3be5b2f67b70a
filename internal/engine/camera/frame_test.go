package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func assertMat(t *testing.T, name string, got math.Mat4, want mgl32.Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if !near(got[i], want[i], 1e-5) {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestProjectionMatchesMathGL(t *testing.T) {
	for _, aspect := range []float32{1, 16.0 / 9.0, 0.5} {
		got := Projection(aspect)
		want := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
		assertMat(t, "projection", got, want)
	}
}

func TestBuildFrameMatchesMathGL(t *testing.T) {
	tests := []struct {
		angle  float64
		length float64
	}{
		{0, 5},
		{gomath.Pi / 3, 5},
		{-0.4, 2.5},
		{7.5, 9}, // angle past 2π is used as-is
	}

	for _, tt := range tests {
		f := BuildFrame(tt.angle, tt.length, 4.0/3.0)

		bob := mgl32.Translate3D(0, 0, -20).Mul4(mgl32.HomogRotate3DZ(float32(tt.angle)))
		pivot := bob.Mul4(mgl32.Translate3D(0, -float32(tt.length), 0))

		assertMat(t, "bob", f.BobModelView, bob)
		assertMat(t, "pivot", f.PivotModelView, pivot)
		assertMat(t, "projection", f.Projection, mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100))
	}
}

func TestBuildFrameSuspensionGeometry(t *testing.T) {
	const length = 5.0
	angle := gomath.Pi / 6
	f := BuildFrame(angle, length, 1)

	// The bob's local origin sits at the suspension point, 20 units away.
	origin := f.BobModelView.TransformPoint(math.Vec3{})
	if origin != (math.Vec3{Z: -20}) {
		t.Errorf("bob origin = %v, want (0,0,-20)", origin)
	}

	// The pivot sphere hangs length units down the rotated Y axis.
	p := f.PivotModelView.TransformPoint(math.Vec3{})
	wantX := float32(length * gomath.Sin(angle))
	wantY := float32(-length * gomath.Cos(angle))
	if !near(p.X, wantX, 1e-5) || !near(p.Y, wantY, 1e-5) || !near(p.Z, -20, 1e-5) {
		t.Errorf("pivot center = %v, want (%v, %v, -20)", p, wantX, wantY)
	}

	// Distance between the two sphere centers is the rod length.
	if d := p.Sub(origin).Length(); !near(d, length, 1e-4) {
		t.Errorf("center distance = %v, want %v", d, length)
	}
}

func TestBuildFrameLineEndpoints(t *testing.T) {
	f := BuildFrame(1.2, 7, 1)

	if f.LineStart != (math.Vec3{Y: 7}) {
		t.Errorf("LineStart = %v, want (0,7,0)", f.LineStart)
	}
	if f.LineEnd != (math.Vec3{}) {
		t.Errorf("LineEnd = %v, want origin", f.LineEnd)
	}
}

func TestAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want float32
	}{
		{1280, 720, 1280.0 / 720.0},
		{800, 800, 1},
		{800, 0, 1},
		{0, 600, 1},
	}
	for _, tt := range tests {
		if got := Aspect(tt.w, tt.h); got != tt.want {
			t.Errorf("Aspect(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
