package geometry

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		bands  int
		radius float32
	}{
		{1, 1},
		{2, 0.5},
		{8, 2},
		{30, 0.3},
		{30, 0.8},
		{MaxBands, 1},
	}

	for _, tt := range tests {
		m, err := Sphere(tt.radius, tt.bands, tt.bands)
		if err != nil {
			t.Fatalf("Sphere(%v, %d): %v", tt.radius, tt.bands, err)
		}

		wantVerts := (tt.bands + 1) * (tt.bands + 1)
		if m.VertexCount() != wantVerts {
			t.Errorf("bands %d: vertices = %d, want %d", tt.bands, m.VertexCount(), wantVerts)
		}
		if len(m.Normals) != len(m.Positions) {
			t.Errorf("bands %d: %d normals for %d positions", tt.bands, len(m.Normals), len(m.Positions))
		}
		if want := 6 * tt.bands * tt.bands; len(m.Indices) != want {
			t.Errorf("bands %d: indices = %d, want %d", tt.bands, len(m.Indices), want)
		}
		for i, idx := range m.Indices {
			if int(idx) >= wantVerts {
				t.Fatalf("bands %d: index[%d] = %d out of range", tt.bands, i, idx)
			}
		}
	}
}

func TestSphereNormalsAreUnit(t *testing.T) {
	m, err := Sphere(0.8, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range m.Normals {
		if l := n.Length(); gomath.Abs(float64(l)-1) > 1e-5 {
			t.Fatalf("normal %d length = %v, want 1", i, l)
		}
	}
}

func TestSpherePositionsOnRadius(t *testing.T) {
	const r = 0.3
	m, err := Sphere(r, 12, 12)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range m.Positions {
		if l := p.Length(); gomath.Abs(float64(l)-r) > 1e-5 {
			t.Fatalf("position %d radius = %v, want %v", i, l, r)
		}
		want := m.Normals[i].Scale(r)
		if p != want {
			t.Fatalf("position %d = %v, want normal*r = %v", i, p, want)
		}
	}
}

func TestSphereLayout(t *testing.T) {
	m, err := Sphere(1, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	// First row is the north pole.
	if m.Positions[0].Y != 1 {
		t.Errorf("vertex 0 = %v, want north pole", m.Positions[0])
	}
	// Seam: φ=0 and φ=2π columns duplicate the same point.
	first, last := m.Positions[5], m.Positions[9]
	if first.Sub(last).Length() > 1e-6 {
		t.Errorf("seam vertices differ: %v vs %v", first, last)
	}

	// First quad: first=0, second=5.
	want := []uint16{0, 5, 1, 5, 6, 1}
	for i, w := range want {
		if m.Indices[i] != w {
			t.Errorf("index[%d] = %d, want %d", i, m.Indices[i], w)
		}
	}
}

func TestSphereRejectsBadBands(t *testing.T) {
	for _, bands := range []int{0, -3, MaxBands + 1} {
		if _, err := Sphere(1, bands, bands); err == nil {
			t.Errorf("Sphere bands %d: expected error", bands)
		}
	}
}

func TestLine(t *testing.T) {
	m := Line(5)

	if m.VertexCount() != 2 {
		t.Fatalf("vertices = %d, want 2", m.VertexCount())
	}
	if len(m.Indices) != 0 || len(m.Normals) != 0 {
		t.Errorf("line should have no indices or normals")
	}
	if m.Positions[0] != (math.Vec3{}) {
		t.Errorf("start = %v, want origin", m.Positions[0])
	}
	if m.Positions[1] != (math.Vec3{Y: -5}) {
		t.Errorf("end = %v, want (0,-5,0)", m.Positions[1])
	}

	want := []float32{0, 0, 0, 0, -5, 0}
	got := m.PositionData()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PositionData() = %v, want %v", got, want)
		}
	}
}
