package math

import (
	"testing"
)

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 0}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Vec3{}.Normalize() = %v, want zero", zero)
	}
}

func TestReflect(t *testing.T) {
	// Light coming straight down the -Z axis bounces back along +Z.
	got := Reflect(Vec3{0, 0, -1}, Vec3{0, 0, 1})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Reflect() = %v, want %v", got, want)
	}
}

func TestMix(t *testing.T) {
	got := Mix(Vec3{1, 0, 0}, Vec3{0, 0, 1}, 0.5)
	want := Vec3{0.5, 0, 0.5}
	if got != want {
		t.Errorf("Mix() = %v, want %v", got, want)
	}
}

func TestVec3Mul(t *testing.T) {
	got := Vec3{1, 2, 3}.Mul(Vec3{2, 0.5, 0})
	want := Vec3{2, 1, 0}
	if got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
}
