package controls

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		check func(*pendulum.Params) bool
	}{
		{"length", Event{Setting: Length, Value: 7}, func(p *pendulum.Params) bool { return p.Sim.Length == 7 }},
		{"gravity", Event{Setting: Gravity, Value: 1.6}, func(p *pendulum.Params) bool { return p.Sim.Gravity == 1.6 }},
		{"damping", Event{Setting: Damping, Value: 0.9}, func(p *pendulum.Params) bool { return p.Sim.Damping == 0.9 }},
		{"light", Event{Setting: LightIntensity, Value: 0.25}, func(p *pendulum.Params) bool { return p.Render.LightIntensity == 0.25 }},
		{"shininess", Event{Setting: Shininess, Value: 64}, func(p *pendulum.Params) bool { return p.Render.Shininess == 64 }},
		{"color", Event{Setting: PendulumColor, Color: "#0000FF"}, func(p *pendulum.Params) bool {
			return p.Render.PendulumColor == [3]float32{0, 0, 1}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pendulum.DefaultParams()
			if err := Apply(p, tt.event); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if !tt.check(p) {
				t.Errorf("parameter not applied: %+v", p)
			}
		})
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []Event{
		{Setting: Length, Value: 0},
		{Setting: Length, Value: -1},
		{Setting: LightIntensity, Value: -0.1},
		{Setting: Shininess, Value: 0},
		{Setting: PendulumColor, Color: "red"},
		{Setting: Gravity, Value: math.NaN()},
		{Setting: Setting(42)},
	}
	for _, ev := range tests {
		t.Run(ev.Setting.String(), func(t *testing.T) {
			p := pendulum.DefaultParams()
			before := *p
			if err := Apply(p, ev); err == nil {
				t.Error("expected error")
			}
			if diff := cmp.Diff(before.Sim, p.Sim); diff != "" {
				t.Errorf("simulation changed (-before +after):\n%s", diff)
			}
			if diff := cmp.Diff(before.Render, p.Render); diff != "" {
				t.Errorf("render changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestApplyLengthNotifies(t *testing.T) {
	p := pendulum.DefaultParams()
	var got []float64
	p.OnLengthChange(func(l float64) { got = append(got, l) })

	if err := Apply(p, Event{Setting: Length, Value: 6}); err != nil {
		t.Fatal(err)
	}
	if err := Apply(p, Event{Setting: Length, Value: -6}); err == nil {
		t.Fatal("expected error")
	}
	if diff := cmp.Diff([]float64{6}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestEventForKey(t *testing.T) {
	p := pendulum.DefaultParams()

	tests := []struct {
		key  Key
		want Event
	}{
		{KeyUp, Event{Setting: Length, Value: 5.5}},
		{KeyDown, Event{Setting: Length, Value: 4.5}},
		{KeyG, Event{Setting: Gravity, Value: 10.3}},
		{KeyB, Event{Setting: Gravity, Value: 9.3}},
		{KeyS, Event{Setting: Shininess, Value: 64}},
		{KeyA, Event{Setting: Shininess, Value: 16}},
		{Key1, Event{Setting: PendulumColor, Color: "#FF0000"}},
		{Key6, Event{Setting: PendulumColor, Color: "#FFFFFF"}},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	for _, tt := range tests {
		got, ok := EventForKey(tt.key, p)
		if !ok {
			t.Errorf("key %d: not bound", tt.key)
			continue
		}
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("key %d mismatch (-want +got):\n%s", tt.key, diff)
		}
	}

	if _, ok := EventForKey(KeyNone, p); ok {
		t.Error("KeyNone should not be bound")
	}
}

func TestDampingKeysClamp(t *testing.T) {
	p := pendulum.DefaultParams()
	for i := 0; i < 10; i++ {
		ev, _ := EventForKey(KeyD, p)
		if err := Apply(p, ev); err != nil {
			t.Fatal(err)
		}
	}
	if p.Sim.Damping != 1 {
		t.Errorf("damping = %v, want clamped to 1", p.Sim.Damping)
	}

	for i := 0; i < 1000; i++ {
		ev, _ := EventForKey(KeyC, p)
		if err := Apply(p, ev); err != nil {
			t.Fatal(err)
		}
	}
	if !(p.Sim.Damping > 0) {
		t.Errorf("damping = %v, want > 0", p.Sim.Damping)
	}
}

func TestLightKeysFloor(t *testing.T) {
	p := pendulum.DefaultParams()
	for i := 0; i < 100; i++ {
		ev, _ := EventForKey(KeyK, p)
		if err := Apply(p, ev); err != nil {
			t.Fatal(err)
		}
	}
	if p.Render.LightIntensity != 0 {
		t.Errorf("light intensity = %v, want 0", p.Render.LightIntensity)
	}
}

func TestLengthKeysStayPositive(t *testing.T) {
	p := pendulum.DefaultParams()
	for i := 0; i < 100; i++ {
		ev, _ := EventForKey(KeyDown, p)
		if err := Apply(p, ev); err != nil {
			t.Fatal(err)
		}
	}
	if p.Sim.Length != LengthStep {
		t.Errorf("length = %v, want %v", p.Sim.Length, LengthStep)
	}
}

func TestAdjustments(t *testing.T) {
	p := pendulum.DefaultParams()
	for _, adj := range Adjustments {
		before, ok := Value(p, adj.Setting)
		if !ok {
			t.Fatalf("%s: no value", adj.Setting)
		}

		up, ok := EventForKey(adj.Increase, p)
		if !ok || up.Setting != adj.Setting || !(up.Value > before) {
			t.Errorf("%s: increase key gives %+v", adj.Setting, up)
		}
		down, ok := EventForKey(adj.Decrease, p)
		if !ok || down.Setting != adj.Setting || !(down.Value < before) {
			t.Errorf("%s: decrease key gives %+v", adj.Setting, down)
		}
	}

	if _, ok := Value(p, PendulumColor); ok {
		t.Error("color has no numeric value")
	}
}
