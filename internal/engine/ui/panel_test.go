package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/pendulum-gl/internal/controls"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu/gputest"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

func newPanel(t *testing.T) (*Panel, *pendulum.Params) {
	t.Helper()
	params := pendulum.DefaultParams()
	p := NewPanel(params, 800, 600)
	if events := p.Build(); len(events) != 0 {
		t.Fatalf("first frame produced events: %+v", events)
	}
	return p, params
}

// click puts the mouse over a widget laid out by the previous frame and
// builds the next one.
func click(t *testing.T, p *Panel, id string) []controls.Event {
	t.Helper()
	r, ok := p.Context().WidgetRect(WidgetID(id))
	if !ok {
		t.Fatalf("widget %q was not laid out", id)
	}
	in := p.Input()
	in.MouseX, in.MouseY = r.Center()
	in.MouseLeftClicked = true
	return p.Build()
}

func TestStepButtons(t *testing.T) {
	p, params := newPanel(t)

	for _, adj := range controls.Adjustments {
		before, _ := controls.Value(params, adj.Setting)

		want, _ := controls.EventForKey(adj.Increase, params)
		got := click(t, p, IncreaseID(adj.Setting))
		if diff := cmp.Diff([]controls.Event{want}, got); diff != "" {
			t.Errorf("%s +: events mismatch (-want +got):\n%s", adj.Setting, diff)
		}
		p.Apply(got)
		if v, _ := controls.Value(params, adj.Setting); !(v > before) {
			t.Errorf("%s +: value %v, want above %v", adj.Setting, v, before)
		}

		p.Apply(click(t, p, DecreaseID(adj.Setting)))
		p.Apply(click(t, p, DecreaseID(adj.Setting)))
		if v, _ := controls.Value(params, adj.Setting); !(v < before) {
			t.Errorf("%s -: value %v, want below %v", adj.Setting, v, before)
		}
	}
}

func TestLengthButtonNotifiesListeners(t *testing.T) {
	p, params := newPanel(t)
	var lengths []float64
	params.OnLengthChange(func(l float64) { lengths = append(lengths, l) })

	p.Apply(click(t, p, IncreaseID(controls.Length)))
	if diff := cmp.Diff([]float64{pendulum.DefaultLength + controls.LengthStep}, lengths); diff != "" {
		t.Errorf("length notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestHexInput(t *testing.T) {
	p, params := newPanel(t)

	if events := click(t, p, HexInputID); len(events) != 0 {
		t.Fatalf("focusing produced events: %+v", events)
	}
	if !p.WantsKeyboard() {
		t.Fatal("color field should have the keyboard")
	}

	in := p.Input()
	in.MouseLeftClicked = false
	in.Backspaces = 7
	in.TextInput = "00ff80"
	in.KeyEnter = true
	events := p.Build()

	want := []controls.Event{{Setting: controls.PendulumColor, Color: "#00FF80"}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	p.Apply(events)
	if got := pendulum.FormatHexColor(params.Render.PendulumColor); got != "#00FF80" {
		t.Errorf("color = %s, want #00FF80", got)
	}
	if p.WantsKeyboard() {
		t.Error("submitting should release the keyboard")
	}
}

func TestHexInputAcceptsAnyColor(t *testing.T) {
	p, params := newPanel(t)
	click(t, p, HexInputID)

	in := p.Input()
	in.Backspaces = 6
	in.TextInput = "123456"
	p.Build()

	p.Apply(click(t, p, SetColorID))
	want, _ := pendulum.ParseHexColor("#123456")
	if params.Render.PendulumColor != want {
		t.Errorf("color = %v, want %v", params.Render.PendulumColor, want)
	}
}

func TestInvalidHexShowsStatus(t *testing.T) {
	p, params := newPanel(t)
	before := params.Render.PendulumColor

	click(t, p, HexInputID)
	in := p.Input()
	in.Backspaces = 7
	in.TextInput = "#zz"
	in.KeyEnter = true
	p.Apply(p.Build())

	if params.Render.PendulumColor != before {
		t.Error("an invalid color must not change the parameters")
	}
	if p.Status() == "" {
		t.Fatal("a rejected color should be reported on the panel")
	}

	// The field falls back to the live color once it loses focus.
	p.Build()
	if p.hex != "#FF0000" {
		t.Errorf("field = %q, want #FF0000", p.hex)
	}

	p.Apply(click(t, p, PresetID(3)))
	if p.Status() != "" {
		t.Errorf("status = %q, want cleared after an accepted change", p.Status())
	}
}

func TestPresetSwatches(t *testing.T) {
	p, params := newPanel(t)
	for i, preset := range controls.ColorPresets {
		events := click(t, p, PresetID(i))
		want := []controls.Event{{Setting: controls.PendulumColor, Color: preset}}
		if diff := cmp.Diff(want, events); diff != "" {
			t.Errorf("preset %d mismatch (-want +got):\n%s", i, diff)
		}
		p.Apply(events)
		if got := pendulum.FormatHexColor(params.Render.PendulumColor); got != preset {
			t.Errorf("preset %d: color = %s, want %s", i, got, preset)
		}
	}
}

func TestValueLabels(t *testing.T) {
	p, params := newPanel(t)
	params.Sim.Damping = 0.985

	tests := []struct {
		setting controls.Setting
		want    string
	}{
		{controls.Length, "LENGTH      5.00"},
		{controls.Gravity, "GRAVITY     9.80"},
		{controls.Damping, "DAMPING    0.985"},
		{controls.LightIntensity, "LIGHT       0.80"},
		{controls.Shininess, "SHINE      32.00"},
	}
	for _, tt := range tests {
		if got := p.valueLabel(tt.setting); got != tt.want {
			t.Errorf("%s: label %q, want %q", tt.setting, got, tt.want)
		}
	}
}

func TestHiddenPanel(t *testing.T) {
	p, _ := newPanel(t)
	click(t, p, HexInputID)

	p.Toggle()
	if p.Visible() || p.WantsKeyboard() {
		t.Error("a hidden panel should not take the keyboard")
	}
	in := p.Input()
	in.MouseLeftClicked = true
	if events := p.Build(); events != nil {
		t.Errorf("hidden panel produced events: %+v", events)
	}
	if n := p.Context().DrawList().Len(); n != 0 {
		t.Errorf("hidden panel drew %d vertices", n)
	}
}

func TestOverlay(t *testing.T) {
	p, params := newPanel(t)
	dev := gputest.New()

	o, err := p.Attach(dev)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}

	r, _ := p.Context().WidgetRect(WidgetID(IncreaseID(controls.Gravity)))
	in := p.Input()
	in.MouseX, in.MouseY = r.Center()
	in.MouseLeftClicked = true
	o.Draw(dev)

	if params.Sim.Gravity != pendulum.DefaultGravity+controls.GravityStep {
		t.Errorf("gravity = %v, want the + button applied", params.Sim.Gravity)
	}
	if dev.Count("DrawTriangleList") != 1 {
		t.Errorf("DrawTriangleList calls = %d, want 1", dev.Count("DrawTriangleList"))
	}

	o.Release(dev)
	if dev.LivePrograms() != 0 || dev.LiveBuffers() != 0 {
		t.Errorf("leaked programs=%d buffers=%d", dev.LivePrograms(), dev.LiveBuffers())
	}
}

func TestAttachFailure(t *testing.T) {
	p, _ := newPanel(t)
	dev := gputest.New()
	dev.FailBufferAfter = 2
	if _, err := p.Attach(dev); err == nil {
		t.Fatal("expected error")
	}
	if dev.LivePrograms() != 0 || dev.LiveBuffers() != 0 {
		t.Errorf("leaked programs=%d buffers=%d", dev.LivePrograms(), dev.LiveBuffers())
	}
}
