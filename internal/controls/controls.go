// Package controls turns user input into parameter changes.
package controls

import (
	"fmt"
	"math"

	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// Setting names one adjustable parameter.
type Setting int

const (
	Length Setting = iota
	Gravity
	Damping
	LightIntensity
	PendulumColor
	Shininess
)

var settingNames = [...]string{
	Length:         "length",
	Gravity:        "gravity",
	Damping:        "damping",
	LightIntensity: "light_intensity",
	PendulumColor:  "pendulum_color",
	Shininess:      "shininess",
}

func (s Setting) String() string {
	if s < 0 || int(s) >= len(settingNames) {
		return fmt.Sprintf("Setting(%d)", int(s))
	}
	return settingNames[s]
}

// Event is one configuration change. Color is used by PendulumColor only;
// every other setting reads Value.
type Event struct {
	Setting Setting
	Value   float64
	Color   string
}

// Apply dispatches ev to the matching setter. A rejected value leaves p
// unchanged.
func Apply(p *pendulum.Params, ev Event) error {
	var err error
	switch ev.Setting {
	case Length:
		err = p.SetLength(ev.Value)
	case Gravity:
		err = p.SetGravity(ev.Value)
	case Damping:
		err = p.SetDamping(ev.Value)
	case LightIntensity:
		err = p.SetLightIntensity(ev.Value)
	case PendulumColor:
		err = p.SetPendulumColor(ev.Color)
	case Shininess:
		err = p.SetShininess(ev.Value)
	default:
		return fmt.Errorf("unknown setting %v", ev.Setting)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ev.Setting, err)
	}
	return nil
}

// Step sizes for keyboard adjustments.
const (
	LengthStep  = 0.5
	GravityStep = 0.5
	DampingStep = 0.005
	LightStep   = 0.05
)

// ColorPresets are selected with the number keys 1 to 6.
var ColorPresets = [6]string{
	"#FF0000",
	"#FF8000",
	"#FFFF00",
	"#00FF00",
	"#0080FF",
	"#FFFFFF",
}

// Key is a keyboard key with a parameter binding.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyG
	KeyB
	KeyD
	KeyC
	KeyL
	KeyK
	KeyS
	KeyA
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
)

// EventForKey returns the change bound to k, computed relative to the
// current parameters. The second result is false for unbound keys.
func EventForKey(k Key, p *pendulum.Params) (Event, bool) {
	sim, render := p.Sim, p.Render
	switch k {
	case KeyUp:
		return Event{Setting: Length, Value: sim.Length + LengthStep}, true
	case KeyDown:
		return Event{Setting: Length, Value: math.Max(sim.Length-LengthStep, LengthStep)}, true
	case KeyG:
		return Event{Setting: Gravity, Value: sim.Gravity + GravityStep}, true
	case KeyB:
		return Event{Setting: Gravity, Value: sim.Gravity - GravityStep}, true
	case KeyD:
		return Event{Setting: Damping, Value: clampDamping(sim.Damping + DampingStep)}, true
	case KeyC:
		return Event{Setting: Damping, Value: clampDamping(sim.Damping - DampingStep)}, true
	case KeyL:
		return Event{Setting: LightIntensity, Value: float64(render.LightIntensity) + LightStep}, true
	case KeyK:
		return Event{Setting: LightIntensity, Value: math.Max(float64(render.LightIntensity)-LightStep, 0)}, true
	case KeyS:
		return Event{Setting: Shininess, Value: float64(render.Shininess) * 2}, true
	case KeyA:
		return Event{Setting: Shininess, Value: float64(render.Shininess) / 2}, true
	case Key1, Key2, Key3, Key4, Key5, Key6:
		return Event{Setting: PendulumColor, Color: ColorPresets[k-Key1]}, true
	}
	return Event{}, false
}

// Adjustment pairs a numeric setting with the keys that step it down and up.
type Adjustment struct {
	Setting  Setting
	Decrease Key
	Increase Key
}

// Adjustments lists the numeric settings in display order.
var Adjustments = []Adjustment{
	{Length, KeyDown, KeyUp},
	{Gravity, KeyB, KeyG},
	{Damping, KeyC, KeyD},
	{LightIntensity, KeyK, KeyL},
	{Shininess, KeyA, KeyS},
}

// Value returns the current value of a numeric setting.
func Value(p *pendulum.Params, s Setting) (float64, bool) {
	switch s {
	case Length:
		return p.Sim.Length, true
	case Gravity:
		return p.Sim.Gravity, true
	case Damping:
		return p.Sim.Damping, true
	case LightIntensity:
		return float64(p.Render.LightIntensity), true
	case Shininess:
		return float64(p.Render.Shininess), true
	}
	return 0, false
}

// clampDamping keeps keyboard-driven damping in (0, 1].
func clampDamping(d float64) float64 {
	return math.Min(math.Max(d, DampingStep), 1)
}
