// Package pendulum holds the simulation state, the live parameter set and the
// integrator that advances a damped pendulum one fixed step per frame.
package pendulum

import (
	"fmt"
	"math"
)

// Defaults mirror the values the visualizer starts with.
const (
	DefaultLength         = 5.0
	DefaultGravity        = 9.8
	DefaultDamping        = 0.99
	DefaultLightIntensity = 0.8
	DefaultShininess      = 32.0
	DefaultColor          = "#FF0000"
	InitialAngle          = math.Pi / 3
)

// SimulationParameters are the physical constants read on every step.
type SimulationParameters struct {
	Length  float64 // meters, > 0
	Gravity float64 // m/s²
	Damping float64 // per-step velocity multiplier, expected in (0, 1]
}

// RenderParameters are the shading constants read on every frame.
type RenderParameters struct {
	PendulumColor  [3]float32 // RGB in [0, 1]
	LightIntensity float32
	Shininess      float32
}

// State is the pendulum's angle and angular velocity. Angle is not wrapped.
type State struct {
	Angle           float64 // radians
	AngularVelocity float64 // radians/s
}

// NewState returns the pendulum released from rest at InitialAngle.
func NewState() State {
	return State{Angle: InitialAngle}
}

// Params is the owned parameter bundle mutated by configuration events and
// read by the integrator and renderer. It is not safe for concurrent use:
// events and frames are dispatched on the same thread.
type Params struct {
	Sim    SimulationParameters
	Render RenderParameters

	onLengthChange []func(length float64)
}

// DefaultParams returns the start-up parameter set.
func DefaultParams() *Params {
	color, _ := ParseHexColor(DefaultColor)
	return &Params{
		Sim: SimulationParameters{
			Length:  DefaultLength,
			Gravity: DefaultGravity,
			Damping: DefaultDamping,
		},
		Render: RenderParameters{
			PendulumColor:  color,
			LightIntensity: DefaultLightIntensity,
			Shininess:      DefaultShininess,
		},
	}
}

// OnLengthChange registers fn to run synchronously after every accepted
// SetLength call.
func (p *Params) OnLengthChange(fn func(length float64)) {
	p.onLengthChange = append(p.onLengthChange, fn)
}

// SetLength sets the rod length and notifies length listeners.
func (p *Params) SetLength(length float64) error {
	if !(length > 0) || math.IsInf(length, 0) {
		return fmt.Errorf("length must be positive, got %v", length)
	}
	p.Sim.Length = length
	for _, fn := range p.onLengthChange {
		fn(length)
	}
	return nil
}

// SetGravity sets the gravitational acceleration.
func (p *Params) SetGravity(gravity float64) error {
	if math.IsNaN(gravity) || math.IsInf(gravity, 0) {
		return fmt.Errorf("gravity must be finite, got %v", gravity)
	}
	p.Sim.Gravity = gravity
	return nil
}

// SetDamping sets the per-step velocity multiplier. Values outside (0, 1]
// are accepted; keeping damping in that range is the caller's job, and
// anything >= 1 lets energy grow without bound.
func (p *Params) SetDamping(damping float64) error {
	if math.IsNaN(damping) || math.IsInf(damping, 0) {
		return fmt.Errorf("damping must be finite, got %v", damping)
	}
	p.Sim.Damping = damping
	return nil
}

// SetLightIntensity sets the diffuse light scale.
func (p *Params) SetLightIntensity(intensity float64) error {
	if !(intensity >= 0) || math.IsInf(intensity, 0) {
		return fmt.Errorf("light intensity must be >= 0, got %v", intensity)
	}
	p.Render.LightIntensity = float32(intensity)
	return nil
}

// SetShininess sets the specular exponent.
func (p *Params) SetShininess(shininess float64) error {
	if !(shininess > 0) || math.IsInf(shininess, 0) {
		return fmt.Errorf("shininess must be positive, got %v", shininess)
	}
	p.Render.Shininess = float32(shininess)
	return nil
}

// SetPendulumColor parses a "#RRGGBB" string into the pendulum color.
func (p *Params) SetPendulumColor(hex string) error {
	color, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	p.Render.PendulumColor = color
	return nil
}
