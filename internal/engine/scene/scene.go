// Package scene advances the pendulum and draws it once per scheduled frame.
package scene

import (
	"fmt"

	"github.com/Faultbox/pendulum-gl/internal/engine/camera"
	"github.com/Faultbox/pendulum-gl/internal/engine/geometry"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/renderer"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// Config contains scene configuration options.
type Config struct {
	BobRadius   float32
	PivotRadius float32
	SphereBands int
	LineWidth   float32
}

// Scene owns the simulation state and the parameters it is driven by.
// It is not safe for concurrent use.
type Scene struct {
	params   *pendulum.Params
	state    pendulum.State
	renderer *renderer.Renderer
	meshes   renderer.Meshes
	aspect   float32

	frames uint64
}

// New builds the sphere meshes and returns a scene starting from state.
func New(cfg Config, params *pendulum.Params, state pendulum.State) (*Scene, error) {
	bob, err := geometry.Sphere(cfg.BobRadius, cfg.SphereBands, cfg.SphereBands)
	if err != nil {
		return nil, fmt.Errorf("bob mesh: %w", err)
	}
	pivot, err := geometry.Sphere(cfg.PivotRadius, cfg.SphereBands, cfg.SphereBands)
	if err != nil {
		return nil, fmt.Errorf("pivot mesh: %w", err)
	}
	return &Scene{
		params:   params,
		state:    state,
		renderer: renderer.New(renderer.Config{LineWidth: cfg.LineWidth}),
		meshes:   renderer.Meshes{Bob: bob, Pivot: pivot},
		aspect:   1,
	}, nil
}

// Meshes returns the persistent meshes uploaded on every acquisition.
func (s *Scene) Meshes() renderer.Meshes {
	return s.meshes
}

// Params returns the live parameters.
func (s *Scene) Params() *pendulum.Params {
	return s.params
}

// State returns the current pendulum state.
func (s *Scene) State() pendulum.State {
	return s.state
}

// Frames returns how many frames have been drawn.
func (s *Scene) Frames() uint64 {
	return s.frames
}

// SetViewport updates the projection aspect for a new drawable size.
func (s *Scene) SetViewport(width, height int) {
	s.aspect = camera.Aspect(width, height)
}

// Frame advances the simulation one fixed step and draws the result.
func (s *Scene) Frame(dev gpu.Device, res *renderer.Resources) {
	pendulum.Step(&s.state, s.params.Sim, pendulum.Timestep)
	frame := camera.BuildFrame(s.state.Angle, s.params.Sim.Length, s.aspect)
	s.renderer.RenderFrame(dev, res, s.params.Render, frame)
	s.frames++
}
