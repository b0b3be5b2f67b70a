// Package renderer owns the GPU resources of the pendulum scene and draws
// one frame from them.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/engine/geometry"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/shader"
	"github.com/Faultbox/pendulum-gl/internal/logger"
)

// Meshes is the persistent geometry uploaded on every acquisition.
type Meshes struct {
	Bob   *geometry.Mesh
	Pivot *geometry.Mesh
}

// MeshBuffers are the GPU copies of one indexed mesh.
type MeshBuffers struct {
	Positions gpu.VertexBuffer
	Normals   gpu.VertexBuffer
	Indices   gpu.IndexBuffer
}

// Uniforms are the uniform locations of the shading program.
type Uniforms struct {
	ModelView           gpu.Uniform
	Projection          gpu.Uniform
	LightIntensity      gpu.Uniform
	PendulumColor       gpu.Uniform
	Shininess           gpu.Uniform
	BackgroundTexture   gpu.Uniform
	BackgroundAvailable gpu.Uniform
}

// Resources holds every handle the renderer draws with. A Resources value is
// built complete by NewResources or not at all, and belongs to the device it
// was created on; after a device loss it must be discarded, not reused.
type Resources struct {
	Program  gpu.Program
	Position gpu.Attrib
	Normal   gpu.Attrib
	Uniforms Uniforms

	Bob   MeshBuffers
	Pivot MeshBuffers
	Line  gpu.VertexBuffer

	// Background is nil until the background image has been uploaded.
	Background *gpu.Texture
}

// NewResources compiles the program and uploads all meshes. On failure every
// handle created so far is released and the error is returned unchanged in
// kind (compile and link errors stay matchable with errors.As).
func NewResources(dev gpu.Device, meshes Meshes, lineLength float64) (*Resources, error) {
	program, err := dev.CompileProgram(shader.VertexSource, shader.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("shading program: %w", err)
	}

	r := &Resources{Program: program}
	r.Position = dev.AttribLocation(program, shader.AttribPosition)
	r.Normal = dev.AttribLocation(program, shader.AttribNormal)
	r.Uniforms = Uniforms{
		ModelView:           dev.UniformLocation(program, shader.UniformModelView),
		Projection:          dev.UniformLocation(program, shader.UniformProjection),
		LightIntensity:      dev.UniformLocation(program, shader.UniformLightIntensity),
		PendulumColor:       dev.UniformLocation(program, shader.UniformPendulumColor),
		Shininess:           dev.UniformLocation(program, shader.UniformShininess),
		BackgroundTexture:   dev.UniformLocation(program, shader.UniformBackgroundTexture),
		BackgroundAvailable: dev.UniformLocation(program, shader.UniformBackgroundAvailable),
	}

	var created []func()
	fail := func(what string, err error) (*Resources, error) {
		for i := len(created) - 1; i >= 0; i-- {
			created[i]()
		}
		dev.DeleteProgram(program)
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	upload := func(name string, m *geometry.Mesh, dst *MeshBuffers) error {
		var err error
		if dst.Positions, err = dev.CreateVertexBuffer(m.PositionData(), 3); err != nil {
			return fmt.Errorf("%s positions: %w", name, err)
		}
		pos := dst.Positions
		created = append(created, func() { dev.DeleteVertexBuffer(pos) })

		if dst.Normals, err = dev.CreateVertexBuffer(m.NormalData(), 3); err != nil {
			return fmt.Errorf("%s normals: %w", name, err)
		}
		nrm := dst.Normals
		created = append(created, func() { dev.DeleteVertexBuffer(nrm) })

		if dst.Indices, err = dev.CreateIndexBuffer(m.Indices); err != nil {
			return fmt.Errorf("%s indices: %w", name, err)
		}
		idx := dst.Indices
		created = append(created, func() { dev.DeleteIndexBuffer(idx) })
		return nil
	}

	if err := upload("bob", meshes.Bob, &r.Bob); err != nil {
		return fail("mesh buffers", err)
	}
	if err := upload("pivot", meshes.Pivot, &r.Pivot); err != nil {
		return fail("mesh buffers", err)
	}
	line, err := dev.CreateVertexBuffer(geometry.Line(float32(lineLength)).PositionData(), 3)
	if err != nil {
		return fail("line buffer", err)
	}
	r.Line = line

	logger.Debug("render resources created",
		zap.Uint32("program", uint32(program)),
		zap.Int("bob_indices", r.Bob.Indices.NumItems),
		zap.Int("pivot_indices", r.Pivot.Indices.NumItems),
	)
	return r, nil
}

// ReplaceLine re-uploads the whole line buffer from m.
func (r *Resources) ReplaceLine(dev gpu.Device, m *geometry.Mesh) {
	dev.UpdateVertexBuffer(&r.Line, m.PositionData())
}

// SetBackground records the uploaded background texture. Only the first call
// has an effect; the slot is written once per acquisition.
func (r *Resources) SetBackground(t gpu.Texture) bool {
	if r.Background != nil {
		return false
	}
	r.Background = &t
	return true
}

// Release deletes every handle. Only call it while the device is alive.
func (r *Resources) Release(dev gpu.Device) {
	for _, mb := range []MeshBuffers{r.Bob, r.Pivot} {
		dev.DeleteVertexBuffer(mb.Positions)
		dev.DeleteVertexBuffer(mb.Normals)
		dev.DeleteIndexBuffer(mb.Indices)
	}
	dev.DeleteVertexBuffer(r.Line)
	if r.Background != nil {
		dev.DeleteTexture(*r.Background)
		r.Background = nil
	}
	dev.DeleteProgram(r.Program)
	logger.Info("closing renderer")
}
