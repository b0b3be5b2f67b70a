// Package ui2d provides a small immediate-mode 2D UI drawn over the scene:
// widgets lay themselves out into a DrawList on the CPU and a Renderer
// uploads that list to the device each frame.
package ui2d

import (
	"fmt"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/pkg/math"
)

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec4 aColor;

	uniform mat4 uProjection;

	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vColor = aColor;
	}
`

const fragmentShaderSource = `
	#version 410 core

	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		FragColor = vColor;
	}
`

// Renderer holds the device objects that draw a DrawList. It belongs to the
// device it was created on and must be recreated for a new one.
type Renderer struct {
	program    gpu.Program
	position   gpu.Attrib
	color      gpu.Attrib
	projection gpu.Uniform

	positions gpu.VertexBuffer
	colors    gpu.VertexBuffer
}

// NewRenderer compiles the UI program and creates its streaming buffers.
// Nothing is left on dev if it fails.
func NewRenderer(dev gpu.Device) (*Renderer, error) {
	program, err := dev.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("create ui shader: %w", err)
	}

	positions, err := dev.CreateVertexBuffer(nil, 2)
	if err != nil {
		dev.DeleteProgram(program)
		return nil, fmt.Errorf("create ui position buffer: %w", err)
	}
	colors, err := dev.CreateVertexBuffer(nil, 4)
	if err != nil {
		dev.DeleteVertexBuffer(positions)
		dev.DeleteProgram(program)
		return nil, fmt.Errorf("create ui color buffer: %w", err)
	}

	return &Renderer{
		program:    program,
		position:   dev.AttribLocation(program, "aPos"),
		color:      dev.AttribLocation(program, "aColor"),
		projection: dev.UniformLocation(program, "uProjection"),
		positions:  positions,
		colors:     colors,
	}, nil
}

// Render draws list over the current frame. width and height are the
// screen size the list was laid out for.
func (r *Renderer) Render(dev gpu.Device, list *DrawList, width, height int) {
	n := list.Len()
	if n == 0 || width <= 0 || height <= 0 {
		return
	}

	dev.SetDepthTest(false)
	dev.SetBlend(true)

	proj := math.Ortho(0, float32(width), float32(height), 0, -1, 1)
	dev.UseProgram(r.program)
	dev.UniformMatrix4(r.projection, &proj)

	dev.UpdateVertexBuffer(&r.positions, list.Positions)
	dev.UpdateVertexBuffer(&r.colors, list.Colors)
	dev.BindAttribute(r.position, r.positions)
	dev.BindAttribute(r.color, r.colors)
	dev.DrawTriangleList(0, n)

	dev.SetBlend(false)
	dev.SetDepthTest(true)
}

// Release deletes the device objects. Only valid while dev is alive.
func (r *Renderer) Release(dev gpu.Device) {
	dev.DeleteVertexBuffer(r.colors)
	dev.DeleteVertexBuffer(r.positions)
	dev.DeleteProgram(r.program)
}
