// Package gpu defines the rendering device the pendulum renderer draws
// through, the handle types it hands out and the errors it reports.
//
// The OpenGL implementation lives in gpu/gldevice; gpu/gputest provides a
// recording device for tests.
package gpu

import (
	"image"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// Program is a linked shader program.
type Program uint32

// Uniform is a uniform location inside a program. -1 means inactive.
type Uniform int32

// Attrib is a vertex attribute location inside a program.
type Attrib int32

// Texture is a 2D texture handle.
type Texture uint32

// VertexBuffer is an array buffer of float32 components.
type VertexBuffer struct {
	ID       uint32
	ItemSize int // components per vertex
	NumItems int // vertex count
}

// IndexBuffer is an element buffer of uint16 triangle indices.
type IndexBuffer struct {
	ID       uint32
	NumItems int
}

// Info describes the acquired device.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
}

// Device is a current rendering context. All calls must be made from the
// thread that owns the context.
type Device interface {
	Info() Info

	// CompileProgram compiles and links a vertex/fragment pair. Failures are
	// *ShaderCompileError or *LinkError and leave no program behind.
	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)
	AttribLocation(p Program, name string) Attrib
	UniformLocation(p Program, name string) Uniform
	DeleteProgram(p Program)

	CreateVertexBuffer(data []float32, itemSize int) (VertexBuffer, error)
	// UpdateVertexBuffer replaces the whole buffer contents with data.
	UpdateVertexBuffer(b *VertexBuffer, data []float32)
	CreateIndexBuffer(indices []uint16) (IndexBuffer, error)
	DeleteVertexBuffer(b VertexBuffer)
	DeleteIndexBuffer(b IndexBuffer)

	CreateTexture(img *image.RGBA) (Texture, error)
	DeleteTexture(t Texture)

	EnableDepthTest()
	// SetDepthTest toggles depth testing after EnableDepthTest configured it.
	SetDepthTest(enabled bool)
	// SetBlend toggles source-alpha blending.
	SetBlend(enabled bool)
	Viewport(width, height int)
	Clear(r, g, b, a float32)
	UseProgram(p Program)

	UniformMatrix4(u Uniform, m *math.Mat4)
	Uniform1f(u Uniform, v float32)
	Uniform3f(u Uniform, v [3]float32)
	Uniform1i(u Uniform, v int32)

	// BindTexture binds t to the given texture unit; 0 unbinds.
	BindTexture(unit int, t Texture)
	// BindAttribute sources attribute a from buffer b.
	BindAttribute(a Attrib, b VertexBuffer)
	// ConstantAttribute disables the array for a and feeds it v instead.
	ConstantAttribute(a Attrib, v [3]float32)
	BindIndexBuffer(b IndexBuffer)

	DrawTriangles(b IndexBuffer)
	DrawLines(first, count int)
	// DrawTriangleList draws non-indexed triangles from the bound attributes.
	DrawTriangleList(first, count int)
	LineWidth(w float32)

	// ReadPixels returns the color buffer as bottom-up RGBA rows.
	ReadPixels(width, height int) []byte
}
