// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"image"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// Call is one recorded device operation.
type Call struct {
	Op   string
	Args string
}

// Device records every call and keeps enough state to inspect what a frame
// would have drawn. The zero value is not usable; call New.
type Device struct {
	Calls []Call

	// Failure injection.
	CompileErr      error
	TextureErr      error
	FailBufferAfter int // fail the Nth buffer creation (1-based); 0 disables

	nextID    uint32
	buffers   map[uint32][]float32
	indices   map[uint32][]uint16
	textures  map[gpu.Texture]*image.RGBA
	programs  map[gpu.Program]bool
	uniforms  map[string]gpu.Uniform
	attribs   map[string]gpu.Attrib
	values    map[gpu.Uniform]any
	created   int
	depthTest bool
	blend     bool
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		buffers:  make(map[uint32][]float32),
		indices:  make(map[uint32][]uint16),
		textures: make(map[gpu.Texture]*image.RGBA),
		programs: make(map[gpu.Program]bool),
		uniforms: make(map[string]gpu.Uniform),
		attribs:  make(map[string]gpu.Attrib),
		values:   make(map[gpu.Uniform]any),
	}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: fmt.Sprint(args...)})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Ops returns the recorded operation names in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets recorded calls but keeps live resources.
func (d *Device) Reset() {
	d.Calls = nil
}

// Count returns how many times op was called.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// BufferData returns the current contents of a vertex buffer.
func (d *Device) BufferData(id uint32) []float32 {
	return d.buffers[id]
}

// LiveBuffers returns the number of vertex and index buffers not deleted.
func (d *Device) LiveBuffers() int {
	return len(d.buffers) + len(d.indices)
}

// LivePrograms returns the number of programs not deleted.
func (d *Device) LivePrograms() int {
	return len(d.programs)
}

// LiveTextures returns the number of textures not deleted.
func (d *Device) LiveTextures() int {
	return len(d.textures)
}

// UniformValue returns the last value uploaded to the named uniform.
func (d *Device) UniformValue(name string) any {
	u, ok := d.uniforms[name]
	if !ok {
		return nil
	}
	return d.values[u]
}

// DepthTest reports whether depth testing is enabled.
func (d *Device) DepthTest() bool {
	return d.depthTest
}

// Blend reports whether blending is enabled.
func (d *Device) Blend() bool {
	return d.blend
}

func (d *Device) Info() gpu.Info {
	return gpu.Info{Version: "4.1 test", Renderer: "gputest", Vendor: "gputest"}
}

func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	d.record("CompileProgram")
	if d.CompileErr != nil {
		return 0, d.CompileErr
	}
	p := gpu.Program(d.id())
	d.programs[p] = true
	return p, nil
}

func (d *Device) AttribLocation(p gpu.Program, name string) gpu.Attrib {
	a, ok := d.attribs[name]
	if !ok {
		a = gpu.Attrib(len(d.attribs))
		d.attribs[name] = a
	}
	return a
}

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	u, ok := d.uniforms[name]
	if !ok {
		u = gpu.Uniform(len(d.uniforms))
		d.uniforms[name] = u
	}
	return u
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.record("DeleteProgram", p)
	delete(d.programs, p)
}

func (d *Device) allowCreate() error {
	d.created++
	if d.FailBufferAfter > 0 && d.created == d.FailBufferAfter {
		return fmt.Errorf("gputest: buffer %d failed", d.created)
	}
	return nil
}

func (d *Device) CreateVertexBuffer(data []float32, itemSize int) (gpu.VertexBuffer, error) {
	d.record("CreateVertexBuffer", len(data))
	if err := d.allowCreate(); err != nil {
		return gpu.VertexBuffer{}, err
	}
	b := gpu.VertexBuffer{ID: d.id(), ItemSize: itemSize, NumItems: len(data) / itemSize}
	d.buffers[b.ID] = append([]float32(nil), data...)
	return b, nil
}

func (d *Device) UpdateVertexBuffer(b *gpu.VertexBuffer, data []float32) {
	d.record("UpdateVertexBuffer", b.ID, data)
	d.buffers[b.ID] = append([]float32(nil), data...)
	b.NumItems = len(data) / b.ItemSize
}

func (d *Device) CreateIndexBuffer(indices []uint16) (gpu.IndexBuffer, error) {
	d.record("CreateIndexBuffer", len(indices))
	if err := d.allowCreate(); err != nil {
		return gpu.IndexBuffer{}, err
	}
	b := gpu.IndexBuffer{ID: d.id(), NumItems: len(indices)}
	d.indices[b.ID] = append([]uint16(nil), indices...)
	return b, nil
}

func (d *Device) DeleteVertexBuffer(b gpu.VertexBuffer) {
	d.record("DeleteVertexBuffer", b.ID)
	delete(d.buffers, b.ID)
}

func (d *Device) DeleteIndexBuffer(b gpu.IndexBuffer) {
	d.record("DeleteIndexBuffer", b.ID)
	delete(d.indices, b.ID)
}

func (d *Device) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	d.record("CreateTexture", img.Bounds().Dx(), img.Bounds().Dy())
	if d.TextureErr != nil {
		return 0, d.TextureErr
	}
	t := gpu.Texture(d.id())
	d.textures[t] = img
	return t, nil
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	d.record("DeleteTexture", t)
	delete(d.textures, t)
}

func (d *Device) EnableDepthTest() {
	d.record("EnableDepthTest")
	d.depthTest = true
}

func (d *Device) SetDepthTest(enabled bool) {
	d.record("SetDepthTest", enabled)
	d.depthTest = enabled
}

func (d *Device) SetBlend(enabled bool) {
	d.record("SetBlend", enabled)
	d.blend = enabled
}

func (d *Device) Viewport(width, height int) {
	d.record("Viewport", width, height)
}

func (d *Device) Clear(r, g, b, a float32) {
	d.record("Clear", r, g, b, a)
}

func (d *Device) UseProgram(p gpu.Program) {
	d.record("UseProgram", p)
}

func (d *Device) UniformMatrix4(u gpu.Uniform, m *math.Mat4) {
	d.record("UniformMatrix4", u)
	d.values[u] = *m
}

func (d *Device) Uniform1f(u gpu.Uniform, v float32) {
	d.record("Uniform1f", u, v)
	d.values[u] = v
}

func (d *Device) Uniform3f(u gpu.Uniform, v [3]float32) {
	d.record("Uniform3f", u, v)
	d.values[u] = v
}

func (d *Device) Uniform1i(u gpu.Uniform, v int32) {
	d.record("Uniform1i", u, v)
	d.values[u] = v
}

func (d *Device) BindTexture(unit int, t gpu.Texture) {
	d.record("BindTexture", unit, t)
}

func (d *Device) BindAttribute(a gpu.Attrib, b gpu.VertexBuffer) {
	d.record("BindAttribute", a, b.ID)
}

func (d *Device) ConstantAttribute(a gpu.Attrib, v [3]float32) {
	d.record("ConstantAttribute", a, v)
}

func (d *Device) BindIndexBuffer(b gpu.IndexBuffer) {
	d.record("BindIndexBuffer", b.ID)
}

func (d *Device) DrawTriangles(b gpu.IndexBuffer) {
	d.record("DrawTriangles", b.NumItems)
}

func (d *Device) DrawLines(first, count int) {
	d.record("DrawLines", first, count)
}

func (d *Device) DrawTriangleList(first, count int) {
	d.record("DrawTriangleList", first, count)
}

func (d *Device) LineWidth(w float32) {
	d.record("LineWidth", w)
}

func (d *Device) ReadPixels(width, height int) []byte {
	d.record("ReadPixels", width, height)
	return make([]byte, width*height*4)
}

var _ gpu.Device = (*Device)(nil)
