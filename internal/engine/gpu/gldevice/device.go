// Package gldevice implements gpu.Device on an OpenGL 4.1 core context.
package gldevice

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/logger"
	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// Device draws through the OpenGL context current on the calling thread.
type Device struct {
	info         gpu.Info
	vao          uint32
	lineWidthMax float32
}

// New loads the GL function pointers for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is created and made current!
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, &gpu.UnsupportedDeviceError{Reason: "loading OpenGL 4.1 core functions", Err: err}
	}

	d := &Device{
		info: gpu.Info{
			Version:  gl.GoStr(gl.GetString(gl.VERSION)),
			Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
			Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		},
	}
	if d.info.Version == "" {
		return nil, &gpu.UnsupportedDeviceError{Reason: "context reports no GL version"}
	}

	// Core profile refuses vertex attribute state without a bound VAO.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	var lineRange [2]float32
	gl.GetFloatv(gl.ALIASED_LINE_WIDTH_RANGE, &lineRange[0])
	d.lineWidthMax = lineRange[1]
	if d.lineWidthMax < 1 {
		d.lineWidthMax = 1
	}

	logger.Info("OpenGL initialized",
		zap.String("version", d.info.Version),
		zap.String("renderer", d.info.Renderer),
		zap.String("vendor", d.info.Vendor),
		zap.Float32("max_line_width", d.lineWidthMax),
	)
	return d, nil
}

// Info returns the driver strings captured at creation.
func (d *Device) Info() gpu.Info {
	return d.info
}

// Release deletes the device-owned vertex array. Only valid on a live context.
func (d *Device) Release() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) CreateVertexBuffer(data []float32, itemSize int) (gpu.VertexBuffer, error) {
	if itemSize <= 0 {
		return gpu.VertexBuffer{}, fmt.Errorf("vertex buffer item size %d", itemSize)
	}
	b := gpu.VertexBuffer{ItemSize: itemSize}
	gl.GenBuffers(1, &b.ID)
	d.UpdateVertexBuffer(&b, data)
	if err := glError("vertex buffer"); err != nil {
		gl.DeleteBuffers(1, &b.ID)
		return gpu.VertexBuffer{}, err
	}
	return b, nil
}

func (d *Device) UpdateVertexBuffer(b *gpu.VertexBuffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	b.NumItems = len(data) / b.ItemSize
}

func (d *Device) CreateIndexBuffer(indices []uint16) (gpu.IndexBuffer, error) {
	b := gpu.IndexBuffer{NumItems: len(indices)}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ID)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
	}
	if err := glError("index buffer"); err != nil {
		gl.DeleteBuffers(1, &b.ID)
		return gpu.IndexBuffer{}, err
	}
	return b, nil
}

func (d *Device) DeleteVertexBuffer(b gpu.VertexBuffer) {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
	}
}

func (d *Device) DeleteIndexBuffer(b gpu.IndexBuffer) {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
	}
}

// CreateTexture uploads img as an RGBA8 texture with clamped, linearly
// filtered sampling. Rows are uploaded in the order they appear in img.
func (d *Device) CreateTexture(img *image.RGBA) (gpu.Texture, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty image %dx%d", w, h)
	}
	if img.Stride != w*4 {
		return 0, fmt.Errorf("image stride %d, want %d", img.Stride, w*4)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("texture upload"); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, err
	}
	return gpu.Texture(id), nil
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

func (d *Device) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (d *Device) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (d *Device) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) UniformMatrix4(u gpu.Uniform, m *math.Mat4) {
	gl.UniformMatrix4fv(int32(u), 1, false, m.Ptr())
}

func (d *Device) Uniform1f(u gpu.Uniform, v float32) {
	gl.Uniform1f(int32(u), v)
}

func (d *Device) Uniform3f(u gpu.Uniform, v [3]float32) {
	gl.Uniform3f(int32(u), v[0], v[1], v[2])
}

func (d *Device) Uniform1i(u gpu.Uniform, v int32) {
	gl.Uniform1i(int32(u), v)
}

func (d *Device) BindTexture(unit int, t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *Device) BindAttribute(a gpu.Attrib, b gpu.VertexBuffer) {
	if a < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.VertexAttribPointer(uint32(a), int32(b.ItemSize), gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(uint32(a))
}

func (d *Device) ConstantAttribute(a gpu.Attrib, v [3]float32) {
	if a < 0 {
		return
	}
	gl.DisableVertexAttribArray(uint32(a))
	gl.VertexAttrib3f(uint32(a), v[0], v[1], v[2])
}

func (d *Device) BindIndexBuffer(b gpu.IndexBuffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ID)
}

func (d *Device) DrawTriangles(b gpu.IndexBuffer) {
	gl.DrawElements(gl.TRIANGLES, int32(b.NumItems), gl.UNSIGNED_SHORT, nil)
}

func (d *Device) DrawLines(first, count int) {
	gl.DrawArrays(gl.LINES, int32(first), int32(count))
}

func (d *Device) DrawTriangleList(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// LineWidth clamps w to what the driver supports; core profiles often cap
// wide lines at 1.
func (d *Device) LineWidth(w float32) {
	if w > d.lineWidthMax {
		w = d.lineWidthMax
	}
	gl.LineWidth(w)
}

func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// glError drains the GL error queue and reports the first error seen.
func glError(what string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("%s: GL error 0x%04X", what, first)
	}
	return nil
}

var _ gpu.Device = (*Device)(nil)
