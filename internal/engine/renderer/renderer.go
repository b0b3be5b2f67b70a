package renderer

import (
	"github.com/Faultbox/pendulum-gl/internal/engine/camera"
	"github.com/Faultbox/pendulum-gl/internal/engine/geometry"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// DefaultLineWidth is the rod width requested from the driver.
const DefaultLineWidth = 10.0

// Config holds renderer configuration.
type Config struct {
	LineWidth float32
}

// Renderer draws the pendulum: the bob sphere, the pivot sphere and the rod.
type Renderer struct {
	config Config
}

// New creates a renderer.
func New(cfg Config) *Renderer {
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = DefaultLineWidth
	}
	return &Renderer{config: cfg}
}

// rodNormal feeds the normal attribute while drawing the rod, which has no
// normal data of its own.
var rodNormal = [3]float32{0, 0, 1}

// RenderFrame draws one frame. Given the same inputs it issues the same
// calls, and it never dereferences an absent background texture.
func (r *Renderer) RenderFrame(dev gpu.Device, res *Resources, params pendulum.RenderParameters, frame camera.Frame) {
	dev.Clear(0, 0, 0, 1)
	dev.UseProgram(res.Program)

	u := res.Uniforms
	dev.UniformMatrix4(u.Projection, &frame.Projection)
	dev.Uniform1f(u.LightIntensity, params.LightIntensity)
	dev.Uniform3f(u.PendulumColor, params.PendulumColor)
	dev.Uniform1f(u.Shininess, params.Shininess)

	dev.Uniform1i(u.BackgroundTexture, 0)
	if res.Background != nil {
		dev.BindTexture(0, *res.Background)
		dev.Uniform1i(u.BackgroundAvailable, 1)
	} else {
		dev.BindTexture(0, 0)
		dev.Uniform1i(u.BackgroundAvailable, 0)
	}

	dev.UniformMatrix4(u.ModelView, &frame.BobModelView)
	r.drawMesh(dev, res, res.Bob)

	dev.UniformMatrix4(u.ModelView, &frame.PivotModelView)
	r.drawMesh(dev, res, res.Pivot)

	// The rod is drawn in the bob's frame; its endpoints are re-uploaded in
	// full every frame.
	dev.UniformMatrix4(u.ModelView, &frame.BobModelView)
	dev.LineWidth(r.config.LineWidth)
	res.ReplaceLine(dev, geometry.Segment(frame.LineStart, frame.LineEnd))
	dev.BindAttribute(res.Position, res.Line)
	dev.ConstantAttribute(res.Normal, rodNormal)
	dev.DrawLines(0, 2)
}

func (r *Renderer) drawMesh(dev gpu.Device, res *Resources, mb MeshBuffers) {
	dev.BindAttribute(res.Position, mb.Positions)
	dev.BindAttribute(res.Normal, mb.Normals)
	dev.BindIndexBuffer(mb.Indices)
	dev.DrawTriangles(mb.Indices)
}
