// Package shader holds the pendulum shading program and a CPU reference of
// its fragment stage.
package shader

import (
	_ "embed"
	gomath "math"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// VertexSource is the vertex stage.
//
//go:embed pendulum.vert
var VertexSource string

// FragmentSource is the fragment stage.
//
//go:embed pendulum.frag
var FragmentSource string

// Attribute and uniform names used by the program.
const (
	AttribPosition = "aVertexPosition"
	AttribNormal   = "aVertexNormal"

	UniformModelView           = "uModelViewMatrix"
	UniformProjection          = "uProjectionMatrix"
	UniformLightIntensity      = "uLightIntensity"
	UniformPendulumColor       = "uPendulumColor"
	UniformShininess           = "uShininess"
	UniformBackgroundTexture   = "uBackgroundTexture"
	UniformBackgroundAvailable = "uBackgroundAvailable"
)

// Fixed lighting terms.
var (
	LightDir     = math.Vec3{X: 0, Y: 0, Z: 1}
	AmbientColor = math.Vec3{X: 0.3, Y: 0.3, Z: 0.3}
)

// Fragment is the input to Shade.
type Fragment struct {
	Normal         math.Vec3
	FragCoord      math.Vec3 // window-space x, y and depth
	LightIntensity float32
	Shininess      float32
	PendulumColor  math.Vec3

	// Background samples the environment at uv; nil means no texture and
	// the background contributes black.
	Background func(u, v float32) math.Vec3
}

// Shade evaluates pendulum.frag on the CPU.
func Shade(f Fragment) math.Vec3 {
	lambertian := max32(f.Normal.Dot(LightDir), 0)

	viewDir := f.FragCoord.Scale(-1).Normalize()
	reflectDir := math.Reflect(LightDir.Scale(-1), f.Normal)
	specular := float32(gomath.Pow(float64(max32(viewDir.Dot(reflectDir), 0)), float64(f.Shininess)))

	color := AmbientColor.Add(math.Vec3{X: 1, Y: 1, Z: 1}.Scale(f.LightIntensity * lambertian))
	color = color.Add(math.Vec3{X: 1, Y: 1, Z: 1}.Scale(specular * f.Shininess))

	var background math.Vec3
	if f.Background != nil {
		reflected := math.Reflect(viewDir, f.Normal)
		u, v := ReflectionUV(reflected)
		background = f.Background(u, v)
	}

	return math.Mix(color.Mul(f.PendulumColor), background, 0.5)
}

// ReflectionUV maps a reflected direction to background texture coordinates.
func ReflectionUV(reflected math.Vec3) (u, v float32) {
	return 0.5 + 0.5*reflected.X, 0.5 + 0.5*reflected.Y
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
