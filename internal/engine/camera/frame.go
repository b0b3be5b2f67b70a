// Package camera derives the per-frame projection and model-view matrices
// for the pendulum scene.
package camera

import (
	gomath "math"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// Fixed view settings.
const (
	FieldOfView = 45.0 * gomath.Pi / 180.0 // vertical, radians
	Near        = 0.1
	Far         = 100.0
	Depth       = 20.0 // distance from the eye to the suspension point
)

// Frame is everything the renderer needs to place the scene for one frame.
type Frame struct {
	Projection     math.Mat4
	BobModelView   math.Mat4
	PivotModelView math.Mat4

	// Rod endpoints in the bob's object space, drawn with BobModelView.
	LineStart math.Vec3
	LineEnd   math.Vec3
}

// Projection returns the perspective matrix for the given aspect ratio
// (viewport width / height).
func Projection(aspect float32) math.Mat4 {
	return math.Perspective(FieldOfView, aspect, Near, Far)
}

// BuildFrame computes the frame matrices from the pendulum angle.
//
// The bob transform translates the scene to Depth first and then rotates by
// angle about Z, so the rotation acts in the translated frame. The pivot
// transform appends a translation of -length along the rotated Y axis.
// Reordering either product changes the swing geometry.
func BuildFrame(angle, length float64, aspect float32) Frame {
	bob := math.Identity().
		Translated(0, 0, -Depth).
		RotatedZ(float32(angle))

	l := float32(length)
	return Frame{
		Projection:     Projection(aspect),
		BobModelView:   bob,
		PivotModelView: bob.Translated(0, -l, 0),
		LineStart:      math.Vec3{X: 0, Y: l, Z: 0},
		LineEnd:        math.Vec3{X: 0, Y: 0, Z: 0},
	}
}

// Aspect returns width/height, falling back to 1 for a degenerate viewport
// (a minimized window reports zero height).
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
