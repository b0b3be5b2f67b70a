package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	ColorWhite = Color{1, 1, 1, 1}

	ColorPanelBg      = Color{0.08, 0.08, 0.12, 0.85}
	ColorPanelBorder  = Color{0.3, 0.3, 0.4, 1}
	ColorButtonNormal = Color{0.15, 0.15, 0.2, 1}
	ColorButtonHover  = Color{0.25, 0.25, 0.35, 1}
	ColorButtonActive = Color{0.1, 0.3, 0.5, 1}
	ColorInputBg      = Color{0.05, 0.05, 0.08, 1}
	ColorInputBorder  = Color{0.2, 0.2, 0.3, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.5, 0.5, 0.6, 1}
	ColorHighlight    = Color{0.2, 0.6, 0.9, 1}
	ColorError        = Color{0.95, 0.35, 0.3, 1}
)

// RGB creates an opaque color from float RGB components.
func RGB(rgb [3]float32) Color {
	return Color{rgb[0], rgb[1], rgb[2], 1}
}

// Darken returns a darker version of the color.
func (c Color) Darken(factor float32) Color {
	return Color{
		R: c.R * (1 - factor),
		G: c.G * (1 - factor),
		B: c.B * (1 - factor),
		A: c.A,
	}
}
