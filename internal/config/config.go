// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/pendulum-gl/internal/engine/geometry"
	"github.com/Faultbox/pendulum-gl/internal/logger"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// Config holds all settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Render     RenderConfig     `yaml:"render"`
	Assets     AssetsConfig     `yaml:"assets"`
	Capture    CaptureConfig    `yaml:"capture"`
	Logging    LoggingConfig    `yaml:"logging"`

	// source is the file the config was loaded from, if any.
	source string
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SimulationConfig holds the physical parameters at start-up.
type SimulationConfig struct {
	Length       float64 `yaml:"length"`
	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	InitialAngle float64 `yaml:"initial_angle"`
}

// RenderConfig holds shading and geometry settings.
type RenderConfig struct {
	PendulumColor  string  `yaml:"pendulum_color"`
	LightIntensity float64 `yaml:"light_intensity"`
	Shininess      float64 `yaml:"shininess"`
	LineWidth      float32 `yaml:"line_width"`
	BobRadius      float32 `yaml:"bob_radius"`
	PivotRadius    float32 `yaml:"pivot_radius"`
	SphereBands    int     `yaml:"sphere_bands"`
}

// AssetsConfig holds external resource paths.
type AssetsConfig struct {
	Background string `yaml:"background"` // empty disables the background
}

// CaptureConfig holds frame capture settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings. The rotation settings apply only
// when LogFile is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"` // 0 keeps every rotated file
	MaxAgeDays int    `yaml:"max_age_days"` // 0 never expires rotated files
	Compress   bool   `yaml:"compress"`
}

// FileConfig returns the rotating file settings for the logger.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

// Default returns a Config with the start-up values of the visualizer.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Pendulum",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Simulation: SimulationConfig{
			Length:       pendulum.DefaultLength,
			Gravity:      pendulum.DefaultGravity,
			Damping:      pendulum.DefaultDamping,
			InitialAngle: pendulum.InitialAngle,
		},
		Render: RenderConfig{
			PendulumColor:  pendulum.DefaultColor,
			LightIntensity: pendulum.DefaultLightIntensity,
			Shininess:      pendulum.DefaultShininess,
			LineWidth:      10,
			BobRadius:      0.3,
			PivotRadius:    0.8,
			SphereBands:    30,
		},
		Assets: AssetsConfig{
			Background: "texture.jpg",
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "pendulum",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Source returns the file the config was loaded from, or "".
func (c *Config) Source() string {
	return c.source
}

// Validate reports every setting the visualizer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)

	s := c.Simulation
	check(s.Length > 0 && !math.IsInf(s.Length, 0), "simulation: length must be positive, got %v", s.Length)
	check(isFinite(s.Gravity), "simulation: gravity must be finite, got %v", s.Gravity)
	check(s.Damping > 0 && s.Damping <= 1, "simulation: damping must be in (0, 1], got %v", s.Damping)
	check(isFinite(s.InitialAngle), "simulation: initial_angle must be finite, got %v", s.InitialAngle)

	r := c.Render
	if _, err := pendulum.ParseHexColor(r.PendulumColor); err != nil {
		errs = append(errs, fmt.Errorf("render: pendulum_color: %w", err))
	}
	check(r.LightIntensity >= 0 && !math.IsInf(r.LightIntensity, 0),
		"render: light_intensity must be >= 0, got %v", r.LightIntensity)
	check(r.Shininess > 0 && !math.IsInf(r.Shininess, 0), "render: shininess must be positive, got %v", r.Shininess)
	check(r.LineWidth > 0, "render: line_width must be positive, got %v", r.LineWidth)
	check(r.BobRadius > 0, "render: bob_radius must be positive, got %v", r.BobRadius)
	check(r.PivotRadius > 0, "render: pivot_radius must be positive, got %v", r.PivotRadius)
	check(r.SphereBands >= 1 && r.SphereBands <= geometry.MaxBands,
		"render: sphere_bands must be in [1, %d], got %d", geometry.MaxBands, r.SphereBands)

	l := c.Logging
	if _, err := logger.ParseLevel(l.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	check(l.MaxSizeMB > 0, "logging: max_size_mb must be positive, got %d", l.MaxSizeMB)
	check(l.MaxBackups >= 0, "logging: max_backups must be >= 0, got %d", l.MaxBackups)
	check(l.MaxAgeDays >= 0, "logging: max_age_days must be >= 0, got %d", l.MaxAgeDays)

	return errors.Join(errs...)
}

// Params builds the live parameter set from the config. Call Validate first.
func (c *Config) Params() (*pendulum.Params, error) {
	p := pendulum.DefaultParams()
	s, r := c.Simulation, c.Render
	for _, err := range []error{
		p.SetLength(s.Length),
		p.SetGravity(s.Gravity),
		p.SetDamping(s.Damping),
		p.SetPendulumColor(r.PendulumColor),
		p.SetLightIntensity(r.LightIntensity),
		p.SetShininess(r.Shininess),
	} {
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetParams copies the live parameters back so they can be saved.
func (c *Config) SetParams(p *pendulum.Params) {
	c.Simulation.Length = p.Sim.Length
	c.Simulation.Gravity = p.Sim.Gravity
	c.Simulation.Damping = p.Sim.Damping
	c.Render.PendulumColor = pendulum.FormatHexColor(p.Render.PendulumColor)
	c.Render.LightIntensity = roundTo(float64(p.Render.LightIntensity), 4)
	c.Render.Shininess = roundTo(float64(p.Render.Shininess), 4)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundTo trims float32 widening noise (0.8 -> 0.800000011920929).
func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
