package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagBackground = flag.String("background", "", "Background image path")
	flagLength     = flag.Float64("length", 0, "Pendulum length")
	flagGravity    = flag.Float64("gravity", 0, "Gravitational acceleration")
	flagDamping    = flag.Float64("damping", 0, "Per-step velocity damping in (0, 1]")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBackground != "" {
		cfg.Assets.Background = *flagBackground
	}
	if *flagLength != 0 {
		cfg.Simulation.Length = *flagLength
	}
	if *flagGravity != 0 {
		cfg.Simulation.Gravity = *flagGravity
	}
	if *flagDamping != 0 {
		cfg.Simulation.Damping = *flagDamping
	}
}
