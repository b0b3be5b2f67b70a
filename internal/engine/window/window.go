// Package window handles the SDL2 window and its OpenGL contexts.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu/gldevice"
	"github.com/Faultbox/pendulum-gl/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps the SDL2 window. The GL context is created by AcquireDevice
// and replaced on every later call.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	device    *gldevice.Device
}

// New creates the window without a GL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes apply to every context created for this window.
	// OpenGL 4.1 Core Profile is the newest macOS supports.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// AcquireDevice creates a fresh GL context, makes it current and returns a
// device bound to it. A previous context is destroyed first; its handles are
// not released since they may belong to a reset driver.
func (w *Window) AcquireDevice() (gpu.Device, error) {
	w.dropContext()

	ctx, err := w.sdlWindow.GLCreateContext()
	if err != nil {
		return nil, &gpu.UnsupportedDeviceError{Reason: "creating OpenGL 4.1 core context", Err: err}
	}
	if err := w.sdlWindow.GLMakeCurrent(ctx); err != nil {
		sdl.GLDeleteContext(ctx)
		return nil, &gpu.UnsupportedDeviceError{Reason: "making context current", Err: err}
	}
	w.glContext = ctx

	interval := 0
	if w.config.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	dev, err := gldevice.New()
	if err != nil {
		w.dropContext()
		return nil, err
	}
	w.device = dev
	return dev, nil
}

func (w *Window) dropContext() {
	if w.glContext == nil {
		return
	}
	sdl.GLDeleteContext(w.glContext)
	w.glContext = nil
	w.device = nil
}

// Close destroys the context and the window and shuts SDL2 down.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.device != nil {
		w.device.Release()
	}
	w.dropContext()
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the drawable size in pixels, which differs from the window
// size on high-DPI displays.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// LogicalSize returns the window size in points, the space mouse events
// are reported in.
func (w *Window) LogicalSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
