// Package app runs the visualizer: window, event loop, device lifecycle and
// frame scheduling.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/config"
	"github.com/Faultbox/pendulum-gl/internal/controls"
	"github.com/Faultbox/pendulum-gl/internal/engine/capture"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/input"
	"github.com/Faultbox/pendulum-gl/internal/engine/lifecycle"
	"github.com/Faultbox/pendulum-gl/internal/engine/scene"
	"github.com/Faultbox/pendulum-gl/internal/engine/texture"
	"github.com/Faultbox/pendulum-gl/internal/engine/ui"
	"github.com/Faultbox/pendulum-gl/internal/engine/window"
	"github.com/Faultbox/pendulum-gl/internal/logger"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// idleDelay paces the loop while no frame is scheduled (device lost).
const idleDelay = 16 * time.Millisecond

// App is the running visualizer.
type App struct {
	cfg     *config.Config
	running bool

	window    *window.Window
	input     *input.Input
	scheduler *lifecycle.Scheduler
	manager   *lifecycle.Manager
	scene     *scene.Scene
	textures  *texture.Loader
	capturer  *capture.Capturer
	panel     *ui.Panel

	restorePending bool
	capturePending bool
}

// New creates the window and acquires the first device. An
// *gpu.UnsupportedDeviceError is returned unwrapped enough for errors.As.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing visualizer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	params, err := cfg.Params()
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	sc, err := scene.New(scene.Config{
		BobRadius:   cfg.Render.BobRadius,
		PivotRadius: cfg.Render.PivotRadius,
		SphereBands: cfg.Render.SphereBands,
		LineWidth:   cfg.Render.LineWidth,
	}, params, pendulum.State{Angle: cfg.Simulation.InitialAngle})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	a := &App{
		cfg:       cfg,
		input:     input.New(),
		scheduler: lifecycle.NewScheduler(),
		scene:     sc,
		textures:  texture.NewLoader(),
		capturer:  capture.New(cfg.Capture.Dir, cfg.Capture.Prefix),
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.scene.SetViewport(a.window.Size())
	lw, lh := a.window.LogicalSize()
	a.panel = ui.NewPanel(params, lw, lh)

	a.manager = lifecycle.NewManager(lifecycle.Options{
		Surface:    a.window,
		Scheduler:  a.scheduler,
		Textures:   a.textures,
		Background: cfg.Assets.Background,
		Meshes:     sc.Meshes(),
		Length:     func() float64 { return params.Sim.Length },
		Frame:      sc.Frame,
		Overlay: func(dev gpu.Device) (lifecycle.Overlay, error) {
			o, err := a.panel.Attach(dev)
			if err != nil {
				return nil, err
			}
			return o, nil
		},
	})
	params.OnLengthChange(a.manager.RegenerateLine)

	if err := a.manager.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("device initialization: %w", err)
	}

	logger.Info("visualizer initialized")
	return a, nil
}

// Run drives the loop until the window is closed or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		if a.restorePending {
			a.restorePending = false
			if err := a.manager.HandleDeviceRestored(); err != nil {
				logger.Warn("device still lost; waiting for the next restore signal", zap.Error(err))
			}
		}

		if a.scheduler.Fire() == 0 {
			sdl.Delay(uint32(idleDelay / time.Millisecond))
			continue
		}

		if a.capturePending {
			a.capturePending = false
			a.capture()
		}
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			state := a.scene.State()
			logger.Debug("fps",
				zap.Float64("fps", float64(frameCount)/elapsed.Seconds()),
				zap.Float64("angle", state.Angle),
				zap.Float64("energy", pendulum.Energy(state, a.scene.Params().Sim)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		w, h := a.window.Size()
		a.scene.SetViewport(w, h)
		a.manager.Resize(w, h)
		a.panel.Resize(a.window.LogicalSize())

	case input.EventMouseMotion:
		in := a.panel.Input()
		in.MouseX = float32(ev.X)
		in.MouseY = float32(ev.Y)

	case input.EventMouseButton:
		if ev.Button == sdl.BUTTON_LEFT {
			in := a.panel.Input()
			in.MouseX = float32(ev.X)
			in.MouseY = float32(ev.Y)
			in.MouseLeftDown = ev.Down
			if ev.Down {
				in.MouseLeftClicked = true
			}
		}

	case input.EventTextInput:
		if a.panel.WantsKeyboard() {
			a.panel.Input().TextInput += ev.Text
		}

	case input.EventDeviceReset:
		logger.Warn("rendering device reset by the driver")
		a.manager.HandleDeviceLost()
		a.restorePending = true

	case input.EventKeyDown:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev input.Event) {
	if a.panel.WantsKeyboard() {
		a.panelKey(ev)
		return
	}

	switch ev.Key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
		return
	case sdl.SCANCODE_TAB:
		if !ev.Repeat {
			a.panel.Toggle()
		}
		return
	case sdl.SCANCODE_F5:
		a.saveParams()
		return
	case sdl.SCANCODE_F9:
		logger.Info("simulating device loss")
		a.manager.HandleDeviceLost()
		return
	case sdl.SCANCODE_F10:
		logger.Info("simulating device restore")
		a.restorePending = true
		return
	case sdl.SCANCODE_F12:
		if !ev.Repeat {
			a.capturePending = true
		}
		return
	}

	key := input.ParameterKey(ev.Key)
	if key == controls.KeyNone {
		return
	}
	if change, ok := controls.EventForKey(key, a.scene.Params()); ok {
		a.panel.Apply([]controls.Event{change})
	}
}

// panelKey routes editing keys to the focused color field. Other keys are
// swallowed; their text arrives as text input events.
func (a *App) panelKey(ev input.Event) {
	in := a.panel.Input()
	switch ev.Key {
	case sdl.SCANCODE_BACKSPACE:
		in.Backspaces++
	case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
		in.KeyEnter = true
	case sdl.SCANCODE_ESCAPE:
		in.KeyEscape = true
	}
}

func (a *App) capture() {
	dev := a.manager.Device()
	if dev == nil {
		logger.Warn("capture skipped", zap.Error(gpu.ErrDeviceLost))
		return
	}
	w, h := a.window.Size()
	path, err := a.capturer.Capture(dev, w, h)
	if err != nil {
		logger.Error("capture failed", zap.Error(err))
		return
	}
	logger.Info("frame captured", zap.String("path", path))
}

func (a *App) saveParams() {
	a.cfg.SetParams(a.scene.Params())
	path, err := a.cfg.Save()
	if err != nil {
		logger.Error("saving parameters failed", zap.Error(err))
		return
	}
	logger.Info("parameters saved", zap.String("path", path))
}

// Close releases the device and the window.
func (a *App) Close() {
	logger.Info("closing visualizer")

	if a.manager != nil {
		a.manager.Close()
	}
	a.textures.Wait()
	if a.window != nil {
		a.window.Close()
	}
}

// IsUnsupportedDevice reports whether err means no usable rendering device.
func IsUnsupportedDevice(err error) bool {
	var ude *gpu.UnsupportedDeviceError
	return errors.As(err, &ude)
}
