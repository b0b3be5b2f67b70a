// Package lifecycle drives the rendering device through acquisition, loss
// and recovery, and schedules frames only while the device is usable.
package lifecycle

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/engine/geometry"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/renderer"
	"github.com/Faultbox/pendulum-gl/internal/engine/texture"
	"github.com/Faultbox/pendulum-gl/internal/logger"
)

// State is the device lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
	Lost
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Lost:
		return "lost"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAcquireInProgress is returned when an acquisition is requested while
// another one is still running.
var ErrAcquireInProgress = errors.New("device acquisition already in progress")

// Surface is the rendering surface that hands out device contexts.
type Surface interface {
	// AcquireDevice creates a fresh context, replacing any previous one.
	AcquireDevice() (gpu.Device, error)
	// Size returns the drawable size in pixels.
	Size() (width, height int)
}

// TextureSource loads background images off the frame thread.
// *texture.Loader implements it.
type TextureSource interface {
	Request(path string) texture.Ticket
	Poll() []texture.Result
}

// FrameFunc draws one frame with the current device and resources.
type FrameFunc func(dev gpu.Device, res *renderer.Resources)

// Overlay is drawn after every frame with the device it was created on.
type Overlay interface {
	Draw(dev gpu.Device)
	// Release deletes the overlay's device objects while the device lives.
	Release(dev gpu.Device)
}

// OverlayFunc creates the overlay for a freshly acquired device.
type OverlayFunc func(dev gpu.Device) (Overlay, error)

// Options configure a Manager.
type Options struct {
	Surface    Surface
	Scheduler  *Scheduler
	Textures   TextureSource
	Background string // empty disables the background image
	Meshes     renderer.Meshes
	Length     func() float64
	Frame      FrameFunc
	Overlay    OverlayFunc // optional
}

// Manager owns the device and its Resources and moves them through the
// Uninitialized, Ready, Lost and Failed states. Close moves it to Closed,
// which no signal leaves. All methods run on the frame thread.
type Manager struct {
	opts Options
	log  *zap.Logger

	state     State
	dev       gpu.Device
	res       *renderer.Resources
	overlay   Overlay
	ticket    texture.Ticket
	frameID   FrameID
	acquiring bool

	acquisitions int
}

// NewManager returns a manager in the Uninitialized state.
func NewManager(opts Options) *Manager {
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}
	return &Manager{
		opts: opts,
		log:  logger.Named("lifecycle"),
	}
}

// State returns the current state.
func (m *Manager) State() State {
	return m.state
}

// Device returns the live device, or nil unless Ready.
func (m *Manager) Device() gpu.Device {
	if m.state != Ready {
		return nil
	}
	return m.dev
}

// Resources returns the live resources, or nil unless Ready.
func (m *Manager) Resources() *renderer.Resources {
	if m.state != Ready {
		return nil
	}
	return m.res
}

// Acquisitions returns how many acquisition sequences have completed.
func (m *Manager) Acquisitions() int {
	return m.acquisitions
}

// Init runs the first acquisition. Any failure is terminal and moves the
// manager to Failed.
func (m *Manager) Init() error {
	if m.state != Uninitialized {
		return fmt.Errorf("init in state %s", m.state)
	}
	if err := m.acquire(); err != nil {
		if !errors.Is(err, ErrAcquireInProgress) {
			m.setState(Failed)
		}
		return err
	}
	m.setState(Ready)
	return nil
}

// HandleDeviceLost stops frame scheduling and forgets every handle of the
// dead device. It is a no-op unless Ready.
func (m *Manager) HandleDeviceLost() {
	if m.state != Ready {
		m.log.Debug("device lost ignored", zap.Stringer("state", m.state))
		return
	}
	m.cancelFrame()

	// The handles died with the context; deleting them would touch it.
	m.dev = nil
	m.res = nil
	m.overlay = nil
	m.ticket = 0

	m.setState(Lost)
}

// HandleDeviceRestored re-runs the full acquisition sequence. On failure the
// manager stays Lost, so a later restore signal can try again. It is a no-op
// unless Lost.
func (m *Manager) HandleDeviceRestored() error {
	if m.state != Lost {
		m.log.Debug("device restored ignored", zap.Stringer("state", m.state))
		return nil
	}
	if err := m.acquire(); err != nil {
		m.log.Warn("device restore failed", zap.Error(err))
		return err
	}
	m.setState(Ready)
	return nil
}

// RegenerateLine rebuilds the rod buffer for a new length. Without a live
// device the new length is picked up by the next acquisition.
func (m *Manager) RegenerateLine(length float64) {
	if m.state != Ready {
		return
	}
	m.res.ReplaceLine(m.dev, geometry.Line(float32(length)))
}

// Resize updates the viewport of a live device.
func (m *Manager) Resize(width, height int) {
	if m.state != Ready {
		return
	}
	m.dev.Viewport(width, height)
}

// Close stops scheduling and releases the resources of a live device.
// Calling it again is a no-op.
func (m *Manager) Close() {
	if m.state == Closed {
		return
	}
	m.cancelFrame()
	if m.state == Ready {
		if m.overlay != nil {
			m.overlay.Release(m.dev)
		}
		if m.res != nil {
			m.res.Release(m.dev)
		}
	}
	m.dev = nil
	m.res = nil
	m.overlay = nil
	m.ticket = 0
	m.setState(Closed)
}

func (m *Manager) setState(s State) {
	if m.state == s {
		return
	}
	m.log.Info("device state changed",
		zap.Stringer("from", m.state),
		zap.Stringer("to", s),
	)
	m.state = s
}

// acquire creates a device and everything drawn with it, then starts the
// frame loop. Nothing is kept if any step fails.
func (m *Manager) acquire() error {
	if m.acquiring {
		return ErrAcquireInProgress
	}
	m.acquiring = true
	defer func() { m.acquiring = false }()

	dev, err := m.opts.Surface.AcquireDevice()
	if err != nil {
		m.log.Error("device acquisition failed", zap.Error(err))
		return err
	}
	info := dev.Info()
	m.log.Info("device acquired",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("vendor", info.Vendor),
	)

	length := 0.0
	if m.opts.Length != nil {
		length = m.opts.Length()
	}
	res, err := renderer.NewResources(dev, m.opts.Meshes, length)
	if err != nil {
		m.logResourceError(err)
		return err
	}
	var overlay Overlay
	if m.opts.Overlay != nil {
		overlay, err = m.opts.Overlay(dev)
		if err != nil {
			res.Release(dev)
			m.logResourceError(err)
			return err
		}
	}

	dev.EnableDepthTest()
	dev.Viewport(m.opts.Surface.Size())

	m.dev = dev
	m.res = res
	m.overlay = overlay
	m.ticket = 0
	if m.opts.Background != "" && m.opts.Textures != nil {
		m.ticket = m.opts.Textures.Request(m.opts.Background)
	}

	m.scheduleFrame()
	m.acquisitions++
	return nil
}

func (m *Manager) logResourceError(err error) {
	var compileErr *gpu.ShaderCompileError
	var linkErr *gpu.LinkError
	switch {
	case errors.As(err, &compileErr):
		m.log.Error("shader compilation failed",
			zap.String("stage", compileErr.Stage),
			zap.String("log", compileErr.Log),
		)
	case errors.As(err, &linkErr):
		m.log.Error("program link failed", zap.String("log", linkErr.Log))
	default:
		m.log.Error("resource creation failed", zap.Error(err))
	}
}

func (m *Manager) scheduleFrame() {
	m.frameID = m.opts.Scheduler.Request(m.frame)
}

func (m *Manager) cancelFrame() {
	if m.frameID != 0 {
		m.opts.Scheduler.Cancel(m.frameID)
		m.frameID = 0
	}
}

func (m *Manager) frame() {
	m.frameID = 0
	if m.state != Ready {
		return
	}
	m.pollTextures()
	if m.opts.Frame != nil {
		m.opts.Frame(m.dev, m.res)
	}
	// The frame function may have reported a device loss.
	if m.state == Ready && m.overlay != nil {
		m.overlay.Draw(m.dev)
	}
	if m.state == Ready {
		m.scheduleFrame()
	}
}

// pollTextures uploads the background once its load finishes. Results of
// loads requested on an earlier device are dropped.
func (m *Manager) pollTextures() {
	if m.opts.Textures == nil {
		return
	}
	for _, r := range m.opts.Textures.Poll() {
		if r.Ticket != m.ticket {
			m.log.Debug("stale texture load dropped", zap.String("path", r.Path))
			continue
		}
		m.ticket = 0
		if r.Err != nil {
			m.log.Warn("background texture unavailable", zap.Error(r.Err))
			continue
		}
		tex, err := m.dev.CreateTexture(r.Image)
		if err != nil {
			m.log.Warn("background texture unavailable",
				zap.Error(&gpu.TextureLoadError{Path: r.Path, Err: err}))
			continue
		}
		m.res.SetBackground(tex)
		m.log.Info("background texture ready",
			zap.String("path", r.Path),
			zap.Int("width", r.Image.Rect.Dx()),
			zap.Int("height", r.Image.Rect.Dy()),
		)
	}
}
