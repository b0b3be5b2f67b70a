// Package ui draws the parameter panel over the pendulum and turns clicks and
// typed colors into parameter changes.
package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/pendulum-gl/internal/controls"
	"github.com/Faultbox/pendulum-gl/internal/engine/gpu"
	"github.com/Faultbox/pendulum-gl/internal/engine/ui2d"
	"github.com/Faultbox/pendulum-gl/internal/logger"
	"github.com/Faultbox/pendulum-gl/internal/pendulum"
)

// Widget IDs, exported so callers can locate widgets with WidgetID.
const (
	WindowID   = "params"
	HexInputID = "color_hex"
	SetColorID = "color_set"
)

const (
	panelX     = 16
	panelY     = 16
	panelWidth = 330
	rowHeight  = 28
	noteHeight = 20
	buttonW    = 36
	hexWidth   = 108
	hexMaxLen  = 7
)

var adjustmentLabels = map[controls.Setting]string{
	controls.Length:         "LENGTH",
	controls.Gravity:        "GRAVITY",
	controls.Damping:        "DAMPING",
	controls.LightIntensity: "LIGHT",
	controls.Shininess:      "SHINE",
}

var adjustmentFormats = map[controls.Setting]string{
	controls.Damping: "%.3f",
}

// DecreaseID returns the ID of the button that steps s down.
func DecreaseID(s controls.Setting) string { return s.String() + "_dec" }

// IncreaseID returns the ID of the button that steps s up.
func IncreaseID(s controls.Setting) string { return s.String() + "_inc" }

// PresetID returns the ID of the i-th color preset swatch.
func PresetID(i int) string { return fmt.Sprintf("preset_%d", i) }

// WidgetID returns the full ID a widget is laid out under.
func WidgetID(id string) string { return WindowID + "_" + id }

// Panel shows the live parameters and edits them through controls.Apply.
// It holds no device objects; Attach creates them per device.
type Panel struct {
	ctx     *ui2d.Context
	params  *pendulum.Params
	log     *zap.Logger
	visible bool

	hex    string // contents of the color field
	status string // last rejected change
}

// NewPanel creates a visible panel for a screen of the given size in
// window coordinates.
func NewPanel(params *pendulum.Params, width, height int) *Panel {
	return &Panel{
		ctx:     ui2d.NewContext(width, height),
		params:  params,
		log:     logger.Named("ui"),
		visible: true,
		hex:     pendulum.FormatHexColor(params.Render.PendulumColor),
	}
}

// Input returns the input state the owner feeds between frames.
func (p *Panel) Input() *ui2d.InputState {
	return p.ctx.Input()
}

// Context returns the widget context.
func (p *Panel) Context() *ui2d.Context {
	return p.ctx
}

// Resize updates the screen size in window coordinates.
func (p *Panel) Resize(width, height int) {
	p.ctx.Resize(width, height)
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Toggle shows or hides the panel.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// WantsKeyboard reports whether typed keys belong to the color field.
func (p *Panel) WantsKeyboard() bool {
	return p.visible && p.ctx.WantsKeyboard()
}

// Status returns the message about the last rejected change, if any.
func (p *Panel) Status() string {
	return p.status
}

// Build lays out one frame and returns the changes the user asked for.
func (p *Panel) Build() []controls.Event {
	p.ctx.Begin()
	defer p.ctx.End()
	if !p.visible {
		return nil
	}

	if !p.ctx.WantsKeyboard() {
		p.hex = pendulum.FormatHexColor(p.params.Render.PendulumColor)
	}

	rows := make([]float32, 0, len(controls.Adjustments)+4)
	for range controls.Adjustments {
		rows = append(rows, rowHeight)
	}
	rows = append(rows, rowHeight, rowHeight)
	if p.status != "" {
		rows = append(rows, noteHeight)
	}
	rows = append(rows, noteHeight)

	var events []controls.Event
	p.ctx.BeginWindow(WindowID, panelX, panelY, panelWidth, ui2d.WindowHeight(rows...), "PENDULUM")

	for _, adj := range controls.Adjustments {
		p.ctx.Row(rowHeight)
		p.ctx.Label(p.valueLabel(adj.Setting))
		if p.ctx.Button(DecreaseID(adj.Setting), buttonW, "-") {
			events = p.keyEvent(events, adj.Decrease)
		}
		if p.ctx.Button(IncreaseID(adj.Setting), buttonW, "+") {
			events = p.keyEvent(events, adj.Increase)
		}
	}

	p.ctx.Row(rowHeight)
	p.ctx.Label("COLOR")
	p.ctx.Swatch("color_current", rowHeight, ui2d.RGB(p.params.Render.PendulumColor), false)
	hex, submitted := p.ctx.TextInput(HexInputID, hexWidth, p.hex, hexMaxLen)
	p.hex = hex
	if p.ctx.Button(SetColorID, 48, "SET") || submitted {
		events = append(events, controls.Event{Setting: controls.PendulumColor, Color: normalizeHex(p.hex)})
	}

	p.ctx.Row(rowHeight)
	current := pendulum.FormatHexColor(p.params.Render.PendulumColor)
	for i, preset := range controls.ColorPresets {
		rgb, err := pendulum.ParseHexColor(preset)
		if err != nil {
			continue
		}
		if p.ctx.Swatch(PresetID(i), buttonW, ui2d.RGB(rgb), preset == current) {
			events = append(events, controls.Event{Setting: controls.PendulumColor, Color: preset})
		}
	}

	if p.status != "" {
		p.ctx.Row(noteHeight)
		p.ctx.LabelColored(p.status, ui2d.ColorError)
	}
	p.ctx.Row(noteHeight)
	p.ctx.LabelColored("TAB HIDE  F5 SAVE", ui2d.ColorTextDim)

	p.ctx.EndWindow()
	return events
}

// Apply dispatches events to the parameters. A rejected change is logged
// and shown on the panel until the next accepted one.
func (p *Panel) Apply(events []controls.Event) {
	for _, ev := range events {
		if err := controls.Apply(p.params, ev); err != nil {
			p.log.Warn("parameter change rejected", zap.Error(err))
			p.status = "INVALID " + settingLabel(ev.Setting)
			continue
		}
		p.status = ""
		p.log.Info("parameter changed",
			zap.Stringer("setting", ev.Setting),
			zap.Float64("value", ev.Value),
			zap.String("color", ev.Color),
		)
	}
}

func (p *Panel) keyEvent(events []controls.Event, k controls.Key) []controls.Event {
	if ev, ok := controls.EventForKey(k, p.params); ok {
		events = append(events, ev)
	}
	return events
}

func (p *Panel) valueLabel(s controls.Setting) string {
	v, _ := controls.Value(p.params, s)
	format := adjustmentFormats[s]
	if format == "" {
		format = "%.2f"
	}
	return fmt.Sprintf("%-7s %8s", settingLabel(s), fmt.Sprintf(format, v))
}

func settingLabel(s controls.Setting) string {
	if l, ok := adjustmentLabels[s]; ok {
		return l
	}
	return strings.ToUpper(strings.ReplaceAll(s.String(), "_", " "))
}

// normalizeHex adds the leading '#' when it was not typed.
func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return strings.ToUpper(s)
}

// Overlay draws the panel with device objects created for one device.
type Overlay struct {
	panel    *Panel
	renderer *ui2d.Renderer
}

// Attach creates the panel's device objects on dev.
func (p *Panel) Attach(dev gpu.Device) (*Overlay, error) {
	r, err := ui2d.NewRenderer(dev)
	if err != nil {
		return nil, err
	}
	return &Overlay{panel: p, renderer: r}, nil
}

// Draw builds the panel, applies the requested changes and draws it over
// the current frame.
func (o *Overlay) Draw(dev gpu.Device) {
	o.panel.Apply(o.panel.Build())
	w, h := o.panel.ctx.ScreenSize()
	o.renderer.Render(dev, o.panel.ctx.DrawList(), w, h)
}

// Release deletes the device objects. Only valid while dev is alive.
func (o *Overlay) Release(dev gpu.Device) {
	o.renderer.Release(dev)
}
