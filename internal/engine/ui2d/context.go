package ui2d

// Layout constants in screen pixels.
const (
	TextScale   = float32(2)
	titleBarH   = float32(25)
	padding     = float32(8)
	spacing     = float32(4)
	defaultRowH = float32(28)
)

// Context lays out widgets for one frame at a time and records them into a
// DrawList. Widget state (focus, window positions) lives here, so it
// survives the loss of the device that draws the list.
type Context struct {
	list  DrawList
	input *InputState

	width, height int

	// Active widget tracking for interaction
	hotWidget    string
	activeWidget string
	focused      string // text input receiving keys
	focusTaken   bool   // a text input took the focus this frame

	windows       map[string]*WindowState
	currentWindow *WindowState

	// Widget rectangles laid out this frame, by full ID.
	rects map[string]Rect

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Moving bool
}

// NewContext creates a UI context for a screen of the given size.
func NewContext(width, height int) *Context {
	return &Context{
		input:   &InputState{},
		width:   width,
		height:  height,
		windows: make(map[string]*WindowState),
		rects:   make(map[string]Rect),
	}
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.width = width
	c.height = height
}

// ScreenSize returns the screen size the context lays out for.
func (c *Context) ScreenSize() (int, int) {
	return c.width, c.height
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// DrawList returns the list recorded by the last frame.
func (c *Context) DrawList() *DrawList {
	return &c.list
}

// WantsKeyboard reports whether a text input has focus.
func (c *Context) WantsKeyboard() bool {
	return c.focused != ""
}

// WidgetRect returns where the widget with the given full ID was laid out
// in the last frame.
func (c *Context) WidgetRect(id string) (Rect, bool) {
	r, ok := c.rects[id]
	return r, ok
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.list.Reset()
	c.hotWidget = ""
	c.focusTaken = false
	clear(c.rects)
}

// End finishes the UI frame.
func (c *Context) End() {
	// A click no widget consumed drops the focus.
	if c.input.clicked() && !c.focusTaken {
		c.focused = ""
	}
	c.input.EndFrame()
}

// BeginWindow starts a new window. The position given on the first call is
// kept until the user drags the window by its title bar.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y}
		c.windows[id] = ws
	}
	ws.W = w
	ws.H = h
	c.currentWindow = ws

	// Drag by the motion since the previous frame, then look for a new grab.
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	titleBarRect := Rect{ws.X, ws.Y, ws.W, titleBarH}
	if c.input.MouseLeftPressed && titleBarRect.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	}
	if c.input.MouseLeftReleased {
		ws.Moving = false
		if c.activeWidget == id+"_titlebar" {
			c.activeWidget = ""
		}
	}
	c.rects[id] = Rect{ws.X, ws.Y, ws.W, ws.H}

	c.list.AddPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.list.AddRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)

	_, textH := MeasureText(title, TextScale)
	c.list.AddText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, TextScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + spacing
	c.rowH = height
}

// place reserves width on the current row and returns the widget rect.
func (c *Context) place(id string, width float32) (string, Rect) {
	h := c.rowH
	if h == 0 {
		h = defaultRowH
	}
	if width == 0 {
		width = c.currentWindow.X + c.currentWindow.W - padding - c.cursorX
	}
	fullID := c.currentWindow.ID + "_" + id
	r := Rect{c.cursorX, c.cursorY, width, h}
	c.rects[fullID] = r
	c.cursorX += width + spacing
	return fullID, r
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}
	fullID, r := c.place(id, width)
	clicked := c.press(fullID, r)

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if c.hotWidget == fullID {
		color = ColorButtonHover
	}
	c.list.AddRect(r.X, r.Y, r.W, r.H, color)
	c.list.AddRectOutline(r.X, r.Y, r.W, r.H, 1, ColorPanelBorder)

	textW, textH := MeasureText(label, TextScale)
	c.list.AddText(r.X+(r.W-textW)/2, r.Y+(r.H-textH)/2, label, TextScale, ColorText)
	return clicked
}

// Swatch draws a button filled with color and returns true if clicked.
func (c *Context) Swatch(id string, width float32, color Color, selected bool) bool {
	if c.currentWindow == nil {
		return false
	}
	fullID, r := c.place(id, width)
	clicked := c.press(fullID, r)

	c.list.AddRect(r.X, r.Y, r.W, r.H, color)
	border := color.Darken(0.5)
	if selected {
		border = ColorWhite
	} else if c.hotWidget == fullID {
		border = ColorHighlight
	}
	c.list.AddRectOutline(r.X, r.Y, r.W, r.H, 2, border)
	return clicked
}

// press handles click-on-press for buttons. A click is consumed by the
// first widget under the mouse.
func (c *Context) press(fullID string, r Rect) bool {
	if !c.input.IsMouseInRect(r) {
		if c.activeWidget == fullID && c.input.MouseLeftReleased {
			c.activeWidget = ""
		}
		return false
	}
	c.hotWidget = fullID
	clicked := false
	if c.input.clicked() {
		c.activeWidget = fullID
		clicked = true
		c.input.MouseLeftClicked = false
		c.input.MouseLeftPressed = false
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}
	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	h := c.rowH
	if h == 0 {
		h = defaultRowH
	}
	w, textH := MeasureText(text, TextScale)
	c.list.AddText(c.cursorX, c.cursorY+(h-textH)/2, text, TextScale, color)
	c.cursorX += w + spacing
}

// TextInput draws a single-line text field of at most maxLen runes.
// Returns (current value, submitted). Enter submits and drops the focus;
// Escape drops the focus without submitting.
func (c *Context) TextInput(id string, width float32, value string, maxLen int) (string, bool) {
	if c.currentWindow == nil {
		return value, false
	}
	fullID, r := c.place(id, width)

	if c.input.IsMouseInRect(r) {
		c.hotWidget = fullID
		if c.input.clicked() {
			c.focused = fullID
			c.focusTaken = true
			c.input.MouseLeftClicked = false
			c.input.MouseLeftPressed = false
		}
	}

	submitted := false
	focused := c.focused == fullID
	if focused {
		runes := []rune(value)
		for n := c.input.Backspaces; n > 0 && len(runes) > 0; n-- {
			runes = runes[:len(runes)-1]
		}
		for _, ch := range c.input.TextInput {
			if maxLen > 0 && len(runes) >= maxLen {
				break
			}
			runes = append(runes, ch)
		}
		value = string(runes)

		if c.input.KeyEnter {
			submitted = true
			c.focused = ""
		}
		if c.input.KeyEscape {
			c.focused = ""
		}
	}

	c.list.AddRect(r.X, r.Y, r.W, r.H, ColorInputBg)
	borderColor := ColorInputBorder
	if focused {
		borderColor = ColorHighlight
	}
	c.list.AddRectOutline(r.X, r.Y, r.W, r.H, 1, borderColor)

	_, textH := MeasureText(value, TextScale)
	textY := r.Y + (r.H-textH)/2
	c.list.AddText(r.X+4, textY, value, TextScale, ColorText)

	if focused {
		textW, _ := MeasureText(value, TextScale)
		c.list.AddRect(r.X+4+textW+2, r.Y+4, 2, r.H-8, ColorText)
	}
	return value, submitted
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + spacing
	c.rowH = 0
	x := c.currentWindow.X + padding
	w := c.currentWindow.W - 2*padding
	c.list.AddRect(x, c.cursorY, w, 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowHeight returns the height of a window holding rows of the given
// heights.
func WindowHeight(rows ...float32) float32 {
	h := titleBarH + 2*padding
	for _, r := range rows {
		h += r + spacing
	}
	return h
}

// Center returns the middle of the rectangle.
func (r Rect) Center() (float32, float32) {
	return r.X + r.W/2, r.Y + r.H/2
}
