package ui2d

// InputState holds the input the UI sees during one frame. The owner writes
// raw values between frames; Context.Begin derives the edges.
type InputState struct {
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown bool

	// Edges computed by Update.
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked is set from button-down events so a press and release
	// inside one frame still counts. The first widget hit consumes it.
	MouseLeftClicked bool

	// Text typed since the last frame.
	TextInput string

	// Keys pressed since the last frame.
	Backspaces int
	KeyEnter   bool
	KeyEscape  bool

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Update prepares input state for a new frame.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.MouseLeftClicked = false
	i.TextInput = ""
	i.Backspaces = 0
	i.KeyEnter = false
	i.KeyEscape = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(r Rect) bool {
	return r.Contains(i.MouseX, i.MouseY)
}

// clicked reports a left click this frame from either source.
func (i *InputState) clicked() bool {
	return i.MouseLeftPressed || i.MouseLeftClicked
}
