// Package input translates SDL2 events into application events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/pendulum-gl/internal/controls"
)

// EventType identifies an application event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventDeviceReset
	EventMouseMotion
	EventMouseButton
	EventTextInput
)

// Event represents a processed input event. Mouse positions are in window
// coordinates.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int

	X, Y   int
	Button uint8
	Down   bool
	Text   string
}

// Input collects the events of one loop iteration.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains the SDL queue. It returns true once a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type:   EventKeyDown,
					Key:    e.Keysym.Scancode,
					Repeat: e.Repeat != 0,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouseMotion,
				X:    int(e.X),
				Y:    int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseButton,
				X:      int(e.X),
				Y:      int(e.Y),
				Button: e.Button,
				Down:   e.State == sdl.PRESSED,
			})

		case *sdl.TextInputEvent:
			i.events = append(i.events, Event{
				Type: EventTextInput,
				Text: e.GetText(),
			})

		case *sdl.RenderEvent:
			// Only sent by SDL_Renderer backends; a context from
			// GLCreateContext never reports it.
			if e.Type == sdl.RENDER_DEVICE_RESET {
				i.events = append(i.events, Event{Type: EventDeviceReset})
			}
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this iteration.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

var parameterKeys = map[sdl.Scancode]controls.Key{
	sdl.SCANCODE_UP:   controls.KeyUp,
	sdl.SCANCODE_DOWN: controls.KeyDown,
	sdl.SCANCODE_G:    controls.KeyG,
	sdl.SCANCODE_B:    controls.KeyB,
	sdl.SCANCODE_D:    controls.KeyD,
	sdl.SCANCODE_C:    controls.KeyC,
	sdl.SCANCODE_L:    controls.KeyL,
	sdl.SCANCODE_K:    controls.KeyK,
	sdl.SCANCODE_S:    controls.KeyS,
	sdl.SCANCODE_A:    controls.KeyA,
	sdl.SCANCODE_1:    controls.Key1,
	sdl.SCANCODE_2:    controls.Key2,
	sdl.SCANCODE_3:    controls.Key3,
	sdl.SCANCODE_4:    controls.Key4,
	sdl.SCANCODE_5:    controls.Key5,
	sdl.SCANCODE_6:    controls.Key6,
}

// ParameterKey maps a scancode to its parameter binding, or KeyNone.
func ParameterKey(sc sdl.Scancode) controls.Key {
	return parameterKeys[sc]
}
