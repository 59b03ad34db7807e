// Package input is the boundary between OS input capture and the simulation.
// Drivers push raw samples into a Queue from any goroutine; the input system
// drains it once per tick into events and level tables.
package input

import (
	"fmt"

	"github.com/topdown/shooter/internal/vmath"
)

type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	}
	return fmt.Sprintf("mouse(%d)", uint8(b))
}

type Key uint16

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
)

var keyNames = [...]string{
	KeyUnknown: "unknown",
	KeySpace:   "space",
	KeyEscape:  "escape",
	KeyEnter:   "enter",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyQ:       "q",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// CursorMoved carries the pointer in window space: origin at the
// bottom-left corner, +Y up, in logical pixels.
type CursorMoved struct {
	Position vmath.Vec2
}

type MouseButtonInput struct {
	Button MouseButton
	State  ButtonState
}

type KeyboardInput struct {
	Key   Key
	State ButtonState
}
