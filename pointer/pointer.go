// Package pointer contains utilities for handling pointer input.
package pointer

import "fmt"

// Button indicates a mouse button.
type Button uint32

// These values were pulled from linux/input-event-codes.h.
const (
	ButtonLeft Button = 0x110 + iota
	ButtonRight
	ButtonMiddle
	ButtonSide
	ButtonExtra
	ButtonForward
	ButtonBack
	ButtonTask
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonSide:
		return "side"
	case ButtonExtra:
		return "extra"
	case ButtonForward:
		return "forward"
	case ButtonBack:
		return "back"
	case ButtonTask:
		return "task"
	}

	return fmt.Sprintf("Button(%#x)", uint32(b))
}

// Interaction is what the pointer is currently being used for. It
// decides which cursor image is shown.
type Interaction int

const (
	Idle Interaction = iota
	Pointer
	Grab
	Text
	Crosshair
	Working
	Grabbing
	ResizeHorizontal
	ResizeVertical
	NotAllowed
)

var cursorNames = [...]string{
	Idle:             "left_ptr",
	Pointer:          "hand2",
	Grab:             "openhand",
	Text:             "xterm",
	Crosshair:        "crosshair",
	Working:          "watch",
	Grabbing:         "closedhand",
	ResizeHorizontal: "sb_h_double_arrow",
	ResizeVertical:   "sb_v_double_arrow",
	NotAllowed:       "crossed_circle",
}

// CursorName returns the name of the cursor theme image for the
// interaction. Unknown interactions use the default arrow.
func (i Interaction) CursorName() string {
	if i < 0 || int(i) >= len(cursorNames) {
		return cursorNames[Idle]
	}
	return cursorNames[i]
}
