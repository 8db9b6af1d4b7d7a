// Package event defines the events that protocol handlers push into
// the event loop's sink. They are close to the protocol events they
// come from, with object references replaced by IDs so that they can
// outlive the objects.
package event

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/surface"
)

// Event is an event collected from the protocol.
type Event interface {
	// Target returns the surface that the event is directed at, if
	// any.
	Target() (surface.ObjectID, bool)
}

type SeatKind int

const (
	SeatNew SeatKind = iota
	SeatRemove
	CapabilityNew
	CapabilityRemove
)

type Capability int

const (
	CapabilityKeyboard Capability = iota
	CapabilityPointer
	CapabilityTouch
)

// Seat reports seats and their capabilities coming and going. Seat
// is the protocol ID of the wl_seat.
type Seat struct {
	Seat       uint32
	Kind       SeatKind
	Capability Capability
}

func (ev Seat) Target() (surface.ObjectID, bool) { return 0, false }

type PointerKind int

const (
	PointerEnter PointerKind = iota
	PointerLeave
	PointerMotion
	PointerPress
	PointerRelease
	PointerAxis
)

// Axis is the scroll amount along one axis.
type Axis struct {
	// Absolute is the distance scrolled in surface-local coordinates.
	Absolute float64

	// Discrete is the number of steps scrolled for sources that
	// scroll in steps, such as mouse wheels.
	Discrete int32

	Stop bool
}

func (a Axis) IsZero() bool {
	return a == Axis{}
}

// Pointer is a pointer event. Axis events are collected until the
// end of the pointer frame that they belong to and are reported as a
// single event.
type Pointer struct {
	Seat    uint32
	Surface surface.ObjectID
	Kind    PointerKind
	Serial  uint32
	Time    uint32

	// X and Y are the position of the pointer in surface-local
	// coordinates.
	X, Y float64

	Button pointer.Button

	Horizontal, Vertical Axis

	Source    wl.PointerAxisSource
	HasSource bool
}

func (ev Pointer) Target() (surface.ObjectID, bool) { return ev.Surface, ev.Surface != 0 }

type KeyboardKind int

const (
	KeyboardEnter KeyboardKind = iota
	KeyboardLeave
	KeyPress
	KeyRelease
	KeyboardModifiers
	KeyboardRepeatInfo
)

// Modifiers is the raw xkb modifier state of a keyboard.
type Modifiers struct {
	Depressed, Latched, Locked, Group uint32
}

// Effective returns the mask of modifiers that are currently active.
func (m Modifiers) Effective() uint32 {
	return m.Depressed | m.Latched | m.Locked
}

// Keyboard is a keyboard event. Key events are directed at the
// surface that had keyboard focus when they arrived.
type Keyboard struct {
	Seat    uint32
	Surface surface.ObjectID
	Kind    KeyboardKind
	Serial  uint32
	Time    uint32

	// Key is an evdev key code.
	Key uint32

	// Keys holds the keys that were held when focus entered the
	// surface.
	Keys []uint32

	Modifiers Modifiers

	// Rate and Delay are the key repeat settings, in characters per
	// second and milliseconds.
	Rate, Delay int32
}

func (ev Keyboard) Target() (surface.ObjectID, bool) { return ev.Surface, ev.Surface != 0 }

type SurfaceKind int

const (
	// Frame signals that it is a good time to draw the next frame.
	Frame SurfaceKind = iota

	// ConfigureBounds reports the largest size a window can usefully
	// be.
	ConfigureBounds

	Repositioned
)

// Surface is an event about a surface that does not go through
// reconciliation.
type Surface struct {
	Surface surface.ObjectID
	Kind    SurfaceKind
	Time    uint32
	Bounds  surface.Size
	Token   uint32
}

func (ev Surface) Target() (surface.ObjectID, bool) { return ev.Surface, true }

type OutputKind int

const (
	OutputNew OutputKind = iota
	OutputUpdate
	OutputRemove
)

// OutputInfo describes an output as of its last done event.
type OutputInfo struct {
	Name        string
	Description string
	Make        string
	Model       string

	X, Y int32

	// PhysicalWidth and PhysicalHeight are in millimeters.
	PhysicalWidth, PhysicalHeight int32

	Width, Height int32

	// Refresh is in mHz.
	Refresh int32

	Scale     int32
	Transform wl.OutputTransform
}

// Output reports outputs coming, changing, and going. Output is the
// registry name of the wl_output global.
type Output struct {
	Output uint32
	Kind   OutputKind
	Info   OutputInfo
}

func (ev Output) Target() (surface.ObjectID, bool) { return 0, false }
