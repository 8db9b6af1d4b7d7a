// Package surface keeps track of the surfaces that an application has
// open and reconciles the state that the application asks for with
// the state that the compositor negotiates for them.
//
// Every surface has two identities. An ID is assigned by the
// application when the surface is created and is never reused. An
// ObjectID is the protocol ID of the wl_surface backing it and is only
// valid while that object is alive. The Registry is keyed by ID and
// keeps a secondary table from ObjectID to ID that is only ever
// modified together with the primary one.
package surface

import (
	"fmt"
	"sync/atomic"
)

// ID is the logical identity of a surface. The zero ID is never
// assigned to a surface.
type ID uint64

var lastID atomic.Uint64

// Unique returns an ID that has never been returned before and that
// is greater than every ID that a Registry has accepted.
func Unique() ID {
	return ID(lastID.Add(1))
}

// reserve keeps Unique from returning id or anything below it.
func reserve(id ID) {
	for {
		last := lastID.Load()
		if uint64(id) <= last || lastID.CompareAndSwap(last, uint64(id)) {
			return
		}
	}
}

// ObjectID is the protocol identity of a surface's wl_surface.
type ObjectID uint32

// Kind is the role that a surface was created with.
type Kind int

const (
	Window Kind = iota
	LayerSurface
	Popup
)

func (k Kind) String() string {
	switch k {
	case Window:
		return "window"
	case LayerSurface:
		return "layer surface"
	case Popup:
		return "popup"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Size is a size in surface-local, unscaled coordinates.
type Size struct {
	W, H uint32
}

func (s Size) IsZero() bool {
	return s.W == 0 || s.H == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%vx%v", s.W, s.H)
}

// State is a bitmask of window states reported with a configure.
type State uint32

const (
	StateMaximized State = 1 << iota
	StateFullscreen
	StateResizing
	StateActivated
	StateTiled
	StateSuspended
)

func (s State) Has(o State) bool {
	return s&o == o
}

// Configure is a configuration proposed by the compositor.
type Configure struct {
	// Serial is the serial to acknowledge. It is zero for
	// configurations that did not come from the compositor, such as a
	// client-side resize of a window.
	Serial uint32

	Size Size

	// X and Y are the position of a popup relative to its parent.
	X, Y int32

	State State

	// First is set on the first configuration a surface receives.
	First bool
}
