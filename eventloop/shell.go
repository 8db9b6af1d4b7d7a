package eventloop

import (
	"errors"
	"time"

	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/surface"
)

var (
	// ErrMissingGlobal is returned by New when the compositor does not
	// provide a global that the loop can't work without.
	ErrMissingGlobal = errors.New("required global missing")

	// ErrUnsupported is returned when creating a surface of a kind
	// that the compositor does not support.
	ErrUnsupported = errors.New("not supported by the compositor")

	// ErrWrongKind is returned when a surface-specific operation is
	// used on a surface of the wrong kind.
	ErrWrongKind = errors.New("wrong kind of surface")

	// ErrLoopClosed is returned by Proxy.Send after the loop has
	// exited.
	ErrLoopClosed = errors.New("event loop closed")
)

// Transport is the connection that the loop reads events from.
// *wl.Display implements it.
type Transport interface {
	Flush() error
	DispatchPending() (int, error)
	Dispatch(timeout time.Duration, wake <-chan struct{}) (int, error)
}

// Role is the set of protocol objects backing a surface.
type Role interface {
	// Object returns the protocol ID of the wl_surface.
	Object() surface.ObjectID

	AckConfigure(serial uint32)

	// Commit declares the surface's geometry to be size and commits
	// the surface.
	Commit(size surface.Size)

	SetScale(scale int32)

	// Frame asks for a frame event for the surface.
	Frame()

	Destroy()
}

// WindowRole is the Role of a window.
type WindowRole interface {
	Role
	SetTitle(title string)
	SetAppID(id string)
	SetMinSize(size surface.Size)
	SetMaxSize(size surface.Size)
	SetMaximized(maximized bool)
	SetFullscreen(fullscreen bool)
	SetMinimized()

	// Move starts an interactive move using the latest input serial
	// of seat.
	Move(seat *Seat)
}

// LayerRole is the Role of a layer surface.
type LayerRole interface {
	Role
	SetSize(size surface.Size)
	SetAnchor(anchor layer.Anchor)
	SetMargin(margin layer.Margin)
	SetExclusiveZone(zone int32)
	SetKeyboardInteractivity(ki layer.KeyboardInteractivity)
	SetLayer(l layer.Layer) bool
}

// PopupRole is the Role of a popup.
type PopupRole interface {
	Role
	Reposition(pos surface.Positioner, token uint32)
	Grab(seat *Seat)
}

// Shell creates the protocol objects for new surfaces. parent is only
// set for popups.
type Shell interface {
	NewRole(kind surface.Kind, params surface.Params, parent Role) (Role, error)
}
