// Package app runs a retained-mode UI on top of the event loop. It
// routes input to the widget tree of each surface, feeds the messages
// that the trees produce to the application, and carries out the
// commands that the application returns.
package app

import (
	"deedles.dev/wlui/command"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/native"
	"deedles.dev/wlui/surface"
)

// Application is the state of a program. M is the type of its
// messages.
type Application[M any] interface {
	// Init returns the command to run when the loop starts.
	Init() command.Command[M]

	// Update handles a message and returns the command to run next.
	Update(msg M) command.Command[M]

	// View builds the widget tree of a surface.
	View(id surface.ID) UserInterface[M]

	// Title returns the title of a window. It is checked after every
	// update.
	Title(id surface.ID) string

	// CloseRequested returns the message that the application is sent
	// when the compositor asks for a window to be closed.
	CloseRequested(id surface.ID) M

	// ShouldExit reports whether the loop should stop.
	ShouldExit() bool
}

// UserInterface is the widget tree of a single surface.
type UserInterface[M any] interface {
	// Layout lays the tree out to fill size, in surface-local
	// coordinates.
	Layout(size surface.Size)

	// Update passes input to the tree and returns the messages that
	// it produced.
	Update(events []native.Event) []M

	// Operate visits the tree with op.
	Operate(op command.Operation[M])

	// Draw returns the scene to present. It is passed to
	// Compositor.Present as is.
	Draw() any
}

// Compositor draws scenes onto surfaces.
type Compositor interface {
	// Configure is called before a surface is first presented and
	// whenever its size or scale changes afterwards.
	Configure(id surface.ID, obj surface.ObjectID, size surface.Size, scale int32) error

	// Present draws scene and commits the surface.
	Present(id surface.ID, scene any) error

	// Release frees everything that was created for a surface that
	// has been destroyed.
	Release(id surface.ID)

	// Information describes the graphics adapter and backend.
	Information() (adapter, backend string)
}

// Settings configure Run.
type Settings struct {
	// Window, if not nil, is a window to create when the loop starts.
	Window *surface.Params

	// Layer, if not nil, is a layer surface to create when the loop
	// starts.
	Layer *surface.Params

	// ExitOnCloseRequest makes the loop exit when the compositor asks
	// for a window to be closed instead of sending the application a
	// message.
	ExitOnCloseRequest bool

	// Keymap maps key codes to keys. It defaults to
	// native.DefaultKeymap.
	Keymap native.Keymap

	// Clipboard defaults to a new MemoryClipboard.
	Clipboard Clipboard

	// Workers limits how many background tasks run at once. Zero
	// means one per CPU.
	Workers int

	Loop eventloop.Options
}
