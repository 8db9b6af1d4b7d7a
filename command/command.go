// Package command defines the actions that a UI can ask to have
// performed after it updates. Actions are applied in order by an
// interpreter; an action that fails does not stop the ones after it.
package command

import (
	"context"

	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/surface"
)

// Action is a single action. M is the type of the messages that the
// UI is updated with.
type Action[M any] interface {
	action()
}

// Command is an ordered batch of actions.
type Command[M any] []Action[M]

// None returns an empty command.
func None[M any]() Command[M] {
	return nil
}

// Single returns a command with one action.
func Single[M any](a Action[M]) Command[M] {
	return Command[M]{a}
}

// Batch joins commands into one, keeping their order.
func Batch[M any](cmds ...Command[M]) Command[M] {
	var n int
	for _, c := range cmds {
		n += len(c)
	}

	out := make(Command[M], 0, n)
	for _, c := range cmds {
		out = append(out, c...)
	}
	return out
}

// Perform runs task in the background and feeds its result back to
// the UI as a message.
func Perform[M any](task func(context.Context) M) Command[M] {
	return Single[M](Spawn[M]{Task: task})
}

// Spawn runs Task on a background worker. Its result is delivered to
// the UI as a message. Task must not touch surfaces or protocol
// objects.
type Spawn[M any] struct {
	Task func(context.Context) M
}

// Information describes the system that the application is running
// on.
type Information struct {
	SystemName    string
	SystemKernel  string
	SystemVersion string
	Hostname      string
	CPUCores      int
	MemoryTotal   uint64
	MemoryFree    uint64

	GraphicsAdapter string
	GraphicsBackend string
}

// QueryInformation collects system information in the background and
// hands it to Tag to produce a message.
type QueryInformation[M any] struct {
	Tag func(Information) M
}

// ClipboardRead reads the clipboard. Tag receives the contents and
// whether there were any.
type ClipboardRead[M any] struct {
	Tag func(string, bool) M
}

type ClipboardWrite struct {
	Contents string
}

// Outcome is the result of running an Operation over the UI tree.
type Outcome[M any] struct {
	// Message, if HasMessage is set, is delivered to the UI.
	Message    M
	HasMessage bool

	// Next, if not nil, is run after this operation.
	Next Operation[M]
}

// Operation is a pass over the widget tree. The UI decides how to
// visit its widgets with it; the interpreter only drives the chain.
type Operation[M any] interface {
	Finish() Outcome[M]
}

// Widget runs an operation over the widget trees of every surface.
type Widget[M any] struct {
	Operation Operation[M]
}

// Exit stops the event loop with the given code.
type Exit struct {
	Code int
}

func (Spawn[M]) action()            {}
func (QueryInformation[M]) action() {}
func (ClipboardRead[M]) action()    {}
func (ClipboardWrite) action()      {}
func (Widget[M]) action()           {}
func (Exit) action()                {}

// Surface actions.

// CreateWindow opens a new window.
type CreateWindow struct {
	Params surface.Params
}

// Resize changes the size of a window or layer surface.
type Resize struct {
	ID   surface.ID
	Size surface.Size
}

// Move asks for a window to be moved. Wayland clients cannot place
// their windows, so it is logged and otherwise ignored. Use Drag to
// let the user move a window.
type Move struct {
	ID   surface.ID
	X, Y int32
}

type SetMode struct {
	ID   surface.ID
	Mode surface.Mode
}

type FetchMode[M any] struct {
	ID  surface.ID
	Tag func(surface.Mode) M
}

// Close closes a surface of any kind along with its popups.
type Close struct {
	ID surface.ID
}

type SetTitle struct {
	ID    surface.ID
	Title string
}

type SetMinSize struct {
	ID   surface.ID
	Size surface.Size
}

type SetMaxSize struct {
	ID   surface.ID
	Size surface.Size
}

type Maximize struct {
	ID        surface.ID
	Maximized bool
}

type Minimize struct {
	ID surface.ID
}

// Drag starts an interactive move using the last button press on the
// active seat.
type Drag struct {
	ID surface.ID
}

func (CreateWindow) action() {}
func (Resize) action()       {}
func (Move) action()         {}
func (SetMode) action()      {}
func (FetchMode[M]) action() {}
func (Close) action()        {}
func (SetTitle) action()     {}
func (SetMinSize) action()   {}
func (SetMaxSize) action()   {}
func (Maximize) action()     {}
func (Minimize) action()     {}
func (Drag) action()         {}

// Layer surface actions.

type CreateLayerSurface struct {
	Params surface.Params
}

type SetAnchor struct {
	ID     surface.ID
	Anchor layer.Anchor
}

type SetMargin struct {
	ID     surface.ID
	Margin layer.Margin
}

type SetExclusiveZone struct {
	ID   surface.ID
	Zone int32
}

type SetKeyboardInteractivity struct {
	ID                    surface.ID
	KeyboardInteractivity layer.KeyboardInteractivity
}

type SetLayer struct {
	ID    surface.ID
	Layer layer.Layer
}

// SetSize changes the size of a layer surface. A zero dimension lets
// the compositor pick it based on the anchor.
type SetSize struct {
	ID   surface.ID
	Size surface.Size
}

// DestroyLayerSurface closes a layer surface along with its popups.
type DestroyLayerSurface struct {
	ID surface.ID
}

func (CreateLayerSurface) action()       {}
func (SetAnchor) action()                {}
func (SetMargin) action()                {}
func (SetExclusiveZone) action()         {}
func (SetKeyboardInteractivity) action() {}
func (SetLayer) action()                 {}
func (SetSize) action()                  {}
func (DestroyLayerSurface) action()      {}

// Popup actions.

// CreatePopup opens a popup positioned relative to Params.Parent.
type CreatePopup struct {
	Params surface.Params
}

type RepositionPopup struct {
	ID         surface.ID
	Positioner surface.Positioner
	Token      uint32
}

// GrabPopup makes the popup take an explicit grab using the last
// input serial of the active seat.
type GrabPopup struct {
	ID surface.ID
}

// DestroyPopup closes a popup along with the popups below it.
type DestroyPopup struct {
	ID surface.ID
}

func (CreatePopup) action()     {}
func (RepositionPopup) action() {}
func (GrabPopup) action()       {}
func (DestroyPopup) action()    {}
