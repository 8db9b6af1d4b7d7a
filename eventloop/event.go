package eventloop

import (
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/surface"
)

// Event is an event delivered to the callback passed to Run. Within
// an iteration, events are always delivered in this order:
//
//	NewEvents
//	UserEvent
//	ScaleFactorChanged and Configured
//	CloseRequested and Closed
//	ProtocolEvent
//	MainEventsCleared
//	RedrawRequested
//	RedrawEventsCleared
//
// LoopDestroyed is delivered once, after the last iteration.
type Event interface {
	loopEvent()
}

// NewEvents starts an iteration.
type NewEvents struct {
	Cause StartCause
}

// UserEvent carries a value sent through a Proxy.
type UserEvent[T any] struct {
	Value T
}

// ScaleFactorChanged is delivered when a surface's integer scale
// changes. Size is the surface's size in buffer pixels at the new
// scale.
type ScaleFactorChanged struct {
	Surface surface.ID
	Scale   int32
	Size    surface.Size
}

// Configured is delivered when a configuration has changed a
// surface's size or scale, or when a surface is configured for the
// first time.
type Configured struct {
	Surface   surface.ID
	Kind      surface.Kind
	Size      surface.Size
	Scale     int32
	Configure surface.Configure
}

// CloseRequested is delivered when the compositor asks for a window to
// be closed. The window stays open unless the application closes it.
type CloseRequested struct {
	Surface surface.ID
}

// Closed is delivered for each surface that has been destroyed, in
// the order that they were destroyed. Popups are always destroyed
// before their parents.
type Closed struct {
	Surface surface.ID
	Kind    surface.Kind
}

// ProtocolEvent carries an event collected from the protocol handlers.
// If the event is directed at a surface, Surface is that surface's
// logical ID. Otherwise it is zero.
type ProtocolEvent struct {
	Surface surface.ID
	Event   event.Event
}

type MainEventsCleared struct{}

// RedrawRequested asks for a surface to be drawn.
type RedrawRequested struct {
	Surface surface.ID
}

type RedrawEventsCleared struct{}

type LoopDestroyed struct{}

func (NewEvents) loopEvent()           {}
func (UserEvent[T]) loopEvent()        {}
func (ScaleFactorChanged) loopEvent()  {}
func (Configured) loopEvent()          {}
func (CloseRequested) loopEvent()      {}
func (Closed) loopEvent()              {}
func (ProtocolEvent) loopEvent()       {}
func (MainEventsCleared) loopEvent()   {}
func (RedrawRequested) loopEvent()     {}
func (RedrawEventsCleared) loopEvent() {}
func (LoopDestroyed) loopEvent()       {}
