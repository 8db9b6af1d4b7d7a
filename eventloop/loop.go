// Package eventloop drives a Wayland connection for a UI toolkit. It
// owns every surface, collects protocol events, reconciles compositor
// configurations with what the application asked for, and delivers
// the results to a single callback in a fixed order on every
// iteration.
package eventloop

import (
	"fmt"
	"time"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/cursor"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/internal/debug"
	"deedles.dev/wlui/surface"
	"deedles.dev/wlui/wire"
	"github.com/charmbracelet/log"
)

// Options configure a Loop created by New.
type Options struct {
	// CursorTheme is the Xcursor theme to draw the cursor with. An
	// empty name uses the default theme.
	CursorTheme string
	CursorSize  int
}

// Loop is the event loop. T is the type of the values that can be
// sent into it with a Proxy.
type Loop[T any] struct {
	transport Transport
	state     *State
	user      *userQueue[T]
	wake      chan struct{}
	log       *log.Logger

	first bool
	back  []event.Event
}

// New binds the globals that the loop needs from display. It fails
// with ErrMissingGlobal if the compositor does not support windows.
func New[T any](display *wl.Display, opts Options) (*Loop[T], error) {
	g := globals{display: display}
	state := newState(&g)
	g.state = state

	registry := display.GetRegistry()
	registry.Global = g.global
	registry.GlobalRemove = g.globalRemove

	err := display.RoundTrip()
	if err != nil {
		return nil, fmt.Errorf("bind globals: %w", err)
	}
	if err := g.check(); err != nil {
		return nil, err
	}

	// Seats and outputs send their initial state in response to being
	// bound.
	err = display.RoundTrip()
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	if g.shm != nil {
		theme, err := cursor.LoadTheme(opts.CursorTheme, opts.CursorSize)
		if err != nil {
			state.log.Warn("cursors disabled", "theme", opts.CursorTheme, "err", err)
		} else {
			state.cursor = newCursorImage(theme, g.compositor, g.shm)
		}
	}

	return newLoop[T](display, state), nil
}

// NewLoop creates a loop that reads events from transport and creates
// the protocol objects for surfaces with shell. Use New to connect to
// a compositor.
func NewLoop[T any](transport Transport, shell Shell) *Loop[T] {
	return newLoop[T](transport, newState(shell))
}

func newLoop[T any](transport Transport, state *State) *Loop[T] {
	return &Loop[T]{
		transport: transport,
		state:     state,
		user:      new(userQueue[T]),
		wake:      make(chan struct{}, 1),
		log:       debug.With("component", "loop"),
		first:     true,
	}
}

// State returns the loop's state. It must not be used concurrently
// with Run.
func (l *Loop[T]) State() *State {
	return l.state
}

// Proxy returns a Proxy that sends values to the loop.
func (l *Loop[T]) Proxy() Proxy[T] {
	return Proxy[T]{queue: l.user, wake: l.wake}
}

// Run runs the loop until the control flow is set to exit or the
// connection fails, and returns the exit code. A failed connection
// exits with the error's errno, if it has one, or 1 otherwise.
//
// Once the control flow has been set to exit, the callback is passed
// a copy for the rest of the events, so the exit can't be undone.
func (l *Loop[T]) Run(callback func(Event, *State, *ControlFlow)) int {
	defer l.user.stop()

	flow := Poll
	emit := func(ev Event) {
		if code, ok := flow.Exiting(); ok {
			dummy := ExitWithCode(code)
			callback(ev, l.state, &dummy)
			return
		}
		callback(ev, l.state, &flow)
	}

	code := l.run(&flow, emit)
	emit(LoopDestroyed{})
	if l.state.cursor != nil {
		if err := l.state.cursor.destroy(); err != nil {
			l.log.Debug("destroy cursor", "err", err)
		}
	}
	return code
}

func (l *Loop[T]) fail(err error) int {
	code := wire.ExitCode(err)
	l.log.Error("connection failed", "err", err, "code", code)
	return code
}

func (l *Loop[T]) run(flow *ControlFlow, emit func(Event)) int {
	for {
		if code, ok := flow.Exiting(); ok {
			if err := l.transport.Flush(); err != nil {
				l.log.Debug("flush on exit", "err", err)
			}
			return code
		}

		err := l.transport.Flush()
		if err != nil {
			l.log.Debug("flush", "err", err)
		}

		n, err := l.transport.DispatchPending()
		if err != nil {
			return l.fail(err)
		}

		cause, err := l.wait(*flow, n > 0)
		if err != nil {
			return l.fail(err)
		}
		if l.first {
			cause = StartCause{Kind: Init, Start: cause.Start}
			l.first = false
		}

		l.iterate(cause, emit)
	}
}

// wait blocks according to flow. If instant is set, events were
// already dispatched, so it does not block at all.
func (l *Loop[T]) wait(flow ControlFlow, instant bool) (StartCause, error) {
	start := time.Now()

	switch flow.kind {
	case flowExit:
		return StartCause{Start: start}, nil

	case flowPoll:
		_, err := l.transport.Dispatch(0, l.wake)
		return StartCause{Kind: StartPoll, Start: start}, err

	case flowWait:
		timeout := time.Duration(-1)
		if instant {
			timeout = 0
		}
		_, err := l.transport.Dispatch(timeout, l.wake)
		return StartCause{Kind: WaitCancelled, Start: start}, err

	case flowWaitUntil:
		var timeout time.Duration
		if !instant {
			timeout = max(time.Until(flow.deadline), 0)
		}
		_, err := l.transport.Dispatch(timeout, l.wake)

		kind := ResumeTimeReached
		if time.Now().Before(flow.deadline) {
			kind = WaitCancelled
		}
		return StartCause{Kind: kind, Start: start, Requested: flow.deadline}, err
	}

	panic(fmt.Errorf("unknown control flow %v", flow))
}

func (l *Loop[T]) iterate(cause StartCause, emit func(Event)) {
	emit(NewEvents{Cause: cause})

	for _, v := range l.user.take() {
		emit(UserEvent[T]{Value: v})
	}

	closes := l.reconcile(emit)
	l.close(closes, emit)
	l.drain(emit)

	emit(MainEventsCleared{})

	l.redraw(emit)

	emit(RedrawEventsCleared{})
}

// reconcile applies pending compositor updates to every surface and
// returns the surfaces that the compositor closed.
func (l *Loop[T]) reconcile(emit func(Event)) (closes []surface.ID) {
	for _, rec := range l.state.surfaces.Records() {
		if _, ok := l.state.surfaces.Get(rec.ID); !ok {
			continue
		}

		res := rec.Reconcile()
		role := rec.Role.(Role)

		if res.ScaleChanged {
			role.SetScale(rec.Scale)
			emit(ScaleFactorChanged{
				Surface: rec.ID,
				Scale:   rec.Scale,
				Size: surface.Size{
					W: rec.Current.W * uint32(rec.Scale),
					H: rec.Current.H * uint32(rec.Scale),
				},
			})
		}

		if c := res.Configure; c != nil {
			if c.Serial != 0 {
				role.AckConfigure(c.Serial)
			}
			role.Commit(rec.Current)
			rec.FrameRefreshed()

			if res.Resized || res.ScaleChanged || c.First {
				emit(Configured{
					Surface:   rec.ID,
					Kind:      rec.Kind,
					Size:      rec.Current,
					Scale:     rec.Scale,
					Configure: *c,
				})
			}
		}

		if res.NeedsRedraw() {
			rec.RequestRedraw()
		}
		if res.Close {
			closes = append(closes, rec.ID)
		}
	}
	return closes
}

// close handles surfaces that the compositor closed. Windows are only
// asked to close, while layer surfaces and popups are destroyed along
// with their popups.
func (l *Loop[T]) close(closes []surface.ID, emit func(Event)) {
	for _, id := range closes {
		rec, ok := l.state.surfaces.Get(id)
		if !ok {
			continue
		}

		if rec.Kind == surface.Window {
			emit(CloseRequested{Surface: id})
			continue
		}
		l.state.Close(id)
	}

	for _, rec := range l.state.takeClosed() {
		emit(Closed{Surface: rec.ID, Kind: rec.Kind})
	}
}

// drain delivers the events collected by the protocol handlers.
// Events pushed while draining are held until the next iteration.
func (l *Loop[T]) drain(emit func(Event)) {
	events := l.state.sink.Swap(l.back)
	for _, ev := range events {
		var id surface.ID
		if obj, ok := ev.Target(); ok {
			id, ok = l.state.surfaces.Logical(obj)
			if !ok {
				l.log.Debug("dropped event for unknown surface", "object", obj, "event", fmt.Sprintf("%T", ev))
				continue
			}
		}
		emit(ProtocolEvent{Surface: id, Event: ev})
	}

	clear(events)
	l.back = events
}

// redraw sends the requests queued for each surface and then
// delivers a RedrawRequested for each surface that needs one.
func (l *Loop[T]) redraw(emit func(Event)) {
	for _, rec := range l.state.surfaces.Records() {
		if _, ok := l.state.surfaces.Get(rec.ID); !ok {
			continue
		}
		rec.Flush()

		u := rec.TakeUserRequest()
		if u.IsZero() {
			continue
		}
		emit(RedrawRequested{Surface: rec.ID})
	}
}
