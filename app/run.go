package app

import (
	"fmt"
	"maps"
	"slices"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/internal/debug"
	"deedles.dev/wlui/native"
	"deedles.dev/wlui/surface"
	"github.com/charmbracelet/log"
)

// Run runs application on the compositor that display is connected
// to and returns the exit code of the loop. It only returns an error
// if the loop could not be started.
func Run[M any](display *wl.Display, application Application[M], compositor Compositor, settings Settings) (int, error) {
	loop, err := eventloop.New[M](display, settings.Loop)
	if err != nil {
		return 1, fmt.Errorf("start event loop: %w", err)
	}
	return RunLoop(loop, application, compositor, settings), nil
}

// RunLoop runs application on loop. Results of background tasks are
// sent back into the loop through its Proxy.
func RunLoop[M any](loop *eventloop.Loop[M], application Application[M], compositor Compositor, settings Settings) int {
	r := newRunner(application, compositor, settings, loop.Proxy().Send)
	return loop.Run(r.handle)
}

type runner[M any] struct {
	app        Application[M]
	compositor Compositor
	settings   Settings
	keymap     native.Keymap
	clipboard  Clipboard
	tasks      *pool[M]

	uis     map[surface.ID]UserInterface[M]
	input   map[surface.ID][]native.Event
	mods    native.Modifiers
	pending []M

	// rescaled holds scale changes that no configuration has followed
	// yet in the current iteration.
	rescaled map[surface.ID]int32

	log *log.Logger
}

func newRunner[M any](application Application[M], compositor Compositor, settings Settings, send func(M) error) *runner[M] {
	r := runner[M]{
		app:        application,
		compositor: compositor,
		settings:   settings,
		keymap:     settings.Keymap,
		clipboard:  settings.Clipboard,
		tasks:      newPool(settings.Workers, send),
		uis:        make(map[surface.ID]UserInterface[M]),
		rescaled:   make(map[surface.ID]int32),
		input:      make(map[surface.ID][]native.Event),
		log:        debug.With("component", "app"),
	}
	if r.keymap == nil {
		r.keymap = native.DefaultKeymap
	}
	if r.clipboard == nil {
		r.clipboard = new(MemoryClipboard)
	}
	return &r
}

func (r *runner[M]) handle(ev eventloop.Event, state *eventloop.State, flow *eventloop.ControlFlow) {
	switch ev := ev.(type) {
	case eventloop.NewEvents:
		if ev.Cause.Kind == eventloop.Init {
			r.init(state, flow)
		}

	case eventloop.UserEvent[M]:
		r.pending = append(r.pending, ev.Value)

	case eventloop.Configured:
		delete(r.rescaled, ev.Surface)
		r.configure(state, ev.Surface, ev.Size, ev.Scale)

	case eventloop.ScaleFactorChanged:
		r.rescaled[ev.Surface] = ev.Scale

	case eventloop.CloseRequested:
		if r.settings.ExitOnCloseRequest {
			*flow = eventloop.ExitWithCode(0)
			return
		}
		r.pending = append(r.pending, r.app.CloseRequested(ev.Surface))

	case eventloop.Closed:
		delete(r.uis, ev.Surface)
		delete(r.input, ev.Surface)
		r.compositor.Release(ev.Surface)

	case eventloop.ProtocolEvent:
		ui, ok := r.keymap.Project(ev.Event, &r.mods, state.Surfaces())
		if ok {
			id := ui.Surface()
			r.input[id] = append(r.input[id], ui)
		}

	case eventloop.MainEventsCleared:
		r.rescale(state)
		r.update(state, flow)

	case eventloop.RedrawRequested:
		r.redraw(state, ev.Surface)

	case eventloop.LoopDestroyed:
		r.tasks.Stop()
	}
}

func (r *runner[M]) init(state *eventloop.State, flow *eventloop.ControlFlow) {
	if p := r.settings.Window; p != nil {
		_, err := state.CreateWindow(*p)
		if err != nil {
			r.log.Error("create initial window", "err", err)
		}
	}
	if p := r.settings.Layer; p != nil {
		_, err := state.CreateLayerSurface(*p)
		if err != nil {
			r.log.Error("create initial layer surface", "err", err)
		}
	}

	r.pending = append(r.pending, r.apply(state, flow, r.app.Init())...)
}

// configure lays a surface out for a new size or scale, building its
// widget tree first if it doesn't have one yet.
func (r *runner[M]) configure(state *eventloop.State, id surface.ID, size surface.Size, scale int32) {
	rec, ok := state.Surfaces().Get(id)
	if !ok {
		return
	}

	ui, ok := r.uis[id]
	if !ok {
		ui = r.app.View(id)
		r.uis[id] = ui
	}
	ui.Layout(size)

	err := r.compositor.Configure(id, rec.Object, size, scale)
	if err != nil {
		r.log.Error("configure surface", "id", id, "err", err)
	}
}

// rescale lays out the configured surfaces whose scale changed without
// a new configuration.
func (r *runner[M]) rescale(state *eventloop.State) {
	for _, id := range slices.Sorted(maps.Keys(r.rescaled)) {
		rec, ok := state.Surfaces().Get(id)
		if ok && rec.Configured() {
			r.configure(state, id, rec.Current, r.rescaled[id])
		}
	}
	clear(r.rescaled)
}

// update passes the collected input to the widget trees and then
// updates the application with every pending message, including the
// ones produced by the commands that it returns. If anything was
// updated, the widget trees are rebuilt.
func (r *runner[M]) update(state *eventloop.State, flow *eventloop.ControlFlow) {
	for _, id := range slices.Sorted(maps.Keys(r.input)) {
		ui, ok := r.uis[id]
		if !ok {
			continue
		}
		r.pending = append(r.pending, ui.Update(r.input[id])...)
		if rec, ok := state.Surfaces().Get(id); ok {
			rec.RequestRedraw()
		}
	}
	clear(r.input)

	if len(r.pending) == 0 {
		return
	}

	for i := 0; i < len(r.pending); i++ {
		cmd := r.app.Update(r.pending[i])
		r.pending = append(r.pending, r.apply(state, flow, cmd)...)
	}
	clear(r.pending)
	r.pending = r.pending[:0]

	if r.app.ShouldExit() {
		*flow = eventloop.ExitWithCode(0)
	}

	r.rebuild(state)
}

// rebuild replaces the widget tree of every surface that has one and
// brings window titles up to date.
func (r *runner[M]) rebuild(state *eventloop.State) {
	for _, id := range slices.Sorted(maps.Keys(r.uis)) {
		rec, ok := state.Surfaces().Get(id)
		if !ok {
			delete(r.uis, id)
			continue
		}

		ui := r.app.View(id)
		ui.Layout(rec.Current)
		r.uis[id] = ui
		rec.RequestRedraw()

		if rec.Kind != surface.Window {
			continue
		}
		title := r.app.Title(id)
		if title == rec.Title {
			continue
		}
		_, role, err := state.Window(id)
		if err != nil {
			continue
		}
		rec.Title = title
		queue(rec, func() { role.SetTitle(title) })
	}
}

func (r *runner[M]) redraw(state *eventloop.State, id surface.ID) {
	ui, ok := r.uis[id]
	if !ok {
		return
	}

	err := state.Frame(id)
	if err != nil {
		r.log.Debug("redraw of closed surface", "id", id, "err", err)
		return
	}

	err = r.compositor.Present(id, ui.Draw())
	if err != nil {
		r.log.Error("present", "id", id, "err", err)
	}
}
