package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"deedles.dev/wlui/command"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/surface"
)

var (
	errNoSeat = errors.New("no seat")
	errMapped = errors.New("popup already shown")
)

// apply carries out the actions of cmd in order and returns the
// messages that they produced right away. An action that fails is
// logged and skipped.
func (r *runner[M]) apply(state *eventloop.State, flow *eventloop.ControlFlow, cmd command.Command[M]) (msgs []M) {
	send := func(msg M) { msgs = append(msgs, msg) }
	for _, a := range cmd {
		err := r.action(state, flow, a, send)
		if err != nil {
			r.log.Warn("action failed", "action", fmt.Sprintf("%T", a), "err", err)
		}
	}
	return msgs
}

func (r *runner[M]) action(state *eventloop.State, flow *eventloop.ControlFlow, a command.Action[M], send func(M)) error {
	switch a := a.(type) {
	case command.Spawn[M]:
		r.tasks.Spawn(a.Task)

	case command.QueryInformation[M]:
		adapter, backend := r.compositor.Information()
		r.tasks.Spawn(func(context.Context) M {
			return a.Tag(systemInformation(adapter, backend))
		})

	case command.ClipboardRead[M]:
		send(a.Tag(r.clipboard.Read()))

	case command.ClipboardWrite:
		r.clipboard.Write(a.Contents)

	case command.Widget[M]:
		r.operate(a.Operation, send)

	case command.Exit:
		*flow = eventloop.ExitWithCode(a.Code)

	case command.CreateWindow:
		_, err := state.CreateWindow(a.Params)
		return err

	case command.Resize:
		return state.Resize(a.ID, a.Size)

	case command.Move:
		_, _, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		r.log.Debug("window placement not supported", "id", a.ID, "x", a.X, "y", a.Y)

	case command.SetMode:
		return r.setMode(state, a.ID, a.Mode)

	case command.FetchMode[M]:
		rec, _, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		send(a.Tag(rec.Mode))

	case command.Close:
		_, _, err := state.Role(a.ID)
		if err != nil {
			return err
		}
		state.Close(a.ID)

	case command.SetTitle:
		rec, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		rec.Title = a.Title
		queue(rec, func() { role.SetTitle(a.Title) })

	case command.SetMinSize:
		rec, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		rec.MinSize = a.Size
		queue(rec, func() { role.SetMinSize(a.Size) })

	case command.SetMaxSize:
		rec, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		rec.MaxSize = a.Size
		queue(rec, func() { role.SetMaxSize(a.Size) })

	case command.Maximize:
		rec, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		queue(rec, func() { role.SetMaximized(a.Maximized) })

	case command.Minimize:
		rec, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		queue(rec, role.SetMinimized)

	case command.Drag:
		_, role, err := state.Window(a.ID)
		if err != nil {
			return err
		}
		seat := state.ActiveSeat()
		if seat == nil {
			return errNoSeat
		}
		role.Move(seat)

	case command.CreateLayerSurface:
		_, err := state.CreateLayerSurface(a.Params)
		return err

	case command.SetSize:
		_, _, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		return state.Resize(a.ID, a.Size)

	case command.SetAnchor:
		rec, role, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		rec.Layer.Anchor = a.Anchor
		queueLayer(rec, role, func() { role.SetAnchor(a.Anchor) })

	case command.SetMargin:
		rec, role, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		rec.Layer.Margin = a.Margin
		queueLayer(rec, role, func() { role.SetMargin(a.Margin) })

	case command.SetExclusiveZone:
		rec, role, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		rec.Layer.ExclusiveZone = a.Zone
		queueLayer(rec, role, func() { role.SetExclusiveZone(a.Zone) })

	case command.SetKeyboardInteractivity:
		rec, role, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		rec.Layer.KeyboardInteractivity = a.KeyboardInteractivity
		queueLayer(rec, role, func() { role.SetKeyboardInteractivity(a.KeyboardInteractivity) })

	case command.SetLayer:
		rec, role, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		rec.Layer.Layer = a.Layer
		queueLayer(rec, role, func() {
			if !role.SetLayer(a.Layer) {
				r.log.Warn("compositor can't change layers", "id", a.ID, "layer", a.Layer)
			}
		})

	case command.DestroyLayerSurface:
		_, _, err := state.LayerSurface(a.ID)
		if err != nil {
			return err
		}
		state.Close(a.ID)

	case command.CreatePopup:
		_, err := state.CreatePopup(a.Params)
		return err

	case command.RepositionPopup:
		rec, role, err := state.Popup(a.ID)
		if err != nil {
			return err
		}
		rec.Positioner = a.Positioner
		queue(rec, func() { role.Reposition(a.Positioner, a.Token) })

	case command.GrabPopup:
		rec, role, err := state.Popup(a.ID)
		if err != nil {
			return err
		}
		if rec.Configured() {
			return fmt.Errorf("grab %v: %w", a.ID, errMapped)
		}
		seat := state.ActiveSeat()
		if seat == nil {
			return errNoSeat
		}
		role.Grab(seat)

	case command.DestroyPopup:
		_, _, err := state.Popup(a.ID)
		if err != nil {
			return err
		}
		state.Close(a.ID)

	default:
		return fmt.Errorf("unknown action %T", a)
	}

	return nil
}

func (r *runner[M]) setMode(state *eventloop.State, id surface.ID, mode surface.Mode) error {
	rec, role, err := state.Window(id)
	if err != nil {
		return err
	}

	prev := rec.Mode
	rec.Mode = mode

	switch mode {
	case surface.Fullscreen:
		queue(rec, func() { role.SetFullscreen(true) })
	case surface.Windowed:
		switch prev {
		case surface.Fullscreen:
			queue(rec, func() { role.SetFullscreen(false) })
		case surface.Hidden:
			r.log.Debug("windows can't be restored by the client", "id", id)
		}
	case surface.Hidden:
		queue(rec, role.SetMinimized)
	}
	return nil
}

// operate runs an operation over the widget trees of every surface,
// followed by each operation that it chains to.
func (r *runner[M]) operate(op command.Operation[M], send func(M)) {
	ids := slices.Sorted(maps.Keys(r.uis))
	for op != nil {
		for _, id := range ids {
			r.uis[id].Operate(op)
		}

		out := op.Finish()
		if out.HasMessage {
			send(out.Message)
		}
		op = out.Next
	}
}

// queue sends req with the surface's next batch of requests. It is
// dropped if the surface is closed first.
func queue(rec *surface.Record, req func()) {
	rec.Queue(func(*surface.Record) { req() })
	rec.RequestFrame()
}

// queueLayer is like queue, but commits the layer surface afterwards
// so that the change takes effect without waiting for a redraw.
func queueLayer(rec *surface.Record, role eventloop.LayerRole, req func()) {
	rec.Queue(func(rec *surface.Record) {
		req()
		role.Commit(rec.Current)
	})
}
