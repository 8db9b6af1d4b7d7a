package app

import (
	"context"
	"testing"

	"deedles.dev/wlui/command"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/native"
	"deedles.dev/wlui/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerSurfaceRelayout(t *testing.T) {
	h := newHarness(Settings{
		Layer: &surface.Params{
			ID: 7,
			Layer: surface.LayerParams{
				Anchor: layer.AnchorBottom,
				Margin: layer.Margin{Bottom: 8},
			},
		},
	})

	size := surface.Size{W: 800, H: 40}
	h.transport.onDispatch = func(n int) {
		rec, ok := h.loop.State().Surfaces().Get(7)
		if !ok {
			return
		}
		switch n {
		case 2:
			rec.PushConfigure(surface.Configure{Serial: 1, Size: size})
		case 3:
			rec.PushConfigure(surface.Configure{Serial: 2, Size: size})
		}
	}
	require.Equal(t, 0, h.run(t, 4))

	require.Contains(t, h.app.uis, surface.ID(7))
	assert.Equal(t, []surface.Size{size}, h.app.uis[7].layouts)
	assert.Equal(t, []surface.Size{size}, h.compositor.configured[7])
	assert.Equal(t, []surface.ID{7}, h.compositor.presented)

	role := h.shell.roles[101]
	assert.Equal(t, []uint32{1, 2}, role.acks)
	assert.Equal(t, 1, role.frames)
}

func TestInputRouting(t *testing.T) {
	h := newHarness(Settings{})
	h.app.reply = []string{"typed"}
	h.app.title = "edited"
	state := h.loop.State()
	flow := eventloop.Wait

	rec, role := h.window(t, 1, surface.Size{W: 10, H: 10})
	require.Equal(t, 1, h.app.views)

	for _, ev := range []event.Event{
		event.Keyboard{Surface: rec.Object, Kind: event.KeyboardEnter},
		event.Keyboard{Surface: rec.Object, Kind: event.KeyPress, Key: 30},
		event.Keyboard{Surface: 999, Kind: event.KeyPress, Key: 30},
	} {
		h.runner.handle(eventloop.ProtocolEvent{Surface: 1, Event: ev}, state, &flow)
	}
	first := h.app.uis[1]
	h.runner.handle(eventloop.MainEventsCleared{}, state, &flow)

	assert.Equal(t, []native.Event{
		native.Focused{ID: 1},
		native.KeyPressed{ID: 1, Key: native.KeyA, Code: 30},
	}, first.events)
	assert.Equal(t, []string{"typed"}, h.app.updates)
	assert.Equal(t, 2, h.app.views, "tree not rebuilt after update")
	assert.Equal(t, []surface.Size{{W: 10, H: 10}}, h.app.uis[1].layouts)

	assert.Equal(t, "edited", rec.Title)
	rec.Flush()
	assert.Equal(t, "edited", role.title)
	assert.True(t, rec.TakeUserRequest().Redraw)

	h.runner.handle(eventloop.MainEventsCleared{}, state, &flow)
	assert.Equal(t, 2, h.app.views, "tree rebuilt without any update")
}

func TestScaleAndResizeLayOutOnce(t *testing.T) {
	h := newHarness(Settings{})
	state := h.loop.State()
	flow := eventloop.Wait

	h.window(t, 1, surface.Size{W: 10, H: 10})
	ui := h.app.uis[1]

	h.runner.handle(eventloop.ScaleFactorChanged{Surface: 1, Scale: 2, Size: surface.Size{W: 20, H: 20}}, state, &flow)
	h.runner.handle(eventloop.Configured{Surface: 1, Kind: surface.Window, Size: surface.Size{W: 30, H: 30}, Scale: 2}, state, &flow)
	h.runner.handle(eventloop.MainEventsCleared{}, state, &flow)
	assert.Equal(t, []surface.Size{{W: 10, H: 10}, {W: 30, H: 30}}, ui.layouts)
	assert.Equal(t, []surface.Size{{W: 10, H: 10}, {W: 30, H: 30}}, h.compositor.configured[1])

	h.runner.handle(eventloop.ScaleFactorChanged{Surface: 1, Scale: 3}, state, &flow)
	assert.Len(t, ui.layouts, 2, "laid out before the iteration's configurations were known")
	h.runner.handle(eventloop.MainEventsCleared{}, state, &flow)
	assert.Equal(t, []surface.Size{{W: 10, H: 10}, {W: 30, H: 30}, {W: 10, H: 10}}, ui.layouts)
}

func TestSpawnResult(t *testing.T) {
	h := newHarness(Settings{Workers: 2})
	h.app.init = command.Perform(func(context.Context) string { return "loaded" })
	h.app.exitOn = "loaded"

	assert.Equal(t, 0, h.run(t, -1))
	assert.Equal(t, []string{"loaded"}, h.app.updates)
}

func TestExitAction(t *testing.T) {
	h := newHarness(Settings{})
	h.app.init = command.Single[string](command.Exit{Code: 3})

	assert.Equal(t, 3, h.run(t, -1))
}

func TestCloseRequested(t *testing.T) {
	h := newHarness(Settings{})
	state := h.loop.State()
	flow := eventloop.Wait

	h.window(t, 1, surface.Size{})
	h.runner.handle(eventloop.CloseRequested{Surface: 1}, state, &flow)
	h.runner.handle(eventloop.MainEventsCleared{}, state, &flow)
	assert.Equal(t, []string{"close 1"}, h.app.updates)
	_, exiting := flow.Exiting()
	assert.False(t, exiting)

	h.runner.settings.ExitOnCloseRequest = true
	h.runner.handle(eventloop.CloseRequested{Surface: 1}, state, &flow)
	code, exiting := flow.Exiting()
	assert.True(t, exiting)
	assert.Equal(t, 0, code)
}

func TestClosedReleasesSurface(t *testing.T) {
	h := newHarness(Settings{})
	h.app.commands["close"] = command.Single[string](command.Close{ID: 1})
	h.transport.onDispatch = func(n int) {
		if n == 2 {
			require.NoError(t, h.loop.Proxy().Send("close"))
		}
	}

	var closed bool
	h.loop.Run(func(ev eventloop.Event, state *eventloop.State, flow *eventloop.ControlFlow) {
		if ev, ok := ev.(eventloop.NewEvents); ok && ev.Cause.Kind == eventloop.Init {
			h.window(t, 1, surface.Size{W: 5, H: 5})
		}
		h.runner.handle(ev, state, flow)
		if ev, ok := ev.(eventloop.Closed); ok {
			assert.Equal(t, surface.ID(1), ev.Surface)
			closed = true
		}
		if _, ok := ev.(eventloop.RedrawEventsCleared); ok && closed {
			*flow = eventloop.ExitWithCode(0)
		}
	})

	assert.Equal(t, []surface.ID{1}, h.compositor.released)
	assert.NotContains(t, h.runner.uis, surface.ID(1))
}
