package xdg

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/internal/bin"
	"deedles.dev/wlui/wire"
)

// Toplevel is an xdg_toplevel, a regular desktop window.
type Toplevel struct {
	// Configure suggests a size and reports the window's state. A size
	// of zero in either dimension means that the client should pick.
	Configure func(w, h int32, states []ToplevelState)

	// Close is a request from the compositor. The client is free to
	// ignore it.
	Close func()

	ConfigureBounds func(w, h int32)

	wl.Proxy
}

func (top *Toplevel) SetParent(parent *Toplevel) {
	msg := wire.NewMessage(top, opToplevelSetParent).Describe("set_parent", parent)
	msg.WriteObject(parent)
	send(top, msg)
}

func (top *Toplevel) SetTitle(title string) {
	msg := wire.NewMessage(top, opToplevelSetTitle).Describe("set_title", title)
	msg.WriteString(title)
	send(top, msg)
}

func (top *Toplevel) SetAppID(id string) {
	msg := wire.NewMessage(top, opToplevelSetAppID).Describe("set_app_id", id)
	msg.WriteString(id)
	send(top, msg)
}

func (top *Toplevel) ShowWindowMenu(seat *wl.Seat, serial uint32, x, y int32) {
	msg := wire.NewMessage(top, opToplevelShowWindowMenu).Describe("show_window_menu", seat, serial, x, y)
	msg.WriteObject(seat)
	msg.WriteUint(serial)
	msg.WriteInt(x)
	msg.WriteInt(y)
	send(top, msg)
}

// Move starts an interactive move. serial must be that of the button
// press that initiated it.
func (top *Toplevel) Move(seat *wl.Seat, serial uint32) {
	msg := wire.NewMessage(top, opToplevelMove).Describe("move", seat, serial)
	msg.WriteObject(seat)
	msg.WriteUint(serial)
	send(top, msg)
}

func (top *Toplevel) Resize(seat *wl.Seat, serial uint32, edges ResizeEdge) {
	msg := wire.NewMessage(top, opToplevelResize).Describe("resize", seat, serial, edges)
	msg.WriteObject(seat)
	msg.WriteUint(serial)
	msg.WriteUint(uint32(edges))
	send(top, msg)
}

func (top *Toplevel) SetMaxSize(w, h int32) {
	msg := wire.NewMessage(top, opToplevelSetMaxSize).Describe("set_max_size", w, h)
	msg.WriteInt(w)
	msg.WriteInt(h)
	send(top, msg)
}

func (top *Toplevel) SetMinSize(w, h int32) {
	msg := wire.NewMessage(top, opToplevelSetMinSize).Describe("set_min_size", w, h)
	msg.WriteInt(w)
	msg.WriteInt(h)
	send(top, msg)
}

func (top *Toplevel) SetMaximized() {
	send(top, wire.NewMessage(top, opToplevelSetMaximized).Describe("set_maximized"))
}

func (top *Toplevel) UnsetMaximized() {
	send(top, wire.NewMessage(top, opToplevelUnsetMaximized).Describe("unset_maximized"))
}

// SetFullscreen makes the window fullscreen on output, or on an
// output of the compositor's choosing if output is nil.
func (top *Toplevel) SetFullscreen(output *wl.Output) {
	msg := wire.NewMessage(top, opToplevelSetFullscreen).Describe("set_fullscreen", output)
	msg.WriteObject(output)
	send(top, msg)
}

func (top *Toplevel) UnsetFullscreen() {
	send(top, wire.NewMessage(top, opToplevelUnsetFullscreen).Describe("unset_fullscreen"))
}

func (top *Toplevel) SetMinimized() {
	send(top, wire.NewMessage(top, opToplevelSetMinimized).Describe("set_minimized"))
}

func (top *Toplevel) Destroy() {
	destroy(top, opToplevelDestroy)
}

func toplevelStates(data []byte) []ToplevelState {
	states := make([]ToplevelState, 0, len(data)/4)
	for len(data) >= 4 {
		states = append(states, bin.Value[ToplevelState]([4]byte(data[:4])))
		data = data[4:]
	}
	return states
}

func (top *Toplevel) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evToplevelConfigure:
		w, h := msg.ReadInt(), msg.ReadInt()
		states := msg.ReadArray()
		if err := msg.Err(); err != nil {
			return err
		}
		if top.Configure != nil {
			top.Configure(w, h, toplevelStates(states))
		}

	case evToplevelClose:
		if top.Close != nil {
			top.Close()
		}

	case evToplevelConfigureBounds:
		w, h := msg.ReadInt(), msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if top.ConfigureBounds != nil {
			top.ConfigureBounds(w, h)
		}

	case evToplevelWmCapabilities:
		msg.ReadArray()
		return msg.Err()

	default:
		return unknownEvent(toplevelInterface, msg.Op())
	}

	return nil
}

func (top *Toplevel) MethodName(op uint16) string {
	switch op {
	case evToplevelConfigure:
		return "configure"
	case evToplevelClose:
		return "close"
	case evToplevelConfigureBounds:
		return "configure_bounds"
	case evToplevelWmCapabilities:
		return "wm_capabilities"
	}
	return "unknown"
}
