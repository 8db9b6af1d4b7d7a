package xdg

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

// Surface is an xdg_surface. The role-specific configure event of its
// toplevel or popup is always followed by a Configure on the
// xdg_surface itself, which carries the serial to acknowledge.
type Surface struct {
	Configure func(serial uint32)

	wl.Proxy
	surface *wl.Surface
}

// WlSurface returns the wl_surface that this xdg_surface wraps.
func (s *Surface) WlSurface() *wl.Surface {
	return s.surface
}

func (s *Surface) GetToplevel() *Toplevel {
	var top Toplevel
	wl.NewChildObject(s, &top.Proxy, &top)

	msg := wire.NewMessage(s, opSurfaceGetToplevel).Describe("get_toplevel", top.ID())
	msg.WriteUint(top.ID())
	send(s, msg)
	return &top
}

// GetPopup creates a popup positioned relative to parent. A nil
// parent is allowed so that a parent can be assigned through another
// protocol, such as a layer shell.
func (s *Surface) GetPopup(parent *Surface, pos *Positioner) *Popup {
	var popup Popup
	wl.NewChildObject(s, &popup.Proxy, &popup)

	msg := wire.NewMessage(s, opSurfaceGetPopup).Describe("get_popup", popup.ID(), parent, pos)
	msg.WriteUint(popup.ID())
	msg.WriteObject(parent)
	msg.WriteObject(pos)
	send(s, msg)
	return &popup
}

func (s *Surface) SetWindowGeometry(x, y, w, h int32) {
	msg := wire.NewMessage(s, opSurfaceSetWindowGeometry).Describe("set_window_geometry", x, y, w, h)
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(w)
	msg.WriteInt(h)
	send(s, msg)
}

func (s *Surface) AckConfigure(serial uint32) {
	msg := wire.NewMessage(s, opSurfaceAckConfigure).Describe("ack_configure", serial)
	msg.WriteUint(serial)
	send(s, msg)
}

func (s *Surface) Destroy() {
	destroy(s, opSurfaceDestroy)
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evSurfaceConfigure:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if s.Configure != nil {
			s.Configure(serial)
		}
		return nil

	default:
		return unknownEvent(surfaceInterface, msg.Op())
	}
}

func (s *Surface) MethodName(op uint16) string {
	if op == evSurfaceConfigure {
		return "configure"
	}
	return "unknown"
}
