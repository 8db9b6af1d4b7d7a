package layer

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
	"deedles.dev/wlui/xdg"
)

// Surface is a zwlr_layer_surface_v1.
type Surface struct {
	// Configure asks the client to resize. A zero dimension means
	// that the client is free to pick, which is only the case for
	// dimensions that were not anchored on both sides.
	Configure func(serial uint32, w, h uint32)

	// Closed is sent when the compositor no longer shows the surface,
	// for example because its output went away. The surface should
	// be destroyed.
	Closed func()

	wl.Proxy
	surface *wl.Surface
}

func (s *Surface) WlSurface() *wl.Surface {
	return s.surface
}

func (s *Surface) SetSize(w, h uint32) {
	msg := wire.NewMessage(s, opSurfaceSetSize).Describe("set_size", w, h)
	msg.WriteUint(w)
	msg.WriteUint(h)
	send(s, msg)
}

func (s *Surface) SetAnchor(anchor Anchor) {
	msg := wire.NewMessage(s, opSurfaceSetAnchor).Describe("set_anchor", anchor)
	msg.WriteUint(uint32(anchor))
	send(s, msg)
}

// SetExclusiveZone asks the compositor to keep other surfaces out of
// an area of the given size along the anchored edge. A zone of -1
// asks for the surface to not be moved to make room for others.
func (s *Surface) SetExclusiveZone(zone int32) {
	msg := wire.NewMessage(s, opSurfaceSetExclusiveZone).Describe("set_exclusive_zone", zone)
	msg.WriteInt(zone)
	send(s, msg)
}

func (s *Surface) SetMargin(m Margin) {
	msg := wire.NewMessage(s, opSurfaceSetMargin).Describe("set_margin", m.Top, m.Right, m.Bottom, m.Left)
	msg.WriteInt(m.Top)
	msg.WriteInt(m.Right)
	msg.WriteInt(m.Bottom)
	msg.WriteInt(m.Left)
	send(s, msg)
}

// SetKeyboardInteractivity sets the keyboard focus policy.
// KeyboardInteractivityOnDemand requires version 4 and falls back to
// none on older compositors.
func (s *Surface) SetKeyboardInteractivity(ki KeyboardInteractivity) {
	if ki == KeyboardInteractivityOnDemand && s.Version() < 4 {
		ki = KeyboardInteractivityNone
	}

	msg := wire.NewMessage(s, opSurfaceSetKeyboardInteractivity).Describe("set_keyboard_interactivity", ki)
	msg.WriteUint(uint32(ki))
	send(s, msg)
}

// GetPopup makes the layer surface the parent of popup, which must
// have been created with a nil parent.
func (s *Surface) GetPopup(popup *xdg.Popup) {
	msg := wire.NewMessage(s, opSurfaceGetPopup).Describe("get_popup", popup)
	msg.WriteObject(popup)
	send(s, msg)
}

func (s *Surface) AckConfigure(serial uint32) {
	msg := wire.NewMessage(s, opSurfaceAckConfigure).Describe("ack_configure", serial)
	msg.WriteUint(serial)
	send(s, msg)
}

// SetLayer moves the surface to another layer. It requires version 2
// and reports whether the request was sent.
func (s *Surface) SetLayer(layer Layer) bool {
	if s.Version() < 2 {
		return false
	}

	msg := wire.NewMessage(s, opSurfaceSetLayer).Describe("set_layer", layer)
	msg.WriteUint(uint32(layer))
	send(s, msg)
	return true
}

func (s *Surface) Destroy() {
	send(s, wire.NewMessage(s, opSurfaceDestroy).Describe("destroy"))
	s.MarkDestroyed()
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evSurfaceConfigure:
		serial := msg.ReadUint()
		w, h := msg.ReadUint(), msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if s.Configure != nil {
			s.Configure(serial, w, h)
		}
		return nil

	case evSurfaceClosed:
		if s.Closed != nil {
			s.Closed()
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: surfaceInterface, Type: "event", Op: msg.Op()}
	}
}

func (s *Surface) MethodName(op uint16) string {
	switch op {
	case evSurfaceConfigure:
		return "configure"
	case evSurfaceClosed:
		return "closed"
	}
	return "unknown"
}
