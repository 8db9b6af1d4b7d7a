package xdg

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

// WmBase is the xdg_wm_base global. Pings from the compositor are
// answered automatically.
type WmBase struct {
	wl.Proxy
}

func IsWmBase(i wl.Interface) bool {
	return i.Is(wmBaseInterface, 1)
}

func BindWmBase(display *wl.Display, name uint32) *WmBase {
	var wm WmBase
	wl.NewObject(display, &wm.Proxy, &wm)
	display.GetRegistry().Bind(name, wmBaseInterface, wmBaseVersion, &wm)
	return &wm
}

func (wm *WmBase) CreatePositioner() *Positioner {
	var pos Positioner
	wl.NewChildObject(wm, &pos.Proxy, &pos)

	msg := wire.NewMessage(wm, opWmBaseCreatePositioner).Describe("create_positioner", pos.ID())
	msg.WriteUint(pos.ID())
	send(wm, msg)
	return &pos
}

// GetXdgSurface creates an xdg_surface for s. The wl_surface must not
// have a buffer attached or committed yet.
func (wm *WmBase) GetXdgSurface(s *wl.Surface) *Surface {
	xs := Surface{surface: s}
	wl.NewChildObject(wm, &xs.Proxy, &xs)

	msg := wire.NewMessage(wm, opWmBaseGetXdgSurface).Describe("get_xdg_surface", xs.ID(), s)
	msg.WriteUint(xs.ID())
	msg.WriteObject(s)
	send(wm, msg)
	return &xs
}

func (wm *WmBase) Destroy() {
	destroy(wm, opWmBaseDestroy)
}

func (wm *WmBase) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evWmBasePing:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		pong := wire.NewMessage(wm, opWmBasePong).Describe("pong", serial)
		pong.WriteUint(serial)
		send(wm, pong)
		return nil

	default:
		return unknownEvent(wmBaseInterface, msg.Op())
	}
}

func (wm *WmBase) MethodName(op uint16) string {
	if op == evWmBasePing {
		return "ping"
	}
	return "unknown"
}

// Positioner describes where a popup should be placed relative to its
// parent.
type Positioner struct {
	wl.Proxy
}

func (pos *Positioner) SetSize(w, h int32) {
	msg := wire.NewMessage(pos, opPositionerSetSize).Describe("set_size", w, h)
	msg.WriteInt(w)
	msg.WriteInt(h)
	send(pos, msg)
}

func (pos *Positioner) SetAnchorRect(x, y, w, h int32) {
	msg := wire.NewMessage(pos, opPositionerSetAnchorRect).Describe("set_anchor_rect", x, y, w, h)
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(w)
	msg.WriteInt(h)
	send(pos, msg)
}

func (pos *Positioner) SetAnchor(anchor Anchor) {
	msg := wire.NewMessage(pos, opPositionerSetAnchor).Describe("set_anchor", anchor)
	msg.WriteUint(uint32(anchor))
	send(pos, msg)
}

func (pos *Positioner) SetGravity(gravity Gravity) {
	msg := wire.NewMessage(pos, opPositionerSetGravity).Describe("set_gravity", gravity)
	msg.WriteUint(uint32(gravity))
	send(pos, msg)
}

func (pos *Positioner) SetConstraintAdjustment(adj ConstraintAdjustment) {
	msg := wire.NewMessage(pos, opPositionerSetConstraintAdjustment).Describe("set_constraint_adjustment", adj)
	msg.WriteUint(uint32(adj))
	send(pos, msg)
}

func (pos *Positioner) SetOffset(x, y int32) {
	msg := wire.NewMessage(pos, opPositionerSetOffset).Describe("set_offset", x, y)
	msg.WriteInt(x)
	msg.WriteInt(y)
	send(pos, msg)
}

// SetReactive asks for the popup to be repositioned when its parent
// moves. It requires version 3.
func (pos *Positioner) SetReactive() {
	if pos.Version() < 3 {
		return
	}
	send(pos, wire.NewMessage(pos, opPositionerSetReactive).Describe("set_reactive"))
}

func (pos *Positioner) Destroy() {
	destroy(pos, opPositionerDestroy)
}

func (pos *Positioner) Dispatch(msg *wire.MessageBuffer) error {
	return unknownEvent(positionerInterface, msg.Op())
}

func (pos *Positioner) MethodName(op uint16) string {
	return "unknown"
}
