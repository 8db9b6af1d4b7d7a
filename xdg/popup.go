package xdg

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

// Popup is an xdg_popup.
type Popup struct {
	// Configure reports the popup's position relative to its parent
	// and its size.
	Configure func(x, y, w, h int32)

	// Done is sent when the compositor dismisses the popup. The client
	// should destroy it.
	Done func()

	Repositioned func(token uint32)

	wl.Proxy
}

// Grab makes the popup take an explicit grab. serial must be that of
// a user input event.
func (p *Popup) Grab(seat *wl.Seat, serial uint32) {
	msg := wire.NewMessage(p, opPopupGrab).Describe("grab", seat, serial)
	msg.WriteObject(seat)
	msg.WriteUint(serial)
	send(p, msg)
}

// Reposition moves the popup using a new positioner. It requires
// version 3 and is otherwise ignored.
func (p *Popup) Reposition(pos *Positioner, token uint32) {
	if p.Version() < 3 {
		return
	}

	msg := wire.NewMessage(p, opPopupReposition).Describe("reposition", pos, token)
	msg.WriteObject(pos)
	msg.WriteUint(token)
	send(p, msg)
}

func (p *Popup) Destroy() {
	destroy(p, opPopupDestroy)
}

func (p *Popup) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evPopupConfigure:
		x, y := msg.ReadInt(), msg.ReadInt()
		w, h := msg.ReadInt(), msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Configure != nil {
			p.Configure(x, y, w, h)
		}

	case evPopupDone:
		if p.Done != nil {
			p.Done()
		}

	case evPopupRepositioned:
		token := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Repositioned != nil {
			p.Repositioned(token)
		}

	default:
		return unknownEvent(popupInterface, msg.Op())
	}

	return nil
}

func (p *Popup) MethodName(op uint16) string {
	switch op {
	case evPopupConfigure:
		return "configure"
	case evPopupDone:
		return "popup_done"
	case evPopupRepositioned:
		return "repositioned"
	}
	return "unknown"
}
