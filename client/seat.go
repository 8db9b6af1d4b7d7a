package wl

import "deedles.dev/wlui/wire"

type Seat struct {
	Capabilities func(SeatCapability)
	Name         func(string)

	Proxy
}

func IsSeat(i Interface) bool {
	return i.Is(seatInterface, 1)
}

func BindSeat(display *Display, name uint32) *Seat {
	var seat Seat
	NewObject(display, &seat.Proxy, &seat)
	display.GetRegistry().Bind(name, seatInterface, seatVersion, &seat)
	return &seat
}

func (seat *Seat) GetPointer() *Pointer {
	var p Pointer
	NewChildObject(seat, &p.Proxy, &p)

	msg := wire.NewMessage(seat, opSeatGetPointer).Describe("get_pointer", p.id)
	msg.WriteUint(p.id)
	seat.display.Enqueue(msg)
	return &p
}

func (seat *Seat) GetKeyboard() *Keyboard {
	var kb Keyboard
	NewChildObject(seat, &kb.Proxy, &kb)

	msg := wire.NewMessage(seat, opSeatGetKeyboard).Describe("get_keyboard", kb.id)
	msg.WriteUint(kb.id)
	seat.display.Enqueue(msg)
	return &kb
}

// Release destroys the seat object. Before version 5 there is no
// destructor and the object is merely forgotten.
func (seat *Seat) Release() {
	if seat.version >= 5 && !seat.destroyed {
		seat.display.Enqueue(wire.NewMessage(seat, opSeatRelease).Describe("release"))
	}
	seat.MarkDestroyed()
}

func (seat *Seat) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evSeatCapabilities:
		caps := SeatCapability(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if seat.Capabilities != nil {
			seat.Capabilities(caps)
		}
		return nil

	case evSeatName:
		name := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}
		if seat.Name != nil {
			seat.Name(name)
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: seatInterface, Type: "event", Op: msg.Op()}
	}
}

func (seat *Seat) MethodName(op uint16) string {
	switch op {
	case evSeatCapabilities:
		return "capabilities"
	case evSeatName:
		return "name"
	}
	return "unknown"
}
