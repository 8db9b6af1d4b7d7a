package eventloop

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/surface"
	"deedles.dev/wlui/wire"
)

// Input is the last input of some kind that a seat received.
type Input struct {
	Serial uint32
	Time   uint32
	Code   uint32
}

// Seat is a wl_seat and the input devices bound from it.
type Seat struct {
	// Name is the registry name of the wl_seat global.
	Name uint32

	Seat     *wl.Seat
	Keyboard *wl.Keyboard
	Pointer  *wl.Pointer

	LastKey    Input
	LastButton Input
	Modifiers  event.Modifiers

	// RepeatRate and RepeatDelay are the keyboard repeat settings
	// reported by the compositor.
	RepeatRate, RepeatDelay int32

	state *State
	caps  wl.SeatCapability

	serial        uint32
	keyboardFocus surface.ObjectID
	pointerFocus  surface.ObjectID
	pointerSerial uint32

	// framed is set if the pointer groups events into frames, in which
	// case axis events are held until the end of the frame.
	framed  bool
	axis    event.Pointer
	hasAxis bool
}

func (s *State) addSeat(name uint32, ws *wl.Seat) *Seat {
	seat := Seat{
		Name:  name,
		Seat:  ws,
		state: s,
	}
	if ws != nil {
		ws.Capabilities = seat.capabilities
	}
	s.seats = append(s.seats, &seat)

	s.push(event.Seat{Seat: seat.id(), Kind: event.SeatNew})
	return &seat
}

func (s *State) removeSeat(name uint32) bool {
	for i, seat := range s.seats {
		if seat.Name != name {
			continue
		}

		seat.capabilities(0)
		s.push(event.Seat{Seat: seat.id(), Kind: event.SeatRemove})
		if seat.Seat != nil {
			seat.Seat.Release()
		}
		s.seats = append(s.seats[:i], s.seats[i+1:]...)
		return true
	}
	return false
}

func (seat *Seat) id() uint32 {
	if seat.Seat == nil {
		return 0
	}
	return seat.Seat.ID()
}

// Focus returns the surfaces that have keyboard and pointer focus.
// Either is zero if no surface has that focus.
func (seat *Seat) Focus() (keyboard, pointer surface.ObjectID) {
	return seat.keyboardFocus, seat.pointerFocus
}

// Serial returns the serial of the latest input event that can be used
// to start interactive operations, such as moves and popup grabs.
func (seat *Seat) Serial() uint32 {
	return seat.serial
}

// forget clears any focus on obj, which is being destroyed.
func (seat *Seat) forget(obj surface.ObjectID) {
	if seat.keyboardFocus == obj {
		seat.keyboardFocus = 0
	}
	if seat.pointerFocus == obj {
		seat.pointerFocus = 0
		seat.hasAxis = false
		seat.axis = event.Pointer{}
	}
}

func (seat *Seat) capabilities(caps wl.SeatCapability) {
	added := caps &^ seat.caps
	removed := seat.caps &^ caps
	seat.caps = caps

	if added.Has(wl.SeatCapabilityKeyboard) {
		seat.capability(event.CapabilityNew, event.CapabilityKeyboard)
		if seat.Seat != nil {
			seat.bindKeyboard(seat.Seat.GetKeyboard())
		}
	}
	if removed.Has(wl.SeatCapabilityKeyboard) {
		seat.capability(event.CapabilityRemove, event.CapabilityKeyboard)
		if seat.Keyboard != nil {
			seat.Keyboard.Release()
			seat.Keyboard = nil
		}
		seat.keyboardFocus = 0
	}

	if added.Has(wl.SeatCapabilityPointer) {
		seat.capability(event.CapabilityNew, event.CapabilityPointer)
		if seat.Seat != nil {
			seat.bindPointer(seat.Seat.GetPointer())
		}
	}
	if removed.Has(wl.SeatCapabilityPointer) {
		seat.capability(event.CapabilityRemove, event.CapabilityPointer)
		if seat.Pointer != nil {
			seat.Pointer.Release()
			seat.Pointer = nil
		}
		seat.pointerFocus = 0
	}

	// Touch is reported but never bound.
	if added.Has(wl.SeatCapabilityTouch) {
		seat.capability(event.CapabilityNew, event.CapabilityTouch)
	}
	if removed.Has(wl.SeatCapabilityTouch) {
		seat.capability(event.CapabilityRemove, event.CapabilityTouch)
	}
}

func (seat *Seat) capability(kind event.SeatKind, c event.Capability) {
	seat.state.push(event.Seat{Seat: seat.id(), Kind: kind, Capability: c})
}

func (seat *Seat) bindKeyboard(kb *wl.Keyboard) {
	seat.Keyboard = kb
	kb.Enter = seat.keyboardEnter
	kb.Leave = seat.keyboardLeave
	kb.Key = seat.key
	kb.Modifiers = seat.modifiers
	kb.RepeatInfo = seat.repeatInfo
}

func (seat *Seat) bindPointer(p *wl.Pointer) {
	seat.Pointer = p
	seat.framed = p.Version() >= 5
	p.Enter = seat.pointerEnter
	p.Leave = seat.pointerLeave
	p.Motion = seat.motion
	p.Button = seat.button
	p.Axis = seat.axisValue
	p.AxisSource = seat.axisSource
	p.AxisStop = seat.axisStop
	p.AxisDiscrete = seat.axisDiscrete
	p.Frame = seat.frame
}

func objectID(s *wl.Surface) surface.ObjectID {
	if s == nil {
		return 0
	}
	return surface.ObjectID(s.ID())
}

func (seat *Seat) keyboardEnter(serial uint32, s *wl.Surface, keys []uint32) {
	seat.keyboardFocus = objectID(s)
	seat.state.push(event.Keyboard{
		Seat:    seat.id(),
		Surface: seat.keyboardFocus,
		Kind:    event.KeyboardEnter,
		Serial:  serial,
		Keys:    keys,
	})
}

func (seat *Seat) keyboardLeave(serial uint32, s *wl.Surface) {
	obj := objectID(s)
	if obj == 0 {
		obj = seat.keyboardFocus
	}
	seat.keyboardFocus = 0

	seat.state.push(event.Keyboard{
		Seat:    seat.id(),
		Surface: obj,
		Kind:    event.KeyboardLeave,
		Serial:  serial,
	})
}

func (seat *Seat) key(serial, time, key uint32, state wl.KeyboardKeyState) {
	kind := event.KeyRelease
	if state == wl.KeyboardKeyStatePressed {
		kind = event.KeyPress
		seat.serial = serial
	}
	seat.LastKey = Input{Serial: serial, Time: time, Code: key}

	seat.state.push(event.Keyboard{
		Seat:    seat.id(),
		Surface: seat.keyboardFocus,
		Kind:    kind,
		Serial:  serial,
		Time:    time,
		Key:     key,
	})
}

func (seat *Seat) modifiers(serial, depressed, latched, locked, group uint32) {
	seat.Modifiers = event.Modifiers{
		Depressed: depressed,
		Latched:   latched,
		Locked:    locked,
		Group:     group,
	}

	seat.state.push(event.Keyboard{
		Seat:      seat.id(),
		Surface:   seat.keyboardFocus,
		Kind:      event.KeyboardModifiers,
		Serial:    serial,
		Modifiers: seat.Modifiers,
	})
}

func (seat *Seat) repeatInfo(rate, delay int32) {
	seat.RepeatRate, seat.RepeatDelay = rate, delay
	seat.state.push(event.Keyboard{
		Seat:  seat.id(),
		Kind:  event.KeyboardRepeatInfo,
		Rate:  rate,
		Delay: delay,
	})
}

func (seat *Seat) pointerEnter(serial uint32, s *wl.Surface, x, y wire.Fixed) {
	seat.pointerFocus = objectID(s)
	seat.pointerSerial = serial
	seat.state.push(event.Pointer{
		Seat:    seat.id(),
		Surface: seat.pointerFocus,
		Kind:    event.PointerEnter,
		Serial:  serial,
		X:       x.Float(),
		Y:       y.Float(),
	})

	seat.state.applyCursor(seat)
}

func (seat *Seat) pointerLeave(serial uint32, s *wl.Surface) {
	obj := objectID(s)
	if obj == 0 {
		obj = seat.pointerFocus
	}
	seat.flushAxis()
	seat.pointerFocus = 0

	seat.state.push(event.Pointer{
		Seat:    seat.id(),
		Surface: obj,
		Kind:    event.PointerLeave,
		Serial:  serial,
	})
}

func (seat *Seat) motion(time uint32, x, y wire.Fixed) {
	seat.state.push(event.Pointer{
		Seat:    seat.id(),
		Surface: seat.pointerFocus,
		Kind:    event.PointerMotion,
		Time:    time,
		X:       x.Float(),
		Y:       y.Float(),
	})
}

func (seat *Seat) button(serial, time uint32, button pointer.Button, state wl.PointerButtonState) {
	kind := event.PointerRelease
	if state == wl.PointerButtonStatePressed {
		kind = event.PointerPress
		seat.serial = serial
	}
	seat.LastButton = Input{Serial: serial, Time: time, Code: uint32(button)}

	seat.state.push(event.Pointer{
		Seat:    seat.id(),
		Surface: seat.pointerFocus,
		Kind:    kind,
		Serial:  serial,
		Time:    time,
		Button:  button,
	})
}

func (seat *Seat) axisFor(axis wl.PointerAxis) *event.Axis {
	seat.hasAxis = true
	if axis == wl.PointerAxisHorizontalScroll {
		return &seat.axis.Horizontal
	}
	return &seat.axis.Vertical
}

func (seat *Seat) axisValue(time uint32, axis wl.PointerAxis, value wire.Fixed) {
	seat.axis.Time = time
	seat.axisFor(axis).Absolute += value.Float()
	if !seat.framed {
		seat.flushAxis()
	}
}

func (seat *Seat) axisSource(source wl.PointerAxisSource) {
	seat.hasAxis = true
	seat.axis.Source = source
	seat.axis.HasSource = true
}

func (seat *Seat) axisStop(time uint32, axis wl.PointerAxis) {
	seat.axis.Time = time
	seat.axisFor(axis).Stop = true
}

func (seat *Seat) axisDiscrete(axis wl.PointerAxis, discrete int32) {
	seat.axisFor(axis).Discrete += discrete
}

func (seat *Seat) frame() {
	seat.flushAxis()
}

func (seat *Seat) flushAxis() {
	if !seat.hasAxis {
		return
	}

	ev := seat.axis
	ev.Seat = seat.id()
	ev.Surface = seat.pointerFocus
	ev.Kind = event.PointerAxis
	seat.state.push(ev)

	seat.axis = event.Pointer{}
	seat.hasAxis = false
}
