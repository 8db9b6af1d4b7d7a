package wl

import (
	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/wire"
)

// Pointer is a wl_pointer. Events are delivered individually as they
// arrive; from version 5 on, a Frame event marks the end of a group
// of events that belong together.
type Pointer struct {
	Enter        func(serial uint32, s *Surface, x, y wire.Fixed)
	Leave        func(serial uint32, s *Surface)
	Motion       func(time uint32, x, y wire.Fixed)
	Button       func(serial, time uint32, button pointer.Button, state PointerButtonState)
	Axis         func(time uint32, axis PointerAxis, value wire.Fixed)
	Frame        func()
	AxisSource   func(PointerAxisSource)
	AxisStop     func(time uint32, axis PointerAxis)
	AxisDiscrete func(axis PointerAxis, discrete int32)

	Proxy
}

// SetCursor sets the pointer image. A nil surface hides the cursor.
func (p *Pointer) SetCursor(serial uint32, s *Surface, hotspotX, hotspotY int32) {
	if p.destroyed {
		return
	}

	msg := wire.NewMessage(p, opPointerSetCursor).Describe("set_cursor", serial, s, hotspotX, hotspotY)
	msg.WriteUint(serial)
	msg.WriteObject(s)
	msg.WriteInt(hotspotX)
	msg.WriteInt(hotspotY)
	p.display.Enqueue(msg)
}

func (p *Pointer) Release() {
	if p.version >= 3 && !p.destroyed {
		p.display.Enqueue(wire.NewMessage(p, opPointerRelease).Describe("release"))
	}
	p.MarkDestroyed()
}

func (p *Pointer) surface(id uint32) *Surface {
	s, _ := p.display.GetObject(id).(*Surface)
	return s
}

func (p *Pointer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evPointerEnter:
		serial, id := msg.ReadUint(), msg.ReadUint()
		x, y := msg.ReadFixed(), msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Enter != nil {
			p.Enter(serial, p.surface(id), x, y)
		}

	case evPointerLeave:
		serial, id := msg.ReadUint(), msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Leave != nil {
			p.Leave(serial, p.surface(id))
		}

	case evPointerMotion:
		time := msg.ReadUint()
		x, y := msg.ReadFixed(), msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Motion != nil {
			p.Motion(time, x, y)
		}

	case evPointerButton:
		serial, time := msg.ReadUint(), msg.ReadUint()
		button, state := pointer.Button(msg.ReadUint()), PointerButtonState(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Button != nil {
			p.Button(serial, time, button, state)
		}

	case evPointerAxis:
		time, axis := msg.ReadUint(), PointerAxis(msg.ReadUint())
		value := msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.Axis != nil {
			p.Axis(time, axis, value)
		}

	case evPointerFrame:
		if p.Frame != nil {
			p.Frame()
		}

	case evPointerAxisSource:
		source := PointerAxisSource(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if p.AxisSource != nil {
			p.AxisSource(source)
		}

	case evPointerAxisStop:
		time, axis := msg.ReadUint(), PointerAxis(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if p.AxisStop != nil {
			p.AxisStop(time, axis)
		}

	case evPointerAxisDiscrete:
		axis, discrete := PointerAxis(msg.ReadUint()), msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.AxisDiscrete != nil {
			p.AxisDiscrete(axis, discrete)
		}

	default:
		return wire.UnknownOpError{Interface: pointerInterface, Type: "event", Op: msg.Op()}
	}

	return nil
}

func (p *Pointer) MethodName(op uint16) string {
	switch op {
	case evPointerEnter:
		return "enter"
	case evPointerLeave:
		return "leave"
	case evPointerMotion:
		return "motion"
	case evPointerButton:
		return "button"
	case evPointerAxis:
		return "axis"
	case evPointerFrame:
		return "frame"
	case evPointerAxisSource:
		return "axis_source"
	case evPointerAxisStop:
		return "axis_stop"
	case evPointerAxisDiscrete:
		return "axis_discrete"
	}
	return "unknown"
}
