package wl

import "deedles.dev/wlui/wire"

// Surface is a wl_surface. Roles such as xdg_toplevel are assigned to
// it by the shell packages.
type Surface struct {
	// Enter and Leave are called when some part of the surface starts
	// or stops being shown on an output.
	Enter func(*Output)
	Leave func(*Output)

	Proxy
}

func (s *Surface) send(msg *wire.MessageBuilder) {
	if s.destroyed {
		return
	}
	s.display.Enqueue(msg)
}

// Attach sets buf as the surface's pending buffer. A nil buf removes
// the surface's content.
func (s *Surface) Attach(buf *Buffer, x, y int32) {
	msg := wire.NewMessage(s, opSurfaceAttach).Describe("attach", buf, x, y)
	msg.WriteObject(buf)
	msg.WriteInt(x)
	msg.WriteInt(y)
	s.send(msg)
}

func (s *Surface) Damage(x, y, width, height int32) {
	msg := wire.NewMessage(s, opSurfaceDamage).Describe("damage", x, y, width, height)
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(width)
	msg.WriteInt(height)
	s.send(msg)
}

func (s *Surface) DamageBuffer(x, y, width, height int32) {
	if s.version < 4 {
		s.Damage(x, y, width, height)
		return
	}

	msg := wire.NewMessage(s, opSurfaceDamageBuffer).Describe("damage_buffer", x, y, width, height)
	msg.WriteInt(x)
	msg.WriteInt(y)
	msg.WriteInt(width)
	msg.WriteInt(height)
	s.send(msg)
}

// Frame requests a callback for when it is a good time to draw the
// next frame.
func (s *Surface) Frame(done func(uint32)) *Callback {
	callback := Callback{Done: done}
	NewChildObject(s, &callback.Proxy, &callback)

	msg := wire.NewMessage(s, opSurfaceFrame).Describe("frame", callback.id)
	msg.WriteUint(callback.id)
	s.send(msg)

	return &callback
}

// SetBufferScale sets the scale of attached buffers. It is ignored if
// the compositor is too old to support it.
func (s *Surface) SetBufferScale(scale int32) {
	if s.version < 3 {
		return
	}

	msg := wire.NewMessage(s, opSurfaceSetBufferScale).Describe("set_buffer_scale", scale)
	msg.WriteInt(scale)
	s.send(msg)
}

func (s *Surface) Commit() {
	s.send(wire.NewMessage(s, opSurfaceCommit).Describe("commit"))
}

func (s *Surface) Destroy() {
	s.send(wire.NewMessage(s, opSurfaceDestroy).Describe("destroy"))
	s.MarkDestroyed()
}

func (s *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evSurfaceEnter, evSurfaceLeave:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		out, _ := s.display.GetObject(id).(*Output)
		if out == nil {
			return nil
		}

		f := s.Enter
		if msg.Op() == evSurfaceLeave {
			f = s.Leave
		}
		if f != nil {
			f(out)
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: surfaceInterface, Type: "event", Op: msg.Op()}
	}
}

func (s *Surface) MethodName(op uint16) string {
	switch op {
	case evSurfaceEnter:
		return "enter"
	case evSurfaceLeave:
		return "leave"
	}
	return "unknown"
}
