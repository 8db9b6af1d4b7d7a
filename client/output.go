package wl

import "deedles.dev/wlui/wire"

// Output is a wl_output. Properties are sent as a burst of events
// terminated by Done.
type Output struct {
	Geometry    func(x, y, physicalWidth, physicalHeight, subpixel int32, make, model string, transform OutputTransform)
	Mode        func(flags OutputMode, width, height, refresh int32)
	Done        func()
	Scale       func(factor int32)
	Name        func(name string)
	Description func(description string)

	Proxy
}

func IsOutput(i Interface) bool {
	return i.Is(outputInterface, 1)
}

func BindOutput(display *Display, name uint32) *Output {
	var output Output
	NewObject(display, &output.Proxy, &output)
	display.GetRegistry().Bind(name, outputInterface, outputVersion, &output)
	return &output
}

func (out *Output) Release() {
	if out.version >= 3 && !out.destroyed {
		out.display.Enqueue(wire.NewMessage(out, opOutputRelease).Describe("release"))
	}
	out.MarkDestroyed()
}

func (out *Output) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evOutputGeometry:
		x, y := msg.ReadInt(), msg.ReadInt()
		pw, ph := msg.ReadInt(), msg.ReadInt()
		subpixel := msg.ReadInt()
		make, model := msg.ReadString(), msg.ReadString()
		transform := OutputTransform(msg.ReadInt())
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Geometry != nil {
			out.Geometry(x, y, pw, ph, subpixel, make, model, transform)
		}

	case evOutputMode:
		flags := OutputMode(msg.ReadUint())
		w, h, refresh := msg.ReadInt(), msg.ReadInt(), msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Mode != nil {
			out.Mode(flags, w, h, refresh)
		}

	case evOutputDone:
		if out.Done != nil {
			out.Done()
		}

	case evOutputScale:
		factor := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.Scale != nil {
			out.Scale(factor)
		}

	case evOutputName, evOutputDescription:
		v := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}
		f := out.Name
		if msg.Op() == evOutputDescription {
			f = out.Description
		}
		if f != nil {
			f(v)
		}

	default:
		return wire.UnknownOpError{Interface: outputInterface, Type: "event", Op: msg.Op()}
	}

	return nil
}

func (out *Output) MethodName(op uint16) string {
	switch op {
	case evOutputGeometry:
		return "geometry"
	case evOutputMode:
		return "mode"
	case evOutputDone:
		return "done"
	case evOutputScale:
		return "scale"
	case evOutputName:
		return "name"
	case evOutputDescription:
		return "description"
	}
	return "unknown"
}
