package eventloop

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/event"
)

// Output is a wl_output. Info is only updated once the compositor has
// finished sending a batch of changes.
type Output struct {
	// Name is the registry name of the wl_output global.
	Name   uint32
	Output *wl.Output
	Info   event.OutputInfo

	state     *State
	pending   event.OutputInfo
	announced bool
}

func (s *State) addOutput(name uint32, wo *wl.Output) *Output {
	out := Output{
		Name:    name,
		Output:  wo,
		state:   s,
		pending: event.OutputInfo{Scale: 1},
	}
	if wo != nil {
		wo.Geometry = out.geometry
		wo.Mode = out.mode
		wo.Scale = out.scale
		wo.Name = func(name string) { out.pending.Name = name }
		wo.Description = func(desc string) { out.pending.Description = desc }
		wo.Done = out.done
	}
	s.outputs[name] = &out
	return &out
}

func (s *State) removeOutput(name uint32) bool {
	out, ok := s.outputs[name]
	if !ok {
		return false
	}
	delete(s.outputs, name)

	if out.announced {
		s.push(event.Output{Output: name, Kind: event.OutputRemove, Info: out.Info})
	}
	if out.Output != nil {
		out.Output.Release()
	}

	for _, rec := range s.surfaces.Records() {
		if rec.Outputs.Delete(name) {
			s.rescale(rec)
		}
	}
	return true
}

// outputName returns the registry name of a bound wl_output.
func (s *State) outputName(wo *wl.Output) (uint32, bool) {
	for name, out := range s.outputs {
		if out.Output == wo {
			return name, true
		}
	}
	return 0, false
}

func (out *Output) geometry(x, y, pw, ph, subpixel int32, make, model string, transform wl.OutputTransform) {
	out.pending.X, out.pending.Y = x, y
	out.pending.PhysicalWidth, out.pending.PhysicalHeight = pw, ph
	out.pending.Make, out.pending.Model = make, model
	out.pending.Transform = transform
}

func (out *Output) mode(flags wl.OutputMode, w, h, refresh int32) {
	if flags&wl.OutputModeCurrent == 0 {
		return
	}
	out.pending.Width, out.pending.Height = w, h
	out.pending.Refresh = refresh
}

func (out *Output) scale(factor int32) {
	out.pending.Scale = max(factor, 1)
}

func (out *Output) done() {
	scaled := out.Info.Scale != out.pending.Scale
	out.Info = out.pending

	kind := event.OutputUpdate
	if !out.announced {
		kind = event.OutputNew
		out.announced = true
	}
	out.state.push(event.Output{Output: out.Name, Kind: kind, Info: out.Info})

	if scaled {
		out.state.updateScale(out.Name)
	}
}
