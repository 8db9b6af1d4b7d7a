package eventloop

import (
	"fmt"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/surface"
	"deedles.dev/wlui/xdg"
)

// globals tracks the globals bound from the registry and creates
// surfaces with them.
type globals struct {
	display    *wl.Display
	state      *State
	compositor *wl.Compositor
	shm        *wl.Shm
	wm         *xdg.WmBase
	layerShell *layer.Shell
}

func (g *globals) global(name uint32, inter wl.Interface) {
	switch {
	case wl.IsCompositor(inter):
		if g.compositor == nil {
			g.compositor = wl.BindCompositor(g.display, name)
		}
	case wl.IsShm(inter):
		if g.shm == nil {
			g.shm = wl.BindShm(g.display, name)
		}
	case xdg.IsWmBase(inter):
		if g.wm == nil {
			g.wm = xdg.BindWmBase(g.display, name)
		}
	case layer.IsShell(inter):
		if g.layerShell == nil {
			g.layerShell = layer.BindShell(g.display, name)
		}
	case wl.IsSeat(inter):
		g.state.addSeat(name, wl.BindSeat(g.display, name))
	case wl.IsOutput(inter):
		g.state.addOutput(name, wl.BindOutput(g.display, name))
	}
}

func (g *globals) globalRemove(name uint32) {
	if g.state.removeSeat(name) {
		return
	}
	g.state.removeOutput(name)
}

func (g *globals) check() error {
	if g.compositor == nil {
		return fmt.Errorf("%w: wl_compositor", ErrMissingGlobal)
	}
	if g.wm == nil {
		return fmt.Errorf("%w: xdg_wm_base", ErrMissingGlobal)
	}
	return nil
}

func (g *globals) NewRole(kind surface.Kind, params surface.Params, parent Role) (Role, error) {
	switch kind {
	case surface.Window:
		return g.newWindow(params), nil
	case surface.LayerSurface:
		if g.layerShell == nil {
			return nil, fmt.Errorf("layer shell: %w", ErrUnsupported)
		}
		return g.newLayerSurface(params), nil
	case surface.Popup:
		return g.newPopup(params, parent)
	}
	return nil, fmt.Errorf("unknown surface kind %v", kind)
}

func (g *globals) newBase() baseRole {
	r := baseRole{
		state:   g.state,
		surface: g.compositor.CreateSurface(),
	}
	r.surface.Enter = func(out *wl.Output) {
		if name, ok := r.state.outputName(out); ok {
			r.state.surfaceEnter(r.Object(), name)
		}
	}
	r.surface.Leave = func(out *wl.Output) {
		if name, ok := r.state.outputName(out); ok {
			r.state.surfaceLeave(r.Object(), name)
		}
	}
	return r
}

func (g *globals) positioner(p surface.Positioner) *xdg.Positioner {
	pos := g.wm.CreatePositioner()
	pos.SetSize(int32(max(p.Size.W, 1)), int32(max(p.Size.H, 1)))

	rect := p.AnchorRect
	pos.SetAnchorRect(int32(rect.Min.X), int32(rect.Min.Y), int32(max(rect.Dx(), 1)), int32(max(rect.Dy(), 1)))
	pos.SetAnchor(p.Anchor)
	pos.SetGravity(p.Gravity)
	pos.SetConstraintAdjustment(p.ConstraintAdjustment)
	pos.SetOffset(int32(p.Offset.X), int32(p.Offset.Y))
	if p.Reactive {
		pos.SetReactive()
	}
	return pos
}

// baseRole is the part of a role that is common to every kind of
// surface.
type baseRole struct {
	state   *State
	surface *wl.Surface
}

func (r *baseRole) Object() surface.ObjectID {
	return surface.ObjectID(r.surface.ID())
}

func (r *baseRole) SetScale(scale int32) {
	r.surface.SetBufferScale(scale)
}

func (r *baseRole) Frame() {
	obj := r.Object()
	r.surface.Frame(func(time uint32) {
		r.state.push(event.Surface{Surface: obj, Kind: event.Frame, Time: time})
	})
}

type windowRole struct {
	baseRole
	xdg     *xdg.Surface
	top     *xdg.Toplevel
	pending surface.Configure
}

func (g *globals) newWindow(params surface.Params) *windowRole {
	r := windowRole{baseRole: g.newBase()}
	r.xdg = g.wm.GetXdgSurface(r.surface)
	r.top = r.xdg.GetToplevel()

	r.top.Configure = func(w, h int32, states []xdg.ToplevelState) {
		r.pending.Size = surface.Size{W: uint32(max(w, 0)), H: uint32(max(h, 0))}
		r.pending.State = windowState(states)
	}
	r.top.ConfigureBounds = func(w, h int32) {
		r.state.push(event.Surface{
			Surface: r.Object(),
			Kind:    event.ConfigureBounds,
			Bounds:  surface.Size{W: uint32(max(w, 0)), H: uint32(max(h, 0))},
		})
	}
	r.top.Close = func() { r.state.pushClose(r.Object()) }
	r.xdg.Configure = func(serial uint32) {
		c := r.pending
		c.Serial = serial
		r.pending = surface.Configure{}
		r.state.pushConfigure(r.Object(), c)
	}

	if params.Title != "" {
		r.top.SetTitle(params.Title)
	}
	if params.AppID != "" {
		r.top.SetAppID(params.AppID)
	}
	if !params.MinSize.IsZero() {
		r.SetMinSize(params.MinSize)
	}
	if !params.MaxSize.IsZero() {
		r.SetMaxSize(params.MaxSize)
	}
	r.surface.Commit()

	return &r
}

func windowState(states []xdg.ToplevelState) surface.State {
	var s surface.State
	for _, state := range states {
		switch state {
		case xdg.ToplevelStateMaximized:
			s |= surface.StateMaximized
		case xdg.ToplevelStateFullscreen:
			s |= surface.StateFullscreen
		case xdg.ToplevelStateResizing:
			s |= surface.StateResizing
		case xdg.ToplevelStateActivated:
			s |= surface.StateActivated
		case xdg.ToplevelStateTiledLeft, xdg.ToplevelStateTiledRight, xdg.ToplevelStateTiledTop, xdg.ToplevelStateTiledBottom:
			s |= surface.StateTiled
		case xdg.ToplevelStateSuspended:
			s |= surface.StateSuspended
		}
	}
	return s
}

func (r *windowRole) AckConfigure(serial uint32) {
	r.xdg.AckConfigure(serial)
}

func (r *windowRole) Commit(size surface.Size) {
	if !size.IsZero() {
		r.xdg.SetWindowGeometry(0, 0, int32(size.W), int32(size.H))
	}
	r.surface.Commit()
}

func (r *windowRole) SetTitle(title string) { r.top.SetTitle(title) }
func (r *windowRole) SetAppID(id string)    { r.top.SetAppID(id) }

func (r *windowRole) SetMinSize(size surface.Size) {
	r.top.SetMinSize(int32(size.W), int32(size.H))
}

func (r *windowRole) SetMaxSize(size surface.Size) {
	r.top.SetMaxSize(int32(size.W), int32(size.H))
}

func (r *windowRole) SetMaximized(maximized bool) {
	if maximized {
		r.top.SetMaximized()
		return
	}
	r.top.UnsetMaximized()
}

func (r *windowRole) SetFullscreen(fullscreen bool) {
	if fullscreen {
		r.top.SetFullscreen(nil)
		return
	}
	r.top.UnsetFullscreen()
}

func (r *windowRole) SetMinimized() {
	r.top.SetMinimized()
}

func (r *windowRole) Move(seat *Seat) {
	if seat == nil || seat.Seat == nil {
		return
	}
	r.top.Move(seat.Seat, seat.Serial())
}

func (r *windowRole) Destroy() {
	r.top.Destroy()
	r.xdg.Destroy()
	r.surface.Destroy()
}

func (r *windowRole) xdgSurface() *xdg.Surface {
	return r.xdg
}

type layerRole struct {
	baseRole
	ls *layer.Surface
}

func (g *globals) newLayerSurface(params surface.Params) *layerRole {
	r := layerRole{baseRole: g.newBase()}

	lp := params.Layer
	var output *wl.Output
	if out, ok := g.state.outputs[lp.Output]; ok {
		output = out.Output
	}
	r.ls = g.layerShell.GetLayerSurface(r.surface, output, lp.Layer, lp.Namespace)

	r.ls.Configure = func(serial, w, h uint32) {
		r.state.pushConfigure(r.Object(), surface.Configure{Serial: serial, Size: surface.Size{W: w, H: h}})
	}
	r.ls.Closed = func() { r.state.pushClose(r.Object()) }

	r.ls.SetSize(params.Size.W, params.Size.H)
	r.ls.SetAnchor(lp.Anchor)
	r.ls.SetExclusiveZone(lp.ExclusiveZone)
	r.ls.SetMargin(lp.Margin)
	r.ls.SetKeyboardInteractivity(lp.KeyboardInteractivity)
	r.surface.Commit()

	return &r
}

func (r *layerRole) AckConfigure(serial uint32) {
	r.ls.AckConfigure(serial)
}

func (r *layerRole) Commit(surface.Size) {
	r.surface.Commit()
}

func (r *layerRole) SetSize(size surface.Size) {
	r.ls.SetSize(size.W, size.H)
}

func (r *layerRole) SetAnchor(anchor layer.Anchor) { r.ls.SetAnchor(anchor) }
func (r *layerRole) SetMargin(margin layer.Margin) { r.ls.SetMargin(margin) }
func (r *layerRole) SetExclusiveZone(zone int32)   { r.ls.SetExclusiveZone(zone) }
func (r *layerRole) SetLayer(l layer.Layer) bool   { return r.ls.SetLayer(l) }

func (r *layerRole) SetKeyboardInteractivity(ki layer.KeyboardInteractivity) {
	r.ls.SetKeyboardInteractivity(ki)
}

func (r *layerRole) Destroy() {
	r.ls.Destroy()
	r.surface.Destroy()
}

type popupRole struct {
	baseRole
	g       *globals
	xdg     *xdg.Surface
	popup   *xdg.Popup
	pending surface.Configure
}

func (g *globals) newPopup(params surface.Params, parent Role) (*popupRole, error) {
	var parentXdg *xdg.Surface
	var parentLayer *layer.Surface
	switch parent := parent.(type) {
	case interface{ xdgSurface() *xdg.Surface }:
		parentXdg = parent.xdgSurface()
	case *layerRole:
		parentLayer = parent.ls
	default:
		return nil, fmt.Errorf("popup parent %T: %w", parent, ErrWrongKind)
	}

	r := popupRole{baseRole: g.newBase(), g: g}
	r.xdg = g.wm.GetXdgSurface(r.surface)

	pos := g.positioner(params.Positioner)
	r.popup = r.xdg.GetPopup(parentXdg, pos)
	pos.Destroy()
	if parentLayer != nil {
		parentLayer.GetPopup(r.popup)
	}

	r.popup.Configure = func(x, y, w, h int32) {
		r.pending.X, r.pending.Y = x, y
		r.pending.Size = surface.Size{W: uint32(max(w, 0)), H: uint32(max(h, 0))}
	}
	r.popup.Done = func() { r.state.pushClose(r.Object()) }
	r.popup.Repositioned = func(token uint32) {
		r.state.push(event.Surface{Surface: r.Object(), Kind: event.Repositioned, Token: token})
	}
	r.xdg.Configure = func(serial uint32) {
		c := r.pending
		c.Serial = serial
		r.pending = surface.Configure{}
		r.state.pushConfigure(r.Object(), c)
	}

	if params.Grab {
		r.Grab(g.state.ActiveSeat())
	}
	r.surface.Commit()

	return &r, nil
}

func (r *popupRole) AckConfigure(serial uint32) {
	r.xdg.AckConfigure(serial)
}

func (r *popupRole) Commit(size surface.Size) {
	if !size.IsZero() {
		r.xdg.SetWindowGeometry(0, 0, int32(size.W), int32(size.H))
	}
	r.surface.Commit()
}

func (r *popupRole) Reposition(p surface.Positioner, token uint32) {
	pos := r.g.positioner(p)
	r.popup.Reposition(pos, token)
	pos.Destroy()
}

func (r *popupRole) Grab(seat *Seat) {
	if seat == nil || seat.Seat == nil {
		return
	}
	r.popup.Grab(seat.Seat, seat.Serial())
}

func (r *popupRole) Destroy() {
	r.popup.Destroy()
	r.xdg.Destroy()
	r.surface.Destroy()
}

func (r *popupRole) xdgSurface() *xdg.Surface {
	return r.xdg
}
