package eventloop

import (
	"fmt"
	"maps"
	"slices"

	"deedles.dev/wlui/event"
	"deedles.dev/wlui/internal/debug"
	"deedles.dev/wlui/internal/ev"
	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/surface"
	"github.com/charmbracelet/log"
)

// State is everything the loop knows about the connection. It is
// passed to the callback given to Run and must only be used from
// inside of it.
type State struct {
	shell    Shell
	surfaces *surface.Registry
	seats    []*Seat
	outputs  map[uint32]*Output
	sink     ev.Sink[event.Event]
	closed   []*surface.Record

	cursor      *cursorImage
	interaction pointer.Interaction

	log *log.Logger
}

func newState(shell Shell) *State {
	return &State{
		shell:    shell,
		surfaces: surface.NewRegistry(),
		outputs:  make(map[uint32]*Output),
		log:      debug.With("component", "state"),
	}
}

// Surfaces returns the registry of live surfaces.
func (s *State) Surfaces() *surface.Registry {
	return s.surfaces
}

// Seats returns the current seats in the order that they were
// announced.
func (s *State) Seats() []*Seat {
	return slices.Clone(s.seats)
}

// ActiveSeat returns the seat that input-dependent requests, such as
// popup grabs, are made through. It returns nil if there are no
// seats.
func (s *State) ActiveSeat() *Seat {
	if len(s.seats) == 0 {
		return nil
	}
	return s.seats[0]
}

// Outputs returns the current outputs ordered by registry name.
func (s *State) Outputs() []*Output {
	names := slices.Sorted(maps.Keys(s.outputs))

	outputs := make([]*Output, 0, len(names))
	for _, name := range names {
		outputs = append(outputs, s.outputs[name])
	}
	return outputs
}

func (s *State) push(ev event.Event) {
	s.sink.Push(ev)
}

func (s *State) pushConfigure(obj surface.ObjectID, c surface.Configure) {
	rec, ok := s.surfaces.Lookup(obj)
	if !ok {
		s.log.Debug("configure for unknown surface", "object", obj)
		return
	}
	rec.PushConfigure(c)
}

func (s *State) pushClose(obj surface.ObjectID) {
	rec, ok := s.surfaces.Lookup(obj)
	if !ok {
		s.log.Debug("close for unknown surface", "object", obj)
		return
	}
	rec.PushClose()
}

// CreateWindow creates a new toplevel window.
func (s *State) CreateWindow(params surface.Params) (*surface.Record, error) {
	return s.create(surface.Window, params)
}

// CreateLayerSurface creates a new layer surface. It fails with
// ErrUnsupported if the compositor does not support layer shell.
func (s *State) CreateLayerSurface(params surface.Params) (*surface.Record, error) {
	return s.create(surface.LayerSurface, params)
}

// CreatePopup creates a popup as a child of params.Parent.
func (s *State) CreatePopup(params surface.Params) (*surface.Record, error) {
	return s.create(surface.Popup, params)
}

func (s *State) create(kind surface.Kind, params surface.Params) (*surface.Record, error) {
	if params.ID != 0 && s.surfaces.Used(params.ID) {
		return nil, fmt.Errorf("create %v %v: %w", kind, params.ID, surface.ErrExists)
	}

	var parent Role
	if kind == surface.Popup {
		prec, ok := s.surfaces.Get(params.Parent)
		if !ok {
			return nil, fmt.Errorf("create popup: %w: %v", surface.ErrNoParent, params.Parent)
		}
		parent = prec.Role.(Role)
	}

	role, err := s.shell.NewRole(kind, params, parent)
	if err != nil {
		return nil, fmt.Errorf("create %v: %w", kind, err)
	}

	rec, err := s.surfaces.Create(kind, role.Object(), params)
	if err != nil {
		role.Destroy()
		return nil, fmt.Errorf("create %v: %w", kind, err)
	}
	rec.Role = role

	s.log.Debug("created surface", "id", rec.ID, "kind", kind, "object", rec.Object)
	return rec, nil
}

// Close destroys a surface along with any popups below it. The
// destroyed surfaces are reported with Closed events, leaf first.
// Closing a surface that does not exist does nothing.
func (s *State) Close(id surface.ID) {
	removed := s.surfaces.Remove(id)
	for _, rec := range removed {
		if role, ok := rec.Role.(Role); ok {
			role.Destroy()
		}
		for _, seat := range s.seats {
			seat.forget(rec.Object)
		}
		s.log.Debug("destroyed surface", "id", rec.ID, "kind", rec.Kind)
	}
	s.closed = append(s.closed, removed...)
}

func (s *State) takeClosed() []*surface.Record {
	closed := s.closed
	s.closed = nil
	return closed
}

func (s *State) record(id surface.ID) (*surface.Record, error) {
	rec, ok := s.surfaces.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", surface.ErrUnknown, id)
	}
	return rec, nil
}

// Role returns the record and role of any kind of surface.
func (s *State) Role(id surface.ID) (*surface.Record, Role, error) {
	rec, err := s.record(id)
	if err != nil {
		return nil, nil, err
	}
	return rec, rec.Role.(Role), nil
}

// Window returns the record and role of a window.
func (s *State) Window(id surface.ID) (*surface.Record, WindowRole, error) {
	return roleAs[WindowRole](s, id, surface.Window)
}

// LayerSurface returns the record and role of a layer surface.
func (s *State) LayerSurface(id surface.ID) (*surface.Record, LayerRole, error) {
	return roleAs[LayerRole](s, id, surface.LayerSurface)
}

// Popup returns the record and role of a popup.
func (s *State) Popup(id surface.ID) (*surface.Record, PopupRole, error) {
	return roleAs[PopupRole](s, id, surface.Popup)
}

func roleAs[R Role](s *State, id surface.ID, kind surface.Kind) (*surface.Record, R, error) {
	var zero R

	rec, err := s.record(id)
	if err != nil {
		return nil, zero, err
	}
	role, ok := rec.Role.(R)
	if !ok || rec.Kind != kind {
		return nil, zero, fmt.Errorf("%v is a %v, not a %v: %w", id, rec.Kind, kind, ErrWrongKind)
	}
	return rec, role, nil
}

// Resize asks for a surface to change size. Windows are resized
// directly, while layer surfaces ask the compositor for a new
// configuration. Asking for the size that was last asked for does
// nothing. A window that has not been configured yet only records the
// size, which its first configuration falls back to.
func (s *State) Resize(id surface.ID, size surface.Size) error {
	rec, role, err := s.Role(id)
	if err != nil {
		return err
	}
	if !rec.Resize(size) {
		return nil
	}

	switch rec.Kind {
	case surface.LayerSurface:
		role := role.(LayerRole)
		role.SetSize(size)
		role.Commit(rec.Current)
	case surface.Window:
		if !rec.Configured() {
			return nil
		}
		rec.PushConfigure(surface.Configure{Size: size})
	}
	rec.RequestFrame()
	return nil
}

// Frame asks the compositor for a frame event for a surface.
func (s *State) Frame(id surface.ID) error {
	_, role, err := s.Role(id)
	if err != nil {
		return err
	}
	role.Frame()
	return nil
}

// SetInteraction changes the cursor shown over the application's
// surfaces.
func (s *State) SetInteraction(i pointer.Interaction) {
	if i == s.interaction {
		return
	}
	s.interaction = i

	for _, seat := range s.seats {
		if seat.pointerFocus != 0 {
			s.applyCursor(seat)
		}
	}
}

// Interaction returns the cursor that was last set.
func (s *State) Interaction() pointer.Interaction {
	return s.interaction
}

func (s *State) applyCursor(seat *Seat) {
	if s.cursor == nil || seat.Pointer == nil {
		return
	}

	scale := int32(1)
	if rec, ok := s.surfaces.Lookup(seat.pointerFocus); ok {
		scale = rec.Scale
	}

	err := s.cursor.apply(seat.Pointer, seat.pointerSerial, s.interaction, scale)
	if err != nil {
		s.log.Warn("set cursor", "interaction", s.interaction, "err", err)
	}
}

// updateScale recalculates the scale of every surface that is shown
// on the given output.
func (s *State) updateScale(output uint32) {
	for _, rec := range s.surfaces.Records() {
		if rec.Outputs.Has(output) {
			s.rescale(rec)
		}
	}
}

// rescale sets the scale of rec to the largest scale of the outputs
// that it is shown on. A surface that is not on any output keeps its
// scale.
func (s *State) rescale(rec *surface.Record) {
	var scale int32
	for name := range rec.Outputs {
		if out, ok := s.outputs[name]; ok {
			scale = max(scale, out.Info.Scale)
		}
	}
	if scale > 0 {
		rec.PushScale(scale)
	}
}

func (s *State) surfaceEnter(obj surface.ObjectID, output uint32) {
	rec, ok := s.surfaces.Lookup(obj)
	if !ok {
		return
	}
	rec.Outputs.Add(output)
	s.rescale(rec)
}

func (s *State) surfaceLeave(obj surface.ObjectID, output uint32) {
	rec, ok := s.surfaces.Lookup(obj)
	if !ok {
		return
	}
	rec.Outputs.Delete(output)
	s.rescale(rec)
}
