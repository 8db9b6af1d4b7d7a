package surface

import (
	"image"
	"sync"

	"deedles.dev/wlui/internal/set"
	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/xdg"
)

// LayerParams are the parameters of a layer surface.
type LayerParams struct {
	Layer                 layer.Layer
	Anchor                layer.Anchor
	Margin                layer.Margin
	ExclusiveZone         int32
	KeyboardInteractivity layer.KeyboardInteractivity
	Namespace             string

	// Output is the registry name of the output to show the surface
	// on, or zero to let the compositor choose.
	Output uint32
}

// Positioner describes where a popup is placed relative to its
// parent.
type Positioner struct {
	Size Size

	// AnchorRect is the area of the parent's window geometry that the
	// popup is anchored to.
	AnchorRect image.Rectangle

	Anchor               xdg.Anchor
	Gravity              xdg.Gravity
	ConstraintAdjustment xdg.ConstraintAdjustment
	Offset               image.Point

	// Reactive asks for the popup to be repositioned when its parent
	// moves or resizes.
	Reactive bool
}

// Params are the parameters a surface is created with.
type Params struct {
	// ID is the ID to give the surface. If it is zero, one is
	// allocated with Unique.
	ID ID

	Size  Size
	Title string
	AppID string

	// MinSize and MaxSize limit the size of a window. Zero means no
	// limit.
	MinSize, MaxSize Size

	// Parent is the surface that a popup is positioned relative to.
	Parent     ID
	Positioner Positioner

	// Grab makes a popup take an explicit grab on creation.
	Grab bool

	Layer LayerParams
}

// UserRequest holds the requests that the application has made for a
// surface since they were last taken. Repeated requests are combined.
type UserRequest struct {
	Redraw       bool
	RefreshFrame bool
}

func (u UserRequest) IsZero() bool {
	return !u.Redraw && !u.RefreshFrame
}

// CompositorUpdate holds the updates that the compositor has pushed
// for a surface since they were last taken. Only the latest
// configuration and scale are kept.
type CompositorUpdate struct {
	Configure *Configure
	Scale     int32
	Close     bool
}

// Mode is the display mode of a window.
type Mode int

const (
	Windowed Mode = iota
	Fullscreen
	Hidden
)

// Request is an outgoing protocol request that has been queued for a
// surface but not yet sent.
type Request func(*Record)

// Record is the state of a single surface.
type Record struct {
	ID     ID
	Object ObjectID
	Kind   Kind

	// Requested is the size that the application asked for.
	Requested Size

	// Current is the negotiated size. It is zero until the surface has
	// been configured.
	Current Size

	// Last is the last configuration that was applied, or nil if none
	// has been yet.
	Last *Configure

	// Scale is the integer scale factor that the surface is drawn at.
	Scale int32

	// Outputs holds the registry names of the outputs that the surface
	// is currently shown on.
	Outputs set.Set[uint32]

	// Parent and Root are set for popups. Root is the window or layer
	// surface at the top of the popup's parent chain.
	Parent ID
	Root   ID

	Title      string
	AppID      string
	MinSize    Size
	MaxSize    Size
	Positioner Positioner
	Layer      LayerParams

	// Mode is the display mode that the application last asked for.
	Mode Mode

	// Role holds the protocol objects backing the surface. It is
	// managed by the event loop.
	Role any

	configured bool
	user       UserRequest
	compositor CompositorUpdate

	m       sync.Mutex
	pending []Request
}

// Configured reports whether the surface has received its first
// configuration.
func (rec *Record) Configured() bool {
	return rec.configured
}

// RequestRedraw asks for the surface to be redrawn during the next
// iteration of the event loop.
func (rec *Record) RequestRedraw() {
	rec.user.Redraw = true
}

// RequestFrame asks for the surface's frame to be refreshed.
func (rec *Record) RequestFrame() {
	rec.user.RefreshFrame = true
}

// FrameRefreshed clears a pending frame refresh. It is called when a
// configuration has already re-declared the surface's geometry.
func (rec *Record) FrameRefreshed() {
	rec.user.RefreshFrame = false
}

// TakeUserRequest returns and clears the combined user requests.
func (rec *Record) TakeUserRequest() UserRequest {
	u := rec.user
	rec.user = UserRequest{}
	return u
}

// PushConfigure records a configuration from the compositor,
// replacing any that has not been applied yet. A zero dimension keeps
// the current size, or the requested one if the surface has not been
// configured yet. A configuration without a serial is dropped until
// the compositor has configured the surface.
func (rec *Record) PushConfigure(c Configure) {
	base := rec.Current
	if base.IsZero() {
		base = rec.Requested
	}
	if c.Size.W == 0 {
		c.Size.W = base.W
	}
	if c.Size.H == 0 {
		c.Size.H = base.H
	}

	prev := rec.compositor.Configure
	if c.Serial == 0 && prev == nil && !rec.configured {
		return
	}
	c.First = c.First || (prev != nil && prev.First) || (c.Serial != 0 && !rec.configured)
	if c.Serial != 0 {
		rec.configured = true
	}
	if prev != nil && c.Serial == 0 {
		c.Serial = prev.Serial
	}

	rec.compositor.Configure = &c
}

// PushScale records a new scale factor for the surface.
func (rec *Record) PushScale(scale int32) {
	rec.compositor.Scale = scale
}

// PushClose records that the compositor has closed the surface or, for
// windows, asked for it to be closed.
func (rec *Record) PushClose() {
	rec.compositor.Close = true
}

// TakeCompositorUpdate returns and clears the pending compositor
// update.
func (rec *Record) TakeCompositorUpdate() CompositorUpdate {
	u := rec.compositor
	rec.compositor = CompositorUpdate{}
	return u
}

// Reconciled is the result of applying a compositor update to a
// record.
type Reconciled struct {
	// Configure is the configuration that was applied, if any.
	Configure *Configure

	Resized      bool
	ScaleChanged bool
	Close        bool
}

// NeedsRedraw reports whether the update changed anything visible.
func (r Reconciled) NeedsRedraw() bool {
	return r.Resized || r.ScaleChanged || (r.Configure != nil && r.Configure.First)
}

// Reconcile takes the pending compositor update and applies it. The
// scale is applied before the configuration. A configuration that
// changes neither the size nor the scale is recorded without being
// reported as a resize.
func (rec *Record) Reconcile() Reconciled {
	u := rec.TakeCompositorUpdate()

	var r Reconciled
	if u.Scale > 0 && u.Scale != rec.Scale {
		rec.Scale = u.Scale
		r.ScaleChanged = true
	}

	if c := u.Configure; c != nil {
		r.Resized = c.Size != rec.Current
		rec.Current = c.Size
		rec.Last = c
		r.Configure = c
	}

	r.Close = u.Close
	return r
}

// Resize changes the size that the application wants the surface to
// be. It reports whether the size changed.
func (rec *Record) Resize(size Size) bool {
	if size == rec.Requested {
		return false
	}
	rec.Requested = size
	return true
}

// Queue adds a request to be sent the next time that the record's
// requests are flushed. It is safe to call concurrently.
func (rec *Record) Queue(req Request) {
	rec.m.Lock()
	defer rec.m.Unlock()

	rec.pending = append(rec.pending, req)
}

// Flush runs the queued requests in the order that they were added.
func (rec *Record) Flush() int {
	rec.m.Lock()
	pending := rec.pending
	rec.pending = nil
	rec.m.Unlock()

	for _, req := range pending {
		req(rec)
	}
	return len(pending)
}
