// Package xdg implements the client side of the xdg-shell protocol,
// which gives wl_surfaces the roles of desktop windows and popups.
package xdg

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

const (
	wmBaseInterface     = "xdg_wm_base"
	positionerInterface = "xdg_positioner"
	surfaceInterface    = "xdg_surface"
	toplevelInterface   = "xdg_toplevel"
	popupInterface      = "xdg_popup"

	wmBaseVersion = 5
)

const (
	opWmBaseDestroy          = 0
	opWmBaseCreatePositioner = 1
	opWmBaseGetXdgSurface    = 2
	opWmBasePong             = 3

	evWmBasePing = 0
)

const (
	opPositionerDestroy                 = 0
	opPositionerSetSize                 = 1
	opPositionerSetAnchorRect           = 2
	opPositionerSetAnchor               = 3
	opPositionerSetGravity              = 4
	opPositionerSetConstraintAdjustment = 5
	opPositionerSetOffset               = 6
	opPositionerSetReactive             = 7
)

const (
	opSurfaceDestroy           = 0
	opSurfaceGetToplevel       = 1
	opSurfaceGetPopup          = 2
	opSurfaceSetWindowGeometry = 3
	opSurfaceAckConfigure      = 4

	evSurfaceConfigure = 0
)

const (
	opToplevelDestroy         = 0
	opToplevelSetParent       = 1
	opToplevelSetTitle        = 2
	opToplevelSetAppID        = 3
	opToplevelShowWindowMenu  = 4
	opToplevelMove            = 5
	opToplevelResize          = 6
	opToplevelSetMaxSize      = 7
	opToplevelSetMinSize      = 8
	opToplevelSetMaximized    = 9
	opToplevelUnsetMaximized  = 10
	opToplevelSetFullscreen   = 11
	opToplevelUnsetFullscreen = 12
	opToplevelSetMinimized    = 13

	evToplevelConfigure       = 0
	evToplevelClose           = 1
	evToplevelConfigureBounds = 2
	evToplevelWmCapabilities  = 3
)

const (
	opPopupDestroy    = 0
	opPopupGrab       = 1
	opPopupReposition = 2

	evPopupConfigure    = 0
	evPopupDone         = 1
	evPopupRepositioned = 2
)

// Anchor is the edge or corner of the anchor rectangle that a popup
// is positioned relative to.
type Anchor uint32

const (
	AnchorNone Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorBottomLeft
	AnchorTopRight
	AnchorBottomRight
)

// Gravity is the direction in which a popup extends from its anchor
// point. It uses the same values as Anchor.
type Gravity uint32

const (
	GravityNone Gravity = iota
	GravityTop
	GravityBottom
	GravityLeft
	GravityRight
	GravityTopLeft
	GravityBottomLeft
	GravityTopRight
	GravityBottomRight
)

type ConstraintAdjustment uint32

const (
	ConstraintAdjustmentSlideX ConstraintAdjustment = 1 << iota
	ConstraintAdjustmentSlideY
	ConstraintAdjustmentFlipX
	ConstraintAdjustmentFlipY
	ConstraintAdjustmentResizeX
	ConstraintAdjustmentResizeY

	ConstraintAdjustmentNone ConstraintAdjustment = 0
)

// ToplevelState is one of the states that a toplevel can be
// configured with.
type ToplevelState uint32

const (
	ToplevelStateMaximized ToplevelState = 1 + iota
	ToplevelStateFullscreen
	ToplevelStateResizing
	ToplevelStateActivated
	ToplevelStateTiledLeft
	ToplevelStateTiledRight
	ToplevelStateTiledTop
	ToplevelStateTiledBottom
	ToplevelStateSuspended
)

type ResizeEdge uint32

const (
	ResizeEdgeNone        ResizeEdge = 0
	ResizeEdgeTop         ResizeEdge = 1
	ResizeEdgeBottom      ResizeEdge = 2
	ResizeEdgeLeft        ResizeEdge = 4
	ResizeEdgeTopLeft     ResizeEdge = 5
	ResizeEdgeBottomLeft  ResizeEdge = 6
	ResizeEdgeRight       ResizeEdge = 8
	ResizeEdgeTopRight    ResizeEdge = 9
	ResizeEdgeBottomRight ResizeEdge = 10
)

func send(obj wl.Object, msg *wire.MessageBuilder) {
	if obj.Destroyed() {
		return
	}
	obj.Display().Enqueue(msg)
}

func destroy(obj interface {
	wl.Object
	MarkDestroyed()
}, op uint16) {
	send(obj, wire.NewMessage(obj, op).Describe("destroy"))
	obj.MarkDestroyed()
}

func unknownEvent(inter string, op uint16) error {
	return wire.UnknownOpError{Interface: inter, Type: "event", Op: op}
}
