// Package layer implements the client side of the wlr-layer-shell
// protocol, which gives wl_surfaces the role of desktop shell
// components such as panels, overlays, and backgrounds.
package layer

import (
	"fmt"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

const (
	shellInterface   = "zwlr_layer_shell_v1"
	surfaceInterface = "zwlr_layer_surface_v1"

	shellVersion = 4
)

const (
	opShellGetLayerSurface = 0
	opShellDestroy         = 1
)

const (
	opSurfaceSetSize                  = 0
	opSurfaceSetAnchor                = 1
	opSurfaceSetExclusiveZone         = 2
	opSurfaceSetMargin                = 3
	opSurfaceSetKeyboardInteractivity = 4
	opSurfaceGetPopup                 = 5
	opSurfaceAckConfigure             = 6
	opSurfaceDestroy                  = 7
	opSurfaceSetLayer                 = 8

	evSurfaceConfigure = 0
	evSurfaceClosed    = 1
)

// Layer is the stacking layer that a surface is placed in.
type Layer uint32

const (
	Background Layer = iota
	Bottom
	Top
	Overlay
)

func (l Layer) String() string {
	switch l {
	case Background:
		return "background"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Overlay:
		return "overlay"
	}
	return fmt.Sprintf("Layer(%d)", uint32(l))
}

// Anchor is a bitmask of the output edges that a surface is attached
// to.
type Anchor uint32

const (
	AnchorTop Anchor = 1 << iota
	AnchorBottom
	AnchorLeft
	AnchorRight

	AnchorNone Anchor = 0
	AnchorAll         = AnchorTop | AnchorBottom | AnchorLeft | AnchorRight
)

func (a Anchor) Has(o Anchor) bool {
	return a&o == o
}

// KeyboardInteractivity controls whether and how a layer surface can
// receive keyboard focus.
type KeyboardInteractivity uint32

const (
	KeyboardInteractivityNone KeyboardInteractivity = iota
	KeyboardInteractivityExclusive
	KeyboardInteractivityOnDemand
)

// Margin is the distance from each anchored edge, in surface-local
// coordinates.
type Margin struct {
	Top, Right, Bottom, Left int32
}

func send(obj wl.Object, msg *wire.MessageBuilder) {
	if obj.Destroyed() {
		return
	}
	obj.Display().Enqueue(msg)
}
