// Package native turns events collected from the protocol into the
// input events that a UI toolkit understands.
package native

import (
	"strings"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/surface"
)

// Modifiers is the set of active modifier keys.
type Modifiers uint32

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Logo
	CapsLock
	NumLock
)

// xkb modifier masks for the standard modifier indices.
const (
	xkbShift   = 1 << 0
	xkbLock    = 1 << 1
	xkbControl = 1 << 2
	xkbMod1    = 1 << 3
	xkbMod2    = 1 << 4
	xkbMod4    = 1 << 6
)

// FromXkb converts a raw xkb modifier state.
func FromXkb(raw event.Modifiers) Modifiers {
	mask := raw.Effective()

	var m Modifiers
	if mask&xkbShift != 0 {
		m |= Shift
	}
	if mask&xkbControl != 0 {
		m |= Control
	}
	if mask&xkbMod1 != 0 {
		m |= Alt
	}
	if mask&xkbMod4 != 0 {
		m |= Logo
	}
	if mask&xkbLock != 0 {
		m |= CapsLock
	}
	if mask&xkbMod2 != 0 {
		m |= NumLock
	}
	return m
}

func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}

	names := []string{"shift", "ctrl", "alt", "logo", "capslock", "numlock"}
	var parts []string
	for i, name := range names {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "+")
}

// Event is an input event for a single surface.
type Event interface {
	Surface() surface.ID
}

type KeyPressed struct {
	ID        surface.ID
	Key       Key
	Code      uint32
	Modifiers Modifiers
}

type KeyReleased struct {
	ID        surface.ID
	Key       Key
	Code      uint32
	Modifiers Modifiers
}

type ModifiersChanged struct {
	ID        surface.ID
	Modifiers Modifiers
}

type Focused struct{ ID surface.ID }

type Unfocused struct{ ID surface.ID }

type CursorEntered struct{ ID surface.ID }

type CursorLeft struct{ ID surface.ID }

type CursorMoved struct {
	ID   surface.ID
	X, Y float64
}

// MouseButton is a mouse button as seen by the UI.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther
)

func mouseButton(b pointer.Button) MouseButton {
	switch b {
	case pointer.ButtonLeft:
		return MouseLeft
	case pointer.ButtonRight:
		return MouseRight
	case pointer.ButtonMiddle:
		return MouseMiddle
	}
	return MouseOther
}

type ButtonPressed struct {
	ID     surface.ID
	Button MouseButton

	// Code is the evdev code of the button, which is mostly useful
	// for MouseOther.
	Code pointer.Button
}

type ButtonReleased struct {
	ID     surface.ID
	Button MouseButton
	Code   pointer.Button
}

type ScrollUnit int

const (
	Lines ScrollUnit = iota
	Pixels
)

// ScrollDelta is the distance scrolled. Positive values scroll
// content up and to the left.
type ScrollDelta struct {
	Unit ScrollUnit
	X, Y float64
}

type WheelScrolled struct {
	ID    surface.ID
	Delta ScrollDelta
}

func (ev KeyPressed) Surface() surface.ID       { return ev.ID }
func (ev KeyReleased) Surface() surface.ID      { return ev.ID }
func (ev ModifiersChanged) Surface() surface.ID { return ev.ID }
func (ev Focused) Surface() surface.ID          { return ev.ID }
func (ev Unfocused) Surface() surface.ID        { return ev.ID }
func (ev CursorEntered) Surface() surface.ID    { return ev.ID }
func (ev CursorLeft) Surface() surface.ID       { return ev.ID }
func (ev CursorMoved) Surface() surface.ID      { return ev.ID }
func (ev ButtonPressed) Surface() surface.ID    { return ev.ID }
func (ev ButtonReleased) Surface() surface.ID   { return ev.ID }
func (ev WheelScrolled) Surface() surface.ID    { return ev.ID }

// IDTable maps protocol surface IDs to logical ones.
type IDTable interface {
	Logical(surface.ObjectID) (surface.ID, bool)
}

// Project converts ev using DefaultKeymap. See Keymap.Project.
func Project(ev event.Event, mods *Modifiers, ids IDTable) (Event, bool) {
	return DefaultKeymap.Project(ev, mods, ids)
}

// Project converts ev into a UI event, if it has one. mods is updated
// by modifier events whether or not they produce a UI event. Events
// for surfaces that are not in ids are dropped.
func (km Keymap) Project(ev event.Event, mods *Modifiers, ids IDTable) (Event, bool) {
	if kb, ok := ev.(event.Keyboard); ok && kb.Kind == event.KeyboardModifiers {
		*mods = FromXkb(kb.Modifiers)
	}

	target, ok := ev.Target()
	if !ok {
		return nil, false
	}
	id, ok := ids.Logical(target)
	if !ok {
		return nil, false
	}

	switch ev := ev.(type) {
	case event.Keyboard:
		return km.keyboard(id, ev, *mods)
	case event.Pointer:
		return projectPointer(id, ev)
	}
	return nil, false
}

func (km Keymap) keyboard(id surface.ID, ev event.Keyboard, mods Modifiers) (Event, bool) {
	switch ev.Kind {
	case event.KeyboardEnter:
		return Focused{ID: id}, true
	case event.KeyboardLeave:
		return Unfocused{ID: id}, true
	case event.KeyPress:
		return KeyPressed{ID: id, Key: km.Lookup(ev.Key), Code: ev.Key, Modifiers: mods}, true
	case event.KeyRelease:
		return KeyReleased{ID: id, Key: km.Lookup(ev.Key), Code: ev.Key, Modifiers: mods}, true
	case event.KeyboardModifiers:
		return ModifiersChanged{ID: id, Modifiers: mods}, true
	}
	return nil, false
}

func projectPointer(id surface.ID, ev event.Pointer) (Event, bool) {
	switch ev.Kind {
	case event.PointerEnter:
		return CursorEntered{ID: id}, true
	case event.PointerLeave:
		return CursorLeft{ID: id}, true
	case event.PointerMotion:
		return CursorMoved{ID: id, X: ev.X, Y: ev.Y}, true
	case event.PointerPress:
		return ButtonPressed{ID: id, Button: mouseButton(ev.Button), Code: ev.Button}, true
	case event.PointerRelease:
		return ButtonReleased{ID: id, Button: mouseButton(ev.Button), Code: ev.Button}, true
	case event.PointerAxis:
		if ev.Horizontal.IsZero() && ev.Vertical.IsZero() {
			return nil, false
		}
		return WheelScrolled{ID: id, Delta: scrollDelta(ev)}, true
	}
	return nil, false
}

// wheelStep is the distance that compositors conventionally report
// for one wheel click.
const wheelStep = 10

func scrollDelta(ev event.Pointer) ScrollDelta {
	stepped := ev.HasSource && (ev.Source == wl.PointerAxisSourceWheel || ev.Source == wl.PointerAxisSourceWheelTilt)
	if !stepped {
		return ScrollDelta{
			Unit: Pixels,
			X:    -ev.Horizontal.Absolute,
			Y:    -ev.Vertical.Absolute,
		}
	}

	lines := func(a event.Axis) float64 {
		if a.Discrete != 0 {
			return float64(a.Discrete)
		}
		return a.Absolute / wheelStep
	}
	return ScrollDelta{
		Unit: Lines,
		X:    -lines(ev.Horizontal),
		Y:    -lines(ev.Vertical),
	}
}
