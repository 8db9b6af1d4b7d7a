package wl

import (
	"deedles.dev/wlui/wire"
)

// Proxy holds the state common to every client-side protocol object.
// It is embedded by the objects in this package and by those of the
// protocol extension packages built on top of it.
type Proxy struct {
	id      uint32
	version uint32
	display *Display

	// destroyed is set once the client has sent the destructor
	// request. The object stays registered until the server confirms
	// with delete_id, but no further requests are sent for it.
	destroyed bool
	onDelete  func()
}

func (p *Proxy) ID() uint32 {
	return p.id
}

func (p *Proxy) SetID(id uint32) {
	p.id = id
}

func (p *Proxy) Delete() {
	if p.onDelete != nil {
		p.onDelete()
	}
}

// Version returns the protocol version that the object was bound at.
// Objects created by other objects share the version of their
// creator.
func (p *Proxy) Version() uint32 {
	return p.version
}

func (p *Proxy) SetVersion(version uint32) {
	p.version = version
}

// Display returns the display that the object belongs to.
func (p *Proxy) Display() *Display {
	return p.display
}

// Destroyed reports whether a destructor request has been sent for
// the object.
func (p *Proxy) Destroyed() bool {
	return p.destroyed
}

// OnDelete sets a function to be called when the server releases the
// object's ID.
func (p *Proxy) OnDelete(f func()) {
	p.onDelete = f
}

// MarkDestroyed records that a destructor request has been sent.
func (p *Proxy) MarkDestroyed() {
	p.destroyed = true
}

// Object is implemented by every protocol object in this package and
// by the protocol extension packages built on top of it.
type Object interface {
	wire.Object
	Version() uint32
	SetVersion(version uint32)
	Display() *Display
	Destroyed() bool
}

// NewObject associates obj with the display and registers it,
// assigning it a new ID. p must be the Proxy embedded in obj.
func NewObject(display *Display, p *Proxy, obj Object) {
	p.display = display
	display.objects.Add(obj)
}

// NewChildObject is like NewObject, but it is used for objects that
// are created by requests on other objects instead of through the
// registry. The new object inherits parent's version.
func NewChildObject(parent Object, p *Proxy, obj Object) {
	p.version = parent.Version()
	p.display = parent.Display()
	p.display.objects.Add(obj)
}

// GetObject returns the live object with the given ID, or nil.
func (display *Display) GetObject(id uint32) Object {
	obj, _ := display.objects.Get(id).(Object)
	return obj
}
