// Package wire defines types helpful for dealing with the Wayland
// wire protocol. It is primarly intended for usage by the hand-written
// protocol bindings in the client, xdg, and layer packages.
package wire

// Object represents a Wayland protocol object.
type Object interface {
	// ID returns the object's protocol ID, or 0 if it has not yet been
	// assigned one.
	ID() uint32

	// SetID assigns the object's protocol ID.
	SetID(id uint32)

	// Delete is called when the server confirms that the object's ID
	// is free to be reused.
	Delete()

	// Dispatch pertforms the operation requested by the message in the
	// buffer.
	Dispatch(msg *MessageBuffer) error

	// MethodName returns the name of the event with the given opcode.
	// It is used purely for debugging purposes.
	MethodName(op uint16) string
}

// NewID is an untyped new_id argument, as used by wl_registry.bind.
type NewID struct {
	Interface string
	Version   uint32
	ID        uint32
}

func padding(length uint32) uint32 {
	return (4 - (length % 4)) % 4
}
