package wl

import "deedles.dev/wlui/wire"

// Callback is a one-shot wl_callback. The server destroys it after
// sending done.
type Callback struct {
	Done func(data uint32)

	Proxy
}

// Then sets the function to call when the callback fires.
func (c *Callback) Then(f func(uint32)) {
	c.Done = f
}

func (c *Callback) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evCallbackDone:
		data := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		c.MarkDestroyed()
		if c.Done != nil {
			c.Done(data)
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: callbackInterface, Type: "event", Op: msg.Op()}
	}
}

func (c *Callback) MethodName(op uint16) string {
	if op == evCallbackDone {
		return "done"
	}
	return "unknown"
}
