package wl

import "deedles.dev/wlui/wire"

type Compositor struct {
	Proxy
}

func IsCompositor(i Interface) bool {
	return i.Is(compositorInterface, 1)
}

func BindCompositor(display *Display, name uint32) *Compositor {
	var compositor Compositor
	NewObject(display, &compositor.Proxy, &compositor)
	display.GetRegistry().Bind(name, compositorInterface, compositorVersion, &compositor)
	return &compositor
}

func (c *Compositor) CreateSurface() *Surface {
	var s Surface
	NewChildObject(c, &s.Proxy, &s)

	msg := wire.NewMessage(c, opCompositorCreateSurface).Describe("create_surface", s.id)
	msg.WriteUint(s.id)
	c.display.Enqueue(msg)

	return &s
}

func (c *Compositor) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: compositorInterface, Type: "event", Op: msg.Op()}
}

func (c *Compositor) MethodName(op uint16) string {
	return "unknown"
}
