package wl

import "deedles.dev/wlui/wire"

type ShmPool struct {
	Proxy
}

func (pool *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat) *Buffer {
	var buf Buffer
	NewChildObject(pool, &buf.Proxy, &buf)

	msg := wire.NewMessage(pool, opShmPoolCreateBuffer).Describe("create_buffer", buf.id, offset, width, height, stride, format)
	msg.WriteUint(buf.id)
	msg.WriteInt(offset)
	msg.WriteInt(width)
	msg.WriteInt(height)
	msg.WriteInt(stride)
	msg.WriteUint(uint32(format))
	pool.display.Enqueue(msg)

	return &buf
}

// Resize grows the pool. Pools can not shrink.
func (pool *ShmPool) Resize(size int32) {
	msg := wire.NewMessage(pool, opShmPoolResize).Describe("resize", size)
	msg.WriteInt(size)
	pool.display.Enqueue(msg)
}

func (pool *ShmPool) Destroy() {
	if pool.destroyed {
		return
	}
	pool.display.Enqueue(wire.NewMessage(pool, opShmPoolDestroy).Describe("destroy"))
	pool.MarkDestroyed()
}

func (pool *ShmPool) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: shmPoolInterface, Type: "event", Op: msg.Op()}
}

func (pool *ShmPool) MethodName(op uint16) string {
	return "unknown"
}

// Buffer is a wl_buffer.
type Buffer struct {
	// Release is called when the compositor no longer reads from the
	// buffer.
	Release func()

	Proxy
}

func (buf *Buffer) Destroy() {
	if buf.destroyed {
		return
	}
	buf.display.Enqueue(wire.NewMessage(buf, opBufferDestroy).Describe("destroy"))
	buf.MarkDestroyed()
}

func (buf *Buffer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evBufferRelease:
		if buf.Release != nil {
			buf.Release()
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: bufferInterface, Type: "event", Op: msg.Op()}
	}
}

func (buf *Buffer) MethodName(op uint16) string {
	if op == evBufferRelease {
		return "release"
	}
	return "unknown"
}
