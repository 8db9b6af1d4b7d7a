package wl

import (
	"os"

	"deedles.dev/wlui/wire"
)

type Shm struct {
	Format func(ShmFormat)

	Proxy
}

func IsShm(i Interface) bool {
	return i.Is(shmInterface, 1)
}

func BindShm(display *Display, name uint32) *Shm {
	var shm Shm
	NewObject(display, &shm.Proxy, &shm)
	display.GetRegistry().Bind(name, shmInterface, shmVersion, &shm)
	return &shm
}

// CreatePool creates a pool backed by file. The file descriptor is
// duplicated, so the caller keeps ownership of file.
func (shm *Shm) CreatePool(file *os.File, size int32) *ShmPool {
	var pool ShmPool
	NewChildObject(shm, &pool.Proxy, &pool)

	msg := wire.NewMessage(shm, opShmCreatePool).Describe("create_pool", pool.id, file, size)
	msg.WriteUint(pool.id)
	msg.WriteFile(file)
	msg.WriteInt(size)
	shm.display.Enqueue(msg)

	return &pool
}

func (shm *Shm) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evShmFormat:
		format := ShmFormat(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if shm.Format != nil {
			shm.Format(format)
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: shmInterface, Type: "event", Op: msg.Op()}
	}
}

func (shm *Shm) MethodName(op uint16) string {
	if op == evShmFormat {
		return "format"
	}
	return "unknown"
}
