package wl

import (
	"net"
	"os"
	"testing"
	"time"

	"deedles.dev/wlui/pointer"
	"deedles.dev/wlui/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// remote stands in for a server-side object when sending events.
type remote uint32

func (r remote) ID() uint32                         { return uint32(r) }
func (r remote) SetID(uint32)                       {}
func (r remote) Delete()                            {}
func (r remote) Dispatch(*wire.MessageBuffer) error { return nil }
func (r remote) MethodName(uint16) string           { return "" }

type fakeServer struct {
	t    *testing.T
	conn *wire.Conn
}

func connect(t *testing.T) (*Display, *fakeServer) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	require.NoError(t, err)

	conn := func(fd int) *wire.Conn {
		file := os.NewFile(uintptr(fd), "socketpair")
		defer file.Close()
		c, err := net.FileConn(file)
		require.NoError(t, err)
		return wire.NewConn(c.(*net.UnixConn))
	}

	display := ConnectDisplay(conn(fds[0]))
	server := &fakeServer{t: t, conn: conn(fds[1])}
	t.Cleanup(func() {
		display.Close()
		server.conn.Close()
	})
	return display, server
}

func (s *fakeServer) read() *wire.MessageBuffer {
	s.t.Helper()
	msg, err := wire.ReadMessage(s.conn)
	require.NoError(s.t, err)
	return msg
}

func (s *fakeServer) send(sender uint32, op uint16, build func(*wire.MessageBuilder)) {
	s.t.Helper()
	msg := wire.NewMessage(remote(sender), op)
	if build != nil {
		build(msg)
	}
	require.NoError(s.t, msg.Build(s.conn))
}

func (s *fakeServer) global(registry uint32, name uint32, inter string, version uint32) {
	s.send(registry, evRegistryGlobal, func(msg *wire.MessageBuilder) {
		msg.WriteUint(name)
		msg.WriteString(inter)
		msg.WriteUint(version)
	})
}

// answerSync reads requests until a wl_display.sync arrives and
// answers it, returning the other requests that were read.
func (s *fakeServer) answerSync() []*wire.MessageBuffer {
	s.t.Helper()

	var msgs []*wire.MessageBuffer
	for {
		msg := s.read()
		if msg.Sender() == 1 && msg.Op() == opDisplaySync {
			callback := msg.ReadUint()
			s.send(callback, evCallbackDone, func(msg *wire.MessageBuilder) { msg.WriteUint(0) })
			s.send(1, evDisplayDeleteID, func(msg *wire.MessageBuilder) { msg.WriteUint(callback) })
			return msgs
		}
		msgs = append(msgs, msg)
	}
}

func TestRoundTripRegistry(t *testing.T) {
	display, server := connect(t)

	var announced []Interface
	registry := display.GetRegistry()
	registry.Global = func(name uint32, inter Interface) {
		announced = append(announced, inter)
	}

	done := make(chan []*wire.MessageBuffer)
	go func() {
		msg := server.read()
		assert.Equal(t, uint16(opDisplayGetRegistry), msg.Op())
		id := msg.ReadUint()
		server.global(id, 1, compositorInterface, 6)
		server.global(id, 2, seatInterface, 9)
		done <- server.answerSync()
	}()

	require.NoError(t, display.RoundTrip())
	<-done

	assert.Equal(t, []Interface{
		{Name: compositorInterface, Version: 6},
		{Name: seatInterface, Version: 9},
	}, announced)
	assert.Len(t, registry.Globals(), 2)

	seat := BindSeat(display, 2)
	assert.Equal(t, uint32(seatVersion), seat.Version(), "bound above supported version")

	go func() { done <- server.answerSync() }()
	require.NoError(t, display.RoundTrip())
	reqs := <-done
	require.Len(t, reqs, 1)

	bind := reqs[0]
	assert.Equal(t, uint16(opRegistryBind), bind.Op())
	assert.Equal(t, uint32(2), bind.ReadUint())
	assert.Equal(t, wire.NewID{Interface: seatInterface, Version: seatVersion, ID: seat.ID()}, bind.ReadNewID())
}

func TestProtocolErrorIsFatal(t *testing.T) {
	display, server := connect(t)

	var reported ProtocolError
	display.Error = func(err ProtocolError) { reported = err }

	server.send(1, evDisplayError, func(msg *wire.MessageBuilder) {
		msg.WriteUint(3)
		msg.WriteUint(1)
		msg.WriteString("bad surface")
	})

	_, err := display.Dispatch(time.Second, nil)
	var perr ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad surface", perr.Message)
	assert.Equal(t, perr, reported)

	_, err = display.DispatchPending()
	assert.ErrorAs(t, err, &perr, "error did not stick")
}

func TestDispatchTimeoutAndWake(t *testing.T) {
	display, _ := connect(t)

	n, err := display.Dispatch(10*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	wake := make(chan struct{}, 1)
	wake <- struct{}{}
	n, err = display.Dispatch(-1, wake)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeatInput(t *testing.T) {
	display, server := connect(t)

	display.GetRegistry()
	go func() {
		msg := server.read()
		id := msg.ReadUint()
		server.global(id, 5, seatInterface, 7)
		server.answerSync()
	}()
	require.NoError(t, display.RoundTrip())

	seat := BindSeat(display, 5)
	kb := seat.GetKeyboard()
	ptr := seat.GetPointer()

	var (
		caps    SeatCapability
		keys    []uint32
		pressed pointer.Button
		entered *Surface
	)
	compositor := BindCompositor(display, 5)
	surface := compositor.CreateSurface()

	seat.Capabilities = func(c SeatCapability) { caps = c }
	kb.Enter = func(serial uint32, s *Surface, k []uint32) { keys = k }
	ptr.Enter = func(serial uint32, s *Surface, x, y wire.Fixed) { entered = s }
	ptr.Button = func(serial, time uint32, button pointer.Button, state PointerButtonState) { pressed = button }

	go func() {
		server.send(seat.ID(), evSeatCapabilities, func(msg *wire.MessageBuilder) {
			msg.WriteUint(uint32(SeatCapabilityKeyboard | SeatCapabilityPointer))
		})
		server.send(kb.ID(), evKeyboardEnter, func(msg *wire.MessageBuilder) {
			msg.WriteUint(10)
			msg.WriteUint(surface.ID())
			msg.WriteArray([]byte{30, 0, 0, 0, 48, 0, 0, 0})
		})
		server.send(ptr.ID(), evPointerEnter, func(msg *wire.MessageBuilder) {
			msg.WriteUint(11)
			msg.WriteUint(surface.ID())
			msg.WriteFixed(wire.FixedInt(4))
			msg.WriteFixed(wire.FixedInt(5))
		})
		server.send(ptr.ID(), evPointerButton, func(msg *wire.MessageBuilder) {
			msg.WriteUint(12)
			msg.WriteUint(100)
			msg.WriteUint(uint32(pointer.ButtonRight))
			msg.WriteUint(uint32(PointerButtonStatePressed))
		})
		server.answerSync()
	}()
	require.NoError(t, display.RoundTrip())

	assert.True(t, caps.Has(SeatCapabilityKeyboard))
	assert.True(t, caps.Has(SeatCapabilityPointer))
	assert.False(t, caps.Has(SeatCapabilityTouch))
	assert.Equal(t, []uint32{30, 48}, keys)
	assert.Same(t, surface, entered)
	assert.Equal(t, pointer.ButtonRight, pressed)
}

func TestDeleteID(t *testing.T) {
	display, server := connect(t)

	var deleted bool
	callback := display.Sync(nil)
	callback.OnDelete(func() { deleted = true })
	require.NoError(t, display.Flush())
	server.read()

	server.send(1, evDisplayDeleteID, func(msg *wire.MessageBuilder) { msg.WriteUint(callback.ID()) })
	_, err := display.Dispatch(time.Second, nil)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, display.GetObject(callback.ID()))
}
