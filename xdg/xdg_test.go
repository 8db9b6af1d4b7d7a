package xdg

import (
	"net"
	"os"
	"testing"
	"time"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type remote uint32

func (r remote) ID() uint32                         { return uint32(r) }
func (r remote) SetID(uint32)                       {}
func (r remote) Delete()                            {}
func (r remote) Dispatch(*wire.MessageBuffer) error { return nil }
func (r remote) MethodName(uint16) string           { return "" }

func connect(t *testing.T) (*wl.Display, *wire.Conn) {
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

	display := wl.ConnectDisplay(conn(fds[0]))
	server := conn(fds[1])
	t.Cleanup(func() {
		display.Close()
		server.Close()
	})
	return display, server
}

func readN(t *testing.T, server *wire.Conn, n int) []*wire.MessageBuffer {
	t.Helper()

	msgs := make([]*wire.MessageBuffer, 0, n)
	for range n {
		msg, err := wire.ReadMessage(server)
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
	return msgs
}

func dispatchUntil(t *testing.T, display *wl.Display, done func() bool) {
	t.Helper()

	for range 10 {
		if done() {
			return
		}
		_, err := display.Dispatch(time.Second, nil)
		require.NoError(t, err)
	}
	require.True(t, done(), "condition not reached")
}

func TestToplevelConfigure(t *testing.T) {
	display, server := connect(t)

	wm := BindWmBase(display, 1)
	surface := wl.BindCompositor(display, 2).CreateSurface()
	xs := wm.GetXdgSurface(surface)
	top := xs.GetToplevel()
	top.SetTitle("hello")
	require.NoError(t, display.Flush())

	reqs := readN(t, server, 7)
	last := reqs[5]
	assert.Equal(t, xs.ID(), last.Sender())
	assert.Equal(t, uint16(opSurfaceGetToplevel), last.Op())
	assert.Equal(t, top.ID(), last.ReadUint())
	assert.Equal(t, "hello", reqs[6].ReadString())
	assert.Same(t, surface, xs.WlSurface())

	var (
		size   [2]int32
		states []ToplevelState
		serial uint32
	)
	top.Configure = func(w, h int32, s []ToplevelState) {
		size = [2]int32{w, h}
		states = s
	}
	xs.Configure = func(s uint32) { serial = s }

	send := func(sender uint32, op uint16, build func(*wire.MessageBuilder)) {
		msg := wire.NewMessage(remote(sender), op)
		build(msg)
		require.NoError(t, msg.Build(server))
	}
	send(top.ID(), evToplevelConfigure, func(msg *wire.MessageBuilder) {
		msg.WriteInt(800)
		msg.WriteInt(600)
		msg.WriteArray([]byte{4, 0, 0, 0, 1, 0, 0, 0})
	})
	send(xs.ID(), evSurfaceConfigure, func(msg *wire.MessageBuilder) { msg.WriteUint(9) })

	dispatchUntil(t, display, func() bool { return serial != 0 })
	assert.Equal(t, [2]int32{800, 600}, size)
	assert.Equal(t, []ToplevelState{ToplevelStateActivated, ToplevelStateMaximized}, states)
	assert.Equal(t, uint32(9), serial)
}

func TestPing(t *testing.T) {
	display, server := connect(t)

	wm := BindWmBase(display, 1)
	require.NoError(t, display.Flush())
	readN(t, server, 2)

	msg := wire.NewMessage(remote(wm.ID()), evWmBasePing)
	msg.WriteUint(1234)
	require.NoError(t, msg.Build(server))

	n, err := display.Dispatch(time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, display.Flush())

	pong := readN(t, server, 1)[0]
	assert.Equal(t, wm.ID(), pong.Sender())
	assert.Equal(t, uint16(opWmBasePong), pong.Op())
	assert.Equal(t, uint32(1234), pong.ReadUint())
}

func TestDestroyedSkipsRequests(t *testing.T) {
	display, server := connect(t)

	wm := BindWmBase(display, 1)
	surface := wl.BindCompositor(display, 2).CreateSurface()
	popup := wm.GetXdgSurface(surface).GetPopup(nil, wm.CreatePositioner())
	require.NoError(t, display.Flush())
	readN(t, server, 7)

	popup.Destroy()
	popup.Grab(nil, 1)
	popup.Destroy()
	display.Sync(nil)
	require.NoError(t, display.Flush())

	reqs := readN(t, server, 2)
	assert.Equal(t, popup.ID(), reqs[0].Sender())
	assert.Equal(t, uint16(opPopupDestroy), reqs[0].Op())
	assert.Equal(t, uint32(1), reqs[1].Sender(), "expected sync on wl_display")
	assert.True(t, popup.Destroyed())
}
