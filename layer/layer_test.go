package layer

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

func TestGetLayerSurface(t *testing.T) {
	display, server := connect(t)

	shell := BindShell(display, 1)
	surface := wl.BindCompositor(display, 2).CreateSurface()
	ls := shell.GetLayerSurface(surface, nil, Top, "panel")
	ls.SetAnchor(AnchorBottom | AnchorLeft | AnchorRight)
	ls.SetMargin(Margin{Bottom: 8})
	ls.SetExclusiveZone(40)
	require.NoError(t, display.Flush())

	reqs := readN(t, server, 8)

	get := reqs[4]
	assert.Equal(t, shell.ID(), get.Sender())
	assert.Equal(t, uint16(opShellGetLayerSurface), get.Op())
	assert.Equal(t, ls.ID(), get.ReadUint())
	assert.Equal(t, surface.ID(), get.ReadUint())
	assert.Equal(t, uint32(0), get.ReadUint(), "nil output")
	assert.Equal(t, uint32(Top), get.ReadUint())
	assert.Equal(t, "panel", get.ReadString())
	require.NoError(t, get.Err())

	anchor := reqs[5]
	assert.Equal(t, uint16(opSurfaceSetAnchor), anchor.Op())
	assert.Equal(t, uint32(AnchorBottom|AnchorLeft|AnchorRight), anchor.ReadUint())

	margin := reqs[6]
	assert.Equal(t, uint16(opSurfaceSetMargin), margin.Op())
	assert.Equal(t, []int32{0, 0, 8, 0}, []int32{margin.ReadInt(), margin.ReadInt(), margin.ReadInt(), margin.ReadInt()})

	zone := reqs[7]
	assert.Equal(t, uint16(opSurfaceSetExclusiveZone), zone.Op())
	assert.Equal(t, int32(40), zone.ReadInt())
}

func TestVersionGating(t *testing.T) {
	display, server := connect(t)

	shell := BindShell(display, 1)
	ls := shell.GetLayerSurface(wl.BindCompositor(display, 2).CreateSurface(), nil, Bottom, "bg")
	ls.SetVersion(1)

	assert.False(t, ls.SetLayer(Overlay))
	ls.SetKeyboardInteractivity(KeyboardInteractivityOnDemand)
	require.NoError(t, display.Flush())

	reqs := readN(t, server, 5)
	assert.Equal(t, uint16(opShellGetLayerSurface), reqs[4].Op())

	ki := readN(t, server, 1)[0]
	assert.Equal(t, uint16(opSurfaceSetKeyboardInteractivity), ki.Op())
	assert.Equal(t, uint32(KeyboardInteractivityNone), ki.ReadUint())
}

func TestConfigureAndClosed(t *testing.T) {
	display, server := connect(t)

	shell := BindShell(display, 1)
	ls := shell.GetLayerSurface(wl.BindCompositor(display, 2).CreateSurface(), nil, Top, "panel")

	var (
		serial, w, h uint32
		closed       bool
	)
	ls.Configure = func(s, width, height uint32) { serial, w, h = s, width, height }
	ls.Closed = func() { closed = true }

	msg := wire.NewMessage(remote(ls.ID()), evSurfaceConfigure)
	msg.WriteUint(3)
	msg.WriteUint(800)
	msg.WriteUint(40)
	require.NoError(t, msg.Build(server))
	require.NoError(t, wire.NewMessage(remote(ls.ID()), evSurfaceClosed).Build(server))

	for range 10 {
		if closed {
			break
		}
		_, err := display.Dispatch(time.Second, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, uint32(3), serial)
	assert.Equal(t, [2]uint32{800, 40}, [2]uint32{w, h})
	assert.True(t, closed)

	ls.Destroy()
	ls.AckConfigure(3)
	require.NoError(t, display.Flush())
	reqs := readN(t, server, 6)
	assert.Equal(t, ls.ID(), reqs[5].Sender())
	assert.Equal(t, uint16(opSurfaceDestroy), reqs[5].Op())
}

func TestAnchor(t *testing.T) {
	a := AnchorTop | AnchorLeft
	assert.True(t, a.Has(AnchorTop))
	assert.False(t, a.Has(AnchorTop|AnchorBottom))
	assert.True(t, AnchorAll.Has(a))
	assert.Equal(t, "overlay", Overlay.String())
}
