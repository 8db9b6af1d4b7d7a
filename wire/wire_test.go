package wire

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type testObject struct {
	id uint32
}

func (obj *testObject) ID() uint32                    { return obj.id }
func (obj *testObject) SetID(id uint32)               { obj.id = id }
func (obj *testObject) Delete()                       {}
func (obj *testObject) Dispatch(*MessageBuffer) error { return nil }
func (obj *testObject) MethodName(op uint16) string   { return fmt.Sprintf("op%v", op) }

func socketPair(t *testing.T) (*Conn, *Conn) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	require.NoError(t, err)

	conn := func(fd int) *Conn {
		file := os.NewFile(uintptr(fd), "socketpair")
		defer file.Close()

		c, err := net.FileConn(file)
		require.NoError(t, err)
		return NewConn(c.(*net.UnixConn))
	}

	a, b := conn(fds[0]), conn(fds[1])
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func TestMessage(t *testing.T) {
	a, b := socketPair(t)

	tmp, err := os.CreateTemp(t.TempDir(), "fd")
	require.NoError(t, err)
	defer tmp.Close()
	_, err = tmp.WriteString("keymap")
	require.NoError(t, err)

	sender := &testObject{id: 3}
	mb := NewMessage(sender, 7).Describe("test")
	mb.WriteInt(-5)
	mb.WriteUint(42)
	mb.WriteFixed(FixedFloat(-1.5))
	mb.WriteString("xdg_wm_base")
	mb.WriteArray([]byte{1, 2, 3})
	mb.WriteObject((*testObject)(nil))
	mb.WriteFile(tmp)
	require.NoError(t, mb.Build(a))

	msg, err := ReadMessage(b)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), msg.Sender())
	assert.Equal(t, uint16(7), msg.Op())

	assert.Equal(t, int32(-5), msg.ReadInt())
	assert.Equal(t, uint32(42), msg.ReadUint())
	assert.Equal(t, -1.5, msg.ReadFixed().Float())
	assert.Equal(t, "xdg_wm_base", msg.ReadString())
	assert.Equal(t, []byte{1, 2, 3}, msg.ReadArray())
	assert.Equal(t, uint32(0), msg.ReadUint())

	file := msg.ReadFile()
	require.NoError(t, msg.Err())
	require.NotNil(t, file)
	defer file.Close()

	data, err := io.ReadAll(io.NewSectionReader(file, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, "keymap", string(data))

	assert.Contains(t, msg.Debug(sender), "op7")
}

func TestReadMessageSplit(t *testing.T) {
	a, b := socketPair(t)

	sender := &testObject{id: 1}
	for i := range 3 {
		mb := NewMessage(sender, uint16(i))
		mb.WriteString(fmt.Sprint("message ", i))
		require.NoError(t, mb.Build(a))
	}

	for i := range 3 {
		msg, err := ReadMessage(b)
		require.NoError(t, err)
		assert.Equal(t, uint16(i), msg.Op())
		assert.Equal(t, fmt.Sprint("message ", i), msg.ReadString())
		assert.NoError(t, msg.Err())
	}
}

func TestShortMessage(t *testing.T) {
	a, b := socketPair(t)

	mb := NewMessage(&testObject{id: 1}, 0)
	mb.WriteUint(1)
	require.NoError(t, mb.Build(a))

	msg, err := ReadMessage(b)
	require.NoError(t, err)
	msg.ReadUint()
	msg.ReadString()
	assert.ErrorIs(t, msg.Err(), io.ErrUnexpectedEOF)
}

func TestFixed(t *testing.T) {
	tests := []struct {
		in   float64
		i    int
		frac int
	}{
		{in: 0, i: 0, frac: 0},
		{in: 1.5, i: 1, frac: 128},
		{in: -1.5, i: -2, frac: 128},
		{in: 100.25, i: 100, frac: 64},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.in), func(t *testing.T) {
			f := FixedFloat(test.in)
			assert.Equal(t, test.i, f.Int())
			assert.Equal(t, test.frac, f.Frac())
			assert.Equal(t, test.in, f.Float())
		})
	}

	assert.Equal(t, 3.0, FixedInt(3).Float())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("generic")))
	assert.Equal(t, int(syscall.EPIPE), ExitCode(fmt.Errorf("dispatch: %w", syscall.EPIPE)))
	assert.Equal(t, int(syscall.ECONNRESET), ExitCode(&net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNRESET)}))
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")

	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	assert.Equal(t, "/run/user/1000/wayland-1", SocketPath())

	t.Setenv("WAYLAND_DISPLAY", "/tmp/custom")
	assert.Equal(t, "/tmp/custom", SocketPath())
}
