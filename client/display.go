package wl

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"deedles.dev/wlui/internal/cq"
	"deedles.dev/wlui/internal/debug"
	"deedles.dev/wlui/internal/objstore"
	"deedles.dev/wlui/wire"
)

// ErrClosed is returned by dispatch methods after the display has
// been closed.
var ErrClosed = errors.New("display closed")

// ProtocolError is a fatal error reported by the server.
type ProtocolError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on object %v: code %v: %v", err.ObjectID, err.Code, err.Message)
}

// Display is the connection to a Wayland server and the wl_display
// singleton on it.
//
// Incoming messages are read on a background goroutine but are only
// ever dispatched, and therefore only ever call back into user code,
// from inside of DispatchPending, Dispatch, and RoundTrip. Apart from
// Close, the methods of Display and of every object created from it
// must be called from a single goroutine.
type Display struct {
	// Error is called when the server reports a fatal protocol error.
	// The error is also returned by the dispatch call that received it.
	Error func(ProtocolError)

	obj      displayObject
	done     chan struct{}
	close    sync.Once
	conn     *wire.Conn
	objects  *objstore.Store
	registry *Registry
	queue    *cq.Queue[func() error]
	out      []*wire.MessageBuilder
	err      error
}

// DialDisplay connects to the Wayland server indicated by the
// environment.
func DialDisplay() (*Display, error) {
	c, err := wire.Dial()
	if err != nil {
		return nil, err
	}
	return ConnectDisplay(c), nil
}

// ConnectDisplay wraps an existing connection.
func ConnectDisplay(c *wire.Conn) *Display {
	display := Display{
		done:    make(chan struct{}),
		conn:    c,
		objects: objstore.New(1),
		queue:   cq.New[func() error](),
	}
	display.obj.owner = &display
	display.obj.version = 1
	NewObject(&display, &display.obj.Proxy, &display.obj)

	go display.listen()

	return &display
}

func (display *Display) listen() {
	for {
		msg, err := wire.ReadMessage(display.conn)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}

			select {
			case <-display.done:
			case display.queue.Add() <- func() error { return err }:
			}
			return
		}

		select {
		case <-display.done:
			return
		case display.queue.Add() <- func() error { return display.dispatch(msg) }:
		}
	}
}

// Close closes the connection. It is safe to call from any goroutine.
func (display *Display) Close() error {
	var err error
	display.close.Do(func() {
		close(display.done)
		display.queue.Stop()
		err = display.conn.Close()
	})
	return err
}

func (display *Display) dispatch(msg *wire.MessageBuffer) error {
	obj := display.objects.Get(msg.Sender())
	if obj == nil {
		debug.Logger.Debug("event for unknown object", "id", msg.Sender(), "op", msg.Op())
		return nil
	}

	err := obj.Dispatch(msg)
	debug.Printf("%v", msg.Debug(obj))
	return err
}

// Enqueue queues a request to be sent at the next Flush.
func (display *Display) Enqueue(msg *wire.MessageBuilder) {
	debug.Printf(" -> %v", msg)
	display.out = append(display.out, msg)
}

// Flush sends all queued requests.
func (display *Display) Flush() error {
	if display.err != nil {
		return display.err
	}

	out := display.out
	display.out = nil

	for _, msg := range out {
		err := msg.Build(display.conn)
		if err != nil {
			display.err = fmt.Errorf("send %v: %w", msg, err)
			return display.err
		}
	}
	return nil
}

func (display *Display) run(batch []func() error) (int, error) {
	for i, ev := range batch {
		err := ev()
		if err != nil {
			display.err = err
			return i + 1, err
		}
	}
	return len(batch), nil
}

// DispatchPending dispatches any messages that have already been
// received without blocking. It returns the number of messages
// dispatched.
func (display *Display) DispatchPending() (int, error) {
	if display.err != nil {
		return 0, display.err
	}

	batch, ok := display.queue.TryGet()
	if !ok {
		return 0, nil
	}
	return display.run(batch)
}

// Dispatch waits for messages to arrive and dispatches them. A
// negative timeout waits indefinitely and a zero timeout does not
// wait at all. Waiting also stops early if wake is signaled. It
// returns the number of messages dispatched.
func (display *Display) Dispatch(timeout time.Duration, wake <-chan struct{}) (int, error) {
	if display.err != nil {
		return 0, display.err
	}
	if timeout == 0 {
		return display.DispatchPending()
	}

	var expire <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expire = t.C
	}

	select {
	case batch := <-display.queue.Get():
		return display.run(batch)
	case <-expire:
		return 0, nil
	case <-wake:
		return 0, nil
	case <-display.done:
		return 0, ErrClosed
	}
}

// RoundTrip flushes queued requests and dispatches incoming messages
// until the server has processed everything sent so far.
func (display *Display) RoundTrip() error {
	var done bool
	display.Sync(func(uint32) { done = true })

	for !done {
		err := display.Flush()
		if err != nil {
			return err
		}
		_, err = display.Dispatch(-1, nil)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetRegistry returns the display's registry, creating it the first
// time it is called.
func (display *Display) GetRegistry() *Registry {
	if display.registry != nil {
		return display.registry
	}

	registry := Registry{
		globals: make(map[uint32]Interface),
	}
	NewObject(display, &registry.Proxy, &registry)
	msg := wire.NewMessage(&display.obj, opDisplayGetRegistry).Describe("get_registry", registry.id)
	msg.WriteUint(registry.id)
	display.Enqueue(msg)
	display.registry = &registry
	return &registry
}

// Sync asks the server to call done once it has processed every
// request sent before it.
func (display *Display) Sync(done func(uint32)) *Callback {
	callback := Callback{Done: done}
	NewObject(display, &callback.Proxy, &callback)

	msg := wire.NewMessage(&display.obj, opDisplaySync).Describe("sync", callback.id)
	msg.WriteUint(callback.id)
	display.Enqueue(msg)
	return &callback
}

// displayObject is the wl_display protocol object, which always has
// ID 1.
type displayObject struct {
	Proxy
	owner *Display
}

func (obj *displayObject) Dispatch(msg *wire.MessageBuffer) error {
	display := obj.owner

	switch msg.Op() {
	case evDisplayError:
		perr := ProtocolError{
			ObjectID: msg.ReadUint(),
			Code:     msg.ReadUint(),
			Message:  msg.ReadString(),
		}
		if err := msg.Err(); err != nil {
			return err
		}
		if display.Error != nil {
			display.Error(perr)
		}
		return perr

	case evDisplayDeleteID:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		display.objects.Delete(id)
		return nil

	default:
		return wire.UnknownOpError{Interface: displayInterface, Type: "event", Op: msg.Op()}
	}
}

func (obj *displayObject) MethodName(op uint16) string {
	switch op {
	case evDisplayError:
		return "error"
	case evDisplayDeleteID:
		return "delete_id"
	}
	return "unknown"
}
