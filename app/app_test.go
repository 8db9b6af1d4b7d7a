package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"deedles.dev/wlui/command"
	"deedles.dev/wlui/eventloop"
	"deedles.dev/wlui/layer"
	"deedles.dev/wlui/native"
	"deedles.dev/wlui/surface"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	waits      int
	onDispatch func(n int)
}

func (t *fakeTransport) Flush() error                  { return nil }
func (t *fakeTransport) DispatchPending() (int, error) { return 0, nil }

func (t *fakeTransport) Dispatch(time.Duration, <-chan struct{}) (int, error) {
	t.waits++
	if t.onDispatch != nil {
		t.onDispatch(t.waits)
	}
	return 0, nil
}

type fakeShell struct {
	next  surface.ObjectID
	roles map[surface.ObjectID]*fakeRole
}

func newFakeShell() *fakeShell {
	return &fakeShell{roles: make(map[surface.ObjectID]*fakeRole)}
}

func (sh *fakeShell) NewRole(kind surface.Kind, params surface.Params, parent eventloop.Role) (eventloop.Role, error) {
	if kind == surface.Popup && parent == nil {
		return nil, errors.New("popup without parent")
	}

	sh.next++
	r := fakeRole{obj: 100 + sh.next, title: params.Title}
	sh.roles[r.obj] = &r
	return &r, nil
}

type fakeRole struct {
	obj surface.ObjectID

	acks       []uint32
	commits    []surface.Size
	frames     int
	title      string
	minSize    surface.Size
	fullscreen bool
	minimized  bool
	anchor     layer.Anchor
	moves      int
	grabs      int
	reposition surface.Positioner
	destroyed  bool
}

func (r *fakeRole) Object() surface.ObjectID                  { return r.obj }
func (r *fakeRole) AckConfigure(serial uint32)                { r.acks = append(r.acks, serial) }
func (r *fakeRole) Commit(size surface.Size)                  { r.commits = append(r.commits, size) }
func (r *fakeRole) SetScale(int32)                            {}
func (r *fakeRole) Frame()                                    { r.frames++ }
func (r *fakeRole) Destroy()                                  { r.destroyed = true }
func (r *fakeRole) SetTitle(title string)                     { r.title = title }
func (r *fakeRole) SetAppID(string)                           {}
func (r *fakeRole) SetMinSize(size surface.Size)              { r.minSize = size }
func (r *fakeRole) SetMaxSize(surface.Size)                   {}
func (r *fakeRole) SetMaximized(bool)                         {}
func (r *fakeRole) SetFullscreen(fullscreen bool)             { r.fullscreen = fullscreen }
func (r *fakeRole) SetMinimized()                             { r.minimized = true }
func (r *fakeRole) Move(*eventloop.Seat)                      { r.moves++ }
func (r *fakeRole) SetSize(surface.Size)                      {}
func (r *fakeRole) SetAnchor(anchor layer.Anchor)             { r.anchor = anchor }
func (r *fakeRole) SetMargin(layer.Margin)                    {}
func (r *fakeRole) SetExclusiveZone(int32)                    {}
func (r *fakeRole) SetLayer(layer.Layer) bool                 { return true }
func (r *fakeRole) Reposition(p surface.Positioner, _ uint32) { r.reposition = p }
func (r *fakeRole) Grab(*eventloop.Seat)                      { r.grabs++ }

func (r *fakeRole) SetKeyboardInteractivity(layer.KeyboardInteractivity) {}

type fakeApp struct {
	init     command.Command[string]
	commands map[string]command.Command[string]
	reply    []string
	title    string
	exitOn   string

	updates []string
	views   int
	uis     map[surface.ID]*fakeUI
	exiting bool
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		commands: make(map[string]command.Command[string]),
		uis:      make(map[surface.ID]*fakeUI),
	}
}

func (a *fakeApp) Init() command.Command[string] { return a.init }

func (a *fakeApp) Update(msg string) command.Command[string] {
	a.updates = append(a.updates, msg)
	if msg == a.exitOn {
		a.exiting = true
	}
	return a.commands[msg]
}

func (a *fakeApp) View(id surface.ID) UserInterface[string] {
	a.views++
	ui := &fakeUI{reply: a.reply}
	a.uis[id] = ui
	return ui
}

func (a *fakeApp) Title(surface.ID) string             { return a.title }
func (a *fakeApp) CloseRequested(id surface.ID) string { return fmt.Sprintf("close %v", id) }
func (a *fakeApp) ShouldExit() bool                    { return a.exiting }

type fakeUI struct {
	reply []string

	layouts []surface.Size
	events  []native.Event
	ops     []command.Operation[string]
}

func (ui *fakeUI) Layout(size surface.Size) { ui.layouts = append(ui.layouts, size) }

func (ui *fakeUI) Update(events []native.Event) []string {
	ui.events = append(ui.events, events...)
	return ui.reply
}

func (ui *fakeUI) Operate(op command.Operation[string]) { ui.ops = append(ui.ops, op) }
func (ui *fakeUI) Draw() any                            { return ui }

type fakeCompositor struct {
	configured map[surface.ID][]surface.Size
	presented  []surface.ID
	released   []surface.ID
}

func newFakeCompositor() *fakeCompositor {
	return &fakeCompositor{configured: make(map[surface.ID][]surface.Size)}
}

func (c *fakeCompositor) Configure(id surface.ID, obj surface.ObjectID, size surface.Size, scale int32) error {
	c.configured[id] = append(c.configured[id], size)
	return nil
}

func (c *fakeCompositor) Present(id surface.ID, scene any) error {
	c.presented = append(c.presented, id)
	return nil
}

func (c *fakeCompositor) Release(id surface.ID)         { c.released = append(c.released, id) }
func (c *fakeCompositor) Information() (string, string) { return "fake adapter", "fake backend" }

type harness struct {
	loop       *eventloop.Loop[string]
	transport  *fakeTransport
	shell      *fakeShell
	app        *fakeApp
	compositor *fakeCompositor
	runner     *runner[string]
}

func newHarness(settings Settings) *harness {
	h := harness{
		transport:  &fakeTransport{},
		shell:      newFakeShell(),
		app:        newFakeApp(),
		compositor: newFakeCompositor(),
	}
	h.loop = eventloop.NewLoop[string](h.transport, h.shell)
	h.runner = newRunner[string](h.app, h.compositor, settings, h.loop.Proxy().Send)
	return &h
}

// run runs the loop for at most the given number of iterations and
// returns its exit code.
func (h *harness) run(t *testing.T, iterations int) int {
	t.Helper()

	var done int
	return h.loop.Run(func(ev eventloop.Event, state *eventloop.State, flow *eventloop.ControlFlow) {
		h.runner.handle(ev, state, flow)
		if _, ok := ev.(eventloop.RedrawEventsCleared); ok {
			done++
			if done == iterations {
				*flow = eventloop.ExitWithCode(0)
			}
		}
	})
}

// window creates a window and configures it without going through
// the loop.
func (h *harness) window(t *testing.T, id surface.ID, size surface.Size) (*surface.Record, *fakeRole) {
	t.Helper()

	state := h.loop.State()
	rec, err := state.CreateWindow(surface.Params{ID: id, Size: size})
	require.NoError(t, err)
	rec.PushConfigure(surface.Configure{Serial: 1, Size: size})
	rec.Reconcile()

	flow := eventloop.Wait
	h.runner.handle(eventloop.Configured{Surface: id, Kind: surface.Window, Size: size, Scale: 1}, state, &flow)
	return rec, h.shell.roles[rec.Object]
}
