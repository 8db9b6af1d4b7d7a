package layer

import (
	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/wire"
)

// Shell is the zwlr_layer_shell_v1 global.
type Shell struct {
	wl.Proxy
}

func IsShell(i wl.Interface) bool {
	return i.Is(shellInterface, 1)
}

func BindShell(display *wl.Display, name uint32) *Shell {
	var shell Shell
	wl.NewObject(display, &shell.Proxy, &shell)
	display.GetRegistry().Bind(name, shellInterface, shellVersion, &shell)
	return &shell
}

// GetLayerSurface assigns the layer surface role to s. If output is
// nil, the compositor picks one. The surface must not have a buffer
// attached yet and must be committed once its initial state has been
// set.
func (shell *Shell) GetLayerSurface(s *wl.Surface, output *wl.Output, layer Layer, namespace string) *Surface {
	ls := Surface{surface: s}
	wl.NewChildObject(shell, &ls.Proxy, &ls)

	msg := wire.NewMessage(shell, opShellGetLayerSurface).Describe("get_layer_surface", ls.ID(), s, output, layer, namespace)
	msg.WriteUint(ls.ID())
	msg.WriteObject(s)
	msg.WriteObject(output)
	msg.WriteUint(uint32(layer))
	msg.WriteString(namespace)
	send(shell, msg)
	return &ls
}

// Destroy destroys the shell global. It is only available from
// version 3 and is otherwise a no-op. Surfaces created from it remain
// valid.
func (shell *Shell) Destroy() {
	if shell.Version() >= 3 {
		send(shell, wire.NewMessage(shell, opShellDestroy).Describe("destroy"))
	}
	shell.MarkDestroyed()
}

func (shell *Shell) Dispatch(msg *wire.MessageBuffer) error {
	return wire.UnknownOpError{Interface: shellInterface, Type: "event", Op: msg.Op()}
}

func (shell *Shell) MethodName(op uint16) string {
	return "unknown"
}
