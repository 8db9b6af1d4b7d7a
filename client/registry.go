package wl

import (
	"deedles.dev/wlui/wire"
	"golang.org/x/exp/maps"
)

// Registry is the wl_registry. Globals are recorded as they are
// announced and the optional Global and GlobalRemove callbacks are
// called after the record has been updated.
type Registry struct {
	Global       func(name uint32, inter Interface)
	GlobalRemove func(name uint32)

	Proxy
	globals map[uint32]Interface
}

// Globals returns a snapshot of the globals that are currently
// advertised.
func (registry *Registry) Globals() map[uint32]Interface {
	return maps.Clone(registry.globals)
}

// Lookup returns the interface advertised under name.
func (registry *Registry) Lookup(name uint32) (Interface, bool) {
	inter, ok := registry.globals[name]
	return inter, ok
}

// Bind binds the global name to obj, which must already have been
// registered with NewObject. The version used is the lower of the
// advertised version and supported, and it is recorded on obj.
func (registry *Registry) Bind(name uint32, inter string, supported uint32, obj Object) uint32 {
	version := supported
	if adv, ok := registry.globals[name]; ok {
		version = bindVersion(adv.Version, supported)
	}
	obj.SetVersion(version)

	msg := wire.NewMessage(registry, opRegistryBind).Describe("bind", name, inter, version, obj.ID())
	msg.WriteUint(name)
	msg.WriteNewID(wire.NewID{Interface: inter, Version: version, ID: obj.ID()})
	registry.display.Enqueue(msg)
	return version
}

func (registry *Registry) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evRegistryGlobal:
		name := msg.ReadUint()
		inter := Interface{Name: msg.ReadString(), Version: msg.ReadUint()}
		if err := msg.Err(); err != nil {
			return err
		}
		registry.globals[name] = inter
		if registry.Global != nil {
			registry.Global(name, inter)
		}
		return nil

	case evRegistryGlobalRemove:
		name := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		delete(registry.globals, name)
		if registry.GlobalRemove != nil {
			registry.GlobalRemove(name)
		}
		return nil

	default:
		return wire.UnknownOpError{Interface: registryInterface, Type: "event", Op: msg.Op()}
	}
}

func (registry *Registry) MethodName(op uint16) string {
	switch op {
	case evRegistryGlobal:
		return "global"
	case evRegistryGlobalRemove:
		return "global_remove"
	}
	return "unknown"
}
