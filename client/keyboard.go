package wl

import (
	"os"

	"deedles.dev/wlui/internal/bin"
	"deedles.dev/wlui/wire"
)

type Keyboard struct {
	// Keymap is passed ownership of file. If Keymap is nil, the file
	// is closed immediately.
	Keymap     func(format KeyboardKeymapFormat, file *os.File, size uint32)
	Enter      func(serial uint32, s *Surface, keys []uint32)
	Leave      func(serial uint32, s *Surface)
	Key        func(serial, time, key uint32, state KeyboardKeyState)
	Modifiers  func(serial, depressed, latched, locked, group uint32)
	RepeatInfo func(rate, delay int32)

	Proxy
}

func (kb *Keyboard) Release() {
	if kb.version >= 3 && !kb.destroyed {
		kb.display.Enqueue(wire.NewMessage(kb, opKeyboardRelease).Describe("release"))
	}
	kb.MarkDestroyed()
}

func (kb *Keyboard) surface(id uint32) *Surface {
	s, _ := kb.display.GetObject(id).(*Surface)
	return s
}

func keyArray(data []byte) []uint32 {
	keys := make([]uint32, 0, len(data)/4)
	for len(data) >= 4 {
		keys = append(keys, bin.Value[uint32]([4]byte(data[:4])))
		data = data[4:]
	}
	return keys
}

func (kb *Keyboard) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case evKeyboardKeymap:
		format := KeyboardKeymapFormat(msg.ReadUint())
		file := msg.ReadFile()
		size := msg.ReadUint()
		if err := msg.Err(); err != nil {
			if file != nil {
				file.Close()
			}
			return err
		}
		if kb.Keymap == nil {
			return file.Close()
		}
		kb.Keymap(format, file, size)

	case evKeyboardEnter:
		serial, id := msg.ReadUint(), msg.ReadUint()
		keys := msg.ReadArray()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.Enter != nil {
			kb.Enter(serial, kb.surface(id), keyArray(keys))
		}

	case evKeyboardLeave:
		serial, id := msg.ReadUint(), msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.Leave != nil {
			kb.Leave(serial, kb.surface(id))
		}

	case evKeyboardKey:
		serial, time, key := msg.ReadUint(), msg.ReadUint(), msg.ReadUint()
		state := KeyboardKeyState(msg.ReadUint())
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.Key != nil {
			kb.Key(serial, time, key, state)
		}

	case evKeyboardModifiers:
		serial := msg.ReadUint()
		depressed, latched, locked := msg.ReadUint(), msg.ReadUint(), msg.ReadUint()
		group := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.Modifiers != nil {
			kb.Modifiers(serial, depressed, latched, locked, group)
		}

	case evKeyboardRepeatInfo:
		rate, delay := msg.ReadInt(), msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.RepeatInfo != nil {
			kb.RepeatInfo(rate, delay)
		}

	default:
		return wire.UnknownOpError{Interface: keyboardInterface, Type: "event", Op: msg.Op()}
	}

	return nil
}

func (kb *Keyboard) MethodName(op uint16) string {
	switch op {
	case evKeyboardKeymap:
		return "keymap"
	case evKeyboardEnter:
		return "enter"
	case evKeyboardLeave:
		return "leave"
	case evKeyboardKey:
		return "key"
	case evKeyboardModifiers:
		return "modifiers"
	case evKeyboardRepeatInfo:
		return "repeat_info"
	}
	return "unknown"
}
