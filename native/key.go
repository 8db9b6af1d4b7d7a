package native

import "fmt"

// Key is a physical key, independent of the keyboard layout.
type Key int

const (
	KeyUnknown Key = iota

	KeyEscape
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLeftBracket
	KeyRightBracket
	KeyEnter
	KeyLeftControl
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyApostrophe
	KeyGrave
	KeyLeftShift
	KeyBackslash
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeySlash
	KeyRightShift
	KeyKPMultiply
	KeyLeftAlt
	KeySpace
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyNumLock
	KeyScrollLock
	KeyF11
	KeyF12
	KeyRightControl
	KeyRightAlt
	KeyHome
	KeyUp
	KeyPageUp
	KeyLeft
	KeyRight
	KeyEnd
	KeyDown
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyLeftSuper
	KeyRightSuper
	KeyMenu
)

var keyNames = [...]string{
	KeyUnknown:      "Unknown",
	KeyEscape:       "Escape",
	Key1:            "1",
	Key2:            "2",
	Key3:            "3",
	Key4:            "4",
	Key5:            "5",
	Key6:            "6",
	Key7:            "7",
	Key8:            "8",
	Key9:            "9",
	Key0:            "0",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyQ:            "Q",
	KeyW:            "W",
	KeyE:            "E",
	KeyR:            "R",
	KeyT:            "T",
	KeyY:            "Y",
	KeyU:            "U",
	KeyI:            "I",
	KeyO:            "O",
	KeyP:            "P",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyEnter:        "Enter",
	KeyLeftControl:  "LeftControl",
	KeyA:            "A",
	KeyS:            "S",
	KeyD:            "D",
	KeyF:            "F",
	KeyG:            "G",
	KeyH:            "H",
	KeyJ:            "J",
	KeyK:            "K",
	KeyL:            "L",
	KeySemicolon:    "Semicolon",
	KeyApostrophe:   "Apostrophe",
	KeyGrave:        "Grave",
	KeyLeftShift:    "LeftShift",
	KeyBackslash:    "Backslash",
	KeyZ:            "Z",
	KeyX:            "X",
	KeyC:            "C",
	KeyV:            "V",
	KeyB:            "B",
	KeyN:            "N",
	KeyM:            "M",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
	KeyRightShift:   "RightShift",
	KeyKPMultiply:   "KPMultiply",
	KeyLeftAlt:      "LeftAlt",
	KeySpace:        "Space",
	KeyCapsLock:     "CapsLock",
	KeyF1:           "F1",
	KeyF2:           "F2",
	KeyF3:           "F3",
	KeyF4:           "F4",
	KeyF5:           "F5",
	KeyF6:           "F6",
	KeyF7:           "F7",
	KeyF8:           "F8",
	KeyF9:           "F9",
	KeyF10:          "F10",
	KeyNumLock:      "NumLock",
	KeyScrollLock:   "ScrollLock",
	KeyF11:          "F11",
	KeyF12:          "F12",
	KeyRightControl: "RightControl",
	KeyRightAlt:     "RightAlt",
	KeyHome:         "Home",
	KeyUp:           "Up",
	KeyPageUp:       "PageUp",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyEnd:          "End",
	KeyDown:         "Down",
	KeyPageDown:     "PageDown",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyLeftSuper:    "LeftSuper",
	KeyRightSuper:   "RightSuper",
	KeyMenu:         "Menu",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Keymap maps evdev key codes to keys.
type Keymap map[uint32]Key

// DefaultKeymap maps the key codes from linux/input-event-codes.h.
// Codes 1 through 58 are laid out in the same order as the Key
// constants.
var DefaultKeymap = func() Keymap {
	km := Keymap{
		59:  KeyF1,
		60:  KeyF2,
		61:  KeyF3,
		62:  KeyF4,
		63:  KeyF5,
		64:  KeyF6,
		65:  KeyF7,
		66:  KeyF8,
		67:  KeyF9,
		68:  KeyF10,
		69:  KeyNumLock,
		70:  KeyScrollLock,
		87:  KeyF11,
		88:  KeyF12,
		97:  KeyRightControl,
		100: KeyRightAlt,
		102: KeyHome,
		103: KeyUp,
		104: KeyPageUp,
		105: KeyLeft,
		106: KeyRight,
		107: KeyEnd,
		108: KeyDown,
		109: KeyPageDown,
		110: KeyInsert,
		111: KeyDelete,
		125: KeyLeftSuper,
		126: KeyRightSuper,
		127: KeyMenu,
	}
	for code := uint32(1); code <= 58; code++ {
		km[code] = Key(code)
	}
	return km
}()

// Lookup returns the key for an evdev key code.
func (km Keymap) Lookup(code uint32) Key {
	return km[code]
}
