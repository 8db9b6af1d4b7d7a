package event

import (
	"testing"

	"deedles.dev/wlui/surface"
	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		id   surface.ObjectID
		ok   bool
	}{
		{name: "seat", ev: Seat{Seat: 3, Kind: SeatNew}},
		{name: "output", ev: Output{Output: 9, Kind: OutputNew}},
		{name: "pointer", ev: Pointer{Surface: 12, Kind: PointerMotion}, id: 12, ok: true},
		{name: "unfocused keyboard", ev: Keyboard{Kind: KeyboardRepeatInfo}},
		{name: "keyboard", ev: Keyboard{Surface: 4, Kind: KeyPress}, id: 4, ok: true},
		{name: "frame", ev: Surface{Surface: 5, Kind: Frame}, id: 5, ok: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, ok := test.ev.Target()
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.id, id)
		})
	}
}

func TestModifiers(t *testing.T) {
	m := Modifiers{Depressed: 1, Locked: 2}
	assert.Equal(t, uint32(3), m.Effective())
	assert.True(t, Axis{}.IsZero())
	assert.False(t, Axis{Discrete: 1}.IsZero())
}
