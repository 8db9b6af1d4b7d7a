package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonString(t *testing.T) {
	assert.Equal(t, "left", ButtonLeft.String())
	assert.Equal(t, "task", ButtonTask.String())
	assert.Equal(t, "Button(0x200)", Button(0x200).String())
}

func TestCursorName(t *testing.T) {
	assert.Equal(t, "left_ptr", Idle.CursorName())
	assert.Equal(t, "xterm", Text.CursorName())
	assert.Equal(t, "left_ptr", Interaction(100).CursorName())
}
