package command

import (
	"context"
	"testing"

	"deedles.dev/wlui/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	a := Single[string](Close{ID: 1})
	b := Command[string]{SetTitle{ID: 2, Title: "x"}, Resize{ID: 2, Size: surface.Size{W: 1, H: 1}}}

	cmd := Batch(a, None[string](), b)
	require.Len(t, cmd, 3)
	assert.Equal(t, Close{ID: 1}, cmd[0])
	assert.Equal(t, SetTitle{ID: 2, Title: "x"}, cmd[1])
}

func TestPerform(t *testing.T) {
	cmd := Perform(func(context.Context) int { return 3 })
	require.Len(t, cmd, 1)

	spawn, ok := cmd[0].(Spawn[int])
	require.True(t, ok)
	assert.Equal(t, 3, spawn.Task(context.Background()))
}
