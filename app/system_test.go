package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemInformation(t *testing.T) {
	info := systemInformation("adapter", "backend")
	assert.Equal(t, "adapter", info.GraphicsAdapter)
	assert.Equal(t, "backend", info.GraphicsBackend)
	assert.Positive(t, info.CPUCores)
	assert.NotEmpty(t, info.SystemName)
	assert.NotEmpty(t, info.SystemKernel)
	assert.GreaterOrEqual(t, info.MemoryTotal, info.MemoryFree)
}

func TestMemoryClipboard(t *testing.T) {
	var c MemoryClipboard
	_, ok := c.Read()
	assert.False(t, ok)

	c.Write("")
	s, ok := c.Read()
	assert.True(t, ok, "empty write not kept")
	assert.Empty(t, s)
}
