package ev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapIsolatesReentrantPushes(t *testing.T) {
	var sink Sink[int]
	sink.Push(1)
	sink.Push(2)

	var back []int
	events := sink.Swap(back)
	assert.Equal(t, []int{1, 2}, events)
	assert.Equal(t, 0, sink.Len())

	for _, e := range events {
		sink.Push(e * 10)
	}
	assert.Equal(t, []int{1, 2}, events, "pushes during drain leaked into the drained batch")

	next := sink.Swap(events)
	assert.Equal(t, []int{10, 20}, next)
	assert.Equal(t, 0, sink.Len())
}
