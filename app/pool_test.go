package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolLimit(t *testing.T) {
	results := make(chan int, 4)
	p := newPool(1, func(v int) error {
		results <- v
		return nil
	})
	defer p.Stop()

	var running, peak atomic.Int32
	for i := range 4 {
		p.Spawn(func(context.Context) int {
			n := running.Add(1)
			defer running.Add(-1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(time.Millisecond)
			return i
		})
	}

	got := make(map[int]bool)
	for range 4 {
		select {
		case v := <-results:
			got[v] = true
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for results")
		}
	}
	assert.Len(t, got, 4)
	assert.Equal(t, int32(1), peak.Load())
}

func TestPoolStop(t *testing.T) {
	var sent atomic.Bool
	p := newPool(2, func(string) error {
		sent.Store(true)
		return nil
	})

	started := make(chan struct{})
	p.Spawn(func(ctx context.Context) string {
		close(started)
		<-ctx.Done()
		return "late"
	})

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("task never started")
	}

	p.Stop()
	assert.False(t, sent.Load(), "result of cancelled task was sent")

	p.Spawn(func(context.Context) string { return "after" })
	require.False(t, sent.Load())
}
