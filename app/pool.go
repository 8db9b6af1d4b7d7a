package app

import (
	"context"
	"runtime"

	"deedles.dev/wlui/internal/cq"
	"deedles.dev/wlui/internal/debug"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// pool runs background tasks and sends their results back to the
// loop. Spawning never blocks; tasks beyond the limit wait in a queue.
type pool[M any] struct {
	ctx    context.Context
	cancel context.CancelFunc

	group errgroup.Group
	tasks *cq.Queue[func(context.Context) M]
	send  func(M) error
	done  chan struct{}

	log *log.Logger
}

func newPool[M any](limit int, send func(M) error) *pool[M] {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := pool[M]{
		ctx:    ctx,
		cancel: cancel,
		tasks:  cq.New[func(context.Context) M](),
		send:   send,
		done:   make(chan struct{}),
		log:    debug.With("component", "pool"),
	}
	p.group.SetLimit(limit)
	go p.run()

	return &p
}

func (p *pool[M]) run() {
	defer close(p.done)

	for {
		select {
		case <-p.ctx.Done():
			return

		case batch := <-p.tasks.Get():
			for _, task := range batch {
				if p.ctx.Err() != nil {
					return
				}
				p.group.Go(func() error {
					p.do(task)
					return nil
				})
			}
		}
	}
}

func (p *pool[M]) do(task func(context.Context) M) {
	msg := task(p.ctx)
	if p.ctx.Err() != nil {
		return
	}

	err := p.send(msg)
	if err != nil {
		p.log.Debug("task result dropped", "err", err)
	}
}

// Spawn queues task to be run.
func (p *pool[M]) Spawn(task func(context.Context) M) {
	select {
	case <-p.tasks.Done():
		p.log.Debug("task spawned after stop")
	case p.tasks.Add() <- task:
	}
}

// Stop cancels the tasks that are running, drops those that have not
// started, and waits for the running ones to return.
func (p *pool[M]) Stop() {
	p.cancel()
	p.tasks.Stop()
	<-p.done
	p.group.Wait()
}
