// Package cq implements a simple concurrent queue that hands off
// everything added to it in bulk.
package cq

import "sync"

// Queue collects values sent to Add and delivers all of the values
// collected so far as a single batch to a receiver of Get. Batches are
// never empty.
type Queue[T any] struct {
	done  chan struct{}
	close sync.Once

	add chan T
	get chan []T
}

func New[T any]() *Queue[T] {
	q := Queue[T]{
		done: make(chan struct{}),
		add:  make(chan T),
		get:  make(chan []T),
	}
	go q.run()

	return &q
}

// Stop stops the queue. Values that have not yet been received are
// dropped. It is safe to call Stop more than once.
func (q *Queue[T]) Stop() {
	q.close.Do(func() {
		close(q.done)
	})
}

// Done is closed when the queue is stopped.
func (q *Queue[T]) Done() <-chan struct{} {
	return q.done
}

func (q *Queue[T]) Add() chan<- T {
	return q.add
}

func (q *Queue[T]) Get() <-chan []T {
	return q.get
}

// TryGet returns the pending batch without blocking, if there is one.
func (q *Queue[T]) TryGet() ([]T, bool) {
	select {
	case s := <-q.get:
		return s, true
	default:
		return nil, false
	}
}

func (q *Queue[T]) run() {
	var s []T
	var get chan []T

	for {
		select {
		case <-q.done:
			return

		case v := <-q.add:
			s = append(s, v)
			get = q.get

		case get <- s:
			s = nil
			get = nil
		}
	}
}
