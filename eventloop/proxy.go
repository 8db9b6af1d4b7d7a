package eventloop

import "sync"

// userQueue holds the values sent through a Proxy until the loop takes
// them. A value is always in the queue before the wakeup for it is
// sent.
type userQueue[T any] struct {
	m      sync.Mutex
	values []T
	closed bool
}

func (q *userQueue[T]) add(v T) error {
	q.m.Lock()
	defer q.m.Unlock()

	if q.closed {
		return ErrLoopClosed
	}
	q.values = append(q.values, v)
	return nil
}

func (q *userQueue[T]) take() []T {
	q.m.Lock()
	defer q.m.Unlock()

	values := q.values
	q.values = nil
	return values
}

func (q *userQueue[T]) stop() {
	q.m.Lock()
	defer q.m.Unlock()

	q.closed = true
	q.values = nil
}

// Proxy sends values into a Loop from any goroutine. Each value is
// delivered as a UserEvent during the next iteration.
type Proxy[T any] struct {
	queue *userQueue[T]
	wake  chan struct{}
}

// Send sends v to the loop, waking it if it is waiting. It returns
// ErrLoopClosed if the loop has exited.
func (p Proxy[T]) Send(v T) error {
	err := p.queue.add(v)
	if err != nil {
		return err
	}

	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}
