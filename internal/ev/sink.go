// Package ev provides the buffer that protocol event handlers push
// into between iterations of the event loop.
package ev

// Sink accumulates events in the order they are pushed. It is owned
// by a single goroutine and is not safe for concurrent use.
type Sink[T any] struct {
	events []T
}

// Push appends an event to the sink.
func (s *Sink[T]) Push(event T) {
	s.events = append(s.events, event)
}

// Len returns the number of events currently in the sink.
func (s *Sink[T]) Len() int {
	return len(s.events)
}

// Swap exchanges the sink's contents for back, which is truncated
// before use, and returns the events that were accumulated. Events
// pushed while the caller is still processing the returned slice land
// in the new buffer instead of the one being processed.
//
// Handing the returned slice back in on the following call lets the
// two buffers be reused.
func (s *Sink[T]) Swap(back []T) []T {
	events := s.events
	s.events = back[:0]
	return events
}
