// Package objstore tracks the protocol objects that are alive on a
// connection, keyed by their protocol ID.
package objstore

import "deedles.dev/wlui/wire"

type Store struct {
	objects map[uint32]wire.Object
	nextID  uint32
}

// New returns a store that allocates IDs starting at start.
func New(start uint32) *Store {
	return &Store{
		objects: make(map[uint32]wire.Object),
		nextID:  start,
	}
}

// Add inserts obj, first assigning it the next free ID if it does not
// already have one.
func (s *Store) Add(obj wire.Object) {
	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
		s.nextID++
	}

	s.objects[id] = obj
}

func (s *Store) Get(id uint32) wire.Object {
	return s.objects[id]
}

// Delete removes the object with the given ID, calling its Delete
// method if it existed. It reports whether anything was removed.
func (s *Store) Delete(id uint32) bool {
	obj, ok := s.objects[id]
	if !ok {
		return false
	}
	delete(s.objects, id)
	obj.Delete()
	return true
}

func (s *Store) Len() int {
	return len(s.objects)
}
