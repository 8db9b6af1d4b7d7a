package surface

import (
	"errors"
	"maps"
	"slices"

	"deedles.dev/wlui/internal/set"
)

var (
	// ErrUnknown is returned for operations on IDs that are not in the
	// registry, usually because the surface has already been closed.
	ErrUnknown = errors.New("unknown surface")

	ErrNoParent = errors.New("popup parent does not exist")
	ErrExists   = errors.New("surface ID already in use")
)

// Registry holds the records of every live surface. It also remembers
// the IDs of every surface that it has removed, so that they are never
// given to another one.
type Registry struct {
	byID     map[ID]*Record
	byObject map[ObjectID]ID
	children map[ID]set.Set[ID]
	retired  set.Set[ID]
}

func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[ID]*Record),
		byObject: make(map[ObjectID]ID),
		children: make(map[ID]set.Set[ID]),
		retired:  make(set.Set[ID]),
	}
}

// Used reports whether id belongs to a live surface or to one that has
// been removed.
func (r *Registry) Used(id ID) bool {
	_, ok := r.byID[id]
	return ok || r.retired.Has(id)
}

// Create allocates a new record for a surface backed by the protocol
// object obj. The record uses params.ID if it is set and a fresh ID
// otherwise. It does not wait for the surface to be configured.
func (r *Registry) Create(kind Kind, obj ObjectID, params Params) (*Record, error) {
	id := params.ID
	if id == 0 {
		id = Unique()
	}
	if r.Used(id) {
		return nil, ErrExists
	}

	var root ID
	if kind == Popup {
		parent, ok := r.byID[params.Parent]
		if !ok {
			return nil, ErrNoParent
		}
		root = parent.ID
		if parent.Kind == Popup {
			root = parent.Root
		}
	}

	reserve(id)
	return r.insert(id, kind, obj, params, root), nil
}

func (r *Registry) insert(id ID, kind Kind, obj ObjectID, params Params, root ID) *Record {
	rec := Record{
		ID:         id,
		Object:     obj,
		Kind:       kind,
		Requested:  params.Size,
		Scale:      1,
		Outputs:    make(set.Set[uint32]),
		Title:      params.Title,
		AppID:      params.AppID,
		MinSize:    params.MinSize,
		MaxSize:    params.MaxSize,
		Positioner: params.Positioner,
		Layer:      params.Layer,
	}
	if kind == Popup {
		rec.Parent = params.Parent
		rec.Root = root

		children, ok := r.children[rec.Parent]
		if !ok {
			children = make(set.Set[ID])
			r.children[rec.Parent] = children
		}
		children.Add(id)
	}

	r.byID[id] = &rec
	r.byObject[obj] = id
	return &rec
}

// Get returns the record with the given ID.
func (r *Registry) Get(id ID) (*Record, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

// Lookup returns the record for the surface backed by obj.
func (r *Registry) Lookup(obj ObjectID) (*Record, bool) {
	id, ok := r.byObject[obj]
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// Logical returns the ID of the surface backed by obj.
func (r *Registry) Logical(obj ObjectID) (ID, bool) {
	id, ok := r.byObject[obj]
	return id, ok
}

// Len returns the number of live surfaces.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Records returns every live record ordered by ID.
func (r *Registry) Records() []*Record {
	ids := slices.Sorted(maps.Keys(r.byID))

	recs := make([]*Record, 0, len(ids))
	for _, id := range ids {
		recs = append(recs, r.byID[id])
	}
	return recs
}

// Descendants returns the IDs of every popup below id, deepest first.
// Siblings are visited in the order that they were created.
func (r *Registry) Descendants(id ID) []ID {
	var out []ID
	var walk func(ID)
	walk = func(id ID) {
		children, ok := r.children[id]
		if !ok {
			return
		}
		for _, child := range set.Sorted(children) {
			walk(child)
			out = append(out, child)
		}
	}
	walk(id)
	return out
}

// Remove removes the record for id along with every popup below it.
// The removed records are returned deepest first, ending with the one
// for id itself. Removing an unknown ID returns nil.
func (r *Registry) Remove(id ID) []*Record {
	rec, ok := r.byID[id]
	if !ok {
		return nil
	}

	ids := append(r.Descendants(id), id)
	removed := make([]*Record, 0, len(ids))
	for _, id := range ids {
		removed = append(removed, r.byID[id])
		r.delete(id)
	}

	if rec.Parent != 0 {
		if children, ok := r.children[rec.Parent]; ok {
			children.Delete(rec.ID)
			if children.Len() == 0 {
				delete(r.children, rec.Parent)
			}
		}
	}

	return removed
}

func (r *Registry) delete(id ID) {
	rec := r.byID[id]
	delete(r.byID, id)
	delete(r.children, id)
	r.retired.Add(id)
	if r.byObject[rec.Object] == id {
		delete(r.byObject, rec.Object)
	}
}

// Rebind changes the protocol object backing the surface id.
func (r *Registry) Rebind(id ID, obj ObjectID) error {
	rec, ok := r.byID[id]
	if !ok {
		return ErrUnknown
	}

	delete(r.byObject, rec.Object)
	rec.Object = obj
	r.byObject[obj] = id
	return nil
}
