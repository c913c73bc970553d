package entity

// Registry owns the live entities of a world.
//
// Entities are kept in insertion order so iteration is deterministic.
// Removal is deferred: Remove only marks the entity, which stops it from
// appearing in queries; Flush deletes marked entities at the end of a tick.
type Registry struct {
	nextID   ID
	entities []*Entity
	byID     map[ID]*Entity
	pending  []*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextID: 1,
		byID:   make(map[ID]*Entity),
	}
}

// Add assigns an ID to e and registers it. The entity is visible to
// queries immediately.
func (r *Registry) Add(e *Entity) ID {
	e.ID = r.nextID
	r.nextID++
	e.removed = false
	r.entities = append(r.entities, e)
	r.byID[e.ID] = e
	return e.ID
}

// Remove queues the entity for deletion at the next Flush. Removing an
// unknown or already removed entity is a no-op.
func (r *Registry) Remove(e *Entity) {
	if e == nil || e.removed {
		return
	}
	if _, ok := r.byID[e.ID]; !ok {
		return
	}
	e.removed = true
	r.pending = append(r.pending, e)
}

// Flush deletes every entity queued by Remove and returns them.
func (r *Registry) Flush() []*Entity {
	if len(r.pending) == 0 {
		return nil
	}
	kept := r.entities[:0]
	for _, e := range r.entities {
		if e.removed {
			delete(r.byID, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	clear(r.entities[len(kept):])
	r.entities = kept

	flushed := r.pending
	r.pending = nil
	return flushed
}

// Get returns the entity with the given ID, including entities queued for
// removal that have not been flushed yet.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// ByCapability returns a snapshot of the live entities with the given tag.
// The slice is freshly allocated, so callers may Remove while iterating.
func (r *Registry) ByCapability(tag Tag) []*Entity {
	var out []*Entity
	for _, e := range r.entities {
		if e.Tag == tag && !e.removed {
			out = append(out, e)
		}
	}
	return out
}

// Each calls fn for every entity not queued for removal, in insertion order.
func (r *Registry) Each(fn func(*Entity)) {
	for _, e := range r.entities {
		if !e.removed {
			fn(e)
		}
	}
}

// Count returns the number of entities with the given tag not queued for removal.
func (r *Registry) Count(tag Tag) int {
	n := 0
	for _, e := range r.entities {
		if e.Tag == tag && !e.removed {
			n++
		}
	}
	return n
}

// Len returns the number of registered entities, pending removals included.
func (r *Registry) Len() int {
	return len(r.entities)
}
