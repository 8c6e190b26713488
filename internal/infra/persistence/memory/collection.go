package memory

import (
	"iter"
	"slices"

	"devicecore/pkg/domain"
)

// Collection is an insertion-ordered keyed set of records. It enforces key
// uniqueness and presence only; every other constraint is checked by callers
// before they reach it. Records are cloned on the way in and out so callers
// never alias stored slices.
type Collection[T any] struct {
	entity domain.EntityType
	key    func(T) string
	clone  func(T) T
	order  []string
	items  map[string]T
}

// NewCollection builds an empty collection for entity.
func NewCollection[T any](entity domain.EntityType, key func(T) string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{
		entity: entity,
		key:    key,
		clone:  clone,
		items:  make(map[string]T),
	}
}

// Entity reports the kind stored in the collection.
func (c *Collection[T]) Entity() domain.EntityType { return c.entity }

// Len returns the number of stored records.
func (c *Collection[T]) Len() int { return len(c.order) }

// Create appends record, failing with ErrDuplicateKey when its id is taken.
func (c *Collection[T]) Create(record T) (T, error) {
	id := c.key(record)
	if _, exists := c.items[id]; exists {
		var zero T
		return zero, domain.DuplicateKey(c.entity, id)
	}
	c.items[id] = c.clone(record)
	c.order = append(c.order, id)
	return c.clone(record), nil
}

// Update replaces the stored record with the same id in place, keeping its
// position. The previous value is returned alongside the stored one.
func (c *Collection[T]) Update(record T) (before, after T, err error) {
	id := c.key(record)
	current, ok := c.items[id]
	if !ok {
		var zero T
		return zero, zero, domain.NotFound(c.entity, id)
	}
	c.items[id] = c.clone(record)
	return current, c.clone(record), nil
}

// Delete removes the record with id and returns it.
func (c *Collection[T]) Delete(id string) (T, error) {
	current, ok := c.items[id]
	if !ok {
		var zero T
		return zero, domain.NotFound(c.entity, id)
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return current, nil
}

// Get returns a copy of the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

// All yields copies of the records in insertion order. The sequence is
// restartable and reflects the collection at the time each pass begins.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		order := slices.Clone(c.order)
		for _, id := range order {
			v, ok := c.items[id]
			if !ok {
				continue
			}
			if !yield(c.clone(v)) {
				return
			}
		}
	}
}

// List collects All into a slice.
func (c *Collection[T]) List() []T {
	out := make([]T, 0, len(c.order))
	for v := range c.All() {
		out = append(out, v)
	}
	return out
}

func (c *Collection[T]) cloneCollection() *Collection[T] {
	cp := &Collection[T]{
		entity: c.entity,
		key:    c.key,
		clone:  c.clone,
		order:  slices.Clone(c.order),
		items:  make(map[string]T, len(c.items)),
	}
	for id, v := range c.items {
		cp.items[id] = c.clone(v)
	}
	return cp
}
