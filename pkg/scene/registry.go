// Package scene owns the objects placed in a session and the registries that
// name and deduplicate them.
package scene

import (
	"fmt"
	"sort"
)

// Kind is the family an object belongs to; each kind is numbered separately
type Kind string

// Object kinds
const (
	KindDrawing  Kind = "Drawing"
	KindMeasure  Kind = "Measure"
	KindSphere   Kind = "Sphere"
	KindCube     Kind = "Cube"
	KindCylinder Kind = "Cylinder"
)

// IDs hands out increasing numbers per kind, starting at 1
type IDs struct {
	next map[Kind]int
}

// NewIDs creates an empty counter set
func NewIDs() *IDs {
	return &IDs{next: make(map[Kind]int)}
}

// Next returns the next number for kind
func (ids *IDs) Next(kind Kind) int {
	if ids.next == nil {
		ids.next = make(map[Kind]int)
	}
	ids.next[kind]++
	return ids.next[kind]
}

// Name returns the display name of the next object of kind, such as "Drawing #3"
func (ids *IDs) Name(kind Kind) string {
	return fmt.Sprintf("%s #%d", kind, ids.Next(kind))
}

// Tracked maps external tracked keys, such as detected images, to the single
// entity created for each
type Tracked[K comparable, V any] struct {
	entries map[K]V
}

// NewTracked creates an empty registry
func NewTracked[K comparable, V any]() *Tracked[K, V] {
	return &Tracked[K, V]{entries: make(map[K]V)}
}

// GetOrCreate returns the entity for key, calling create only the first time
// key is seen. The boolean reports whether create was called.
func (t *Tracked[K, V]) GetOrCreate(key K, create func(K) V) (V, bool) {
	if v, ok := t.entries[key]; ok {
		return v, false
	}
	if t.entries == nil {
		t.entries = make(map[K]V)
	}
	v := create(key)
	t.entries[key] = v
	return v, true
}

// Get returns the entity for key
func (t *Tracked[K, V]) Get(key K) (V, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Remove forgets key so that a later GetOrCreate creates a new entity
func (t *Tracked[K, V]) Remove(key K) bool {
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	return true
}

// Len returns the number of tracked entities
func (t *Tracked[K, V]) Len() int {
	return len(t.entries)
}

// sortedNames returns the keys of m by ascending position in order
func sortedNames[V any](m map[string]V, order map[string]int) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return order[names[i]] < order[names[j]]
	})
	return names
}
