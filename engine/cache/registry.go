package cache

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry is the id-to-constructor table a Cache creates its payloads from.
// Ids with no registered constructor produce ErrUnknownKey.
type Registry[K cmp.Ordered, T any] struct {
	mu           sync.RWMutex
	constructors map[K]Factory[K, T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[K cmp.Ordered, T any]() *Registry[K, T] {
	return &Registry[K, T]{constructors: make(map[K]Factory[K, T])}
}

// Register binds a constructor to key, replacing any previous one.
//
// Parameters:
//   - key: the resource id
//   - fn: the constructor for that id
//
// Returns:
//   - *Registry[K, T]: the registry, for chaining
func (r *Registry[K, T]) Register(key K, fn Factory[K, T]) *Registry[K, T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[key] = fn
	return r
}

// Has reports whether key has a registered constructor.
func (r *Registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[key]
	return ok
}

// Keys returns the registered ids in ascending order.
func (r *Registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.constructors))
}

// Create runs the constructor registered for key.
//
// Parameters:
//   - key: the resource id
//
// Returns:
//   - T: the constructed payload
//   - error: ErrUnknownKey (wrapped) if nothing is registered, or the constructor's error
func (r *Registry[K, T]) Create(key K) (T, error) {
	r.mu.RLock()
	fn, ok := r.constructors[key]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrUnknownKey, key)
	}
	return fn(key)
}

// Factory adapts the registry to the Factory signature expected by NewCache.
func (r *Registry[K, T]) Factory() Factory[K, T] {
	return r.Create
}
