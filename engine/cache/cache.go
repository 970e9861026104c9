package cache

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
)

var (
	// ErrCreateFailed is returned by Get when the factory could not produce a payload.
	ErrCreateFailed = errors.New("cache: could not create item")

	// ErrUnknownKey is returned by a Registry factory for a key with no registered constructor.
	// Get treats it as a creation failure, so errors carrying it also match ErrCreateFailed.
	ErrUnknownKey = errors.New("cache: key is not registered")
)

// Factory produces the payload for a key on a cache miss. It runs without the cache lock held, so
// it may call back into the cache.
type Factory[K cmp.Ordered, T any] func(key K) (T, error)

// ReleaseFunc destroys a payload when its entry leaves the cache.
type ReleaseFunc[T any] func(payload T)

// entry pairs a payload with the used flag consulted by Sweep.
type entry[T any] struct {
	payload T
	used    bool
}

type cacheImpl[K cmp.Ordered, T any] struct {
	mu *sync.Mutex

	name    string
	logger  *slog.Logger
	create  Factory[K, T]
	release ReleaseFunc[T]
	items   map[K]*entry[T]
}

// Cache is a keyed store of lazily created resources with per-frame usage tracking.
//
// A payload is created on the first Get of its key and stays cached for as long as it is
// requested at least once between consecutive Sweep calls. Sweep must run exactly once per
// frame after every Get for that frame, so a payload handed out during a frame is never
// released before the frame completes.
type Cache[K cmp.Ordered, T any] interface {
	// Name returns the name used to tag this cache's log records.
	//
	// Returns:
	//   - string: the cache name
	Name() string

	// Get returns the payload for key and marks it used for the current frame.
	// On a miss the factory is invoked; a failed creation is logged, nothing is inserted,
	// and the next Get for the same key tries again.
	//
	// Parameters:
	//   - key: the resource id
	//
	// Returns:
	//   - T: the cached payload, or the zero value on failure
	//   - error: an error wrapping ErrCreateFailed (and ErrUnknownKey for unregistered ids)
	Get(key K) (T, error)

	// Sweep releases and removes every entry not requested since the previous Sweep and
	// clears the used flag of every remaining entry.
	//
	// Returns:
	//   - int: the number of entries evicted
	Sweep() int

	// Invalidate releases and removes the entry for key immediately, so the next Get
	// recreates it. Must not be called while the payload is still referenced by the
	// current frame.
	//
	// Parameters:
	//   - key: the resource id
	//
	// Returns:
	//   - bool: true if an entry was removed
	Invalidate(key K) bool

	// Contains reports whether key currently has a cached payload. It does not mark the entry used.
	//
	// Parameters:
	//   - key: the resource id
	//
	// Returns:
	//   - bool: true if the key is cached
	Contains(key K) bool

	// Len returns the number of cached entries.
	//
	// Returns:
	//   - int: the entry count
	Len() int

	// Keys returns the cached keys in ascending order.
	//
	// Returns:
	//   - []K: the sorted keys
	Keys() []K

	// Purge releases and removes every entry regardless of use.
	Purge()
}

var _ Cache[uint32, int] = &cacheImpl[uint32, int]{}

// NewCache creates an empty Cache.
//
// Parameters:
//   - create: the factory invoked on a miss (must not be nil)
//   - release: called once for every payload leaving the cache; nil means payloads need no cleanup
//   - options: functional options to configure the cache
//
// Returns:
//   - Cache[K, T]: the newly created cache
func NewCache[K cmp.Ordered, T any](create Factory[K, T], release ReleaseFunc[T], options ...CacheBuilderOption) Cache[K, T] {
	if create == nil {
		panic("cache: NewCache requires a non-nil factory")
	}

	cfg := cacheConfig{name: "cache"}
	for _, option := range options {
		option(&cfg)
	}

	return &cacheImpl[K, T]{
		mu:      &sync.Mutex{},
		name:    cfg.name,
		logger:  logging.Component(cfg.logger, "cache").With("cache", cfg.name),
		create:  create,
		release: release,
		items:   make(map[K]*entry[T]),
	}
}

func (c *cacheImpl[K, T]) Name() string {
	return c.name
}

func (c *cacheImpl[K, T]) Get(key K) (T, error) {
	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		e.used = true
		c.mu.Unlock()
		return e.payload, nil
	}
	c.mu.Unlock()

	// The factory runs unlocked so a slow build does not stall Len or Stats readers, and a factory
	// may read the cache it fills.
	payload, err := c.create(key)
	if err != nil {
		var zero T
		if errors.Is(err, ErrUnknownKey) {
			c.logger.Error("key is not a registered id", "key", key)
		} else {
			c.logger.Error("could not create item", "key", key, "error", err)
		}
		return zero, fmt.Errorf("%w: %s %v: %w", ErrCreateFailed, c.name, key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		// another Get filled the key while the factory ran; keep the first payload
		if c.release != nil {
			c.release(payload)
		}
		e.used = true
		return e.payload, nil
	}
	c.items[key] = &entry[T]{payload: payload, used: true}
	c.logger.Log(context.Background(), logging.LevelTrace, "created item", "key", key)
	return payload, nil
}

func (c *cacheImpl[K, T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for _, key := range slices.Sorted(maps.Keys(c.items)) {
		e := c.items[key]
		if e.used {
			e.used = false
			continue
		}
		c.releaseEntry(key, e)
		evicted++
	}
	return evicted
}

func (c *cacheImpl[K, T]) Invalidate(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.releaseEntry(key, e)
	return true
}

func (c *cacheImpl[K, T]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *cacheImpl[K, T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *cacheImpl[K, T]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.items))
}

func (c *cacheImpl[K, T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range slices.Sorted(maps.Keys(c.items)) {
		c.releaseEntry(key, c.items[key])
	}
}

// releaseEntry hands the payload to the release callback and drops the entry.
// Caller must hold the mutex.
func (c *cacheImpl[K, T]) releaseEntry(key K, e *entry[T]) {
	if c.release != nil {
		c.release(e.payload)
	}
	delete(c.items, key)
	c.logger.Log(context.Background(), logging.LevelTrace, "released item", "key", key)
}
