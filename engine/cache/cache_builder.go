package cache

import "log/slog"

// cacheConfig collects the non-generic settings applied by CacheBuilderOption values.
type cacheConfig struct {
	name   string
	logger *slog.Logger
}

// CacheBuilderOption is a functional option for configuring a Cache.
type CacheBuilderOption func(*cacheConfig)

// WithName sets the name attached to the cache's log records.
//
// Parameters:
//   - name: the cache name (e.g. "shaders")
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithName(name string) CacheBuilderOption {
	return func(c *cacheConfig) {
		c.name = name
	}
}

// WithLogger sets the parent logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger to derive the cache logger from
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) CacheBuilderOption {
	return func(c *cacheConfig) {
		c.logger = logger
	}
}
