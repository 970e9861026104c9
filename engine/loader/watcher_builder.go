package loader

import "log/slog"

// WatcherBuilderOption is a functional option for configuring a Watcher via NewWatcher.
type WatcherBuilderOption func(*watcher)

// WithWatcherLogger sets the parent logger. Defaults to slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *watcher) {
		w.logger = logger
	}
}
