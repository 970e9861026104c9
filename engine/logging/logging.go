// Package logging builds the structured loggers shared by the viewer's subsystems.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is used for per-frame chatter such as
// cache creations and evictions.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel converts a textual level name into a slog.Level.
// Accepted names are "trace", "debug", "info", "warn" and "error" (case-insensitive).
//
// Parameters:
//   - name: the level name
//
// Returns:
//   - slog.Level: the parsed level
//   - error: an error if the name is not recognised
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New creates a text logger writing to w at the given minimum level.
// The trace level is rendered as "TRACE" instead of slog's "DEBUG-4".
//
// Parameters:
//   - w: destination writer
//   - level: minimum level that is emitted
//
// Returns:
//   - *slog.Logger: the configured logger
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey {
				return a
			}
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	}))
}

// Component returns a child logger tagged with the given component name.
// A nil parent falls back to slog.Default().
func Component(parent *slog.Logger, name string) *slog.Logger {
	if parent == nil {
		parent = slog.Default()
	}
	return parent.With("component", name)
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
