// Package mlog is a thin structured-logging facade for optional tree
// instrumentation: split and root-growth events. It wraps a pluggable
// slog.Handler rather than running its own background loop, since the
// tree it instruments is synchronous and never spawns goroutines.
package mlog

import (
	"context"
	"log/slog"
)

// Logger wraps an slog.Handler. The zero value and a nil *Logger are
// both valid and silently discard everything, so instrumentation can be
// wired in unconditionally and only does work when a caller opts in.
type Logger struct {
	h slog.Handler
}

// New wraps h for use as tree instrumentation. A nil handler disables
// logging, same as a nil *Logger.
func New(h slog.Handler) *Logger {
	if h == nil {
		return nil
	}
	return &Logger{h: h}
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l == nil || l.h == nil {
		return
	}
	slog.New(l.h).Log(context.Background(), level, msg, args...)
}

// Debug logs a fine-grained structural event, e.g. a single node split.
func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs a coarser event, e.g. the tree growing a new root.
func (l *Logger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs something unexpected but recoverable.
func (l *Logger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }
