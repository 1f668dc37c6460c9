// Copyright (c) 2026 The AcctState developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the slog based go-ethereum logger.
// Package level loggers are created once at init time and resolve the
// root handler on every call, so they follow later SetDefault calls.
package log

import (
	"context"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Re-exported slog levels.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to a handler.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// With returns a new Logger that has this logger's attributes plus the given attributes.
	With(ctx ...any) Logger
	// Enabled reports whether l emits log records at the given level.
	Enabled(level slog.Level) bool
}

type lazyLogger struct {
	ctx []any
}

// WithContext returns a logger which carries the given context.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

func (l *lazyLogger) resolve() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.resolve().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.resolve().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.resolve().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.resolve().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.resolve().Error(msg, ctx...) }

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &lazyLogger{ctx: append(merged, ctx...)}
}

func (l *lazyLogger) Enabled(level slog.Level) bool {
	return ethlog.Root().Enabled(context.Background(), level)
}

var root = WithContext()

// SetDefault replaces the root handler used by every logger of this package.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Root returns the root logger.
func Root() Logger { return root }

// Trace logs at trace level with the root logger.
func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }

// Debug logs at debug level with the root logger.
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }

// Info logs at info level with the root logger.
func Info(msg string, ctx ...any) { root.Info(msg, ctx...) }

// Warn logs at warn level with the root logger.
func Warn(msg string, ctx ...any) { root.Warn(msg, ctx...) }

// Error logs at error level with the root logger.
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }

// FromLegacyLevel converts a legacy verbosity level into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}
