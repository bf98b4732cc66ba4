// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package obslog is the runtime's thin structured-logging boundary. It
// wraps a zap.SugaredLogger and is only ever invoked off the success
// path: the fiber runtime logs swallowed finalizer panics through it.
package obslog

import (
	"sync"

	"go.uber.org/zap"
)

// Logger wraps a *zap.SugaredLogger with the "With(...).Level(...)"
// call-site shape the rest of the runtime uses.
type Logger struct {
	s *zap.SugaredLogger
}

var (
	defaultOnce sync.Once
	defaultZap  *zap.Logger
)

// Default returns a package-wide Logger backed by zap's production
// configuration, built once and reused.
func Default() *Logger {
	defaultOnce.Do(func() {
		z, err := zap.NewProduction()
		if err != nil {
			z = zap.NewNop()
		}
		defaultZap = z
	})
	return &Logger{s: defaultZap.Sugar()}
}

// Wrap adapts an existing *zap.Logger, letting callers plug in their own
// sinks/encoders instead of the production default.
func Wrap(z *zap.Logger) *Logger {
	if z == nil {
		return Default()
	}
	return &Logger{s: z.Sugar()}
}

// With returns a child Logger carrying the given structured key/value
// pairs on every subsequent call.
func (l *Logger) With(keysAndValues ...any) *Logger {
	if l == nil {
		return Default().With(keysAndValues...)
	}
	return &Logger{s: l.s.With(keysAndValues...)}
}

// Debugw logs at debug level with structured fields.
func (l *Logger) Debugw(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	l.s.Debugw(msg, keysAndValues...)
}

// Warnw logs at warn level with structured fields.
func (l *Logger) Warnw(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	l.s.Warnw(msg, keysAndValues...)
}

// Errorw logs at error level with structured fields.
func (l *Logger) Errorw(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	l.s.Errorw(msg, keysAndValues...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.s.Sync()
}
