package engine

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine's logger instance. It uses a no-op logger by
// default; call SetLogger before running a collapse to observe engine
// events.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs l as the engine-wide logger. Every later call to
// Logger returns l, whether or not Logger has already been called.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}
