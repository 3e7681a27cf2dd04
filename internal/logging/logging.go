// Package logging provides the structured logger used for op-level debug
// tracing. Logging is off by default; enabling verbose logging in the
// configuration swaps in a development zap logger.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Configure installs a logger matching the verbose flag. With verbose off
// the logger is a nop and tracing costs nothing.
func Configure(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		logger = zap.NewNop()
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the current logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
