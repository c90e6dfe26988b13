// Package monitoring carries the dashboard's diagnostic logging. The editing
// core and the remote stores report non-fatal conditions here (degraded
// selections, ignored entry points) without coupling to a logging backend.
package monitoring

import (
	"log"
	"sync"
)

var (
	mu   sync.Mutex
	logf func(format string, v ...any) = log.Printf
)

// Logf writes one diagnostic line through the configured logger.
func Logf(format string, v ...any) {
	mu.Lock()
	f := logf
	mu.Unlock()
	f(format, v...)
}

// SetLogger replaces the package logger. Passing nil mutes diagnostics.
func SetLogger(f func(format string, v ...any)) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		logf = func(string, ...any) {}
		return
	}
	logf = f
}
