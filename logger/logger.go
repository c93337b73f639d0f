// Package logger fans structured log calls out to the configured backends.
// Until Init is called every function is a no-op.
package logger

import "sync"

// Backend is one logging destination.
type Backend interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

type dispatcher struct {
	backends []Backend
}

var (
	mu      sync.RWMutex
	current *dispatcher
)

// Init replaces the active backends.
func Init(backends ...Backend) {
	mu.Lock()
	defer mu.Unlock()
	current = &dispatcher{backends: backends}
}

func each(fn func(Backend)) {
	mu.RLock()
	d := current
	mu.RUnlock()
	if d == nil {
		return
	}
	for _, b := range d.backends {
		fn(b)
	}
}

// Debug writes a message at DEBUG level to all backends.
func Debug(message string, keyvals ...any) {
	each(func(b Backend) { b.Debug(message, keyvals...) })
}

// Info writes a message at INFO level to all backends.
func Info(message string, keyvals ...any) {
	each(func(b Backend) { b.Info(message, keyvals...) })
}

// Warn writes a message at WARN level to all backends.
func Warn(message string, keyvals ...any) {
	each(func(b Backend) { b.Warn(message, keyvals...) })
}

// Error writes a message at ERROR level to all backends.
func Error(message string, keyvals ...any) {
	each(func(b Backend) { b.Error(message, keyvals...) })
}

// Fatal writes a message at FATAL level. Backends are expected to exit.
func Fatal(message string, keyvals ...any) {
	each(func(b Backend) { b.Fatal(message, keyvals...) })
}
