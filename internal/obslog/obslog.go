// Package obslog is a thin package-level logger: a single guarded
// package var rather than an injected dependency, consumed through plain
// functions instead of a constructed instance, the same shape as
// internal/profiling's duration accumulator. Where profiling accumulates
// named durations, obslog routes structured events through zerolog.
package obslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// SetLogger replaces the package logger, for tests or a consumer that
// wants JSON output instead of the default console writer.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// WorkerPanic logs a recovered worker panic, the address it was
// generating when it happened, and that the pool has permanently shrunk
// by one. poolID disambiguates log lines when multiple scheduler
// instances run in the same process with no shared state between them.
func WorkerPanic(poolID string, workerID int, addr any, recovered any) {
	get().Error().
		Str("pool_id", poolID).
		Int("worker_id", workerID).
		Any("address", addr).
		Any("panic", recovered).
		Msg("scheduler worker panicked; pool shrinking by one")
}

// Backpressure logs that a worker blocked sending a result because the
// result channel is full and nobody is draining it.
func Backpressure(poolID string, workerID int, addr any) {
	get().Warn().
		Str("pool_id", poolID).
		Int("worker_id", workerID).
		Any("address", addr).
		Msg("result channel full; worker blocked on send")
}

// QueueFull logs a rejected submission.
func QueueFull(poolID string, addr any) {
	get().Warn().
		Str("pool_id", poolID).
		Any("address", addr).
		Msg("submit queue full")
}

// WorkerStarted logs pool startup.
func WorkerStarted(poolID string, workerID int) {
	get().Debug().Str("pool_id", poolID).Int("worker_id", workerID).Msg("scheduler worker started")
}

// WorkerStopped logs a clean worker shutdown (pool Close, not a panic).
func WorkerStopped(poolID string, workerID int) {
	get().Debug().Str("pool_id", poolID).Int("worker_id", workerID).Msg("scheduler worker stopped")
}
