package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Accumulated stage durations across a generation window: the stretch of
// Generate calls between two ResetWindow calls, one scheduler batch in
// cmd/terragen. Every worker goroutine tracking a stage shares these
// totals, so a window's TopN is an aggregate across however many workers
// ran concurrently during it.

var (
	mu           sync.Mutex
	windowTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the
// given name. Usage: defer profiling.Track("chunkgen.Terrain")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		windowTotals[name] += d
		mu.Unlock()
	}
}

// ResetWindow clears the current window's totals. Call it when starting
// a new batch whose stage timings shouldn't mix with the previous
// batch's.
func ResetWindow() {
	mu.Lock()
	for k := range windowTotals {
		delete(windowTotals, k)
	}
	mu.Unlock()
}

// TopN formats the n largest durations from the current window's
// totals, e.g. "chunkgen.Terrain:4.2ms, chunkgen.Features:2.1ms".
func TopN(n int) string {
	mu.Lock()
	defer mu.Unlock()

	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(windowTotals))
	for k, v := range windowTotals {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}
