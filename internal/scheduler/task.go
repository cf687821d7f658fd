// Package scheduler runs chunk generation off the caller's thread: a
// bounded priority queue of tasks feeds a fixed worker pool, honoring
// cooperative cancellation and backpressure. A min-heap orders tasks by
// priority, an explicit per-address cancellation token lets a caller
// retract a task before or after it runs, and a bounded result channel
// is drained by the consumer instead of chunks landing directly in a
// shared store.
package scheduler

import (
	"fmt"

	"github.com/cubesphere-engine/terra/internal/voxel"
)

// Generator produces a chunk's contents for (address, seed). chunkgen.Generator
// satisfies this implicitly; the scheduler depends only on this narrow
// interface so it never needs to import chunkgen.
type Generator interface {
	Generate(addr voxel.Address, seed uint64) (*voxel.Chunk, voxel.EmissiveSet)
}

// GenerationTask is one unit of work submitted to a Pool. Priority is a
// scheduling hint only: smaller values dequeue first, ties broken by
// submission order; with more than one worker, completion order is not
// guaranteed to follow dequeue order.
type GenerationTask struct {
	Address  voxel.Address
	Seed     uint64
	Priority uint64

	seq uint64 // insertion order, assigned by Pool.Submit
}

// GeneratedChunk is delivered on a Pool's result channel.
type GeneratedChunk struct {
	Address          voxel.Address
	Chunk            *voxel.Chunk
	Emissive         voxel.EmissiveSet
	GenerationTimeUs int64
}

// FullError is returned by Submit when the task queue is at capacity.
type FullError struct {
	Task GenerationTask
}

func (e *FullError) Error() string {
	return fmt.Sprintf("scheduler: queue full, dropped task for %+v", e.Task.Address)
}

// ClosedError is returned by Submit after Close.
type ClosedError struct {
	Task GenerationTask
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("scheduler: pool closed, dropped task for %+v", e.Task.Address)
}
