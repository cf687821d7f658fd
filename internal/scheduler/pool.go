package scheduler

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cubesphere-engine/terra/internal/obslog"
	"github.com/cubesphere-engine/terra/internal/voxel"
)

// cancelFlag is the per-address cancellation token: present in Pool.cancelled
// from Submit until the task that created it is discarded or delivered.
type cancelFlag struct {
	flagged atomic.Bool
}

// Pool is a fixed-size worker pool draining a bounded priority queue.
// Generation itself never touches Pool's state; Pool only sequences
// calls to its Generator across goroutines.
type Pool struct {
	id  string
	gen Generator

	mu       sync.Mutex
	cond     *sync.Cond
	queue    taskHeap
	capacity int
	seq      uint64
	closed   bool

	cancelled sync.Map // voxel.Address -> *cancelFlag

	results chan GeneratedChunk

	inFlight    int64 // atomic
	liveWorkers int64 // atomic

	workerWG sync.WaitGroup
}

// NewPool starts workers goroutines draining a queue of at most capacity
// tasks, delivering results on a channel of resultCapacity.
func NewPool(gen Generator, workers, capacity, resultCapacity int) *Pool {
	p := &Pool{
		id:          uuid.New().String(),
		gen:         gen,
		capacity:    capacity,
		results:     make(chan GeneratedChunk, resultCapacity),
		liveWorkers: int64(workers),
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < workers; i++ {
		p.workerWG.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit enqueues task, registering a cancellation token keyed by its
// address. It fails fast with *FullError when the queue is at capacity,
// never blocking the caller waiting for room.
func (p *Pool) Submit(task GenerationTask) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return &ClosedError{Task: task}
	}
	if p.capacity > 0 && len(p.queue) >= p.capacity {
		p.mu.Unlock()
		obslog.QueueFull(p.id, task.Address)
		return &FullError{Task: task}
	}
	task.seq = p.seq
	p.seq++
	heap.Push(&p.queue, &taskItem{task: task})
	p.mu.Unlock()

	p.cancelled.Store(task.Address, &cancelFlag{})
	atomic.AddInt64(&p.inFlight, 1)
	p.cond.Signal()
	return nil
}

// Cancel flips the cancellation flag for addr, if a task for that address
// is currently tracked. It never blocks and never errors: cancelling an
// address with no in-flight task, or one that has already been delivered
// or discarded, is a silent no-op.
func (p *Pool) Cancel(addr voxel.Address) {
	if v, ok := p.cancelled.Load(addr); ok {
		v.(*cancelFlag).flagged.Store(true)
	}
}

// DrainResults returns every result currently buffered, without waiting
// for more to arrive.
func (p *Pool) DrainResults() []GeneratedChunk {
	var out []GeneratedChunk
	for {
		select {
		case r := <-p.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// InFlightCount returns the number of tasks submitted but not yet
// delivered or discarded.
func (p *Pool) InFlightCount() int64 {
	return atomic.LoadInt64(&p.inFlight)
}

// LiveWorkers returns the number of worker goroutines still running; it
// permanently decreases when a worker panics instead of respawning.
func (p *Pool) LiveWorkers() int64 {
	return atomic.LoadInt64(&p.liveWorkers)
}

// ID returns the pool's instance identifier, used to correlate its log
// lines when multiple pools run in the same process.
func (p *Pool) ID() string {
	return p.id
}

// Close stops accepting new tasks and blocks until every worker has
// exited (after finishing whatever task it currently holds).
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.workerWG.Wait()
}

func (p *Pool) worker(id int) {
	defer p.workerWG.Done()
	obslog.WorkerStarted(p.id, id)
	for {
		item, ok := p.dequeue()
		if !ok {
			obslog.WorkerStopped(p.id, id)
			return
		}
		if !p.runTaskSafely(id, item) {
			atomic.AddInt64(&p.liveWorkers, -1)
			return
		}
	}
}

// dequeue blocks until a task is available or the pool is closed.
func (p *Pool) dequeue() (*taskItem, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}
	return heap.Pop(&p.queue).(*taskItem), true
}

// runTaskSafely executes one task's two cancellation checkpoints and
// delivery, recovering a panic from Generate so the caller can shrink its
// worker count by exactly one instead of crashing the process. It returns
// false when the worker that called it must stop.
func (p *Pool) runTaskSafely(id int, item *taskItem) (ok bool) {
	addr := item.task.Address
	defer func() {
		if r := recover(); r != nil {
			obslog.WorkerPanic(p.id, id, addr, r)
			p.discard(addr)
			ok = false
		}
	}()

	if p.isCancelled(addr) {
		p.discard(addr)
		return true
	}

	start := time.Now()
	chunk, emissive := p.gen.Generate(addr, item.task.Seed)
	elapsed := time.Since(start)

	if p.isCancelled(addr) {
		p.discard(addr)
		return true
	}

	result := GeneratedChunk{
		Address:          addr,
		Chunk:            chunk,
		Emissive:         emissive,
		GenerationTimeUs: elapsed.Microseconds(),
	}

	select {
	case p.results <- result:
	default:
		obslog.Backpressure(p.id, id, addr)
		p.results <- result
	}

	p.cancelled.Delete(addr)
	atomic.AddInt64(&p.inFlight, -1)
	return true
}

func (p *Pool) discard(addr voxel.Address) {
	p.cancelled.Delete(addr)
	atomic.AddInt64(&p.inFlight, -1)
}

func (p *Pool) isCancelled(addr voxel.Address) bool {
	v, ok := p.cancelled.Load(addr)
	if !ok {
		return false
	}
	return v.(*cancelFlag).flagged.Load()
}
