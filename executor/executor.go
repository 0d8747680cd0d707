// File: executor/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Node-bound task executor. Each worker locks its OS thread and binds it to
// a NUMA node through the affinity layer before serving tasks, so workers
// spread over nodes in the binder's modulo order and task allocations land
// on node-local memory.

package executor

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-numa/affinity"
)

// Task is a unit of work to execute.
type Task func()

// Executor manages a pool of node-bound worker threads over a shared FIFO
// backlog.
type Executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	backlog *queue.Queue
	closed  bool
	wg      sync.WaitGroup

	workers   int
	submitted int64
	completed int64
}

// New creates an Executor with the given number of workers. If numWorkers
// <= 0, defaults to runtime.NumCPU(). Worker i is bound via
// affinity.BindThread(i); on builds without NUMA support the binding is a
// no-op and the executor behaves as a plain worker pool.
func New(numWorkers int) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	e := &Executor{
		backlog: queue.New(),
		workers: numWorkers,
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go e.run(i)
	}
	return e
}

// Submit enqueues a task for execution, returning ErrExecutorClosed if the
// executor has been shut down.
func (e *Executor) Submit(task Task) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	e.backlog.Add(task)
	atomic.AddInt64(&e.submitted, 1)
	e.mu.Unlock()
	e.cond.Signal()
	return nil
}

// NumWorkers returns the number of workers.
func (e *Executor) NumWorkers() int { return e.workers }

// Close stops accepting tasks, drains the backlog and joins the workers.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
	e.wg.Wait()
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	e.mu.Lock()
	pending := int64(e.backlog.Length())
	e.mu.Unlock()
	return map[string]int64{
		"submitted": atomic.LoadInt64(&e.submitted),
		"completed": atomic.LoadInt64(&e.completed),
		"pending":   pending,
		"workers":   int64(e.workers),
	}
}

func (e *Executor) run(id int) {
	defer e.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	affinity.BindThread(id)
	defer affinity.UnbindThread()

	for {
		e.mu.Lock()
		for e.backlog.Length() == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.backlog.Length() == 0 {
			e.mu.Unlock()
			return
		}
		task := e.backlog.Remove().(Task)
		e.mu.Unlock()

		task()
		atomic.AddInt64(&e.completed, 1)
	}
}
