// File: replica/replica.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-node value replication over node-resident memory. Construction is
// eager: every replica is built before New returns, and all are torn down
// together in Close. No partial state is ever observable.

package replica

import (
	"fmt"
	"unsafe"

	"github.com/momentics/hioload-numa/internal/nodemem"
	"github.com/momentics/hioload-numa/topology"
)

// Replicator holds one node-resident instance of T per NUMA node with
// active CPUs, or a single heap instance when no topology is known.
//
// Safety contract, discharged by the caller: once constructed, a replica is
// read-shared by every thread bound to its node, so T must tolerate
// concurrent reads. The Replicator never mutates a replica after its factory
// call. On NUMA builds replicas live outside the Go heap; a Go pointer
// stored into a replica after construction is invisible to the garbage
// collector and must be kept alive elsewhere. Pointer graphs produced by the
// factory itself stay live through an internal anchor copy.
type Replicator[T any] struct {
	ptrs    []unsafe.Pointer // one per replica, ascending-node order
	nodes   []int            // node id per replica; -1 marks the heap fallback
	anchors []T              // keeps factory-produced Go pointers visible to the GC
	release func(*T)
	size    int
	closed  bool
}

// Option customizes a Replicator at construction.
type Option[T any] func(*Replicator[T])

// WithRelease registers a teardown hook invoked exactly once per replica
// when the Replicator is closed, before node-resident memory is freed.
func WithRelease[T any](release func(*T)) Option[T] {
	return func(r *Replicator[T]) { r.release = release }
}

// New builds one replica per NUMA node, invoking factory exactly once per
// node in ascending node order, so a non-idempotent factory produces
// distinct instances rather than clones. With no known topology (or no NUMA
// support in this build) it builds exactly one heap replica.
//
// Per-node allocation failure panics: it signals physical memory exhaustion
// on that node, which the caller cannot meaningfully recover from, and a
// partially built Replicator is not a supported state.
func New[T any](factory func() T, opts ...Option[T]) *Replicator[T] {
	var zero T
	r := &Replicator[T]{size: int(unsafe.Sizeof(zero))}
	for _, opt := range opts {
		opt(r)
	}
	if r.size == 0 {
		// Zero-sized T still gets a distinct block per node.
		r.size = 1
	}

	nodes := topology.Nodes()
	if len(nodes) == 0 || !nodemem.Supported() {
		v := factory()
		r.ptrs = append(r.ptrs, unsafe.Pointer(&v))
		r.nodes = append(r.nodes, -1)
		return r
	}

	for _, node := range nodes {
		p := nodemem.Alloc(r.size, node)
		if p == nil {
			panic(fmt.Sprintf("replica: cannot allocate %d bytes on NUMA node %d", r.size, node))
		}
		v := factory()
		*(*T)(p) = v
		r.anchors = append(r.anchors, v)
		r.ptrs = append(r.ptrs, p)
		r.nodes = append(r.nodes, node)
	}
	return r
}

// Get returns the replica local to the calling thread's current node. The
// node is resolved on every call, never cached per thread, because the
// scheduler may migrate the thread between calls. An unresolvable or unknown
// node falls back to the first replica.
func (r *Replicator[T]) Get() *T {
	idx := 0
	if len(r.ptrs) > 1 {
		if node := topology.CurrentNode(); node >= 0 {
			idx = r.index(node)
		}
	}
	return (*T)(r.ptrs[idx])
}

// All returns every replica in construction order, for callers that
// aggregate across node-local copies.
func (r *Replicator[T]) All() []*T {
	out := make([]*T, len(r.ptrs))
	for i, p := range r.ptrs {
		out[i] = (*T)(p)
	}
	return out
}

// Len returns the number of replicas.
func (r *Replicator[T]) Len() int { return len(r.ptrs) }

// Node returns the NUMA node the i-th replica resides on, or -1 for the
// heap fallback replica.
func (r *Replicator[T]) Node(i int) int { return r.nodes[i] }

// Close runs the release hook once per replica, then frees each
// node-resident block. The heap fallback replica is left to the garbage
// collector. Idempotent. Replicas must not be used after Close; Close must
// not race Get or All.
func (r *Replicator[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for i, p := range r.ptrs {
		if r.release != nil {
			r.release((*T)(p))
		}
		if r.nodes[i] >= 0 {
			nodemem.Free(p, r.size)
		}
	}
	r.ptrs = nil
	r.nodes = nil
	r.anchors = nil
}

func (r *Replicator[T]) index(node int) int {
	for i, n := range r.nodes {
		if n == node {
			return i
		}
	}
	return 0
}
