// File: pool/nodepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NUMA-aware fixed-size buffer pool. Each pool serves one node; buffers are
// physically resident there when the platform allows, Go-heap otherwise.

package pool

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-numa/internal/nodemem"
	"github.com/momentics/hioload-numa/topology"
)

// NodePool is a fixed-size buffer pool bound to one NUMA node.
type NodePool struct {
	mu     sync.Mutex
	free   [][]byte
	owned  map[*byte]bool // first-byte keys of node-resident buffers
	node   int
	size   int
	numa   bool
	closed bool

	gets   int64
	puts   int64
	allocs int64
}

// NewNodePool creates a pool of size-byte buffers preferring memory on the
// given node. A negative node, an empty topology or a build without NUMA
// support all degrade to plain heap buffers.
func NewNodePool(node, size int) *NodePool {
	return &NodePool{
		owned: make(map[*byte]bool),
		node:  node,
		size:  size,
		numa:  node >= 0 && nodemem.Supported() && topology.NumCPUs() > 0,
	}
}

// NewLocalPool creates a pool on the calling thread's current node. Callers
// that bound the thread first get buffers local to that binding.
func NewLocalPool(size int) *NodePool {
	return NewNodePool(topology.CurrentNode(), size)
}

// Node returns the node this pool prefers, or -1 in degraded mode.
func (p *NodePool) Node() int {
	if !p.numa {
		return -1
	}
	return p.node
}

// Get returns a size-byte buffer, reusing an idle one when possible.
func (p *NodePool) Get() []byte {
	p.mu.Lock()
	p.gets++
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return buf
	}
	p.allocs++
	p.mu.Unlock()
	return p.alloc()
}

// Put returns a buffer to the pool. Buffers handed to a closed pool are
// released immediately instead of being retained.
func (p *NodePool) Put(buf []byte) {
	if cap(buf) < p.size {
		return
	}
	buf = buf[:p.size]
	p.mu.Lock()
	p.puts++
	if p.closed {
		p.releaseLocked(buf)
		p.mu.Unlock()
		return
	}
	p.free = append(p.free, buf)
	p.mu.Unlock()
}

// Close releases every idle node-resident buffer back to the OS. Buffers
// still checked out are released on their eventual Put.
func (p *NodePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, buf := range p.free {
		p.releaseLocked(buf)
	}
	p.free = nil
}

// Stats returns basic pool counters.
func (p *NodePool) Stats() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return map[string]int64{
		"gets":   p.gets,
		"puts":   p.puts,
		"allocs": p.allocs,
		"idle":   int64(len(p.free)),
	}
}

func (p *NodePool) alloc() []byte {
	if p.numa {
		if ptr := nodemem.Alloc(p.size, p.node); ptr != nil {
			buf := unsafe.Slice((*byte)(ptr), p.size)
			p.mu.Lock()
			p.owned[&buf[0]] = true
			p.mu.Unlock()
			return buf
		}
	}
	return make([]byte, p.size)
}

// releaseLocked frees one buffer; heap buffers are left to the GC.
func (p *NodePool) releaseLocked(buf []byte) {
	if len(buf) == 0 {
		return
	}
	key := &buf[0]
	if p.owned[key] {
		delete(p.owned, key)
		nodemem.Free(unsafe.Pointer(key), p.size)
	}
}
