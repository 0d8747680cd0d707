// File: topology/topology.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide NUMA topology cache. The node -> CPU table is computed by the
// platform backend on first use and never re-queried; callers always receive
// copies so the cached table stays immutable.

package topology

import (
	"sort"
	"sync"
)

// MaxProcsPerGroup is the fixed size of a Windows processor group. Logical
// CPU ids are synthesized as group*MaxProcsPerGroup+number so they stay
// unique process-wide on every platform.
const MaxProcsPerGroup = 64

var (
	once     sync.Once
	nodeCPUs map[int][]int
)

// mapping returns the cached table, discovering it on first call. Safe under
// concurrent first access.
func mapping() map[int][]int {
	once.Do(func() {
		nodeCPUs = discover()
	})
	return nodeCPUs
}

// Map returns a copy of the node -> logical CPU table. Nodes without active
// CPUs are absent. The map is empty when the platform reports no NUMA
// topology or this build carries no NUMA backend.
func Map() map[int][]int {
	src := mapping()
	out := make(map[int][]int, len(src))
	for node, cpus := range src {
		out[node] = append([]int(nil), cpus...)
	}
	return out
}

// Nodes returns the known node ids sorted ascending.
func Nodes() []int {
	src := mapping()
	nodes := make([]int, 0, len(src))
	for node := range src {
		nodes = append(nodes, node)
	}
	sort.Ints(nodes)
	return nodes
}

// NumCPUs returns the total number of logical CPUs attached to known nodes.
func NumCPUs() int {
	total := 0
	for _, cpus := range mapping() {
		total += len(cpus)
	}
	return total
}

// NodeOf returns the node owning the given logical CPU, or -1 when the CPU
// is not part of the known topology.
func NodeOf(cpu int) int {
	for node, cpus := range mapping() {
		for _, c := range cpus {
			if c == cpu {
				return node
			}
		}
	}
	return -1
}

// Available reports whether the platform NUMA facility is usable in this build.
func Available() bool { return platformAvailable() }

// CurrentCPU returns the logical CPU this code is executing on, or -1 when
// the platform cannot answer.
func CurrentCPU() int { return platformCurrentCPU() }

// CurrentNode returns the NUMA node the calling thread is executing on, or
// -1 when the platform cannot answer. Recomputed on every call: a thread's
// locality changes whenever the scheduler migrates it.
func CurrentNode() int { return platformCurrentNode() }
