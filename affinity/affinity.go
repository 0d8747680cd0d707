// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU and NUMA-node affinity. Platform-specific
// implementations live in separate files (affinity_linux.go,
// affinity_windows.go, bind_linux.go, ...) guarded by build tags.
//
// All functions here act on the calling OS thread. Callers that need the
// preference to stick to one goroutine must hold runtime.LockOSThread for
// the goroutine's lifetime.

package affinity

import (
	"sort"

	"github.com/momentics/hioload-numa/topology"
)

// SetAffinity pins the current OS thread to a given logical CPU/core on
// supported platforms. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// BindThread maps an arbitrary non-negative identifier onto one NUMA node
// and asks the OS to prefer scheduling the calling thread there and serving
// its future allocations from that node's memory. Identifiers equal modulo
// the total CPU count select the same node. A no-op when no NUMA topology is
// known. Best-effort: the request is a preference, not a guarantee, and OS
// failures are not surfaced.
func BindThread(id int) {
	if id < 0 {
		return
	}
	node, cpu, ok := pickTarget(topology.Map(), id)
	if !ok {
		return
	}
	bindThreadPlatform(node, cpu)
}

// UnbindThread clears any node preference set by BindThread.
func UnbindThread() {
	unbindThreadPlatform()
}

// pickTarget resolves an identifier to the node whose CPU range contains
// slot id mod total, plus the CPU the slot lands on. Nodes are walked in
// sorted order on every platform so the assignment is stable across
// processes even where the underlying map iterates in arbitrary order.
func pickTarget(topo map[int][]int, id int) (node, cpu int, ok bool) {
	total := 0
	nodes := make([]int, 0, len(topo))
	for n, cpus := range topo {
		total += len(cpus)
		nodes = append(nodes, n)
	}
	if total == 0 {
		return 0, 0, false
	}
	sort.Ints(nodes)

	slot := id % total
	for _, n := range nodes {
		cpus := topo[n]
		if slot < len(cpus) {
			return n, cpus[slot], true
		}
		slot -= len(cpus)
	}
	return 0, 0, false
}
