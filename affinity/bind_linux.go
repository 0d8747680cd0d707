//go:build numa && linux && cgo

// File: affinity/bind_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux NUMA-node binding via libnuma: scheduling preference through
// numa_run_on_node, allocation preference through numa_set_preferred.

package affinity

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
*/
import "C"
import "log"

// bindThreadPlatform prefers running the calling thread on the target node
// and serving its allocations from that node. The resolved CPU is unused on
// Linux; node-level binding is the contract here.
func bindThreadPlatform(node, _ int) {
	if C.numa_available() < 0 {
		return
	}
	if ret := C.numa_run_on_node(C.int(node)); ret != 0 {
		log.Printf("affinity: numa_run_on_node(%d) failed", node)
	}
	C.numa_set_preferred(C.int(node))
}

// unbindThreadPlatform lets the thread run on all nodes again and restores
// local allocation policy.
func unbindThreadPlatform() {
	if C.numa_available() < 0 {
		return
	}
	C.numa_run_on_node(-1)
	C.numa_set_localalloc()
}
