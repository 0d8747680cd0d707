//go:build numa && linux && cgo

// File: topology/topology_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux backend: libnuma via CGO. One bitmask query per node, translated
// into the portable node -> CPU table.

package topology

/*
#cgo LDFLAGS: -lnuma
#define _GNU_SOURCE
#include <numa.h>
#include <sched.h>
*/
import "C"

// cpuSetSize mirrors CPU_SETSIZE, the highest CPU index a libnuma mask covers.
const cpuSetSize = 1024

func discover() map[int][]int {
	if C.numa_available() < 0 {
		return nil
	}
	m := make(map[int][]int)
	maxNode := int(C.numa_max_node())
	for node := 0; node <= maxNode; node++ {
		mask := C.numa_allocate_cpumask()
		C.numa_node_to_cpus(C.int(node), mask)
		var cpus []int
		for cpu := 0; cpu < cpuSetSize; cpu++ {
			if C.numa_bitmask_isbitset(mask, C.uint(cpu)) != 0 {
				cpus = append(cpus, cpu)
			}
		}
		C.numa_bitmask_free(mask)
		if len(cpus) > 0 {
			m[node] = cpus
		}
	}
	return m
}

func platformAvailable() bool {
	return C.numa_available() >= 0
}

func platformCurrentCPU() int {
	return int(C.sched_getcpu())
}

func platformCurrentNode() int {
	cpu := C.sched_getcpu()
	if cpu < 0 {
		return -1
	}
	return int(C.numa_node_of_cpu(cpu))
}
