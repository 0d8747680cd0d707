// File: topology/topology_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"sort"
	"testing"
)

func TestMapDisjointCPUSets(t *testing.T) {
	seen := make(map[int]int)
	for node, cpus := range Map() {
		for _, cpu := range cpus {
			if prev, dup := seen[cpu]; dup {
				t.Errorf("CPU %d appears under node %d and node %d", cpu, prev, node)
			}
			seen[cpu] = node
		}
	}
}

func TestMapReturnsCopies(t *testing.T) {
	first := Map()
	for node := range first {
		first[node] = append(first[node], 99999)
		delete(first, node)
		break
	}
	first[12345] = []int{1}

	second := Map()
	if _, ok := second[12345]; ok {
		t.Error("mutation of a returned map leaked into the cache")
	}
	for node, cpus := range second {
		for _, cpu := range cpus {
			if cpu == 99999 {
				t.Errorf("mutation of a returned CPU slice leaked into node %d", node)
			}
		}
	}
}

func TestNodesSortedAndComplete(t *testing.T) {
	nodes := Nodes()
	if !sort.IntsAreSorted(nodes) {
		t.Errorf("Nodes() not sorted: %v", nodes)
	}
	m := Map()
	if len(nodes) != len(m) {
		t.Fatalf("Nodes() has %d entries, Map() has %d", len(nodes), len(m))
	}
	for _, node := range nodes {
		if len(m[node]) == 0 {
			t.Errorf("node %d listed but owns no CPUs", node)
		}
	}
}

func TestNumCPUsMatchesMap(t *testing.T) {
	total := 0
	for _, cpus := range Map() {
		total += len(cpus)
	}
	if got := NumCPUs(); got != total {
		t.Errorf("NumCPUs() = %d, sum over Map() = %d", got, total)
	}
}

func TestNodeOfRoundTrip(t *testing.T) {
	for node, cpus := range Map() {
		for _, cpu := range cpus {
			if got := NodeOf(cpu); got != node {
				t.Errorf("NodeOf(%d) = %d, want %d", cpu, got, node)
			}
		}
	}
	if got := NodeOf(-1); got != -1 {
		t.Errorf("NodeOf(-1) = %d, want -1", got)
	}
}

func TestCurrentLocation_Platform(t *testing.T) {
	if NumCPUs() == 0 {
		if node := CurrentNode(); node != -1 {
			t.Errorf("no topology but CurrentNode() = %d", node)
		}
		t.Log("no NUMA topology in this build; location queries degrade")
		return
	}
	cpu := CurrentCPU()
	if cpu < 0 {
		t.Error("topology known but CurrentCPU() negative")
	}
	node := CurrentNode()
	if node < 0 {
		t.Logf("CurrentNode unresolved (cpu=%d); acceptable on restricted hosts", cpu)
	}
}
