// File: replica/replica_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package replica

import (
	"testing"

	"github.com/momentics/hioload-numa/topology"
)

func TestFactoryInvokedOncePerReplica(t *testing.T) {
	next := 0
	r := New(func() int {
		next++
		return next
	})
	defer r.Close()

	if next != r.Len() {
		t.Errorf("factory invoked %d times for %d replicas", next, r.Len())
	}

	// Non-idempotent factory must yield distinct instances, not clones.
	seen := make(map[int]bool)
	for _, v := range r.All() {
		if seen[*v] {
			t.Errorf("replica value %d duplicated", *v)
		}
		seen[*v] = true
	}
	if len(seen) != r.Len() {
		t.Errorf("got %d distinct values for %d replicas", len(seen), r.Len())
	}
}

func TestReplicaCountMatchesTopology(t *testing.T) {
	r := New(func() byte { return 0 })
	defer r.Close()

	want := len(topology.Nodes())
	if want == 0 {
		want = 1 // degraded mode holds exactly one heap replica
	}
	if r.Len() != want {
		t.Errorf("Len() = %d, want %d", r.Len(), want)
	}
}

func TestDegradedSingleReplica(t *testing.T) {
	if topology.NumCPUs() != 0 {
		t.Skip("host has NUMA topology; degraded path not reachable")
	}
	r := New(func() int { return 42 })
	defer r.Close()

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if r.Node(0) != -1 {
		t.Errorf("Node(0) = %d, want -1 for heap fallback", r.Node(0))
	}
	if got := *r.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
	if r.Get() != r.All()[0] {
		t.Error("Get() does not return the single replica")
	}
}

func TestAllStableAcrossCalls(t *testing.T) {
	r := New(func() int { return 7 })
	defer r.Close()

	first := r.All()
	second := r.All()
	if len(first) != len(second) || len(first) != r.Len() {
		t.Fatalf("All() length unstable: %d vs %d (Len %d)", len(first), len(second), r.Len())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("replica %d moved between calls", i)
		}
	}
}

func TestGetIsOneOfAll(t *testing.T) {
	r := New(func() int { return 1 })
	defer r.Close()

	p := r.Get()
	for _, v := range r.All() {
		if v == p {
			return
		}
	}
	t.Error("Get() returned a pointer outside the replica set")
}

func TestReleaseRunsOncePerReplica(t *testing.T) {
	released := 0
	r := New(
		func() int { return 0 },
		WithRelease[int](func(*int) { released++ }),
	)
	n := r.Len()

	r.Close()
	if released != n {
		t.Errorf("release ran %d times for %d replicas", released, n)
	}

	// Close is idempotent: teardown must not run again.
	r.Close()
	if released != n {
		t.Errorf("second Close re-ran release: %d for %d replicas", released, n)
	}
}

func TestReplicaNodesMatchTopology(t *testing.T) {
	r := New(func() int { return 0 })
	defer r.Close()

	known := make(map[int]bool)
	for _, node := range topology.Nodes() {
		known[node] = true
	}
	for i := 0; i < r.Len(); i++ {
		node := r.Node(i)
		if node == -1 {
			if len(known) != 0 {
				t.Errorf("replica %d is heap fallback despite known topology", i)
			}
			continue
		}
		if !known[node] {
			t.Errorf("replica %d on unknown node %d", i, node)
		}
	}
}

func TestZeroSizedValue(t *testing.T) {
	r := New(func() struct{} { return struct{}{} })
	if r.Len() < 1 {
		t.Error("no replica constructed for zero-sized type")
	}
	r.Close()
}

func TestConcurrentGet(t *testing.T) {
	r := New(func() int { return 3 })
	defer r.Close()

	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 1000; j++ {
				if *r.Get() != 3 {
					t.Error("replica read returned a foreign value")
					break
				}
			}
			done <- true
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
