//go:build !(numa && linux && cgo) && !(numa && windows)

// File: topology/topology_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub backend for builds without NUMA support. Reports an empty topology so
// every consumer degrades to single-node behavior.

package topology

func discover() map[int][]int { return nil }

func platformAvailable() bool { return false }

func platformCurrentCPU() int { return -1 }

func platformCurrentNode() int { return -1 }
