// File: replica/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package replica constructs one instance of a value per NUMA node, each
// resident on that node's memory, so a thread bound to a node reads the
// node-local copy instead of paying remote-memory latency. On builds without
// NUMA support the replicator degrades to a single heap instance.
package replica
