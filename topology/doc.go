// File: topology/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package topology discovers the mapping between NUMA memory nodes and the
// logical CPUs attached to them. Discovery runs once per process and the
// result is cached for the process lifetime; hot-plugged nodes are not
// observed. On builds without a NUMA backend every query degrades to the
// single-node answers (empty map, -1 locations).
package topology
