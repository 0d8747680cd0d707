// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package pool provides node-local byte buffer pooling on top of the same
// node-resident allocation primitives the replica package uses. Buffers come
// from the target node's memory when the build supports it and from the Go
// heap otherwise. A freelist rather than sync.Pool backs the pool so Close
// can enumerate and return every idle node-resident buffer to the OS.
package pool
