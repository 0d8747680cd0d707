// File: internal/nodemem/nodemem.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Node-resident memory primitives shared by the replica and pool packages.
// One logical contract, three backends selected by build tags: libnuma on
// Linux, VirtualAllocExNuma on Windows, and a stub that reports no support.

package nodemem

import "unsafe"

// Supported reports whether this build can place memory on a specific node.
func Supported() bool {
	return platformSupported()
}

// Alloc returns size bytes physically resident on the given node, or nil
// when the platform refuses the allocation. The block is zeroed and outside
// the Go heap; the caller owns it until Free.
func Alloc(size, node int) unsafe.Pointer {
	if size <= 0 {
		return nil
	}
	return platformAlloc(size, node)
}

// Free releases a block previously returned by Alloc. The size must match
// the original request; libnuma tracks allocations by length, not header.
func Free(p unsafe.Pointer, size int) {
	if p == nil {
		return
	}
	platformFree(p, size)
}
