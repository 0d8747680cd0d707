//go:build numa && linux && cgo

// File: internal/nodemem/nodemem_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux node-resident allocation via libnuma.

package nodemem

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
*/
import "C"
import "unsafe"

func platformSupported() bool {
	return C.numa_available() >= 0
}

func platformAlloc(size, node int) unsafe.Pointer {
	return unsafe.Pointer(C.numa_alloc_onnode(C.size_t(size), C.int(node)))
}

func platformFree(p unsafe.Pointer, size int) {
	C.numa_free(p, C.size_t(size))
}
