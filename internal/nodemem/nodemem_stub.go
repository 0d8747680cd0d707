//go:build !(numa && linux && cgo) && !(numa && windows)

// File: internal/nodemem/nodemem_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for builds without node-resident allocation support.

package nodemem

import "unsafe"

func platformSupported() bool { return false }

func platformAlloc(int, int) unsafe.Pointer { return nil }

func platformFree(unsafe.Pointer, int) {}
