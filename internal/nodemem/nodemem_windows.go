//go:build numa && windows

// File: internal/nodemem/nodemem_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows node-resident allocation via VirtualAllocExNuma.

package nodemem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAllocExNuma = modkernel32.NewProc("VirtualAllocExNuma")
	procVirtualFree        = modkernel32.NewProc("VirtualFree")
)

func platformSupported() bool { return true }

func platformAlloc(size, node int) unsafe.Pointer {
	hProc := windows.CurrentProcess()
	addr, _, _ := procVirtualAllocExNuma.Call(
		uintptr(hProc),
		0,
		uintptr(size),
		uintptr(windows.MEM_RESERVE|windows.MEM_COMMIT),
		uintptr(windows.PAGE_READWRITE),
		uintptr(node),
	)
	return unsafe.Pointer(addr)
}

func platformFree(p unsafe.Pointer, _ int) {
	procVirtualFree.Call(uintptr(p), 0, uintptr(windows.MEM_RELEASE))
}
