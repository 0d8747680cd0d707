//go:build numa && windows

// File: affinity/bind_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows NUMA-node binding. Windows expresses affinity per processor group,
// not per node, so the binder restricts the thread to the single CPU its
// slot resolved to, inside that CPU's group.

package affinity

import (
	"unsafe"

	"github.com/momentics/hioload-numa/topology"
)

var (
	procSetThreadGroupAffinity  = modkernel32.NewProc("SetThreadGroupAffinity")
	procGetActiveProcessorCount = modkernel32.NewProc("GetActiveProcessorCount")
)

// groupAffinity mirrors the Win32 GROUP_AFFINITY layout.
type groupAffinity struct {
	Mask     uint64
	Group    uint16
	Reserved [3]uint16
}

// bindThreadPlatform restricts the calling thread to the resolved CPU's
// processor group and mask. The node id itself is implicit in the CPU choice.
func bindThreadPlatform(_, cpu int) {
	ga := groupAffinity{
		Mask:  1 << uint(cpu%topology.MaxProcsPerGroup),
		Group: uint16(cpu / topology.MaxProcsPerGroup),
	}
	hThread, _, _ := procGetCurrentThread.Call()
	procSetThreadGroupAffinity.Call(hThread, uintptr(unsafe.Pointer(&ga)), 0)
}

// unbindThreadPlatform widens the thread's mask back to every active
// processor of its current group.
func unbindThreadPlatform() {
	cpu := topology.CurrentCPU()
	if cpu < 0 {
		return
	}
	group := uint16(cpu / topology.MaxProcsPerGroup)
	count, _, _ := procGetActiveProcessorCount.Call(uintptr(group))
	n := uint(uint32(count))
	mask := ^uint64(0)
	if n < 64 {
		mask = (uint64(1) << n) - 1
	}
	ga := groupAffinity{Mask: mask, Group: group}
	hThread, _, _ := procGetCurrentThread.Call()
	procSetThreadGroupAffinity.Call(hThread, uintptr(unsafe.Pointer(&ga)), 0)
}
