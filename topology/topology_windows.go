//go:build numa && windows

// File: topology/topology_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows backend: processor-group API via lazy kernel32 procs. Every active
// processor in every group is resolved to its NUMA node; the synthesized CPU
// id is group*MaxProcsPerGroup+number.

package topology

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procGetNumaHighestNodeNumber     = modkernel32.NewProc("GetNumaHighestNodeNumber")
	procGetActiveProcessorGroupCount = modkernel32.NewProc("GetActiveProcessorGroupCount")
	procGetActiveProcessorCount      = modkernel32.NewProc("GetActiveProcessorCount")
	procGetNumaProcessorNodeEx       = modkernel32.NewProc("GetNumaProcessorNodeEx")
	procGetCurrentProcessorNumberEx  = modkernel32.NewProc("GetCurrentProcessorNumberEx")
)

// processorNumber mirrors the Win32 PROCESSOR_NUMBER layout.
type processorNumber struct {
	Group    uint16
	Number   uint8
	Reserved uint8
}

func discover() map[int][]int {
	var highest uint32
	ret, _, _ := procGetNumaHighestNodeNumber.Call(uintptr(unsafe.Pointer(&highest)))
	if ret == 0 {
		return nil
	}

	m := make(map[int][]int)
	groups, _, _ := procGetActiveProcessorGroupCount.Call()
	for group := 0; group < int(uint16(groups)); group++ {
		count, _, _ := procGetActiveProcessorCount.Call(uintptr(group))
		for number := 0; number < int(uint32(count)); number++ {
			pn := processorNumber{Group: uint16(group), Number: uint8(number)}
			var node uint16
			ok, _, _ := procGetNumaProcessorNodeEx.Call(
				uintptr(unsafe.Pointer(&pn)),
				uintptr(unsafe.Pointer(&node)),
			)
			if ok == 0 || uint32(node) > highest {
				continue
			}
			cpu := group*MaxProcsPerGroup + number
			m[int(node)] = append(m[int(node)], cpu)
		}
	}
	return m
}

func platformAvailable() bool {
	var highest uint32
	ret, _, _ := procGetNumaHighestNodeNumber.Call(uintptr(unsafe.Pointer(&highest)))
	return ret != 0
}

func platformCurrentCPU() int {
	var pn processorNumber
	procGetCurrentProcessorNumberEx.Call(uintptr(unsafe.Pointer(&pn)))
	return int(pn.Group)*MaxProcsPerGroup + int(pn.Number)
}

func platformCurrentNode() int {
	var pn processorNumber
	procGetCurrentProcessorNumberEx.Call(uintptr(unsafe.Pointer(&pn)))
	var node uint16
	ok, _, _ := procGetNumaProcessorNodeEx.Call(
		uintptr(unsafe.Pointer(&pn)),
		uintptr(unsafe.Pointer(&node)),
	)
	if ok == 0 {
		return -1
	}
	return int(node)
}
