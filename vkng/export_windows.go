//go:build windows

package vkng

import (
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// VK_STRUCTURE_TYPE_MEMORY_GET_WIN32_HANDLE_INFO_KHR
const structureTypeMemoryGetWin32HandleInfo uint32 = 1000073003

// memoryGetWin32HandleInfo is VkMemoryGetWin32HandleInfoKHR
type memoryGetWin32HandleInfo struct {
	sType      uint32
	pNext      unsafe.Pointer
	memory     uint64
	handleType uint32
}

func (d *Device) ExportMemoryWin32Handle(memory vulkan.DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (interop.Handle, common.VkResult, error) {
	vkMemory, err := unwrapMemory(memory)
	if err != nil {
		return interop.InvalidHandle, core1_0.VKErrorUnknown, err
	}

	proc, ok := d.instance.table.Lookup(procs.GetMemoryWin32HandleKHR)
	if !ok {
		return interop.InvalidHandle, core1_0.VKErrorExtensionNotPresent, errors.Mark(
			errors.Newf("%s was not resolved", procs.GetMemoryWin32HandleKHR),
			interop.ErrCapabilityUnavailable,
		)
	}

	info := memoryGetWin32HandleInfo{
		sType:      structureTypeMemoryGetWin32HandleInfo,
		memory:     rawHandle(vkMemory.Handle()),
		handleType: uint32(handleType),
	}
	var handle uintptr

	ret, _, _ := syscall.SyscallN(
		uintptr(proc),
		uintptr(rawHandle(d.device.Handle())),
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Pointer(&handle)),
	)
	res := common.VkResult(int32(ret))
	if res != core1_0.VKSuccess {
		return interop.InvalidHandle, res, res.ToError()
	}

	return interop.Handle(handle), res, nil
}
