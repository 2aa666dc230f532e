//go:build !windows

package vkng

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

func (d *Device) ExportMemoryWin32Handle(memory vulkan.DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (interop.Handle, common.VkResult, error) {
	return interop.InvalidHandle, core1_0.VKErrorFeatureNotPresent, interop.ErrUnsupportedPlatform
}
