package vulkan

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// Loader is the part of the Vulkan runtime that exists before any instance: the entry point table
// and the global enumeration and creation commands
type Loader interface {
	Procs() *procs.Table
	AvailableExtensions() (map[string]*core1_0.ExtensionProperties, common.VkResult, error)
	AvailableLayers() (map[string]*core1_0.LayerProperties, common.VkResult, error)
	CreateInstance(info core1_0.InstanceCreateInfo) (Instance, common.VkResult, error)
}

type Instance interface {
	Handle() procs.Handle
	IsInstanceExtensionActive(name string) bool
	EnumeratePhysicalDevices() ([]PhysicalDevice, common.VkResult, error)
	CreateDebugUtilsMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (DebugUtilsMessenger, common.VkResult, error)
	Destroy()
}

type DebugUtilsMessenger interface {
	Destroy()
}

type PhysicalDevice interface {
	Features() *core1_0.PhysicalDeviceFeatures
	Properties() (*core1_0.PhysicalDeviceProperties, error)
	QueueFamilyProperties() []*core1_0.QueueFamilyProperties
	EnumerateDeviceExtensionProperties() (map[string]*core1_0.ExtensionProperties, common.VkResult, error)
	MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties

	// ImageFormatProperties2 is vkGetPhysicalDeviceImageFormatProperties2, from core 1.1 or
	// VK_KHR_get_physical_device_properties2. It fails with interop.ErrCapabilityUnavailable when
	// neither is present.
	ImageFormatProperties2(info core1_1.PhysicalDeviceImageFormatInfo2, out *core1_1.ImageFormatProperties2) (common.VkResult, error)

	CreateDevice(info core1_0.DeviceCreateInfo) (Device, common.VkResult, error)
}

type Device interface {
	Handle() procs.Handle
	IsDeviceExtensionActive(name string) bool

	CreateImage(info core1_0.ImageCreateInfo) (Image, common.VkResult, error)
	ImageMemoryRequirements(image Image) (*MemoryRequirements, error)
	AllocateMemory(info MemoryAllocateInfo) (DeviceMemory, common.VkResult, error)
	BindImageMemory(image Image, memory DeviceMemory, offset int) (common.VkResult, error)

	// ExportMemoryWin32Handle is vkGetMemoryWin32HandleKHR. handleType must be a single bit.
	ExportMemoryWin32Handle(memory DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (interop.Handle, common.VkResult, error)
	// CloseWin32Handle releases a handle returned by ExportMemoryWin32Handle
	CloseWin32Handle(handle interop.Handle) error

	Destroy()
}

type Image interface {
	Destroy()
}

type DeviceMemory interface {
	Free()
}

// MemoryRequirements are an image's memory requirements along with the driver's dedicated
// allocation preference, when VK_KHR_dedicated_allocation could report it
type MemoryRequirements struct {
	core1_0.MemoryRequirements

	RequiresDedicatedAllocation bool
	PrefersDedicatedAllocation  bool
}

// MemoryAllocateInfo describes an exportable allocation. Implementations chain
// ExportMemoryAllocateInfo when ExportHandleTypes is non-zero and MemoryDedicatedAllocateInfo
// when DedicatedImage is set.
type MemoryAllocateInfo struct {
	AllocationSize  int
	MemoryTypeIndex int

	ExportHandleTypes khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
	DedicatedImage    Image
}
