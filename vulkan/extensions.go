package vulkan

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2"
	"github.com/vkngwrapper/extensions/v2/khr_get_physical_device_properties2"
)

// ExtensionData is the capability set of one instance/device pair. It is resolved once after
// device creation: a capability is only reported when its extension is enabled and, for the
// capabilities that need their own command, that command was resolved in the entry point table.
type ExtensionData struct {
	DebugUtils                   bool
	GetPhysicalDeviceProperties2 bool
	ExternalMemoryCapabilities   bool
	ExternalMemory               bool
	ExternalMemoryWin32          bool
	GetMemoryRequirements2       bool
	DedicatedAllocations         bool
}

func NewExtensionData(table *procs.Table, instance Instance, device Device) *ExtensionData {
	data := &ExtensionData{}

	has := func(names ...string) bool {
		if table == nil {
			return false
		}
		for _, name := range names {
			if table.Has(name) {
				return true
			}
		}
		return false
	}

	if instance.IsInstanceExtensionActive(ext_debug_utils.ExtensionName) &&
		has(procs.CreateDebugUtilsMessengerEXT) {
		data.DebugUtils = true
	}

	// Either the core 1.1 command or the KHR alias will do
	if instance.IsInstanceExtensionActive(khr_get_physical_device_properties2.ExtensionName) &&
		has(procs.GetPhysicalDeviceImageFormatProperties2KHR, procs.GetPhysicalDeviceImageFormatProperties2) {
		data.GetPhysicalDeviceProperties2 = true
	}

	// External image format queries ride on top of khr_get_physical_device_properties2
	if data.GetPhysicalDeviceProperties2 &&
		instance.IsInstanceExtensionActive(khr_external_memory_capabilities.ExtensionName) {
		data.ExternalMemoryCapabilities = true
	}

	if device == nil {
		return data
	}

	if data.ExternalMemoryCapabilities && device.IsDeviceExtensionActive(khr_external_memory.ExtensionName) {
		data.ExternalMemory = true
	}

	// vkGetMemoryWin32HandleKHR is only reachable through the entry point table
	if data.ExternalMemory && device.IsDeviceExtensionActive(ExtensionExternalMemoryWin32) &&
		has(procs.GetMemoryWin32HandleKHR) {
		data.ExternalMemoryWin32 = true
	}

	if device.IsDeviceExtensionActive(khr_get_memory_requirements2.ExtensionName) &&
		has(procs.GetImageMemoryRequirements2KHR) {
		data.GetMemoryRequirements2 = true
	}

	// khr_dedicated_allocation reports through khr_get_memory_requirements2
	if data.GetMemoryRequirements2 && device.IsDeviceExtensionActive(khr_dedicated_allocation.ExtensionName) {
		data.DedicatedAllocations = true
	}

	return data
}

// CanExport reports whether images can be created with exportable memory and a Win32 handle
// retrieved from it
func (d *ExtensionData) CanExport() bool {
	return d != nil && d.ExternalMemoryCapabilities && d.ExternalMemory && d.ExternalMemoryWin32
}

func (d *ExtensionData) PrintParameters(json *jwriter.ObjectState) {
	json.Name("DebugUtils").Bool(d.DebugUtils)
	json.Name("GetPhysicalDeviceProperties2").Bool(d.GetPhysicalDeviceProperties2)
	json.Name("ExternalMemoryCapabilities").Bool(d.ExternalMemoryCapabilities)
	json.Name("ExternalMemory").Bool(d.ExternalMemory)
	json.Name("ExternalMemoryWin32").Bool(d.ExternalMemoryWin32)
	json.Name("GetMemoryRequirements2").Bool(d.GetMemoryRequirements2)
	json.Name("DedicatedAllocations").Bool(d.DedicatedAllocations)
}
