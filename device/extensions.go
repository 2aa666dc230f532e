package device

import (
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2"
	"github.com/vkngwrapper/extensions/v2/khr_get_physical_device_properties2"
	"github.com/vkngwrapper/extensions/v2/khr_surface"
	"golang.org/x/exp/slices"
)

// BaseInstanceExtensions are required of every instance: a surface pair for the platform, the
// properties2 queries and the external memory, semaphore and fence capability queries
var BaseInstanceExtensions = []string{
	khr_surface.ExtensionName,
	vulkan.ExtensionWin32Surface,
	khr_get_physical_device_properties2.ExtensionName,
	khr_external_memory_capabilities.ExtensionName,
	vulkan.ExtensionExternalSemaphoreCapabilities,
	vulkan.ExtensionExternalFenceCapabilities,
}

// DefaultDeviceExtensions are the Win32 external memory, semaphore and fence extensions along with
// dedicated allocation support
var DefaultDeviceExtensions = []string{
	khr_external_memory.ExtensionName,
	vulkan.ExtensionExternalMemoryWin32,
	vulkan.ExtensionExternalSemaphore,
	vulkan.ExtensionExternalSemaphoreWin32,
	vulkan.ExtensionExternalFence,
	vulkan.ExtensionExternalFenceWin32,
	khr_get_memory_requirements2.ExtensionName,
	khr_dedicated_allocation.ExtensionName,
}

// DesiredInstanceExtensions returns the instance extensions to enable, with the debug utils
// extension added when debugging and any extras appended once
func DesiredInstanceExtensions(enableDebug bool, extra ...string) []string {
	extensions := append([]string(nil), BaseInstanceExtensions...)
	if enableDebug {
		extensions = append(extensions, ext_debug_utils.ExtensionName)
	}
	return appendUnique(extensions, extra...)
}

// DesiredLayers returns the validation layer when debugging, followed by any extras
func DesiredLayers(enableDebug bool, extra ...string) []string {
	var layers []string
	if enableDebug {
		layers = append(layers, vulkan.LayerKhronosValidation)
	}
	return appendUnique(layers, extra...)
}

func appendUnique(list []string, extra ...string) []string {
	for _, name := range extra {
		if !slices.Contains(list, name) {
			list = append(list, name)
		}
	}
	return list
}

// missingNames returns the names absent from the available set, in request order
func missingNames[T any](wanted []string, available map[string]T) []string {
	var missing []string
	for _, name := range wanted {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
