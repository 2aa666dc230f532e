package vulkan

// Extension and layer names with no package of their own in vkngwrapper
const (
	ExtensionWin32Surface                  = "VK_KHR_win32_surface"
	ExtensionExternalSemaphoreCapabilities = "VK_KHR_external_semaphore_capabilities"
	ExtensionExternalFenceCapabilities     = "VK_KHR_external_fence_capabilities"
	ExtensionExternalMemoryWin32           = "VK_KHR_external_memory_win32"
	ExtensionExternalSemaphore             = "VK_KHR_external_semaphore"
	ExtensionExternalSemaphoreWin32        = "VK_KHR_external_semaphore_win32"
	ExtensionExternalFence                 = "VK_KHR_external_fence"
	ExtensionExternalFenceWin32            = "VK_KHR_external_fence_win32"
	LayerKhronosValidation                 = "VK_LAYER_KHRONOS_validation"
)
