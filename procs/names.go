package procs

// Global entry points, resolvable without an instance
const (
	GetInstanceProcAddr                  = "vkGetInstanceProcAddr"
	EnumerateInstanceExtensionProperties = "vkEnumerateInstanceExtensionProperties"
	EnumerateInstanceLayerProperties     = "vkEnumerateInstanceLayerProperties"
	CreateInstance                       = "vkCreateInstance"
)

// Instance entry points
const (
	DestroyInstance                            = "vkDestroyInstance"
	EnumeratePhysicalDevices                   = "vkEnumeratePhysicalDevices"
	GetPhysicalDeviceFeatures                  = "vkGetPhysicalDeviceFeatures"
	GetPhysicalDeviceProperties                = "vkGetPhysicalDeviceProperties"
	GetPhysicalDeviceQueueFamilyProperties     = "vkGetPhysicalDeviceQueueFamilyProperties"
	GetPhysicalDeviceMemoryProperties          = "vkGetPhysicalDeviceMemoryProperties"
	EnumerateDeviceExtensionProperties         = "vkEnumerateDeviceExtensionProperties"
	GetPhysicalDeviceImageFormatProperties2    = "vkGetPhysicalDeviceImageFormatProperties2"
	GetPhysicalDeviceImageFormatProperties2KHR = "vkGetPhysicalDeviceImageFormatProperties2KHR"
	CreateDevice                               = "vkCreateDevice"
	CreateDebugUtilsMessengerEXT               = "vkCreateDebugUtilsMessengerEXT"
	DestroyDebugUtilsMessengerEXT              = "vkDestroyDebugUtilsMessengerEXT"
)

// Device entry points, resolved through the instance
const (
	DestroyDevice                     = "vkDestroyDevice"
	CreateImage                       = "vkCreateImage"
	DestroyImage                      = "vkDestroyImage"
	GetImageMemoryRequirements        = "vkGetImageMemoryRequirements"
	GetImageMemoryRequirements2KHR    = "vkGetImageMemoryRequirements2KHR"
	AllocateMemory                    = "vkAllocateMemory"
	FreeMemory                        = "vkFreeMemory"
	BindImageMemory                   = "vkBindImageMemory"
	GetMemoryWin32HandleKHR           = "vkGetMemoryWin32HandleKHR"
	GetMemoryWin32HandlePropertiesKHR = "vkGetMemoryWin32HandlePropertiesKHR"
)

// DefaultNames is every entry point the sharing core calls
var DefaultNames = []string{
	GetInstanceProcAddr,
	EnumerateInstanceExtensionProperties,
	EnumerateInstanceLayerProperties,
	CreateInstance,

	DestroyInstance,
	EnumeratePhysicalDevices,
	GetPhysicalDeviceFeatures,
	GetPhysicalDeviceProperties,
	GetPhysicalDeviceQueueFamilyProperties,
	GetPhysicalDeviceMemoryProperties,
	EnumerateDeviceExtensionProperties,
	GetPhysicalDeviceImageFormatProperties2,
	GetPhysicalDeviceImageFormatProperties2KHR,
	CreateDevice,
	CreateDebugUtilsMessengerEXT,
	DestroyDebugUtilsMessengerEXT,

	DestroyDevice,
	CreateImage,
	DestroyImage,
	GetImageMemoryRequirements,
	GetImageMemoryRequirements2KHR,
	AllocateMemory,
	FreeMemory,
	BindImageMemory,
	GetMemoryWin32HandleKHR,
	GetMemoryWin32HandlePropertiesKHR,
}
