package fakevk

import (
	"unsafe"

	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"golang.org/x/exp/slices"
)

var entryPoint byte

// Loader is an in-memory vulkan.Loader. Every name of its table resolves unless it is listed in
// Unresolvable.
type Loader struct {
	Log          *CallLog
	Table        *procs.Table
	Unresolvable []string

	Extensions []string
	Layers     []string

	ExtensionsResult common.VkResult
	CreateResult     common.VkResult
	Instance         *Instance
	CreateInfos      []core1_0.InstanceCreateInfo
}

var _ vulkan.Loader = &Loader{}

func (l *Loader) GetInstanceProcAddr(instance procs.Handle, name string) unsafe.Pointer {
	if slices.Contains(l.Unresolvable, name) {
		return nil
	}
	return unsafe.Pointer(&entryPoint)
}

func (l *Loader) Procs() *procs.Table {
	if l.Table == nil {
		l.Table = procs.NewTable()
	}
	// A reset table is loaded again, as a freshly opened loader would be
	if !l.Table.Loaded() {
		l.Table.Load(l.GetInstanceProcAddr)
	}
	return l.Table
}

func (l *Loader) AvailableExtensions() (map[string]*core1_0.ExtensionProperties, common.VkResult, error) {
	l.Log.Record("vkEnumerateInstanceExtensionProperties")
	if l.ExtensionsResult != core1_0.VKSuccess {
		return nil, l.ExtensionsResult, l.ExtensionsResult.ToError()
	}

	extensions := make(map[string]*core1_0.ExtensionProperties, len(l.Extensions))
	for _, name := range l.Extensions {
		extensions[name] = &core1_0.ExtensionProperties{ExtensionName: name}
	}
	return extensions, core1_0.VKSuccess, nil
}

func (l *Loader) AvailableLayers() (map[string]*core1_0.LayerProperties, common.VkResult, error) {
	l.Log.Record("vkEnumerateInstanceLayerProperties")

	layers := make(map[string]*core1_0.LayerProperties, len(l.Layers))
	for _, name := range l.Layers {
		layers[name] = &core1_0.LayerProperties{LayerName: name}
	}
	return layers, core1_0.VKSuccess, nil
}

func (l *Loader) CreateInstance(info core1_0.InstanceCreateInfo) (vulkan.Instance, common.VkResult, error) {
	l.Log.Record("vkCreateInstance")
	l.CreateInfos = append(l.CreateInfos, info)

	if l.CreateResult != core1_0.VKSuccess {
		return nil, l.CreateResult, l.CreateResult.ToError()
	}
	if l.Instance == nil {
		return nil, core1_0.VKSuccess, nil
	}

	l.Instance.ActiveExtensions = append([]string(nil), info.EnabledExtensionNames...)
	l.Instance.Destroyed = false
	if messengerInfo, ok := info.Next.(ext_debug_utils.DebugUtilsMessengerCreateInfo); ok {
		l.Instance.ChainedMessenger = &messengerInfo
	}
	return l.Instance, core1_0.VKSuccess, nil
}

// AllInstanceExtensions, AllLayers and AllDeviceExtensions are every name the device factory may
// ask for
var AllInstanceExtensions = []string{
	"VK_KHR_surface",
	"VK_KHR_win32_surface",
	"VK_KHR_get_physical_device_properties2",
	"VK_KHR_external_memory_capabilities",
	"VK_KHR_external_semaphore_capabilities",
	"VK_KHR_external_fence_capabilities",
	"VK_EXT_debug_utils",
}

var AllLayers = []string{
	"VK_LAYER_KHRONOS_validation",
}

var AllDeviceExtensions = []string{
	"VK_KHR_external_memory",
	"VK_KHR_external_memory_win32",
	"VK_KHR_external_semaphore",
	"VK_KHR_external_semaphore_win32",
	"VK_KHR_external_fence",
	"VK_KHR_external_fence_win32",
	"VK_KHR_dedicated_allocation",
	"VK_KHR_get_memory_requirements2",
}
