package fakevk

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"golang.org/x/exp/slices"
)

type Instance struct {
	Log         *CallLog
	HandleValue procs.Handle

	ActiveExtensions []string
	PhysicalDevices  []*PhysicalDevice
	EnumerateResult  common.VkResult

	ChainedMessenger *ext_debug_utils.DebugUtilsMessengerCreateInfo
	MessengerResult  common.VkResult
	Messengers       []*DebugUtilsMessenger

	Destroyed bool
}

var _ vulkan.Instance = &Instance{}

func (i *Instance) Handle() procs.Handle {
	return i.HandleValue
}

func (i *Instance) IsInstanceExtensionActive(name string) bool {
	return slices.Contains(i.ActiveExtensions, name)
}

func (i *Instance) EnumeratePhysicalDevices() ([]vulkan.PhysicalDevice, common.VkResult, error) {
	i.Log.Record("vkEnumeratePhysicalDevices")
	if i.EnumerateResult != core1_0.VKSuccess {
		return nil, i.EnumerateResult, i.EnumerateResult.ToError()
	}

	devices := make([]vulkan.PhysicalDevice, 0, len(i.PhysicalDevices))
	for _, device := range i.PhysicalDevices {
		devices = append(devices, device)
	}
	return devices, core1_0.VKSuccess, nil
}

func (i *Instance) CreateDebugUtilsMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (vulkan.DebugUtilsMessenger, common.VkResult, error) {
	i.Log.Record("vkCreateDebugUtilsMessengerEXT")
	if i.MessengerResult != core1_0.VKSuccess {
		return nil, i.MessengerResult, i.MessengerResult.ToError()
	}

	messenger := &DebugUtilsMessenger{Log: i.Log, Info: info}
	i.Messengers = append(i.Messengers, messenger)
	return messenger, core1_0.VKSuccess, nil
}

func (i *Instance) Destroy() {
	i.Log.Record("vkDestroyInstance")
	i.Destroyed = true
}

type DebugUtilsMessenger struct {
	Log       *CallLog
	Info      ext_debug_utils.DebugUtilsMessengerCreateInfo
	Destroyed bool
}

func (m *DebugUtilsMessenger) Destroy() {
	m.Log.Record("vkDestroyDebugUtilsMessengerEXT")
	m.Destroyed = true
}
