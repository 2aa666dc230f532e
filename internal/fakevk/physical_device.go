package fakevk

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

type PhysicalDevice struct {
	Log *CallLog

	DeviceProperties core1_0.PhysicalDeviceProperties
	PropertiesErr    error
	DeviceFeatures   core1_0.PhysicalDeviceFeatures
	QueueFamilies    []*core1_0.QueueFamilyProperties
	Extensions       []string
	Memory           core1_0.PhysicalDeviceMemoryProperties

	// Answer to vkGetPhysicalDeviceImageFormatProperties2
	FormatUnavailable  bool
	FormatResult       common.VkResult
	FormatProperties   core1_0.ImageFormatProperties
	ExternalProperties khr_external_memory_capabilities.ExternalMemoryProperties
	FormatQueries      []core1_1.PhysicalDeviceImageFormatInfo2

	Device             *Device
	CreateDeviceResult common.VkResult
	DeviceCreateInfos  []core1_0.DeviceCreateInfo
}

var _ vulkan.PhysicalDevice = &PhysicalDevice{}

func (p *PhysicalDevice) Features() *core1_0.PhysicalDeviceFeatures {
	return &p.DeviceFeatures
}

func (p *PhysicalDevice) Properties() (*core1_0.PhysicalDeviceProperties, error) {
	if p.PropertiesErr != nil {
		return nil, p.PropertiesErr
	}
	return &p.DeviceProperties, nil
}

func (p *PhysicalDevice) QueueFamilyProperties() []*core1_0.QueueFamilyProperties {
	return p.QueueFamilies
}

func (p *PhysicalDevice) EnumerateDeviceExtensionProperties() (map[string]*core1_0.ExtensionProperties, common.VkResult, error) {
	extensions := make(map[string]*core1_0.ExtensionProperties, len(p.Extensions))
	for _, name := range p.Extensions {
		extensions[name] = &core1_0.ExtensionProperties{ExtensionName: name}
	}
	return extensions, core1_0.VKSuccess, nil
}

func (p *PhysicalDevice) MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties {
	return &p.Memory
}

func (p *PhysicalDevice) ImageFormatProperties2(info core1_1.PhysicalDeviceImageFormatInfo2, out *core1_1.ImageFormatProperties2) (common.VkResult, error) {
	if p.FormatUnavailable {
		return core1_0.VKErrorExtensionNotPresent, interop.ErrCapabilityUnavailable
	}

	p.Log.Record("vkGetPhysicalDeviceImageFormatProperties2")
	p.FormatQueries = append(p.FormatQueries, info)
	if p.FormatResult != core1_0.VKSuccess {
		return p.FormatResult, p.FormatResult.ToError()
	}

	out.ImageFormatProperties = p.FormatProperties
	external, ok := out.Next.(*khr_external_memory_capabilities.ExternalImageFormatProperties)
	if ok {
		external.ExternalMemoryProperties = p.ExternalProperties
	}
	return core1_0.VKSuccess, nil
}

func (p *PhysicalDevice) CreateDevice(info core1_0.DeviceCreateInfo) (vulkan.Device, common.VkResult, error) {
	p.Log.Record("vkCreateDevice")
	p.DeviceCreateInfos = append(p.DeviceCreateInfos, info)

	if p.CreateDeviceResult != core1_0.VKSuccess {
		return nil, p.CreateDeviceResult, p.CreateDeviceResult.ToError()
	}
	if p.Device == nil {
		return nil, core1_0.VKSuccess, nil
	}

	p.Device.ActiveExtensions = append([]string(nil), info.EnabledExtensionNames...)
	p.Device.Destroyed = false
	return p.Device, core1_0.VKSuccess, nil
}
