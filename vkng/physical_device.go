package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
)

type imageFormatPropertiesQuery interface {
	ImageFormatProperties2(o core1_1.PhysicalDeviceImageFormatInfo2, out *core1_1.ImageFormatProperties2) (common.VkResult, error)
}

type PhysicalDevice struct {
	instance       *Instance
	physicalDevice core1_0.PhysicalDevice

	// nil when neither core 1.1 nor khr_get_physical_device_properties2 is available
	formatProperties imageFormatPropertiesQuery
}

var _ vulkan.PhysicalDevice = &PhysicalDevice{}

func (p *PhysicalDevice) Features() *core1_0.PhysicalDeviceFeatures {
	return p.physicalDevice.Features()
}

func (p *PhysicalDevice) Properties() (*core1_0.PhysicalDeviceProperties, error) {
	return p.physicalDevice.Properties()
}

func (p *PhysicalDevice) QueueFamilyProperties() []*core1_0.QueueFamilyProperties {
	return p.physicalDevice.QueueFamilyProperties()
}

func (p *PhysicalDevice) EnumerateDeviceExtensionProperties() (map[string]*core1_0.ExtensionProperties, common.VkResult, error) {
	return p.physicalDevice.EnumerateDeviceExtensionProperties()
}

func (p *PhysicalDevice) MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties {
	return p.physicalDevice.MemoryProperties()
}

func (p *PhysicalDevice) ImageFormatProperties2(info core1_1.PhysicalDeviceImageFormatInfo2, out *core1_1.ImageFormatProperties2) (common.VkResult, error) {
	if p.formatProperties == nil {
		return core1_0.VKErrorExtensionNotPresent, errors.Mark(
			errors.New("vkGetPhysicalDeviceImageFormatProperties2 is not available"),
			interop.ErrCapabilityUnavailable,
		)
	}

	return p.formatProperties.ImageFormatProperties2(info, out)
}

func (p *PhysicalDevice) CreateDevice(info core1_0.DeviceCreateInfo) (vulkan.Device, common.VkResult, error) {
	device, res, err := p.physicalDevice.CreateDevice(nil, info)
	if err != nil {
		return nil, res, err
	}
	if device == nil {
		return nil, res, nil
	}

	return newDevice(p.instance, device), res, nil
}
