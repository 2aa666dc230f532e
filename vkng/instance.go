package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v2/khr_get_physical_device_properties2"
	khr_get_physical_device_properties2_shim "github.com/vkngwrapper/extensions/v2/khr_get_physical_device_properties2/shim"
)

type Instance struct {
	instance core1_0.Instance
	table    *procs.Table
}

var _ vulkan.Instance = &Instance{}

func (i *Instance) Handle() procs.Handle {
	return procs.Handle(uintptr(rawHandle(i.instance.Handle())))
}

func (i *Instance) IsInstanceExtensionActive(name string) bool {
	return i.instance.IsInstanceExtensionActive(name)
}

func (i *Instance) EnumeratePhysicalDevices() ([]vulkan.PhysicalDevice, common.VkResult, error) {
	physicalDevices, res, err := i.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, res, err
	}

	wrapped := make([]vulkan.PhysicalDevice, 0, len(physicalDevices))
	for _, physicalDevice := range physicalDevices {
		wrapped = append(wrapped, i.wrapPhysicalDevice(physicalDevice))
	}
	return wrapped, res, nil
}

func (i *Instance) wrapPhysicalDevice(physicalDevice core1_0.PhysicalDevice) *PhysicalDevice {
	wrapped := &PhysicalDevice{
		instance:       i,
		physicalDevice: physicalDevice,
	}

	// Core 1.1 first, the KHR extension otherwise
	physicalDevice11 := core1_1.PromoteInstanceScopedPhysicalDevice(physicalDevice)
	if physicalDevice11 != nil {
		wrapped.formatProperties = physicalDevice11
	} else if i.instance.IsInstanceExtensionActive(khr_get_physical_device_properties2.ExtensionName) {
		extension := khr_get_physical_device_properties2.CreateExtensionFromInstance(i.instance)
		wrapped.formatProperties = khr_get_physical_device_properties2_shim.NewShim(extension, physicalDevice)
	}

	return wrapped
}

func (i *Instance) CreateDebugUtilsMessenger(info ext_debug_utils.DebugUtilsMessengerCreateInfo) (vulkan.DebugUtilsMessenger, common.VkResult, error) {
	if !i.instance.IsInstanceExtensionActive(ext_debug_utils.ExtensionName) {
		return nil, core1_0.VKErrorExtensionNotPresent, errors.Mark(
			errors.Newf("%s is not enabled", ext_debug_utils.ExtensionName),
			interop.ErrCapabilityUnavailable,
		)
	}

	debugLoader := ext_debug_utils.CreateExtensionFromInstance(i.instance)
	messenger, res, err := debugLoader.CreateDebugUtilsMessenger(i.instance, nil, info)
	if err != nil {
		return nil, res, err
	}

	return &DebugUtilsMessenger{messenger: messenger}, res, nil
}

func (i *Instance) Destroy() {
	i.instance.Destroy(nil)
}

type DebugUtilsMessenger struct {
	messenger ext_debug_utils.DebugUtilsMessenger
}

func (m *DebugUtilsMessenger) Destroy() {
	m.messenger.Destroy(nil)
}
