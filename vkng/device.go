package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_dedicated_allocation"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2"
	khr_get_memory_requirements2_shim "github.com/vkngwrapper/extensions/v2/khr_get_memory_requirements2/shim"
)

type imageMemoryRequirementsQuery interface {
	ImageMemoryRequirements2(o core1_1.ImageMemoryRequirementsInfo2, out *core1_1.MemoryRequirements2) error
}

type Device struct {
	instance *Instance
	device   core1_0.Device

	memoryRequirements   imageMemoryRequirementsQuery
	dedicatedAllocations bool
}

var _ vulkan.Device = &Device{}

func newDevice(instance *Instance, device core1_0.Device) *Device {
	wrapped := &Device{
		instance: instance,
		device:   device,
	}

	device11 := core1_1.PromoteDevice(device)
	if device11 != nil {
		// Core 1.1 includes khr_get_memory_requirements2 and khr_dedicated_allocation
		wrapped.memoryRequirements = device11
		wrapped.dedicatedAllocations = true
		return wrapped
	}

	if device.IsDeviceExtensionActive(khr_get_memory_requirements2.ExtensionName) {
		extension := khr_get_memory_requirements2.CreateExtensionFromDevice(device)
		wrapped.memoryRequirements = khr_get_memory_requirements2_shim.NewShim(extension, device)
		wrapped.dedicatedAllocations = device.IsDeviceExtensionActive(khr_dedicated_allocation.ExtensionName)
	}

	return wrapped
}

func (d *Device) Handle() procs.Handle {
	return procs.Handle(uintptr(rawHandle(d.device.Handle())))
}

func (d *Device) IsDeviceExtensionActive(name string) bool {
	return d.device.IsDeviceExtensionActive(name)
}

func (d *Device) CreateImage(info core1_0.ImageCreateInfo) (vulkan.Image, common.VkResult, error) {
	image, res, err := d.device.CreateImage(nil, info)
	if err != nil {
		return nil, res, err
	}
	if image == nil {
		return nil, res, nil
	}

	return &Image{image: image}, res, nil
}

func (d *Device) ImageMemoryRequirements(image vulkan.Image) (*vulkan.MemoryRequirements, error) {
	vkImage, err := unwrapImage(image)
	if err != nil {
		return nil, err
	}

	if d.memoryRequirements == nil || !d.dedicatedAllocations {
		return &vulkan.MemoryRequirements{
			MemoryRequirements: *vkImage.MemoryRequirements(),
		}, nil
	}

	dedicatedReqs := khr_dedicated_allocation.MemoryDedicatedRequirements{}
	memReqs := core1_1.MemoryRequirements2{
		NextOutData: common.NextOutData{
			Next: &dedicatedReqs,
		},
	}

	err = d.memoryRequirements.ImageMemoryRequirements2(
		core1_1.ImageMemoryRequirementsInfo2{
			Image: vkImage,
		},
		&memReqs)
	if err != nil {
		return nil, err
	}

	return &vulkan.MemoryRequirements{
		MemoryRequirements:          memReqs.MemoryRequirements,
		RequiresDedicatedAllocation: dedicatedReqs.RequiresDedicatedAllocation,
		PrefersDedicatedAllocation:  dedicatedReqs.PrefersDedicatedAllocation,
	}, nil
}

func (d *Device) AllocateMemory(info vulkan.MemoryAllocateInfo) (vulkan.DeviceMemory, common.VkResult, error) {
	allocInfo, err := buildAllocateInfo(info)
	if err != nil {
		return nil, core1_0.VKErrorUnknown, err
	}

	memory, res, err := d.device.AllocateMemory(nil, allocInfo)
	if err != nil {
		return nil, res, err
	}
	if memory == nil {
		return nil, res, nil
	}

	return &DeviceMemory{memory: memory}, res, nil
}

// buildAllocateInfo chains the export and dedicated allocation structures onto a
// vkAllocateMemory call
func buildAllocateInfo(info vulkan.MemoryAllocateInfo) (core1_0.MemoryAllocateInfo, error) {
	allocInfo := core1_0.MemoryAllocateInfo{
		AllocationSize:  info.AllocationSize,
		MemoryTypeIndex: info.MemoryTypeIndex,
	}

	if info.DedicatedImage != nil {
		vkImage, err := unwrapImage(info.DedicatedImage)
		if err != nil {
			return allocInfo, err
		}

		dedicatedAllocInfo := khr_dedicated_allocation.MemoryDedicatedAllocateInfo{
			Image: vkImage,
		}
		dedicatedAllocInfo.Next = allocInfo.Next
		allocInfo.Next = dedicatedAllocInfo
	}

	if info.ExportHandleTypes != 0 {
		exportMemoryAllocInfo := khr_external_memory.ExportMemoryAllocateInfo{
			HandleTypes: info.ExportHandleTypes,
		}
		exportMemoryAllocInfo.Next = allocInfo.Next
		allocInfo.Next = exportMemoryAllocInfo
	}

	return allocInfo, nil
}

func (d *Device) BindImageMemory(image vulkan.Image, memory vulkan.DeviceMemory, offset int) (common.VkResult, error) {
	vkImage, err := unwrapImage(image)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	}
	vkMemory, err := unwrapMemory(memory)
	if err != nil {
		return core1_0.VKErrorUnknown, err
	}

	return vkImage.BindImageMemory(vkMemory, offset)
}

func (d *Device) CloseWin32Handle(handle interop.Handle) error {
	return interop.CloseHandle(handle)
}

func (d *Device) Destroy() {
	d.device.Destroy(nil)
}

type Image struct {
	image core1_0.Image
}

func (i *Image) Destroy() {
	i.image.Destroy(nil)
}

type DeviceMemory struct {
	memory core1_0.DeviceMemory
}

func (m *DeviceMemory) Free() {
	m.memory.Free(nil)
}

func unwrapImage(image vulkan.Image) (core1_0.Image, error) {
	wrapped, ok := image.(*Image)
	if !ok || wrapped == nil {
		return nil, errors.Newf("image %T was not created by this device", image)
	}
	return wrapped.image, nil
}

func unwrapMemory(memory vulkan.DeviceMemory) (core1_0.DeviceMemory, error) {
	wrapped, ok := memory.(*DeviceMemory)
	if !ok || wrapped == nil {
		return nil, errors.Newf("device memory %T was not allocated by this device", memory)
	}
	return wrapped.memory, nil
}
