package fakevk

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"golang.org/x/exp/slices"
)

type Device struct {
	Log         *CallLog
	HandleValue procs.Handle

	ActiveExtensions []string

	ImageResult common.VkResult
	ImageInfos  []core1_0.ImageCreateInfo
	Images      []*Image

	Requirements    vulkan.MemoryRequirements
	RequirementsErr error

	AllocateResult common.VkResult
	AllocateInfos  []vulkan.MemoryAllocateInfo
	Memories       []*DeviceMemory

	BindResult common.VkResult
	Bindings   int

	ExportResult      common.VkResult
	ExportHandle      interop.Handle
	ExportHandleTypes []khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	CloseErr      error
	ClosedHandles []interop.Handle

	Destroyed bool
}

var _ vulkan.Device = &Device{}

func (d *Device) Handle() procs.Handle {
	return d.HandleValue
}

func (d *Device) IsDeviceExtensionActive(name string) bool {
	return slices.Contains(d.ActiveExtensions, name)
}

func (d *Device) CreateImage(info core1_0.ImageCreateInfo) (vulkan.Image, common.VkResult, error) {
	d.Log.Record("vkCreateImage")
	d.ImageInfos = append(d.ImageInfos, info)
	if d.ImageResult != core1_0.VKSuccess {
		return nil, d.ImageResult, d.ImageResult.ToError()
	}

	image := &Image{Log: d.Log, Info: info}
	d.Images = append(d.Images, image)
	return image, core1_0.VKSuccess, nil
}

func (d *Device) ImageMemoryRequirements(image vulkan.Image) (*vulkan.MemoryRequirements, error) {
	d.Log.Record("vkGetImageMemoryRequirements")
	if d.RequirementsErr != nil {
		return nil, d.RequirementsErr
	}

	requirements := d.Requirements
	return &requirements, nil
}

func (d *Device) AllocateMemory(info vulkan.MemoryAllocateInfo) (vulkan.DeviceMemory, common.VkResult, error) {
	d.Log.Record("vkAllocateMemory")
	d.AllocateInfos = append(d.AllocateInfos, info)
	if d.AllocateResult != core1_0.VKSuccess {
		return nil, d.AllocateResult, d.AllocateResult.ToError()
	}

	memory := &DeviceMemory{Log: d.Log, Info: info}
	d.Memories = append(d.Memories, memory)
	return memory, core1_0.VKSuccess, nil
}

func (d *Device) BindImageMemory(image vulkan.Image, memory vulkan.DeviceMemory, offset int) (common.VkResult, error) {
	d.Log.Record("vkBindImageMemory")
	if d.BindResult != core1_0.VKSuccess {
		return d.BindResult, d.BindResult.ToError()
	}

	d.Bindings++
	image.(*Image).Bound = memory.(*DeviceMemory)
	return core1_0.VKSuccess, nil
}

func (d *Device) ExportMemoryWin32Handle(memory vulkan.DeviceMemory, handleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) (interop.Handle, common.VkResult, error) {
	d.Log.Record("vkGetMemoryWin32HandleKHR")
	d.ExportHandleTypes = append(d.ExportHandleTypes, handleType)
	if d.ExportResult != core1_0.VKSuccess {
		return interop.InvalidHandle, d.ExportResult, d.ExportResult.ToError()
	}

	return d.ExportHandle, core1_0.VKSuccess, nil
}

func (d *Device) CloseWin32Handle(handle interop.Handle) error {
	d.Log.Record("CloseHandle")
	if d.CloseErr != nil {
		return d.CloseErr
	}

	d.ClosedHandles = append(d.ClosedHandles, handle)
	return nil
}

func (d *Device) Destroy() {
	d.Log.Record("vkDestroyDevice")
	d.Destroyed = true
}

// LiveImages counts the images that were created and not destroyed
func (d *Device) LiveImages() int {
	live := 0
	for _, image := range d.Images {
		if !image.Destroyed {
			live++
		}
	}
	return live
}

// LiveMemories counts the allocations that were made and not freed
func (d *Device) LiveMemories() int {
	live := 0
	for _, memory := range d.Memories {
		if !memory.Freed {
			live++
		}
	}
	return live
}

type Image struct {
	Log       *CallLog
	Info      core1_0.ImageCreateInfo
	Bound     *DeviceMemory
	Destroyed bool
}

func (i *Image) Destroy() {
	i.Log.Record("vkDestroyImage")
	i.Destroyed = true
}

type DeviceMemory struct {
	Log   *CallLog
	Info  vulkan.MemoryAllocateInfo
	Freed bool
}

func (m *DeviceMemory) Free() {
	m.Log.Record("vkFreeMemory")
	m.Freed = true
}
