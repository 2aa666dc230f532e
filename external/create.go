package external

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/capability"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory"
	"golang.org/x/exp/slog"
)

// CreateExportableImage negotiates the request against the physical device, then creates the
// image, allocates and binds exportable memory for it and exports the memory as an OS handle.
//
// A request the device cannot export fails with interop.ErrFormatOrHandleTypeUnsupported before
// anything is created. Past that point any failure aborts, and the partially built resource is
// returned alongside the error so the caller can Destroy it.
func CreateExportableImage(
	logger *slog.Logger,
	device vulkan.Device,
	deviceMemory *vulkan.DeviceMemoryProperties,
	physicalDevice vulkan.PhysicalDevice,
	request ImageRequest,
) (resource *Resource, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("external::CreateExportableImage",
		slog.Int("Width", request.Width),
		slog.Int("Height", request.Height),
		slog.String("Format", request.Format.String()))

	if request.Width <= 0 || request.Height <= 0 {
		return nil, interop.Unsupported("cannot create an image of %dx%d", request.Width, request.Height)
	}

	format, _, err := capability.QueryExternalFormatSupport(physicalDevice, request.Query())
	if err != nil {
		return nil, err
	}

	if !capability.IsSupported(format, request.HandleType) {
		return nil, interop.Unsupported(
			"format %s with usage %s cannot be exported as %s: compatible handle types %s, features %s",
			request.Format, request.Usage, request.HandleType, format.CompatibleHandleTypes, format.Features,
		)
	}

	if !format.SupportsExtent(request.Width, request.Height) {
		return nil, interop.Unsupported(
			"image of %dx%d exceeds the maximum extent %dx%d of format %s",
			request.Width, request.Height,
			format.ImageFormatProperties.MaxExtent.Width, format.ImageFormatProperties.MaxExtent.Height,
			request.Format,
		)
	}

	confirmed := request.HandleType & format.CompatibleHandleTypes

	resource = &Resource{
		Request:         request,
		Format:          format,
		HandleType:      confirmed,
		MemoryTypeIndex: -1,

		logger:       logger,
		device:       device,
		deviceMemory: deviceMemory,
	}
	defer func() {
		if err != nil {
			logger.Error("exportable image creation failed", slog.Any("error", err))
		}
	}()

	image, res, err := device.CreateImage(core1_0.ImageCreateInfo{
		ImageType: core1_0.ImageType2D,
		Format:    request.Format,
		Extent: core1_0.Extent3D{
			Width:  request.Width,
			Height: request.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Samples:       core1_0.Samples1,
		Tiling:        request.Tiling,
		Usage:         request.Usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: core1_0.ImageLayoutUndefined,
		NextOptions: common.NextOptions{
			Next: khr_external_memory.ExternalMemoryImageCreateInfo{
				HandleTypes: confirmed,
			},
		},
	})
	if err != nil || image == nil {
		return resource, interop.NativeCallError("vkCreateImage", res, err)
	}
	resource.Image = image

	requirements, err := device.ImageMemoryRequirements(image)
	if err != nil {
		return resource, interop.Mark(err, interop.ErrNativeCallFailure, "vkGetImageMemoryRequirements")
	}

	memoryTypeIndex, err := FindMemoryTypeIndex(deviceMemory.MemoryProperties(), requirements.MemoryTypeBits, request.MemoryFlags)
	if err != nil {
		return resource, err
	}

	allocateInfo := vulkan.MemoryAllocateInfo{
		AllocationSize:    requirements.Size,
		MemoryTypeIndex:   memoryTypeIndex,
		ExportHandleTypes: confirmed,
	}
	if format.RequiresDedicatedAllocation() || requirements.RequiresDedicatedAllocation {
		allocateInfo.DedicatedImage = image
	}

	memory, res, err := deviceMemory.AllocateVulkanMemory(allocateInfo)
	if err != nil {
		return resource, interop.NativeCallError("vkAllocateMemory", res, err)
	}
	resource.Memory = memory
	resource.MemoryTypeIndex = memoryTypeIndex
	resource.AllocationSize = requirements.Size
	resource.Dedicated = allocateInfo.DedicatedImage != nil

	res, err = device.BindImageMemory(image, memory, 0)
	if err != nil {
		return resource, interop.NativeCallError("vkBindImageMemory", res, err)
	}

	handle, res, err := device.ExportMemoryWin32Handle(memory, confirmed)
	if err != nil || !handle.Valid() {
		return resource, interop.NativeCallError("vkGetMemoryWin32HandleKHR", res, err)
	}
	resource.Handle = handle

	logger.Debug("    Created exportable image",
		slog.Int("MemoryTypeIndex", memoryTypeIndex),
		slog.Int("AllocationSize", requirements.Size),
		slog.Bool("Dedicated", resource.Dedicated),
		slog.String("Handle", handle.String()))
	return resource, nil
}
