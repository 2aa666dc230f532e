package fakevk

import (
	"fmt"

	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

const (
	// MemoryTypeHostVisible, MemoryTypeDeviceLocal and MemoryTypeDeviceLocalHostVisible index the
	// memory types of NewPhysicalDevice
	MemoryTypeHostVisible            = 0
	MemoryTypeDeviceLocal            = 1
	MemoryTypeDeviceLocalHostVisible = 2

	// GraphicsFamilyIndex is the last graphics-capable family of NewPhysicalDevice
	GraphicsFamilyIndex = 2

	ExportedHandle interop.Handle = 0x44
)

// NewPhysicalDevice builds a discrete GPU offering every device extension, a compute family
// followed by two graphics families, three memory types, and image formats that are exportable
// and importable as opaque Win32 handles
func NewPhysicalDevice(log *CallLog, deviceID uint32) *PhysicalDevice {
	return &PhysicalDevice{
		Log: log,
		DeviceProperties: core1_0.PhysicalDeviceProperties{
			DriverName: fmt.Sprintf("Fake GPU %04x", deviceID),
			DeviceID:   deviceID,
			VendorID:   0x10de,
			DriverType: core1_0.PhysicalDeviceTypeDiscreteGPU,
			Limits: &core1_0.PhysicalDeviceLimits{
				MaxMemoryAllocationCount: 4096,
			},
		},
		QueueFamilies: []*core1_0.QueueFamilyProperties{
			{QueueFlags: core1_0.QueueCompute, QueueCount: 2},
			{QueueFlags: core1_0.QueueGraphics | core1_0.QueueCompute | core1_0.QueueTransfer, QueueCount: 16},
			{QueueFlags: core1_0.QueueGraphics, QueueCount: 1},
		},
		Extensions: append([]string(nil), AllDeviceExtensions...),
		Memory: core1_0.PhysicalDeviceMemoryProperties{
			MemoryTypes: []core1_0.MemoryType{
				{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent, HeapIndex: 1},
				{PropertyFlags: core1_0.MemoryPropertyDeviceLocal, HeapIndex: 0},
				{PropertyFlags: core1_0.MemoryPropertyDeviceLocal | core1_0.MemoryPropertyHostVisible, HeapIndex: 0},
			},
			MemoryHeaps: []core1_0.MemoryHeap{
				{Size: 8 << 30},
				{Size: 16 << 30},
			},
		},
		FormatProperties: core1_0.ImageFormatProperties{
			MaxExtent:       core1_0.Extent3D{Width: 16384, Height: 16384, Depth: 1},
			MaxMipLevels:    15,
			MaxArrayLayers:  2048,
			SampleCounts:    core1_0.Samples1,
			MaxResourceSize: 1 << 31,
		},
		ExternalProperties: khr_external_memory_capabilities.ExternalMemoryProperties{
			ExternalMemoryFeatures: khr_external_memory_capabilities.ExternalMemoryFeatureExportable |
				khr_external_memory_capabilities.ExternalMemoryFeatureImportable,
			CompatibleHandleTypes: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32 |
				khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32KMT,
		},
		Device: &Device{
			Log:         log,
			HandleValue: procs.Handle(0x2000 + uintptr(deviceID)),
			Requirements: vulkan.MemoryRequirements{
				MemoryRequirements: core1_0.MemoryRequirements{
					Size:           1024 * 768 * 4,
					Alignment:      256,
					MemoryTypeBits: 1<<MemoryTypeDeviceLocal | 1<<MemoryTypeDeviceLocalHostVisible,
				},
			},
			ExportHandle: ExportedHandle,
		},
	}
}

// NewRig builds a loader offering every instance extension and layer, whose instance enumerates
// one NewPhysicalDevice per device id, in order
func NewRig(log *CallLog, deviceIDs ...uint32) *Loader {
	instance := &Instance{
		Log:         log,
		HandleValue: procs.Handle(0x1000),
	}
	for _, deviceID := range deviceIDs {
		instance.PhysicalDevices = append(instance.PhysicalDevices, NewPhysicalDevice(log, deviceID))
	}

	return &Loader{
		Log:        log,
		Extensions: append([]string(nil), AllInstanceExtensions...),
		Layers:     append([]string(nil), AllLayers...),
		Instance:   instance,
	}
}
