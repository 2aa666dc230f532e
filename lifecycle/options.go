package lifecycle

import (
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/device"
	"github.com/vkngwrapper/d3dshare/external"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// CreateFlags indicate specific controller behaviors to activate or deactivate
type CreateFlags int32

var createFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	createFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return createFlagsMapping.FlagsToString(f)
}

const (
	// CreateEnableValidation enables the debug utils extension and the Khronos validation layer,
	// and routes validation messages to the controller's logger. Initialization fails if the
	// layer is not installed.
	CreateEnableValidation CreateFlags = 1 << iota
	// CreateExternallySynchronized ensures that the controller and the resources it creates are
	// not synchronized internally. The host must guarantee that it only calls in from one thread
	// at a time.
	CreateExternallySynchronized
)

func init() {
	CreateEnableValidation.Register("CreateEnableValidation")
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
}

const defaultApplicationName = "d3dshare"

// CreateOptions contains optional settings when creating a Controller. It is valid to leave
// every field blank.
type CreateOptions struct {
	Flags CreateFlags

	// ApplicationName is reported to the Vulkan driver
	ApplicationName string

	// Format, Usage, Tiling, MemoryFlags and HandleType describe every image shared in the
	// Vulkan-creates direction. Zero values are replaced with an RGBA8 UNORM, optimally tiled,
	// device-local color attachment exported as an opaque Win32 handle.
	Format      core1_0.Format
	Usage       core1_0.ImageUsageFlags
	Tiling      core1_0.ImageTiling
	MemoryFlags core1_0.MemoryPropertyFlags
	HandleType  khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	// DeviceExtensions replaces device.DefaultDeviceExtensions when it is not empty
	DeviceExtensions []string
	// InstanceExtensions and Layers are required in addition to the defaults
	InstanceExtensions []string
	Layers             []string

	// HeapSizeLimits can be left empty. If it is provided, it must hold one entry per memory
	// heap of the selected physical device: the most bytes exportable images may take from
	// that heap, or 0 for no limit.
	HeapSizeLimits []int
}

const defaultUsage = core1_0.ImageUsageColorAttachment | core1_0.ImageUsageSampled |
	core1_0.ImageUsageTransferSrc | core1_0.ImageUsageTransferDst

func (o CreateOptions) withDefaults() CreateOptions {
	if o.ApplicationName == "" {
		o.ApplicationName = defaultApplicationName
	}
	if o.Format == core1_0.FormatUndefined {
		o.Format = core1_0.FormatR8G8B8A8UnsignedNormalized
	}
	if o.Usage == 0 {
		o.Usage = defaultUsage
	}
	// ImageTilingOptimal is the zero value
	if o.MemoryFlags == 0 {
		o.MemoryFlags = core1_0.MemoryPropertyDeviceLocal
	}
	if o.HandleType == 0 {
		o.HandleType = khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32
	}
	if len(o.DeviceExtensions) == 0 {
		o.DeviceExtensions = device.DefaultDeviceExtensions
	}
	return o
}

func (o CreateOptions) instanceOptions() device.InstanceOptions {
	return device.InstanceOptions{
		ApplicationName: o.ApplicationName,
		EngineName:      defaultApplicationName,
		EnableDebug:     o.Flags&CreateEnableValidation != 0,
		ExtraExtensions: o.InstanceExtensions,
		ExtraLayers:     o.Layers,
	}
}

func (o CreateOptions) imageRequest(width, height int) external.ImageRequest {
	return external.ImageRequest{
		Width:       width,
		Height:      height,
		Format:      o.Format,
		Usage:       o.Usage,
		Tiling:      o.Tiling,
		MemoryFlags: o.MemoryFlags,
		HandleType:  o.HandleType,
	}
}
