package capability

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/core1_1"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// Query is the (format, type, tiling, usage, flags, handle type) tuple an external image format
// capability is reported for. A capability is only valid for the exact tuple it was queried with.
type Query struct {
	Format     core1_0.Format
	Type       core1_0.ImageType
	Tiling     core1_0.ImageTiling
	Usage      core1_0.ImageUsageFlags
	Flags      core1_0.ImageCreateFlags
	HandleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
}

// ExternalImageFormat is the answer to an external image format query: which OS handle types the
// driver can share the image through, and whether it can export, import, or only do either with a
// dedicated allocation
type ExternalImageFormat struct {
	Query Query

	CompatibleHandleTypes         khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
	ExportFromImportedHandleTypes khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
	Features                      khr_external_memory_capabilities.ExternalMemoryFeatureFlags

	ImageFormatProperties core1_0.ImageFormatProperties
}

// QueryExternalFormatSupport asks the physical device whether images of the queried tuple can be
// backed by external memory of the queried handle type. A format the driver rejects outright
// produces a capability with no handle types and no features rather than an error.
func QueryExternalFormatSupport(physicalDevice vulkan.PhysicalDevice, query Query) (*ExternalImageFormat, common.VkResult, error) {
	if physicalDevice == nil {
		panic("attempted to query external image format support without a physical device")
	}

	if bits.OnesCount32(uint32(query.HandleType)) != 1 {
		return nil, core1_0.VKErrorFormatNotSupported, interop.Unsupported("external image format queries take exactly one handle type, got %s", query.HandleType)
	}

	externalProperties := khr_external_memory_capabilities.ExternalImageFormatProperties{}
	formatProperties := core1_1.ImageFormatProperties2{
		NextOutData: common.NextOutData{
			Next: &externalProperties,
		},
	}

	res, err := physicalDevice.ImageFormatProperties2(
		core1_1.PhysicalDeviceImageFormatInfo2{
			Format: query.Format,
			Type:   query.Type,
			Tiling: query.Tiling,
			Usage:  query.Usage,
			Flags:  query.Flags,
			NextOptions: common.NextOptions{
				Next: khr_external_memory_capabilities.PhysicalDeviceExternalImageFormatInfo{
					HandleType: query.HandleType,
				},
			},
		},
		&formatProperties,
	)
	if res == core1_0.VKErrorFormatNotSupported {
		return &ExternalImageFormat{Query: query}, res, nil
	}
	if errors.Is(err, interop.ErrCapabilityUnavailable) {
		return nil, res, err
	}
	if err != nil {
		return nil, res, interop.NativeCallError("vkGetPhysicalDeviceImageFormatProperties2", res, err)
	}

	return &ExternalImageFormat{
		Query:                         query,
		CompatibleHandleTypes:         externalProperties.ExternalMemoryProperties.CompatibleHandleTypes,
		ExportFromImportedHandleTypes: externalProperties.ExternalMemoryProperties.ExportFromImportedHandleTypes,
		Features:                      externalProperties.ExternalMemoryProperties.ExternalMemoryFeatures,
		ImageFormatProperties:         formatProperties.ImageFormatProperties,
	}, res, nil
}

// IsSupported reports whether memory of every wanted handle type can be exported for the
// capability's tuple. Requiring a dedicated allocation does not disqualify a format; the
// allocation must simply be dedicated.
func IsSupported(capability *ExternalImageFormat, wanted khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags) bool {
	if capability == nil || wanted == 0 {
		return false
	}

	return capability.CompatibleHandleTypes&wanted == wanted && capability.Exportable()
}

func (c *ExternalImageFormat) Exportable() bool {
	return c.Features&khr_external_memory_capabilities.ExternalMemoryFeatureExportable != 0
}

func (c *ExternalImageFormat) Importable() bool {
	return c.Features&khr_external_memory_capabilities.ExternalMemoryFeatureImportable != 0
}

func (c *ExternalImageFormat) RequiresDedicatedAllocation() bool {
	return c.Features&khr_external_memory_capabilities.ExternalMemoryFeatureDedicatedOnly != 0
}

// SupportsExtent reports whether a 2D image of the given size fits in the format's limits. A
// driver that reported no limits is trusted.
func (c *ExternalImageFormat) SupportsExtent(width, height int) bool {
	maxExtent := c.ImageFormatProperties.MaxExtent
	if maxExtent.Width == 0 && maxExtent.Height == 0 {
		return true
	}

	return width <= maxExtent.Width && height <= maxExtent.Height
}

func (c *ExternalImageFormat) PrintParameters(json *jwriter.ObjectState) {
	json.Name("Format").String(c.Query.Format.String())
	json.Name("Tiling").String(c.Query.Tiling.String())
	json.Name("Usage").String(c.Query.Usage.String())
	json.Name("HandleType").String(c.Query.HandleType.String())
	json.Name("CompatibleHandleTypes").String(c.CompatibleHandleTypes.String())
	json.Name("ExportFromImportedHandleTypes").String(c.ExportFromImportedHandleTypes.String())
	json.Name("Features").String(c.Features.String())
	json.Name("Exportable").Bool(c.Exportable())
	json.Name("Importable").Bool(c.Importable())
	json.Name("DedicatedOnly").Bool(c.RequiresDedicatedAllocation())
	json.Name("MaxWidth").Int(c.ImageFormatProperties.MaxExtent.Width)
	json.Name("MaxHeight").Int(c.ImageFormatProperties.MaxExtent.Height)
}
