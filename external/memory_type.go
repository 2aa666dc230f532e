package external

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
)

// FindMemoryTypeIndex returns the first memory type allowed by typeBits whose property flags
// include every requested flag. When none qualifies the error matches both
// interop.ErrNoSuitableMemoryType and interop.ErrFormatOrHandleTypeUnsupported.
func FindMemoryTypeIndex(
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties,
	memoryTypeBits uint32,
	requiredFlags core1_0.MemoryPropertyFlags,
) (int, error) {
	for memTypeIndex, memType := range memoryProperties.MemoryTypes {
		if memTypeIndex >= 32 {
			break
		}

		memTypeBit := uint32(1) << memTypeIndex
		if memTypeBit&memoryTypeBits == 0 {
			// This memory type is banned by the bitmask
			continue
		}

		if memType.PropertyFlags&requiredFlags != requiredFlags {
			// This memory type is missing required flags
			continue
		}

		return memTypeIndex, nil
	}

	return -1, errors.Mark(
		interop.Unsupported("no memory type in mask 0x%x has properties %s", memoryTypeBits, requiredFlags),
		interop.ErrNoSuitableMemoryType,
	)
}
