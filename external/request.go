package external

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/capability"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

// ImageRequest describes a 2D image to be created on exportable memory
type ImageRequest struct {
	Width  int
	Height int

	Format core1_0.Format
	Usage  core1_0.ImageUsageFlags
	Tiling core1_0.ImageTiling

	// MemoryFlags must all be present on the memory type the image is bound to
	MemoryFlags core1_0.MemoryPropertyFlags
	// HandleType is the single OS handle type the memory is exported through
	HandleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
}

// Query is the capability query tuple the request is negotiated with
func (r ImageRequest) Query() capability.Query {
	return capability.Query{
		Format:     r.Format,
		Type:       core1_0.ImageType2D,
		Tiling:     r.Tiling,
		Usage:      r.Usage,
		HandleType: r.HandleType,
	}
}
