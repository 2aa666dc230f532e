package external

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/d3dshare/capability"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"golang.org/x/exp/slog"
)

// Resource is a Vulkan image bound to exportable device memory, along with the OS handle the
// memory was exported through. The resource owns the image, the memory and the handle; a D3D11
// texture opened from the handle holds its own reference to the memory.
type Resource struct {
	Request ImageRequest
	Format  *capability.ExternalImageFormat
	// HandleType is the handle type confirmed by negotiation
	HandleType khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	Image           vulkan.Image
	Memory          vulkan.DeviceMemory
	MemoryTypeIndex int
	AllocationSize  int
	Dedicated       bool

	Handle interop.Handle

	logger       *slog.Logger
	device       vulkan.Device
	deviceMemory *vulkan.DeviceMemoryProperties

	registry *Registry
	prev     *Resource
	next     *Resource
}

// Destroy closes the exported handle, frees the memory and destroys the image, in that order.
// It is safe on resources left partially built by a failed CreateExportableImage and on
// resources that were already destroyed. A resource must be unregistered before it is destroyed.
func (r *Resource) Destroy() error {
	if r == nil {
		return nil
	}
	if r.registry != nil {
		return errors.New("attempted to destroy a resource that is still registered")
	}

	var err error
	if r.Handle.Valid() {
		err = r.device.CloseWin32Handle(r.Handle)
		if err != nil {
			err = interop.Mark(err, interop.ErrNativeCallFailure, "closing exported handle %s", r.Handle)
		}
		r.Handle = interop.InvalidHandle
	}

	if r.Memory != nil {
		r.deviceMemory.FreeVulkanMemory(r.MemoryTypeIndex, r.AllocationSize, r.Memory)
		r.Memory = nil
	}

	if r.Image != nil {
		r.Image.Destroy()
		r.Image = nil
	}

	r.logger.Debug("    Destroyed exportable image", slog.Int("Width", r.Request.Width), slog.Int("Height", r.Request.Height))
	return err
}

func (r *Resource) PrintParameters(json *jwriter.ObjectState) {
	json.Name("Width").Int(r.Request.Width)
	json.Name("Height").Int(r.Request.Height)
	json.Name("Format").String(r.Request.Format.String())
	json.Name("HandleType").String(r.HandleType.String())
	json.Name("Handle").String(r.Handle.String())
	json.Name("MemoryTypeIndex").Int(r.MemoryTypeIndex)
	json.Name("AllocationSize").Int(r.AllocationSize)
	json.Name("Dedicated").Bool(r.Dedicated)

	if r.Format != nil {
		format := json.Name("Capability").Object()
		r.Format.PrintParameters(&format)
		format.End()
	}
}
