package device

import (
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

const defaultQueuePriority float32 = 0.0

// LogicalDevice is the device created from a selected candidate. It owns every image and
// allocation made for sharing.
type LogicalDevice struct {
	Device    vulkan.Device
	Candidate *Candidate

	QueueFamilyIndex int
	Extensions       []string
}

// CreateLogicalDevice creates a device with a single queue from the candidate's graphics family,
// no layers and no optional features. Desired extensions the candidate lacks were already
// reported during selection and are left out.
func CreateLogicalDevice(logger *slog.Logger, candidate *Candidate, desiredExtensions []string) (*LogicalDevice, error) {
	if candidate == nil {
		panic("attempted to create a logical device without a physical device candidate")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("device::CreateLogicalDevice", slog.Int("QueueFamilyIndex", candidate.GraphicsQueueFamilyIndex))

	extensions := make([]string, 0, len(desiredExtensions))
	for _, name := range desiredExtensions {
		if !slices.Contains(candidate.MissingExtensions, name) {
			extensions = append(extensions, name)
		}
	}

	device, res, err := candidate.PhysicalDevice.CreateDevice(core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: candidate.GraphicsQueueFamilyIndex,
				QueuePriorities:  []float32{defaultQueuePriority},
			},
		},
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensions,
	})
	if err != nil || device == nil {
		logger.Error("logical device creation failed", slog.Any("error", err))
		return nil, interop.NativeCallError("vkCreateDevice", res, err)
	}

	return &LogicalDevice{
		Device:           device,
		Candidate:        candidate,
		QueueFamilyIndex: candidate.GraphicsQueueFamilyIndex,
		Extensions:       extensions,
	}, nil
}

func (d *LogicalDevice) Destroy() {
	if d == nil || d.Device == nil {
		return
	}

	d.Device.Destroy()
	d.Device = nil
}
