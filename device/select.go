package device

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"golang.org/x/exp/slog"
)

// Candidate is an enumerated physical device that passed selection, along with what was learned
// about it on the way
type Candidate struct {
	PhysicalDevice vulkan.PhysicalDevice
	// Index is the device's position in enumeration order
	Index int

	Properties *core1_0.PhysicalDeviceProperties
	Features   *core1_0.PhysicalDeviceFeatures

	// GraphicsQueueFamilyIndex is the last graphics-capable queue family the device reported
	GraphicsQueueFamilyIndex int

	Extensions        []string
	MissingExtensions []string
}

// SelectPhysicalDevice picks the first physical device, in enumeration order, that has a graphics
// queue family and, when wanted is not nil, carries the wanted adapter's device id. Desired
// extensions the device lacks are logged but do not disqualify it. If no device qualifies the
// error matches interop.ErrNoCompatiblePhysicalDevice; there is no fallback to an unrelated
// device.
func SelectPhysicalDevice(logger *slog.Logger, instance vulkan.Instance, wanted *AdapterDescriptor, desiredExtensions []string) (*Candidate, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("device::SelectPhysicalDevice")

	physicalDevices, res, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, interop.NativeCallError("vkEnumeratePhysicalDevices", res, err)
	}

	for index, physicalDevice := range physicalDevices {
		properties, err := physicalDevice.Properties()
		if err != nil {
			return nil, interop.Mark(err, interop.ErrNativeCallFailure, "vkGetPhysicalDeviceProperties")
		}
		deviceLogger := logger.With(slog.Int("Index", index), slog.String("DeviceName", properties.DriverName))

		graphicsFamily := graphicsQueueFamily(physicalDevice.QueueFamilyProperties())
		if graphicsFamily < 0 {
			deviceLogger.Debug("    Skipped device without a graphics queue family")
			continue
		}

		available, res, err := physicalDevice.EnumerateDeviceExtensionProperties()
		if err != nil {
			return nil, interop.NativeCallError("vkEnumerateDeviceExtensionProperties", res, err)
		}
		missing := missingNames(desiredExtensions, available)
		if len(missing) > 0 {
			deviceLogger.Warn("physical device is missing desired extensions",
				slog.String("MissingExtensions", strings.Join(missing, ",")))
		}

		if wanted != nil && !wanted.Matches(properties) {
			deviceLogger.Debug("    Skipped device not matching the host adapter",
				slog.Int("DeviceID", int(properties.DeviceID)),
				slog.Int("WantedDeviceID", int(wanted.DeviceID)))
			continue
		}

		extensions := make([]string, 0, len(desiredExtensions))
		for _, name := range desiredExtensions {
			if _, ok := available[name]; ok {
				extensions = append(extensions, name)
			}
		}

		deviceLogger.Debug("    Selected physical device", slog.Int("GraphicsQueueFamilyIndex", graphicsFamily))
		return &Candidate{
			PhysicalDevice:           physicalDevice,
			Index:                    index,
			Properties:               properties,
			Features:                 physicalDevice.Features(),
			GraphicsQueueFamilyIndex: graphicsFamily,
			Extensions:               extensions,
			MissingExtensions:        missing,
		}, nil
	}

	if wanted != nil {
		return nil, errors.Mark(
			errors.Newf("none of %d physical devices matches adapter %s", len(physicalDevices), wanted),
			interop.ErrNoCompatiblePhysicalDevice,
		)
	}
	return nil, errors.Mark(
		errors.Newf("none of %d physical devices has a graphics queue family", len(physicalDevices)),
		interop.ErrNoCompatiblePhysicalDevice,
	)
}

// graphicsQueueFamily returns the index of the last graphics-capable family, or -1
func graphicsQueueFamily(families []*core1_0.QueueFamilyProperties) int {
	index := -1
	for familyIndex, family := range families {
		if family != nil && family.QueueFlags&core1_0.QueueGraphics != 0 {
			index = familyIndex
		}
	}
	return index
}
