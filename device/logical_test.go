package device

import (
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
)

func selectFirst(t *testing.T, loader *fakevk.Loader) *Candidate {
	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.NoError(t, err)
	return candidate
}

func TestCreateLogicalDevice_SingleQueue(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	candidate := selectFirst(t, loader)

	device, err := CreateLogicalDevice(testLogger(), candidate, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, fakevk.GraphicsFamilyIndex, device.QueueFamilyIndex)

	physicalDevice := loader.Instance.PhysicalDevices[0]
	require.Len(t, physicalDevice.DeviceCreateInfos, 1)
	info := physicalDevice.DeviceCreateInfos[0]
	require.Len(t, info.QueueCreateInfos, 1)
	require.Equal(t, fakevk.GraphicsFamilyIndex, info.QueueCreateInfos[0].QueueFamilyIndex)
	require.Equal(t, []float32{0.0}, info.QueueCreateInfos[0].QueuePriorities)
	require.Equal(t, DefaultDeviceExtensions, info.EnabledExtensionNames)
	require.Equal(t, &core1_0.PhysicalDeviceFeatures{}, info.EnabledFeatures)
	require.Equal(t, DefaultDeviceExtensions, physicalDevice.Device.ActiveExtensions)
}

func TestCreateLogicalDevice_LeavesOutMissingExtensions(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	loader.Instance.PhysicalDevices[0].Extensions = []string{"VK_KHR_external_memory", "VK_KHR_external_memory_win32"}
	candidate := selectFirst(t, loader)

	device, err := CreateLogicalDevice(testLogger(), candidate, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, []string{"VK_KHR_external_memory", "VK_KHR_external_memory_win32"}, device.Extensions)
}

func TestCreateLogicalDevice_Failure(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	loader.Instance.PhysicalDevices[0].CreateDeviceResult = core1_0.VKErrorExtensionNotPresent
	candidate := selectFirst(t, loader)

	device, err := CreateLogicalDevice(testLogger(), candidate, DefaultDeviceExtensions)
	require.True(t, cerrors.Is(err, interop.ErrNativeCallFailure))
	require.Nil(t, device)
}

func TestCreateLogicalDevice_NullDevice(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	loader.Instance.PhysicalDevices[0].Device = nil
	candidate := selectFirst(t, loader)

	_, err := CreateLogicalDevice(testLogger(), candidate, DefaultDeviceExtensions)
	require.True(t, cerrors.Is(err, interop.ErrNativeCallFailure))
}

func TestLogicalDeviceDestroy(t *testing.T) {
	log := &fakevk.CallLog{}
	loader := fakevk.NewRig(log, 0x2204)
	candidate := selectFirst(t, loader)

	device, err := CreateLogicalDevice(testLogger(), candidate, DefaultDeviceExtensions)
	require.NoError(t, err)

	device.Destroy()
	device.Destroy()

	require.Equal(t, 1, log.Count("vkDestroyDevice"))
}
