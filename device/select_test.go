package device

import (
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
)

func TestSelectPhysicalDevice_LastGraphicsFamilyWins(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)

	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, fakevk.GraphicsFamilyIndex, candidate.GraphicsQueueFamilyIndex)
	require.Equal(t, 0, candidate.Index)
	require.Equal(t, DefaultDeviceExtensions, candidate.Extensions)
	require.Empty(t, candidate.MissingExtensions)
}

func TestSelectPhysicalDevice_SkipsDeviceWithoutGraphics(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x1111, 0x2204)
	loader.Instance.PhysicalDevices[0].QueueFamilies = []*core1_0.QueueFamilyProperties{
		{QueueFlags: core1_0.QueueCompute | core1_0.QueueTransfer, QueueCount: 4},
	}

	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, 1, candidate.Index)
	require.Equal(t, uint32(0x2204), candidate.Properties.DeviceID)
}

func TestSelectPhysicalDevice_FirstAcceptableWins(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x1111, 0x2204)

	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, 0, candidate.Index)
	require.Equal(t, uint32(0x1111), candidate.Properties.DeviceID)
}

func TestSelectPhysicalDevice_MatchesAdapter(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x1111, 0x2204, 0x3333)
	wanted := &AdapterDescriptor{DeviceID: 0x2204, VendorID: 0x10de, Description: "Host GPU"}

	for i := 0; i < 3; i++ {
		candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, wanted, DefaultDeviceExtensions)
		require.NoError(t, err)
		require.Equal(t, 1, candidate.Index)
		require.Equal(t, uint32(0x2204), candidate.Properties.DeviceID)
	}
}

func TestSelectPhysicalDevice_NoAdapterMatch(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x1111, 0x3333)
	wanted := &AdapterDescriptor{DeviceID: 0x2204}

	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, wanted, DefaultDeviceExtensions)
	require.True(t, cerrors.Is(err, interop.ErrNoCompatiblePhysicalDevice))
	require.Nil(t, candidate)
}

func TestSelectPhysicalDevice_NoDevices(t *testing.T) {
	loader := fakevk.NewRig(nil)

	_, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.True(t, cerrors.Is(err, interop.ErrNoCompatiblePhysicalDevice))
}

func TestSelectPhysicalDevice_MissingExtensionIsSoft(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	loader.Instance.PhysicalDevices[0].Extensions = []string{"VK_KHR_external_memory"}

	candidate, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.NoError(t, err)
	require.Equal(t, []string{"VK_KHR_external_memory"}, candidate.Extensions)
	require.Len(t, candidate.MissingExtensions, len(DefaultDeviceExtensions)-1)
	require.Contains(t, candidate.MissingExtensions, "VK_KHR_external_memory_win32")
}

func TestSelectPhysicalDevice_EnumerationFails(t *testing.T) {
	loader := fakevk.NewRig(nil, 0x2204)
	loader.Instance.EnumerateResult = core1_0.VKErrorInitializationFailed

	_, err := SelectPhysicalDevice(testLogger(), loader.Instance, nil, DefaultDeviceExtensions)
	require.True(t, cerrors.Is(err, interop.ErrNativeCallFailure))
}

func TestAdapterDescriptor_Matches(t *testing.T) {
	descriptor := AdapterDescriptor{DeviceID: 0x2204, VendorID: 0x10de}

	require.True(t, descriptor.Matches(&core1_0.PhysicalDeviceProperties{DeviceID: 0x2204, VendorID: 0x1002}))
	require.False(t, descriptor.Matches(&core1_0.PhysicalDeviceProperties{DeviceID: 0x2205, VendorID: 0x10de}))
	require.False(t, descriptor.Matches(nil))
}
