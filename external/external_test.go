package external

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"golang.org/x/exp/slog"
)

type testRig struct {
	Log            *fakevk.CallLog
	PhysicalDevice *fakevk.PhysicalDevice
	Device         *fakevk.Device
	Memory         *vulkan.DeviceMemoryProperties
}

func newTestRig(t *testing.T) *testRig {
	log := &fakevk.CallLog{}
	physicalDevice := fakevk.NewPhysicalDevice(log, 0x2204)

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)

	return &testRig{
		Log:            log,
		PhysicalDevice: physicalDevice,
		Device:         physicalDevice.Device,
		Memory:         memory,
	}
}

func (r *testRig) create(request ImageRequest) (*Resource, error) {
	return CreateExportableImage(testLogger(), r.Device, r.Memory, r.PhysicalDevice, request)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultRequest(width, height int) ImageRequest {
	return ImageRequest{
		Width:       width,
		Height:      height,
		Format:      core1_0.FormatR8G8B8A8UnsignedNormalized,
		Usage:       core1_0.ImageUsageColorAttachment | core1_0.ImageUsageSampled | core1_0.ImageUsageTransferSrc,
		Tiling:      core1_0.ImageTilingOptimal,
		MemoryFlags: core1_0.MemoryPropertyDeviceLocal,
		HandleType:  khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
	}
}
