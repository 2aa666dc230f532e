package lifecycle

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/d3dshare/d3d11"
	mock_d3d11 "github.com/vkngwrapper/d3dshare/d3d11/mocks"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

const hostDeviceID uint32 = 0x2204

type testHost struct {
	Device d3d11.Device
	Err    error
}

func (h *testHost) D3D11Device() (d3d11.Device, error) {
	return h.Device, h.Err
}

type controllerRig struct {
	Log        *fakevk.CallLog
	Loader     *fakevk.Loader
	Ctrl       *gomock.Controller
	D3D11      *mock_d3d11.MockDevice
	Host       *testHost
	Controller *Controller
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newControllerRig(t *testing.T, options CreateOptions, deviceIDs ...uint32) *controllerRig {
	if len(deviceIDs) == 0 {
		deviceIDs = []uint32{hostDeviceID}
	}

	log := &fakevk.CallLog{}
	loader := fakevk.NewRig(log, deviceIDs...)
	ctrl := gomock.NewController(t)
	d3dDevice := mock_d3d11.NewMockDevice(ctrl)
	host := &testHost{Device: d3dDevice}

	rig := &controllerRig{
		Log:    log,
		Loader: loader,
		Ctrl:   ctrl,
		D3D11:  d3dDevice,
		Host:   host,
	}
	rig.Controller = New(testLogger(), host, func() (vulkan.Loader, error) {
		return rig.Loader, nil
	}, options)
	return rig
}

func (r *controllerRig) expectAdapter(deviceID uint32) {
	r.D3D11.EXPECT().AdapterDesc().Return(d3d11.AdapterDesc{
		Description: "Fake Adapter",
		VendorID:    0x10de,
		DeviceID:    deviceID,
	}, nil)
}

func (r *controllerRig) initialize(t *testing.T) {
	r.expectAdapter(hostDeviceID)
	require.NoError(t, r.Controller.OnDeviceEvent(EventInitialize))
	require.Equal(t, DeviceReady, r.Controller.State())
}

func (r *controllerRig) physicalDevice(index int) *fakevk.PhysicalDevice {
	return r.Loader.Instance.PhysicalDevices[index]
}

// expectImport scripts the host device to open the exported handle as a texture matching the
// request
func (r *controllerRig) expectImport(width, height int, pointer uintptr) *mock_d3d11.MockTexture2D {
	texture := mock_d3d11.NewMockTexture2D(r.Ctrl)
	r.D3D11.EXPECT().OpenSharedTexture2D(fakevk.ExportedHandle).Return(texture, nil)
	texture.EXPECT().Desc().Return(d3d11.Texture2DDesc{
		Width:     uint32(width),
		Height:    uint32(height),
		MipLevels: 1,
		ArraySize: 1,
		Format:    d3d11.FormatR8G8B8A8UNorm,
	})
	texture.EXPECT().NativePointer().Return(pointer)
	return texture
}

func requireIs(t *testing.T, err error, reference error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, reference), "expected %v to match %v", err, reference)
}
