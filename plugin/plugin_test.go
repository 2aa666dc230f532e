package plugin

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/d3dshare/d3d11"
	mock_d3d11 "github.com/vkngwrapper/d3dshare/d3d11/mocks"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/lifecycle"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

const deviceID uint32 = 0x2204

type testGraphics struct {
	renderer Renderer
	device   d3d11.Device
	callback func(event lifecycle.EventKind)

	unregistered int
}

func (g *testGraphics) Renderer() Renderer {
	return g.renderer
}

func (g *testGraphics) D3D11Device() (d3d11.Device, error) {
	return g.device, nil
}

func (g *testGraphics) RegisterDeviceEventCallback(callback func(event lifecycle.EventKind)) {
	g.callback = callback
}

func (g *testGraphics) UnregisterDeviceEventCallback() {
	g.callback = nil
	g.unregistered++
}

type pluginRig struct {
	Log      *fakevk.CallLog
	Loader   *fakevk.Loader
	Ctrl     *gomock.Controller
	D3D11    *mock_d3d11.MockDevice
	Graphics *testGraphics
	Plugin   *Plugin
}

func newPluginRig(t *testing.T, renderer Renderer, logger *slog.Logger) *pluginRig {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log := &fakevk.CallLog{}
	ctrl := gomock.NewController(t)
	rig := &pluginRig{
		Log:    log,
		Loader: fakevk.NewRig(log, deviceID),
		Ctrl:   ctrl,
		D3D11:  mock_d3d11.NewMockDevice(ctrl),
	}
	rig.Graphics = &testGraphics{renderer: renderer, device: rig.D3D11}
	rig.Plugin = New(logger, rig.Graphics, func() (vulkan.Loader, error) {
		return rig.Loader, nil
	}, lifecycle.CreateOptions{})
	return rig
}

func (r *pluginRig) load(t *testing.T) {
	r.D3D11.EXPECT().AdapterDesc().Return(d3d11.AdapterDesc{DeviceID: deviceID}, nil)
	require.NoError(t, r.Plugin.Load())
	require.True(t, r.Plugin.Active())
	require.Equal(t, lifecycle.DeviceReady, r.Plugin.Controller().State())
}

func TestPlugin_LoadAndUnload(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)
	require.NotNil(t, rig.Graphics.callback)

	// Loading twice does nothing
	require.NoError(t, rig.Plugin.Load())
	require.Equal(t, 1, rig.Log.Count("vkCreateInstance"))

	require.NoError(t, rig.Plugin.Unload())
	require.False(t, rig.Plugin.Active())
	require.Nil(t, rig.Graphics.callback)
	require.Equal(t, 1, rig.Graphics.unregistered)
	require.Equal(t, lifecycle.Uninitialized, rig.Plugin.Controller().State())
	require.True(t, rig.Log.Has("vkDestroyInstance"))

	require.NoError(t, rig.Plugin.Unload())
	require.Equal(t, 1, rig.Graphics.unregistered)
}

func TestPlugin_DeviceEventsReachController(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)

	rig.Graphics.callback(lifecycle.EventBeforeReset)
	require.Equal(t, lifecycle.DeviceReady, rig.Plugin.Controller().State())

	rig.Graphics.callback(lifecycle.EventShutdown)
	require.Equal(t, lifecycle.Uninitialized, rig.Plugin.Controller().State())

	rig.D3D11.EXPECT().AdapterDesc().Return(d3d11.AdapterDesc{DeviceID: deviceID}, nil)
	rig.Graphics.callback(lifecycle.EventInitialize)
	require.Equal(t, lifecycle.DeviceReady, rig.Plugin.Controller().State())
}

func TestPlugin_InactiveOutsideD3D11(t *testing.T) {
	rig := newPluginRig(t, RendererVulkan, nil)

	require.NoError(t, rig.Plugin.Load())
	require.False(t, rig.Plugin.Active())
	require.Nil(t, rig.Graphics.callback)
	require.Empty(t, rig.Log.Calls)

	require.Zero(t, rig.Plugin.CreateExternalTexture(1024, 768))
	require.Zero(t, rig.Plugin.CreateSharedTextureView(1024, 768))
	require.NoError(t, rig.Plugin.Unload())
	require.Zero(t, rig.Graphics.unregistered)
}

func TestPlugin_CreateExternalTexture(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)

	texture := mock_d3d11.NewMockTexture2D(rig.Ctrl)
	rig.D3D11.EXPECT().OpenSharedTexture2D(fakevk.ExportedHandle).Return(texture, nil)
	texture.EXPECT().Desc().Return(d3d11.Texture2DDesc{Width: 1024, Height: 768, Format: d3d11.FormatR8G8B8A8UNorm})
	texture.EXPECT().NativePointer().Return(uintptr(0x7e57))

	pointer := rig.Plugin.CreateExternalTexture(1024, 768)
	require.Equal(t, uintptr(0x7e57), pointer)

	texture.EXPECT().Release()
	rig.Plugin.ReleaseTexture(pointer)
	require.Zero(t, rig.Plugin.Controller().SharedTextureCount())

	// Unknown and null pointers are ignored
	rig.Plugin.ReleaseTexture(pointer)
	rig.Plugin.ReleaseTexture(0)
}

func TestPlugin_CreateExternalTextureFailureLogged(t *testing.T) {
	var buf bytes.Buffer
	rig := newPluginRig(t, RendererD3D11, slog.New(slog.NewJSONHandler(&buf, nil)))
	rig.load(t)
	rig.Loader.Instance.PhysicalDevices[0].ExternalProperties.CompatibleHandleTypes = khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32KMT

	require.Zero(t, rig.Plugin.CreateExternalTexture(1024, 768))
	require.False(t, rig.Log.Has("vkCreateImage"))

	var found bool
	decoder := json.NewDecoder(&buf)
	for decoder.More() {
		var entry map[string]any
		require.NoError(t, decoder.Decode(&entry))
		if entry["msg"] == "texture sharing failed" {
			found = true
			require.Equal(t, "CreateExternalTexture", entry["Operation"])
			require.Equal(t, "ERROR", entry["level"])
		}
	}
	require.True(t, found)
}

func TestPlugin_NegativeSizeRejected(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)

	require.Zero(t, rig.Plugin.CreateExternalTexture(-1, 768))
	require.Zero(t, rig.Plugin.CreateSharedTextureView(1024, -768))
	require.False(t, rig.Log.Has("vkGetPhysicalDeviceImageFormatProperties2"))
}

func TestPlugin_CreateSharedTextureView(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)

	texture := mock_d3d11.NewMockTexture2D(rig.Ctrl)
	view := mock_d3d11.NewMockShaderResourceView(rig.Ctrl)
	rig.D3D11.EXPECT().CreateTexture2D(gomock.Any()).Return(texture, nil)
	texture.EXPECT().CreateSharedHandle(d3d11.GenericAll).Return(fakevk.ExportedHandle, nil)
	rig.D3D11.EXPECT().CreateShaderResourceView(texture, gomock.Any()).Return(view, nil)
	view.EXPECT().NativePointer().Return(uintptr(0x5e5))

	require.Equal(t, uintptr(0x5e5), rig.Plugin.CreateSharedTextureView(512, 512))

	// Shutting down releases what the host did not
	view.EXPECT().Release()
	rig.D3D11.EXPECT().CloseSharedHandle(fakevk.ExportedHandle).Return(errors.New("ERROR_INVALID_HANDLE"))
	texture.EXPECT().Release()
	require.Error(t, rig.Plugin.Unload())
	require.Equal(t, lifecycle.Uninitialized, rig.Plugin.Controller().State())
}

func TestPlugin_Status(t *testing.T) {
	rig := newPluginRig(t, RendererD3D11, nil)
	rig.load(t)

	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(rig.Plugin.Status()), &status))
	require.Equal(t, "DeviceReady", status["State"])
}

func TestRendererString(t *testing.T) {
	require.Equal(t, "D3D11", RendererD3D11.String())
	require.Equal(t, "Renderer(7)", Renderer(7).String())
}

func TestPlugin_DefaultLoaderOutsideWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("vulkan-1.dll may be present")
	}

	ctrl := gomock.NewController(t)
	d3dDevice := mock_d3d11.NewMockDevice(ctrl)
	d3dDevice.EXPECT().AdapterDesc().Return(d3d11.AdapterDesc{DeviceID: deviceID}, nil).AnyTimes()

	graphics := &testGraphics{renderer: RendererD3D11, device: d3dDevice}
	p := New(slog.New(slog.NewTextHandler(io.Discard, nil)), graphics, nil, lifecycle.CreateOptions{})

	err := p.Load()
	require.True(t, errors.Is(err, interop.ErrLoaderUnavailable))
	require.True(t, errors.Is(err, interop.ErrUnsupportedPlatform))
	require.Equal(t, lifecycle.Uninitialized, p.Controller().State())
}

var newFromEnvTestCases = map[string]struct {
	Contents      string
	ExpectedFlags string
	ExpectedError bool
}{
	"ExternallySynchronized": {
		Contents:      "D3DSHARE_EXTERNALLY_SYNCHRONIZED=true\n",
		ExpectedFlags: "CreateExternallySynchronized",
	},
	"Empty": {
		Contents:      "",
		ExpectedFlags: "None",
	},
	"BadBoolean": {
		Contents:      "D3DSHARE_VALIDATION=sometimes\n",
		ExpectedError: true,
	},
}

func TestNewFromEnv(t *testing.T) {
	for testName, testCase := range newFromEnvTestCases {
		t.Run(testName, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "d3dshare.env")
			require.NoError(t, os.WriteFile(path, []byte(testCase.Contents), 0o600))

			ctrl := gomock.NewController(t)
			graphics := &testGraphics{renderer: RendererD3D11, device: mock_d3d11.NewMockDevice(ctrl)}
			p, err := NewFromEnv(slog.New(slog.NewTextHandler(io.Discard, nil)), graphics, func() (vulkan.Loader, error) {
				return fakevk.NewRig(&fakevk.CallLog{}, deviceID), nil
			}, path, lifecycle.CreateOptions{})

			if testCase.ExpectedError {
				require.Error(t, err)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)

			var status map[string]any
			require.NoError(t, json.Unmarshal([]byte(p.Status()), &status))
			require.Equal(t, testCase.ExpectedFlags, status["Flags"])
		})
	}
}

func TestNewFromEnv_MissingFile(t *testing.T) {
	graphics := &testGraphics{renderer: RendererD3D11}
	p, err := NewFromEnv(nil, graphics, nil, filepath.Join(t.TempDir(), "missing.env"), lifecycle.CreateOptions{
		Flags: lifecycle.CreateEnableValidation,
	})
	require.NoError(t, err)

	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(p.Status()), &status))
	require.Equal(t, "CreateEnableValidation", status["Flags"])
}
