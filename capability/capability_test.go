package capability

import (
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
	"github.com/vkngwrapper/extensions/v2/khr_external_memory_capabilities"
)

var rgbaQuery = Query{
	Format:     core1_0.FormatR8G8B8A8UnsignedNormalized,
	Type:       core1_0.ImageType2D,
	Tiling:     core1_0.ImageTilingOptimal,
	Usage:      core1_0.ImageUsageColorAttachment | core1_0.ImageUsageSampled,
	HandleType: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
}

func TestQueryExternalFormatSupport_ChainsExternalInfo(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	capability, res, err := QueryExternalFormatSupport(physicalDevice, rgbaQuery)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)

	require.Len(t, physicalDevice.FormatQueries, 1)
	info := physicalDevice.FormatQueries[0]
	require.Equal(t, rgbaQuery.Format, info.Format)
	require.Equal(t, rgbaQuery.Type, info.Type)
	require.Equal(t, rgbaQuery.Tiling, info.Tiling)
	require.Equal(t, rgbaQuery.Usage, info.Usage)

	externalInfo, ok := info.Next.(khr_external_memory_capabilities.PhysicalDeviceExternalImageFormatInfo)
	require.True(t, ok)
	require.Equal(t, khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32, externalInfo.HandleType)

	require.Equal(t, rgbaQuery, capability.Query)
	require.True(t, capability.Exportable())
	require.True(t, capability.Importable())
	require.False(t, capability.RequiresDedicatedAllocation())
	require.Equal(t, physicalDevice.ExternalProperties.CompatibleHandleTypes, capability.CompatibleHandleTypes)
	require.Equal(t, 16384, capability.ImageFormatProperties.MaxExtent.Width)
}

func TestQueryExternalFormatSupport_FormatNotSupported(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	physicalDevice.FormatResult = core1_0.VKErrorFormatNotSupported

	capability, res, err := QueryExternalFormatSupport(physicalDevice, rgbaQuery)
	require.NoError(t, err)
	require.Equal(t, core1_0.VKErrorFormatNotSupported, res)
	require.False(t, IsSupported(capability, rgbaQuery.HandleType))
}

func TestQueryExternalFormatSupport_DriverFailure(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	physicalDevice.FormatResult = core1_0.VKErrorOutOfHostMemory

	_, res, err := QueryExternalFormatSupport(physicalDevice, rgbaQuery)
	require.True(t, cerrors.Is(err, interop.ErrNativeCallFailure))
	require.Equal(t, core1_0.VKErrorOutOfHostMemory, res)
}

func TestQueryExternalFormatSupport_CapabilityUnavailable(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	physicalDevice.FormatUnavailable = true

	_, _, err := QueryExternalFormatSupport(physicalDevice, rgbaQuery)
	require.True(t, cerrors.Is(err, interop.ErrCapabilityUnavailable))
}

func TestQueryExternalFormatSupport_MultipleHandleTypes(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	query := rgbaQuery
	query.HandleType |= khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32KMT

	_, _, err := QueryExternalFormatSupport(physicalDevice, query)
	require.True(t, cerrors.Is(err, interop.ErrFormatOrHandleTypeUnsupported))
	require.Empty(t, physicalDevice.FormatQueries)
}

func TestQueryExternalFormatSupport_NilPhysicalDevice(t *testing.T) {
	require.Panics(t, func() {
		_, _, _ = QueryExternalFormatSupport(nil, rgbaQuery)
	})
}

var isSupportedTestCases = map[string]struct {
	Compatible khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags
	Features   khr_external_memory_capabilities.ExternalMemoryFeatureFlags
	Wanted     khr_external_memory_capabilities.ExternalMemoryHandleTypeFlags

	Expected bool
}{
	"CompatibleAndExportable": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureExportable,
		Wanted:     khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Expected:   true,
	},
	"DedicatedOnlyStillSupported": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features: khr_external_memory_capabilities.ExternalMemoryFeatureExportable |
			khr_external_memory_capabilities.ExternalMemoryFeatureDedicatedOnly,
		Wanted:   khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Expected: true,
	},
	"NotCompatible": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32KMT,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureExportable,
		Wanted:     khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Expected:   false,
	},
	"ImportOnly": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureImportable,
		Wanted:     khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Expected:   false,
	},
	"DedicatedOnlyWithoutExport": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureDedicatedOnly,
		Wanted:     khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Expected:   false,
	},
	"NothingWanted": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureExportable,
		Expected:   false,
	},
	"PartiallyCompatible": {
		Compatible: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32,
		Features:   khr_external_memory_capabilities.ExternalMemoryFeatureExportable,
		Wanted: khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32 |
			khr_external_memory_capabilities.ExternalMemoryHandleTypeD3D11Texture,
		Expected: false,
	},
}

func TestIsSupported(t *testing.T) {
	for testName, testCase := range isSupportedTestCases {
		t.Run(testName, func(t *testing.T) {
			capability := &ExternalImageFormat{
				Query:                 rgbaQuery,
				CompatibleHandleTypes: testCase.Compatible,
				Features:              testCase.Features,
			}

			require.Equal(t, testCase.Expected, IsSupported(capability, testCase.Wanted))
		})
	}
}

func TestIsSupported_NilCapability(t *testing.T) {
	require.False(t, IsSupported(nil, khr_external_memory_capabilities.ExternalMemoryHandleTypeOpaqueWin32))
}

func TestSupportsExtent(t *testing.T) {
	capability := &ExternalImageFormat{
		ImageFormatProperties: core1_0.ImageFormatProperties{
			MaxExtent: core1_0.Extent3D{Width: 4096, Height: 2048, Depth: 1},
		},
	}

	require.True(t, capability.SupportsExtent(4096, 2048))
	require.False(t, capability.SupportsExtent(4097, 16))
	require.False(t, capability.SupportsExtent(16, 2049))
	require.True(t, (&ExternalImageFormat{}).SupportsExtent(1<<20, 1<<20))
}

func TestPrintParameters(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	capability, _, err := QueryExternalFormatSupport(physicalDevice, rgbaQuery)
	require.NoError(t, err)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	capability.PrintParameters(&obj)
	obj.End()

	require.NoError(t, writer.Error())
	require.Contains(t, string(writer.Bytes()), `"MaxWidth":16384`)
	require.Contains(t, string(writer.Bytes()), `"Importable":true`)
	require.Contains(t, string(writer.Bytes()), `"DedicatedOnly":false`)
}

