package d3d11

import (
	"fmt"

	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
)

// DXGIFormat is a DXGI_FORMAT value
type DXGIFormat uint32

const (
	FormatUnknown           DXGIFormat = 0
	FormatR32G32B32A32Float DXGIFormat = 2
	FormatR16G16B16A16Float DXGIFormat = 10
	FormatR10G10B10A2UNorm  DXGIFormat = 24
	FormatR8G8B8A8UNorm     DXGIFormat = 28
	FormatR8G8B8A8UNormSRGB DXGIFormat = 29
	FormatB8G8R8A8UNorm     DXGIFormat = 87
	FormatB8G8R8A8UNormSRGB DXGIFormat = 91
)

var dxgiFormatNames = map[DXGIFormat]string{
	FormatUnknown:           "DXGI_FORMAT_UNKNOWN",
	FormatR32G32B32A32Float: "DXGI_FORMAT_R32G32B32A32_FLOAT",
	FormatR16G16B16A16Float: "DXGI_FORMAT_R16G16B16A16_FLOAT",
	FormatR10G10B10A2UNorm:  "DXGI_FORMAT_R10G10B10A2_UNORM",
	FormatR8G8B8A8UNorm:     "DXGI_FORMAT_R8G8B8A8_UNORM",
	FormatR8G8B8A8UNormSRGB: "DXGI_FORMAT_R8G8B8A8_UNORM_SRGB",
	FormatB8G8R8A8UNorm:     "DXGI_FORMAT_B8G8R8A8_UNORM",
	FormatB8G8R8A8UNormSRGB: "DXGI_FORMAT_B8G8R8A8_UNORM_SRGB",
}

func (f DXGIFormat) String() string {
	name, ok := dxgiFormatNames[f]
	if !ok {
		return fmt.Sprintf("DXGI_FORMAT(%d)", uint32(f))
	}
	return name
}

var vulkanFormats = map[core1_0.Format]DXGIFormat{
	core1_0.FormatR8G8B8A8UnsignedNormalized:          FormatR8G8B8A8UNorm,
	core1_0.FormatR8G8B8A8SRGB:                        FormatR8G8B8A8UNormSRGB,
	core1_0.FormatB8G8R8A8UnsignedNormalized:          FormatB8G8R8A8UNorm,
	core1_0.FormatB8G8R8A8SRGB:                        FormatB8G8R8A8UNormSRGB,
	core1_0.FormatR16G16B16A16SignedFloat:             FormatR16G16B16A16Float,
	core1_0.FormatR32G32B32A32SignedFloat:             FormatR32G32B32A32Float,
	core1_0.FormatA2B10G10R10UnsignedNormalizedPacked: FormatR10G10B10A2UNorm,
}

// FormatFromVulkan returns the DXGI format with the same memory layout as a Vulkan format
func FormatFromVulkan(format core1_0.Format) (DXGIFormat, bool) {
	dxgiFormat, ok := vulkanFormats[format]
	return dxgiFormat, ok
}

// D3D11_USAGE, D3D11_BIND_FLAG, D3D11_RESOURCE_MISC_FLAG and D3D11_SRV_DIMENSION values
const (
	UsageDefault uint32 = 0

	BindShaderResource uint32 = 0x8
	BindRenderTarget   uint32 = 0x20

	ResourceMiscShared         uint32 = 0x2
	ResourceMiscSharedNTHandle uint32 = 0x800

	SRVDimensionTexture2D uint32 = 4

	// GenericAll is the GENERIC_ALL access right requested for shared handles
	GenericAll uint32 = 0x10000000
)

// Texture2DDesc mirrors D3D11_TEXTURE2D_DESC
type Texture2DDesc struct {
	Width     uint32
	Height    uint32
	MipLevels uint32
	ArraySize uint32
	Format    DXGIFormat

	SampleCount   uint32
	SampleQuality uint32

	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// ShaderResourceViewDesc mirrors D3D11_SHADER_RESOURCE_VIEW_DESC for 2D textures
type ShaderResourceViewDesc struct {
	Format          DXGIFormat
	ViewDimension   uint32
	MostDetailedMip uint32
	MipLevels       uint32
}

// AdapterDesc is the identity of a DXGI adapter
type AdapterDesc struct {
	Description string
	VendorID    uint32
	DeviceID    uint32
	SubSysID    uint32
	Revision    uint32

	DedicatedVideoMemory uint64
	AdapterLUID          uint64
}

// TextureSpec is the size and format both sides of a shared texture agree on
type TextureSpec struct {
	Width  int
	Height int
	Format core1_0.Format
}

// MaxTextureDimension is D3D11_REQ_TEXTURE2D_U_OR_V_DIMENSION
const MaxTextureDimension = 16384

func (s TextureSpec) String() string {
	return fmt.Sprintf("%dx%d %s", s.Width, s.Height, s.Format)
}

// Validate returns the DXGI format for s. It fails with interop.ErrFormatOrHandleTypeUnsupported
// when either side is outside 1..MaxTextureDimension or the format has no DXGI equivalent.
func (s TextureSpec) Validate() (DXGIFormat, error) {
	if s.Width <= 0 || s.Height <= 0 || s.Width > MaxTextureDimension || s.Height > MaxTextureDimension {
		return FormatUnknown, interop.Unsupported("cannot share a texture of %dx%d, each side must be in 1..%d",
			s.Width, s.Height, MaxTextureDimension)
	}

	format, ok := FormatFromVulkan(s.Format)
	if !ok {
		return FormatUnknown, interop.Unsupported("format %s has no DXGI equivalent", s.Format)
	}
	return format, nil
}
