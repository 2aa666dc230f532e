package d3d11

//go:generate mockgen -source=ports.go -destination=mocks/ports.go -package=mock_d3d11

import "github.com/vkngwrapper/d3dshare/interop"

// Device is the part of ID3D11Device the sharing core drives
type Device interface {
	// AdapterDesc identifies the hardware adapter the device was created on, through
	// IDXGIDevice::GetAdapter and IDXGIAdapter::GetDesc
	AdapterDesc() (AdapterDesc, error)
	// OpenSharedTexture2D is ID3D11Device::OpenSharedResource for an ID3D11Texture2D
	OpenSharedTexture2D(handle interop.Handle) (Texture2D, error)
	CreateTexture2D(desc Texture2DDesc) (Texture2D, error)
	CreateShaderResourceView(texture Texture2D, desc ShaderResourceViewDesc) (ShaderResourceView, error)
	// CloseSharedHandle releases a handle returned by Texture2D.CreateSharedHandle
	CloseSharedHandle(handle interop.Handle) error
}

type Texture2D interface {
	Desc() Texture2DDesc
	// CreateSharedHandle is IDXGIResource1::CreateSharedHandle
	CreateSharedHandle(access uint32) (interop.Handle, error)
	NativePointer() uintptr
	Release()
}

type ShaderResourceView interface {
	NativePointer() uintptr
	Release()
}
