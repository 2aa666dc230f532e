//go:build windows

package d3d11

import (
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/d3dshare/interop"
	"golang.org/x/sys/windows"
)

var (
	iidTexture2D     = windows.GUID{Data1: 0x6f15aaf2, Data2: 0xd208, Data3: 0x4e89, Data4: [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
	iidDXGIDevice    = windows.GUID{Data1: 0x54ec77fa, Data2: 0x1377, Data3: 0x44e6, Data4: [8]byte{0x8c, 0x32, 0x88, 0xfd, 0x5f, 0x44, 0xc8, 0x4c}}
	iidDXGIResource1 = windows.GUID{Data1: 0x30961379, Data2: 0x4609, Data3: 0x4a41, Data4: [8]byte{0x99, 0x8e, 0x54, 0xfe, 0x56, 0x7e, 0xe0, 0xc1}}
)

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type iUnknown struct {
	Vtbl *iUnknownVtbl
}

type id3d11Device struct {
	Vtbl *struct {
		iUnknownVtbl
		CreateBuffer                         uintptr
		CreateTexture1D                      uintptr
		CreateTexture2D                      uintptr
		CreateTexture3D                      uintptr
		CreateShaderResourceView             uintptr
		CreateUnorderedAccessView            uintptr
		CreateRenderTargetView               uintptr
		CreateDepthStencilView               uintptr
		CreateInputLayout                    uintptr
		CreateVertexShader                   uintptr
		CreateGeometryShader                 uintptr
		CreateGeometryShaderWithStreamOutput uintptr
		CreatePixelShader                    uintptr
		CreateHullShader                     uintptr
		CreateDomainShader                   uintptr
		CreateComputeShader                  uintptr
		CreateClassLinkage                   uintptr
		CreateBlendState                     uintptr
		CreateDepthStencilState              uintptr
		CreateRasterizerState                uintptr
		CreateSamplerState                   uintptr
		CreateQuery                          uintptr
		CreatePredicate                      uintptr
		CreateCounter                        uintptr
		CreateDeferredContext                uintptr
		OpenSharedResource                   uintptr
	}
}

type id3d11Texture2D struct {
	Vtbl *struct {
		iUnknownVtbl
		GetDevice               uintptr
		GetPrivateData          uintptr
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetType                 uintptr
		SetEvictionPriority     uintptr
		GetEvictionPriority     uintptr
		GetDesc                 uintptr
	}
}

type idxgiResource1 struct {
	Vtbl *struct {
		iUnknownVtbl
		SetPrivateData           uintptr
		SetPrivateDataInterface  uintptr
		GetPrivateData           uintptr
		GetParent                uintptr
		GetDevice                uintptr
		GetSharedHandle          uintptr
		GetUsage                 uintptr
		SetEvictionPriority      uintptr
		GetEvictionPriority      uintptr
		CreateSubresourceSurface uintptr
		CreateSharedHandle       uintptr
	}
}

type idxgiDevice struct {
	Vtbl *struct {
		iUnknownVtbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		GetAdapter              uintptr
	}
}

type idxgiAdapter struct {
	Vtbl *struct {
		iUnknownVtbl
		SetPrivateData          uintptr
		SetPrivateDataInterface uintptr
		GetPrivateData          uintptr
		GetParent               uintptr
		EnumOutputs             uintptr
		GetDesc                 uintptr
	}
}

type nativeTexture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32
	SampleQuality  uint32
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

type nativeShaderResourceViewDesc struct {
	Format          uint32
	ViewDimension   uint32
	MostDetailedMip uint32
	MipLevels       uint32
	// The view description is a union as large as its biggest member
	_ [2]uint32
}

type nativeAdapterDesc struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLUID           windows.LUID
}

func call(operation string, method uintptr, args ...uintptr) error {
	r, _, _ := syscall.SyscallN(method, args...)
	hr := interop.HRESULT(uint32(r))
	if hr.Failed() {
		return interop.HRESULTError(operation, hr)
	}
	return nil
}

func queryInterface(obj unsafe.Pointer, guid *windows.GUID) (unsafe.Pointer, error) {
	unknown := (*iUnknown)(obj)

	var ref unsafe.Pointer
	err := call("QueryInterface", unknown.Vtbl.QueryInterface,
		uintptr(obj),
		uintptr(unsafe.Pointer(guid)),
		uintptr(unsafe.Pointer(&ref)),
	)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func release(obj unsafe.Pointer) {
	if obj == nil {
		return
	}
	syscall.SyscallN((*iUnknown)(obj).Vtbl.Release, uintptr(obj))
}

type comDevice struct {
	device *id3d11Device
}

// NewDevice wraps an ID3D11Device pointer owned by the host. The wrapper takes no reference of
// its own.
func NewDevice(pointer unsafe.Pointer) (Device, error) {
	if pointer == nil {
		return nil, errors.New("attempted to wrap a null ID3D11Device")
	}
	return &comDevice{device: (*id3d11Device)(pointer)}, nil
}

func (d *comDevice) AdapterDesc() (AdapterDesc, error) {
	dxgiDevicePointer, err := queryInterface(unsafe.Pointer(d.device), &iidDXGIDevice)
	if err != nil {
		return AdapterDesc{}, err
	}
	defer release(dxgiDevicePointer)
	dxgiDevice := (*idxgiDevice)(dxgiDevicePointer)

	var adapter *idxgiAdapter
	err = call("IDXGIDevice::GetAdapter", dxgiDevice.Vtbl.GetAdapter,
		uintptr(dxgiDevicePointer),
		uintptr(unsafe.Pointer(&adapter)),
	)
	if err != nil {
		return AdapterDesc{}, err
	}
	defer release(unsafe.Pointer(adapter))

	var desc nativeAdapterDesc
	err = call("IDXGIAdapter::GetDesc", adapter.Vtbl.GetDesc,
		uintptr(unsafe.Pointer(adapter)),
		uintptr(unsafe.Pointer(&desc)),
	)
	if err != nil {
		return AdapterDesc{}, err
	}

	return AdapterDesc{
		Description:          windows.UTF16ToString(desc.Description[:]),
		VendorID:             desc.VendorID,
		DeviceID:             desc.DeviceID,
		SubSysID:             desc.SubSysID,
		Revision:             desc.Revision,
		DedicatedVideoMemory: uint64(desc.DedicatedVideoMemory),
		AdapterLUID:          uint64(desc.AdapterLUID.HighPart)<<32 | uint64(desc.AdapterLUID.LowPart),
	}, nil
}

func (d *comDevice) OpenSharedTexture2D(handle interop.Handle) (Texture2D, error) {
	var texture *id3d11Texture2D
	err := call("ID3D11Device::OpenSharedResource", d.device.Vtbl.OpenSharedResource,
		uintptr(unsafe.Pointer(d.device)),
		uintptr(handle),
		uintptr(unsafe.Pointer(&iidTexture2D)),
		uintptr(unsafe.Pointer(&texture)),
	)
	if err != nil {
		return nil, err
	}
	return &comTexture2D{texture: texture}, nil
}

func (d *comDevice) CreateTexture2D(desc Texture2DDesc) (Texture2D, error) {
	nativeDesc := nativeTexture2DDesc{
		Width:          desc.Width,
		Height:         desc.Height,
		MipLevels:      desc.MipLevels,
		ArraySize:      desc.ArraySize,
		Format:         uint32(desc.Format),
		SampleCount:    desc.SampleCount,
		SampleQuality:  desc.SampleQuality,
		Usage:          desc.Usage,
		BindFlags:      desc.BindFlags,
		CPUAccessFlags: desc.CPUAccessFlags,
		MiscFlags:      desc.MiscFlags,
	}

	var texture *id3d11Texture2D
	err := call("ID3D11Device::CreateTexture2D", d.device.Vtbl.CreateTexture2D,
		uintptr(unsafe.Pointer(d.device)),
		uintptr(unsafe.Pointer(&nativeDesc)),
		0, // pInitialData
		uintptr(unsafe.Pointer(&texture)),
	)
	if err != nil {
		return nil, err
	}
	return &comTexture2D{texture: texture}, nil
}

func (d *comDevice) CreateShaderResourceView(texture Texture2D, desc ShaderResourceViewDesc) (ShaderResourceView, error) {
	comTexture, ok := texture.(*comTexture2D)
	if !ok || comTexture.texture == nil {
		return nil, errors.New("shader resource views can only be created over textures from this device")
	}

	nativeDesc := nativeShaderResourceViewDesc{
		Format:          uint32(desc.Format),
		ViewDimension:   desc.ViewDimension,
		MostDetailedMip: desc.MostDetailedMip,
		MipLevels:       desc.MipLevels,
	}

	var view *iUnknown
	err := call("ID3D11Device::CreateShaderResourceView", d.device.Vtbl.CreateShaderResourceView,
		uintptr(unsafe.Pointer(d.device)),
		uintptr(unsafe.Pointer(comTexture.texture)),
		uintptr(unsafe.Pointer(&nativeDesc)),
		uintptr(unsafe.Pointer(&view)),
	)
	if err != nil {
		return nil, err
	}
	return &comShaderResourceView{view: view}, nil
}

func (d *comDevice) CloseSharedHandle(handle interop.Handle) error {
	return interop.CloseHandle(handle)
}

type comTexture2D struct {
	texture *id3d11Texture2D
}

func (t *comTexture2D) Desc() Texture2DDesc {
	var desc nativeTexture2DDesc
	syscall.SyscallN(t.texture.Vtbl.GetDesc,
		uintptr(unsafe.Pointer(t.texture)),
		uintptr(unsafe.Pointer(&desc)),
	)

	return Texture2DDesc{
		Width:          desc.Width,
		Height:         desc.Height,
		MipLevels:      desc.MipLevels,
		ArraySize:      desc.ArraySize,
		Format:         DXGIFormat(desc.Format),
		SampleCount:    desc.SampleCount,
		SampleQuality:  desc.SampleQuality,
		Usage:          desc.Usage,
		BindFlags:      desc.BindFlags,
		CPUAccessFlags: desc.CPUAccessFlags,
		MiscFlags:      desc.MiscFlags,
	}
}

func (t *comTexture2D) CreateSharedHandle(access uint32) (interop.Handle, error) {
	resourcePointer, err := queryInterface(unsafe.Pointer(t.texture), &iidDXGIResource1)
	if err != nil {
		return interop.InvalidHandle, err
	}
	defer release(resourcePointer)
	resource := (*idxgiResource1)(resourcePointer)

	var handle windows.Handle
	err = call("IDXGIResource1::CreateSharedHandle", resource.Vtbl.CreateSharedHandle,
		uintptr(resourcePointer),
		0, // pAttributes
		uintptr(access),
		0, // lpName
		uintptr(unsafe.Pointer(&handle)),
	)
	if err != nil {
		return interop.InvalidHandle, err
	}
	return interop.Handle(handle), nil
}

func (t *comTexture2D) NativePointer() uintptr {
	return uintptr(unsafe.Pointer(t.texture))
}

func (t *comTexture2D) Release() {
	release(unsafe.Pointer(t.texture))
	t.texture = nil
}

type comShaderResourceView struct {
	view *iUnknown
}

func (v *comShaderResourceView) NativePointer() uintptr {
	return uintptr(unsafe.Pointer(v.view))
}

func (v *comShaderResourceView) Release() {
	release(unsafe.Pointer(v.view))
	v.view = nil
}
