package d3d11

import (
	"github.com/vkngwrapper/d3dshare/interop"
	"golang.org/x/exp/slog"
)

// SharedTexture is a D3D11 texture created for sharing, its NT handle, and a shader resource
// view over it
type SharedTexture struct {
	Texture Texture2D
	View    ShaderResourceView
	Handle  interop.Handle
	Spec    TextureSpec

	device Device
}

// NativePointer is the ID3D11ShaderResourceView pointer handed to the host
func (t *SharedTexture) NativePointer() uintptr {
	if t == nil || t.View == nil {
		return 0
	}
	return t.View.NativePointer()
}

// Release releases the view, closes the shared handle and releases the texture. It is safe to
// call more than once.
func (t *SharedTexture) Release() error {
	if t == nil {
		return nil
	}

	if t.View != nil {
		t.View.Release()
		t.View = nil
	}

	var err error
	if t.Handle.Valid() {
		err = t.device.CloseSharedHandle(t.Handle)
		if err != nil {
			err = interop.Mark(err, interop.ErrNativeCallFailure, "closing shared handle %s", t.Handle)
		}
		t.Handle = interop.InvalidHandle
	}

	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}

	return err
}

// CreateSharedTexture creates a render target texture that can be shared through an NT handle,
// the handle, and a single-mip shader resource view over the texture. Anything created before a
// failure is released.
func CreateSharedTexture(logger *slog.Logger, device Device, spec TextureSpec) (_ *SharedTexture, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("d3d11::CreateSharedTexture", slog.String("Spec", spec.String()))

	format, err := spec.Validate()
	if err != nil {
		return nil, err
	}

	shared := &SharedTexture{
		Spec:   spec,
		device: device,
	}
	defer func() {
		if err != nil {
			logger.Error("shared texture creation failed", slog.Any("error", err))
			_ = shared.Release()
		}
	}()

	shared.Texture, err = device.CreateTexture2D(Texture2DDesc{
		Width:       uint32(spec.Width),
		Height:      uint32(spec.Height),
		MipLevels:   1,
		ArraySize:   1,
		Format:      format,
		SampleCount: 1,
		Usage:       UsageDefault,
		BindFlags:   BindRenderTarget | BindShaderResource,
		MiscFlags:   ResourceMiscShared | ResourceMiscSharedNTHandle,
	})
	if err != nil {
		return nil, interop.Mark(err, interop.ErrNativeCallFailure, "CreateTexture2D")
	}

	shared.Handle, err = shared.Texture.CreateSharedHandle(GenericAll)
	if err != nil {
		return nil, interop.Mark(err, interop.ErrNativeCallFailure, "CreateSharedHandle")
	}

	shared.View, err = device.CreateShaderResourceView(shared.Texture, ShaderResourceViewDesc{
		Format:          format,
		ViewDimension:   SRVDimensionTexture2D,
		MostDetailedMip: 0,
		MipLevels:       1,
	})
	if err != nil {
		return nil, interop.Mark(err, interop.ErrNativeCallFailure, "CreateShaderResourceView")
	}

	return shared, nil
}
