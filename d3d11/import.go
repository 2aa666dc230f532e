package d3d11

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/d3dshare/interop"
	"golang.org/x/exp/slog"
)

// ImportedTexture is a D3D11 texture opened from memory another API exported. It holds its own
// reference to the memory, independent of the exporter's handle.
type ImportedTexture struct {
	Texture Texture2D
	Spec    TextureSpec
}

// NativePointer is the ID3D11Texture2D pointer handed to the host
func (t *ImportedTexture) NativePointer() uintptr {
	if t == nil || t.Texture == nil {
		return 0
	}
	return t.Texture.NativePointer()
}

func (t *ImportedTexture) Release() {
	if t == nil || t.Texture == nil {
		return
	}

	t.Texture.Release()
	t.Texture = nil
}

// ImportSharedTexture opens an exported memory handle as a D3D11 texture. A failed open, or a
// texture whose size or format differs from the spec it was exported for, fails with
// interop.ErrCrossAPIImportFailure; the call is not retried.
func ImportSharedTexture(logger *slog.Logger, device Device, handle interop.Handle, spec TextureSpec) (*ImportedTexture, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("d3d11::ImportSharedTexture", slog.String("Handle", handle.String()), slog.String("Spec", spec.String()))

	format, err := spec.Validate()
	if err != nil {
		return nil, err
	}

	if !handle.Valid() {
		return nil, errors.Mark(errors.New("cannot open a null shared handle"), interop.ErrCrossAPIImportFailure)
	}

	texture, err := device.OpenSharedTexture2D(handle)
	if err != nil {
		logger.Error("unable to open the shared handle from the D3D11 device",
			slog.String("Handle", handle.String()),
			slog.Any("error", err))
		return nil, interop.Mark(err, interop.ErrCrossAPIImportFailure, "OpenSharedResource(%s)", handle)
	}

	desc := texture.Desc()
	if int(desc.Width) != spec.Width || int(desc.Height) != spec.Height || desc.Format != format {
		texture.Release()
		return nil, errors.Mark(
			errors.Newf("shared handle %s opened as a %dx%d %s texture, expected %dx%d %s",
				handle, desc.Width, desc.Height, desc.Format, spec.Width, spec.Height, format),
			interop.ErrCrossAPIImportFailure,
		)
	}

	return &ImportedTexture{
		Texture: texture,
		Spec:    spec,
	}, nil
}
