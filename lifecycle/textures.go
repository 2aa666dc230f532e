package lifecycle

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/d3dshare/d3d11"
	"github.com/vkngwrapper/d3dshare/external"
	"github.com/vkngwrapper/d3dshare/interop"
	"golang.org/x/exp/slog"
)

// sharedTexture is one texture handed to the host. Textures created by Vulkan carry the
// exportable resource and the D3D11 texture opened from it; textures created by D3D11 carry
// only the shared texture.
type sharedTexture struct {
	resource *external.Resource
	imported *d3d11.ImportedTexture

	shared *d3d11.SharedTexture
}

func (t *sharedTexture) releaseD3D11() error {
	t.imported.Release()
	t.imported = nil

	err := t.shared.Release()
	t.shared = nil
	return err
}

func (c *Controller) textureSpec(width, height int) d3d11.TextureSpec {
	return d3d11.TextureSpec{
		Width:  width,
		Height: height,
		Format: c.options.Format,
	}
}

// RequestSharedTexture creates a Vulkan image on exportable memory and opens it on the host's
// D3D11 device. It returns the ID3D11Texture2D pointer. When the D3D11 runtime refuses the
// handle the error matches interop.ErrCrossAPIImportFailure, the Vulkan side is destroyed, and
// the host may fall back to RequestSharedTextureView.
func (c *Controller) RequestSharedTexture(width, height int) (uintptr, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.logger.Debug("lifecycle::RequestSharedTexture", slog.Int("Width", width), slog.Int("Height", height))

	err := c.requireState("request a shared texture", DeviceReady)
	if err != nil {
		return 0, err
	}
	if !c.extensions.CanExport() {
		return 0, errors.Mark(errors.New("the vulkan device cannot export memory as Win32 handles"), interop.ErrCapabilityUnavailable)
	}

	// The D3D11 side has to be able to open the image before any Vulkan work is done
	spec := c.textureSpec(width, height)
	_, err = spec.Validate()
	if err != nil {
		return 0, err
	}

	d3dDevice, err := c.d3d11Device()
	if err != nil {
		return 0, err
	}

	resource, err := external.CreateExportableImage(
		c.logger,
		c.logicalDevice.Device,
		c.deviceMemory,
		c.logicalDevice.Candidate.PhysicalDevice,
		c.options.imageRequest(width, height),
	)
	if err != nil {
		return 0, errors.CombineErrors(err, resource.Destroy())
	}

	imported, err := d3d11.ImportSharedTexture(c.logger, d3dDevice, resource.Handle, spec)
	if err != nil {
		return 0, errors.CombineErrors(err, resource.Destroy())
	}

	pointer := imported.NativePointer()
	if pointer == 0 {
		imported.Release()
		return 0, errors.CombineErrors(
			errors.Mark(errors.New("the imported texture has no native pointer"), interop.ErrCrossAPIImportFailure),
			resource.Destroy(),
		)
	}

	err = c.registry.Register(resource)
	if err != nil {
		imported.Release()
		return 0, errors.CombineErrors(err, resource.Destroy())
	}

	c.textures.Put(pointer, &sharedTexture{
		resource: resource,
		imported: imported,
	})
	return pointer, nil
}

// RequestSharedTextureView creates a shareable texture on the host's D3D11 device and returns a
// pointer to a shader resource view over it
func (c *Controller) RequestSharedTextureView(width, height int) (uintptr, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.logger.Debug("lifecycle::RequestSharedTextureView", slog.Int("Width", width), slog.Int("Height", height))

	err := c.requireState("request a shared texture view", DeviceReady)
	if err != nil {
		return 0, err
	}

	d3dDevice, err := c.d3d11Device()
	if err != nil {
		return 0, err
	}

	shared, err := d3d11.CreateSharedTexture(c.logger, d3dDevice, c.textureSpec(width, height))
	if err != nil {
		return 0, err
	}

	pointer := shared.NativePointer()
	if pointer == 0 {
		return 0, errors.CombineErrors(
			errors.Mark(errors.New("the shader resource view has no native pointer"), interop.ErrNativeCallFailure),
			shared.Release(),
		)
	}

	c.textures.Put(pointer, &sharedTexture{shared: shared})
	return pointer, nil
}

// ReleaseSharedTexture releases a texture returned by RequestSharedTexture or
// RequestSharedTextureView on both sides
func (c *Controller) ReleaseSharedTexture(pointer uintptr) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	texture, ok := c.textures.Get(pointer)
	if !ok {
		return errors.Newf("no shared texture has the native pointer %#x", pointer)
	}
	c.textures.Delete(pointer)

	err := texture.releaseD3D11()
	if texture.resource != nil {
		err = errors.CombineErrors(err, c.registry.Unregister(texture.resource))
		err = errors.CombineErrors(err, texture.resource.Destroy())
		texture.resource = nil
	}

	return err
}

// SharedTextureCount is the number of textures handed to the host and not yet released
func (c *Controller) SharedTextureCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.textures.Count()
}
