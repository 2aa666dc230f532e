package interop

import "github.com/pkg/errors"

// ErrExtensionOrLayerUnavailable is returned when a required instance extension, device extension
// or layer is not offered by the Vulkan runtime. Instance creation never proceeds past this error.
var ErrExtensionOrLayerUnavailable error = errors.New("required vulkan extension or layer unavailable")

// ErrNoCompatiblePhysicalDevice is returned when no physical device offers a graphics queue family
// or, when an adapter was requested, none carries the requested device id
var ErrNoCompatiblePhysicalDevice error = errors.New("no compatible physical device")

// ErrFormatOrHandleTypeUnsupported is returned when the negotiated external image format
// capability does not allow a requested format, usage, tiling and handle type combination
var ErrFormatOrHandleTypeUnsupported error = errors.New("format or external handle type unsupported")

// ErrNoSuitableMemoryType is returned when no memory type satisfies both the image requirements
// and the requested memory property flags. It is also an ErrFormatOrHandleTypeUnsupported.
var ErrNoSuitableMemoryType error = errors.New("no suitable memory type")

// ErrNativeCallFailure marks any error produced by a Vulkan, D3D11 or DXGI call that did not
// return success
var ErrNativeCallFailure error = errors.New("native graphics call failed")

// ErrCrossAPIImportFailure is returned when the receiving API declines to open a shared handle
var ErrCrossAPIImportFailure error = errors.New("cross-api import failed")

// ErrCapabilityUnavailable is returned when an entry point needed for an operation was never
// resolved
var ErrCapabilityUnavailable error = errors.New("capability unavailable")

// ErrLoaderUnavailable is returned when the system Vulkan loader cannot be found or loaded
var ErrLoaderUnavailable error = errors.New("vulkan loader unavailable")

// ErrUnsupportedPlatform is returned by native bindings on platforms other than Windows
var ErrUnsupportedPlatform error = errors.New("unsupported platform")

// ErrInvalidState is returned when an operation is requested in a lifecycle state that does not
// allow it
var ErrInvalidState error = errors.New("invalid lifecycle state")
