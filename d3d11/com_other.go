//go:build !windows

package d3d11

import (
	"unsafe"

	"github.com/vkngwrapper/d3dshare/interop"
)

// NewDevice wraps an ID3D11Device pointer owned by the host. D3D11 only exists on Windows.
func NewDevice(pointer unsafe.Pointer) (Device, error) {
	return nil, interop.ErrUnsupportedPlatform
}
