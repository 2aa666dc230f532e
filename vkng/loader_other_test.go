//go:build !windows

package vkng

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/d3dshare/interop"
)

func TestOpen_UnsupportedPlatform(t *testing.T) {
	loader, err := Open()
	require.Nil(t, loader)
	require.True(t, errors.Is(err, interop.ErrLoaderUnavailable))
	require.True(t, errors.Is(err, interop.ErrUnsupportedPlatform))
}

func TestExportMemoryWin32Handle_UnsupportedPlatform(t *testing.T) {
	device := &Device{}
	handle, _, err := device.ExportMemoryWin32Handle(&DeviceMemory{}, 0)
	require.False(t, handle.Valid())
	require.True(t, errors.Is(err, interop.ErrUnsupportedPlatform))
}
