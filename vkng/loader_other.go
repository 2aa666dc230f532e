//go:build !windows

package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/d3dshare/interop"
)

func openSystemLoader() (*Loader, error) {
	return nil, errors.Mark(errors.New("win32 external memory needs vulkan-1.dll"), interop.ErrUnsupportedPlatform)
}
