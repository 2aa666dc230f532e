//go:build windows

package vkng

import (
	"syscall"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/d3dshare/procs"
	"golang.org/x/sys/windows"
)

var vulkanDLL = windows.NewLazySystemDLL("vulkan-1.dll")

func openSystemLoader() (*Loader, error) {
	err := vulkanDLL.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading vulkan-1.dll")
	}

	proc := vulkanDLL.NewProc(procs.GetInstanceProcAddr)
	err = proc.Find()
	if err != nil {
		return nil, errors.Wrapf(err, "vulkan-1.dll does not export %s", procs.GetInstanceProcAddr)
	}

	var loader core.Loader
	loader, err = core.CreateLoaderFromProcAddr(unsafe.Pointer(proc.Addr()))
	if err != nil {
		return nil, errors.Wrap(err, "bootstrapping vkngwrapper")
	}

	getProcAddr := func(instance procs.Handle, name string) unsafe.Pointer {
		cName, err := windows.BytePtrFromString(name)
		if err != nil {
			return nil
		}

		ret, _, _ := syscall.SyscallN(proc.Addr(), uintptr(instance), uintptr(unsafe.Pointer(cName)))
		return unsafe.Pointer(ret)
	}

	return newLoader(loader, getProcAddr), nil
}
