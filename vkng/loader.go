// Package vkng implements the vulkan ports on top of vkngwrapper
package vkng

import (
	"github.com/vkngwrapper/core/v2"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
)

// Loader is the system Vulkan loader. Its entry point table is filled through the same
// vkGetInstanceProcAddr that vkngwrapper was bootstrapped with.
type Loader struct {
	loader      core.Loader
	table       *procs.Table
	getProcAddr procs.ProcAddrFunc
}

var _ vulkan.Loader = &Loader{}

func newLoader(loader core.Loader, getProcAddr procs.ProcAddrFunc) *Loader {
	return &Loader{
		loader:      loader,
		table:       procs.NewTable(),
		getProcAddr: getProcAddr,
	}
}

func (l *Loader) Procs() *procs.Table {
	if !l.table.Loaded() {
		l.table.Load(l.getProcAddr)
	}
	return l.table
}

func (l *Loader) AvailableExtensions() (map[string]*core1_0.ExtensionProperties, common.VkResult, error) {
	return l.loader.AvailableExtensions()
}

func (l *Loader) AvailableLayers() (map[string]*core1_0.LayerProperties, common.VkResult, error) {
	return l.loader.AvailableLayers()
}

func (l *Loader) CreateInstance(info core1_0.InstanceCreateInfo) (vulkan.Instance, common.VkResult, error) {
	instance, res, err := l.loader.CreateInstance(nil, info)
	if err != nil {
		return nil, res, err
	}
	if instance == nil {
		return nil, res, nil
	}

	return &Instance{
		instance: instance,
		table:    l.Procs(),
	}, res, nil
}

// Open is a lifecycle loader factory. It fails with interop.ErrLoaderUnavailable when the system
// loader cannot be opened.
func Open() (vulkan.Loader, error) {
	loader, err := openSystemLoader()
	if err != nil {
		return nil, interop.Mark(err, interop.ErrLoaderUnavailable, "")
	}
	return loader, nil
}
