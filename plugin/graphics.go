package plugin

import (
	"fmt"

	"github.com/vkngwrapper/d3dshare/d3d11"
	"github.com/vkngwrapper/d3dshare/lifecycle"
)

// Renderer is the graphics API the host engine renders with
type Renderer int

const (
	RendererNull Renderer = iota
	RendererD3D11
	RendererVulkan
	RendererOther
)

var rendererNames = map[Renderer]string{
	RendererNull:   "Null",
	RendererD3D11:  "D3D11",
	RendererVulkan: "Vulkan",
	RendererOther:  "Other",
}

func (r Renderer) String() string {
	name, ok := rendererNames[r]
	if !ok {
		return fmt.Sprintf("Renderer(%d)", int(r))
	}
	return name
}

// Graphics is the host engine's graphics interface
type Graphics interface {
	Renderer() Renderer
	D3D11Device() (d3d11.Device, error)

	// RegisterDeviceEventCallback subscribes to the host's device events. There is at most one
	// subscriber.
	RegisterDeviceEventCallback(callback func(event lifecycle.EventKind))
	UnregisterDeviceEventCallback()
}
