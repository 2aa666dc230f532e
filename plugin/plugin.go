package plugin

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/lifecycle"
	"github.com/vkngwrapper/d3dshare/vkng"
	"golang.org/x/exp/slog"
)

// Plugin is the boundary the host engine calls into. Its texture entry points never fail in a
// way the host has to handle: a failure is logged and reported as a 0 pointer.
type Plugin struct {
	logger     *slog.Logger
	graphics   Graphics
	controller *lifecycle.Controller

	active bool
}

// New creates an unloaded plugin. A nil loader factory opens the system Vulkan loader.
func New(logger *slog.Logger, graphics Graphics, loaders lifecycle.LoaderFactory, options lifecycle.CreateOptions) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	if loaders == nil {
		loaders = vkng.Open
	}

	return &Plugin{
		logger:     logger,
		graphics:   graphics,
		controller: lifecycle.New(logger, graphics, loaders, options),
	}
}

// NewFromEnv creates an unloaded plugin whose options are base with the settings in the dotenv
// file at envPath applied. A missing file leaves base unchanged.
func NewFromEnv(logger *slog.Logger, graphics Graphics, loaders lifecycle.LoaderFactory, envPath string, base lifecycle.CreateOptions) (*Plugin, error) {
	options, err := lifecycle.LoadEnvOptions(envPath, base)
	if err != nil {
		return nil, err
	}

	return New(logger, graphics, loaders, options), nil
}

// Controller is the lifecycle controller the plugin drives
func (p *Plugin) Controller() *lifecycle.Controller {
	return p.controller
}

// Active reports whether the plugin was loaded into a D3D11 host
func (p *Plugin) Active() bool {
	return p.active
}

// Load subscribes to the host's device events and initializes right away, since the host's
// device already exists when plugins are loaded. A host that does not render with D3D11 leaves
// the plugin inactive.
func (p *Plugin) Load() error {
	if p.active {
		return nil
	}

	renderer := p.graphics.Renderer()
	if renderer != RendererD3D11 {
		p.logger.Warn("texture sharing requires a D3D11 renderer, the plugin is inactive", slog.String("Renderer", renderer.String()))
		return nil
	}

	p.active = true
	p.graphics.RegisterDeviceEventCallback(p.onDeviceEvent)

	return p.controller.OnDeviceEvent(lifecycle.EventInitialize)
}

// Unload unsubscribes from device events and shuts the controller down
func (p *Plugin) Unload() error {
	if !p.active {
		return nil
	}

	p.graphics.UnregisterDeviceEventCallback()
	p.active = false

	return p.controller.OnDeviceEvent(lifecycle.EventShutdown)
}

func (p *Plugin) onDeviceEvent(event lifecycle.EventKind) {
	err := p.controller.OnDeviceEvent(event)
	if err != nil {
		p.logger.Error("device event failed", slog.String("Event", event.String()), slog.Any("error", err))
	}
}

// CreateExternalTexture creates a texture in Vulkan and returns the ID3D11Texture2D it was
// opened as, or 0
func (p *Plugin) CreateExternalTexture(width, height int) uintptr {
	return p.createTexture("CreateExternalTexture", width, height, p.controller.RequestSharedTexture)
}

// CreateSharedTextureView creates a shareable texture in D3D11 and returns an
// ID3D11ShaderResourceView over it, or 0
func (p *Plugin) CreateSharedTextureView(width, height int) uintptr {
	return p.createTexture("CreateSharedTextureView", width, height, p.controller.RequestSharedTextureView)
}

func (p *Plugin) createTexture(operation string, width, height int, create func(width, height int) (uintptr, error)) uintptr {
	err := p.checkRequest(width, height)
	if err == nil {
		var pointer uintptr
		pointer, err = create(width, height)
		if err == nil {
			return pointer
		}
	}

	p.logger.Error("texture sharing failed",
		slog.String("Operation", operation),
		slog.Int("Width", width),
		slog.Int("Height", height),
		slog.Any("error", err))
	return 0
}

func (p *Plugin) checkRequest(width, height int) error {
	if !p.active {
		return errors.Mark(errors.New("the plugin is not loaded into a D3D11 host"), interop.ErrInvalidState)
	}
	if width < 0 || height < 0 {
		return interop.Unsupported("negative texture size %dx%d", width, height)
	}
	return nil
}

// ReleaseTexture releases a texture returned by CreateExternalTexture or CreateSharedTextureView
func (p *Plugin) ReleaseTexture(pointer uintptr) {
	if pointer == 0 {
		return
	}

	err := p.controller.ReleaseSharedTexture(pointer)
	if err != nil {
		p.logger.Error("texture release failed", slog.Uint64("Pointer", uint64(pointer)), slog.Any("error", err))
	}
}

// Status is a JSON report of the plugin's state
func (p *Plugin) Status() string {
	return p.controller.BuildStatsString(false)
}
