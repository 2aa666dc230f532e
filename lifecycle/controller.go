package lifecycle

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/d3dshare/d3d11"
	"github.com/vkngwrapper/d3dshare/device"
	"github.com/vkngwrapper/d3dshare/external"
	"github.com/vkngwrapper/d3dshare/internal/utils"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/procs"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"golang.org/x/exp/slog"
)

// Host is the part of the host engine the Controller talks to
type Host interface {
	// D3D11Device is the device the host renders with. Its adapter identity decides which
	// Vulkan physical device is used, and shared textures are opened and created on it.
	D3D11Device() (d3d11.Device, error)
}

// LoaderFactory opens the system Vulkan loader. It is called once per Initialize event.
type LoaderFactory func() (vulkan.Loader, error)

// Controller owns the Vulkan instance and device for one host D3D11 device, and every texture
// shared between them. It is driven by the host's device events.
type Controller struct {
	mutex   utils.OptionalMutex
	logger  *slog.Logger
	host    Host
	loaders LoaderFactory
	options CreateOptions

	state   State
	adapter *device.AdapterDescriptor

	loader        vulkan.Loader
	instance      *device.Instance
	logicalDevice *device.LogicalDevice
	extensions    *vulkan.ExtensionData
	deviceMemory  *vulkan.DeviceMemoryProperties
	registry      *external.Registry

	// Shared textures by the native pointer handed to the host
	textures *swiss.Map[uintptr, *sharedTexture]
}

// New creates a Controller in the Uninitialized state. Nothing is created until the host sends
// EventInitialize.
func New(logger *slog.Logger, host Host, loaders LoaderFactory, options CreateOptions) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	options = options.withDefaults()
	return &Controller{
		mutex:    utils.OptionalMutex{UseMutex: options.Flags&CreateExternallySynchronized == 0},
		logger:   logger,
		host:     host,
		loaders:  loaders,
		options:  options,
		state:    Uninitialized,
		textures: swiss.NewMap[uintptr, *sharedTexture](8),
	}
}

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.state
}

// Adapter is the host adapter identity captured by the last Initialize event, or nil when it
// could not be read
func (c *Controller) Adapter() *device.AdapterDescriptor {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.adapter == nil {
		return nil
	}
	adapter := *c.adapter
	return &adapter
}

// OnDeviceEvent drives the state machine. Initialize creates the instance and then the device;
// a failure creating the instance leaves the controller Uninitialized, and a failure selecting
// or creating the device leaves it InstanceReady. Shutdown destroys everything the controller
// created. The reset events are accepted and do nothing.
func (c *Controller) OnDeviceEvent(event EventKind) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.logger.Debug("lifecycle::OnDeviceEvent", slog.String("Event", event.String()), slog.String("State", c.state.String()))

	switch event {
	case EventInitialize:
		return c.initialize()
	case EventShutdown:
		return c.shutdown()
	case EventBeforeReset, EventAfterReset:
		return nil
	}

	c.logger.Warn("ignoring unknown device event", slog.String("Event", event.String()))
	return nil
}

func (c *Controller) initialize() error {
	if c.state != Uninitialized {
		c.logger.Warn("ignoring initialize event", slog.String("State", c.state.String()))
		return nil
	}

	c.adapter = c.captureAdapter()

	loader, err := c.openLoader()
	if err != nil {
		c.logger.Error("the vulkan loader is unavailable, sharing is disabled", slog.Any("error", err))
		return err
	}

	table := loader.Procs()
	table.ResolveAll(procs.NullHandle)

	instance, err := device.CreateInstance(c.logger, loader, c.options.instanceOptions())
	if err != nil {
		table.Reset()
		c.logger.Error("unable to create the vulkan instance", slog.Any("error", err))
		return err
	}

	c.loader = loader
	c.instance = instance
	table.ResolveAll(instance.Instance.Handle())
	c.logger.Debug("resolved vulkan entry points",
		slog.Int("Resolved", table.ResolvedCount()),
		slog.Any("Missing", table.Missing()))
	c.state = InstanceReady

	return c.createDevice()
}

func (c *Controller) openLoader() (vulkan.Loader, error) {
	if c.loaders == nil {
		return nil, errors.Mark(errors.New("no vulkan loader factory was provided"), interop.ErrLoaderUnavailable)
	}

	loader, err := c.loaders()
	if err != nil {
		return nil, interop.Mark(err, interop.ErrLoaderUnavailable, "opening the vulkan loader")
	}
	if loader == nil {
		return nil, errors.Mark(errors.New("the vulkan loader factory returned no loader"), interop.ErrLoaderUnavailable)
	}

	return loader, nil
}

func (c *Controller) captureAdapter() *device.AdapterDescriptor {
	d3dDevice, err := c.d3d11Device()
	if err == nil {
		var desc d3d11.AdapterDesc
		desc, err = d3dDevice.AdapterDesc()
		if err == nil {
			adapter := &device.AdapterDescriptor{
				DeviceID:    desc.DeviceID,
				VendorID:    desc.VendorID,
				Description: desc.Description,
			}
			c.logger.Info("captured host adapter", slog.String("Adapter", adapter.String()))
			return adapter
		}
	}

	c.logger.Warn("host adapter identity is unavailable, any graphics device will be accepted", slog.Any("error", err))
	return nil
}

func (c *Controller) d3d11Device() (d3d11.Device, error) {
	if c.host == nil {
		return nil, errors.New("no host was provided")
	}

	d3dDevice, err := c.host.D3D11Device()
	if err != nil {
		return nil, errors.Wrap(err, "retrieving the host's D3D11 device")
	}
	if d3dDevice == nil {
		return nil, errors.New("the host has no D3D11 device")
	}
	return d3dDevice, nil
}

func (c *Controller) createDevice() error {
	candidate, err := device.SelectPhysicalDevice(c.logger, c.instance.Instance, c.adapter, c.options.DeviceExtensions)
	if err != nil {
		c.logger.Error("no physical device can share with the host", slog.Any("error", err))
		return err
	}

	logicalDevice, err := device.CreateLogicalDevice(c.logger, candidate, c.options.DeviceExtensions)
	if err != nil {
		return err
	}

	deviceMemory, err := vulkan.NewDeviceMemoryProperties(logicalDevice.Device, candidate.PhysicalDevice, c.options.HeapSizeLimits)
	if err != nil {
		logicalDevice.Destroy()
		return errors.Wrap(err, "reading device memory properties")
	}

	c.logicalDevice = logicalDevice
	c.deviceMemory = deviceMemory
	c.extensions = vulkan.NewExtensionData(c.loader.Procs(), c.instance.Instance, logicalDevice.Device)
	c.registry = external.NewRegistry(c.mutex.UseMutex)
	c.state = DeviceReady

	if !c.extensions.CanExport() {
		c.logger.Warn("the device cannot export memory through Win32 handles, only D3D11-created textures can be shared")
	}

	c.logger.Info("vulkan device ready",
		slog.String("DeviceName", candidate.Properties.DriverName),
		slog.Int("QueueFamilyIndex", logicalDevice.QueueFamilyIndex))
	return nil
}

func (c *Controller) shutdown() error {
	if c.state == Uninitialized {
		return nil
	}
	c.state = ShuttingDown

	var err error
	c.textures.Iter(func(_ uintptr, texture *sharedTexture) bool {
		err = errors.CombineErrors(err, texture.releaseD3D11())
		return false
	})
	c.textures = swiss.NewMap[uintptr, *sharedTexture](8)

	if c.registry != nil {
		err = errors.CombineErrors(err, c.registry.Validate())
		if !c.registry.IsEmpty() {
			c.logger.Debug("destroying outstanding exportable resources", slog.Int("Count", c.registry.Count()))
		}
		err = errors.CombineErrors(err, c.registry.DestroyAll())
		c.registry = nil
	}

	c.logicalDevice.Destroy()
	c.logicalDevice = nil
	c.deviceMemory = nil
	c.extensions = nil

	c.instance.Destroy()
	c.instance = nil

	if c.loader != nil {
		c.loader.Procs().Reset()
		c.loader = nil
	}

	c.adapter = nil
	c.state = Uninitialized

	if err != nil {
		c.logger.Error("shared textures were not released cleanly", slog.Any("error", err))
	}
	return err
}

func (c *Controller) requireState(operation string, state State) error {
	if c.state == state {
		return nil
	}

	return errors.WithDetailf(
		errors.Mark(errors.Newf("cannot %s while %s", operation, c.state), interop.ErrInvalidState),
		"%s requires the %s state", operation, state,
	)
}
