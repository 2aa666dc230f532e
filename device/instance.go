package device

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/interop"
	"github.com/vkngwrapper/d3dshare/vulkan"
	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"golang.org/x/exp/slog"
)

// InstanceOptions configures CreateInstance
type InstanceOptions struct {
	// ApplicationName and EngineName are reported to the driver
	ApplicationName string
	EngineName      string

	// EnableDebug adds the debug utils extension and the Khronos validation layer, and routes
	// validation messages to the logger
	EnableDebug bool
	// DebugSeverity selects which messages reach the logger. Zero means DefaultDebugSeverity.
	DebugSeverity ext_debug_utils.DebugUtilsMessageSeverityFlags

	// ExtraExtensions and ExtraLayers are required in addition to the defaults
	ExtraExtensions []string
	ExtraLayers     []string
}

// Instance is a created Vulkan instance and the debug messenger that belongs to it
type Instance struct {
	Instance  vulkan.Instance
	Messenger vulkan.DebugUtilsMessenger

	Extensions []string
	Layers     []string
}

// CreateInstance creates a Vulkan instance with every extension and layer the sharing core needs.
// Every desired name is checked against what the loader offers first; if anything is missing,
// nothing is created and the error matches interop.ErrExtensionOrLayerUnavailable.
func CreateInstance(logger *slog.Logger, loader vulkan.Loader, options InstanceOptions) (*Instance, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("device::CreateInstance", slog.Bool("EnableDebug", options.EnableDebug))

	extensions := DesiredInstanceExtensions(options.EnableDebug, options.ExtraExtensions...)
	layers := DesiredLayers(options.EnableDebug, options.ExtraLayers...)

	availableExtensions, res, err := loader.AvailableExtensions()
	if err != nil {
		return nil, interop.NativeCallError("vkEnumerateInstanceExtensionProperties", res, err)
	}
	missingExtensions := missingNames(extensions, availableExtensions)

	var missingLayers []string
	if len(layers) > 0 {
		availableLayers, res, err := loader.AvailableLayers()
		if err != nil {
			return nil, interop.NativeCallError("vkEnumerateInstanceLayerProperties", res, err)
		}
		missingLayers = missingNames(layers, availableLayers)
	}

	if len(missingExtensions) > 0 || len(missingLayers) > 0 {
		logger.Error("required instance extensions or layers are unavailable",
			slog.String("MissingExtensions", strings.Join(missingExtensions, ",")),
			slog.String("MissingLayers", strings.Join(missingLayers, ",")))
		return nil, errors.Mark(
			errors.Newf("missing instance extensions %v and layers %v", missingExtensions, missingLayers),
			interop.ErrExtensionOrLayerUnavailable,
		)
	}

	severity := options.DebugSeverity
	if severity == 0 {
		severity = DefaultDebugSeverity
	}
	messengerInfo := ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severity,
		MessageType:     debugMessageTypes,
		UserCallback:    DebugCallback(logger),
	}

	instanceInfo := core1_0.InstanceCreateInfo{
		ApplicationName:       options.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            options.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_0,
		EnabledExtensionNames: extensions,
		EnabledLayerNames:     layers,
	}
	if options.EnableDebug {
		// Chained so instance creation and destruction are covered too
		instanceInfo.Next = messengerInfo
	}

	instance, res, err := loader.CreateInstance(instanceInfo)
	if err != nil || instance == nil {
		return nil, interop.NativeCallError("vkCreateInstance", res, err)
	}

	created := &Instance{
		Instance:   instance,
		Extensions: extensions,
		Layers:     layers,
	}

	if options.EnableDebug {
		messenger, res, err := instance.CreateDebugUtilsMessenger(messengerInfo)
		if err != nil || messenger == nil {
			created.Destroy()
			return nil, interop.NativeCallError("vkCreateDebugUtilsMessengerEXT", res, err)
		}
		created.Messenger = messenger
	}

	logger.Debug("    Created instance",
		slog.Int("ExtensionCount", len(extensions)),
		slog.Int("LayerCount", len(layers)))
	return created, nil
}

// Destroy destroys the debug messenger, then the instance
func (i *Instance) Destroy() {
	if i == nil {
		return
	}

	if i.Messenger != nil {
		i.Messenger.Destroy()
		i.Messenger = nil
	}

	if i.Instance != nil {
		i.Instance.Destroy()
		i.Instance = nil
	}
}
