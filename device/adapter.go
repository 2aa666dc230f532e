package device

import (
	"fmt"

	"github.com/vkngwrapper/core/v2/core1_0"
)

// AdapterDescriptor identifies the hardware adapter the host's D3D11 device runs on. Only DeviceID
// takes part in matching; VendorID and Description are kept for diagnostics.
type AdapterDescriptor struct {
	DeviceID    uint32
	VendorID    uint32
	Description string
}

// Matches reports whether the physical device is the same hardware adapter
func (d AdapterDescriptor) Matches(properties *core1_0.PhysicalDeviceProperties) bool {
	return properties != nil && properties.DeviceID == d.DeviceID
}

func (d AdapterDescriptor) String() string {
	return fmt.Sprintf("%s (vendor 0x%04x, device 0x%04x)", d.Description, d.VendorID, d.DeviceID)
}
