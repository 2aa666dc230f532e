package lifecycle

import "fmt"

// State is the lifecycle of the Vulkan objects a Controller owns
type State int

const (
	Uninitialized State = iota
	// InstanceReady means an instance exists but no logical device was created for it
	InstanceReady
	DeviceReady
	ShuttingDown
)

var stateNames = map[State]string{
	Uninitialized: "Uninitialized",
	InstanceReady: "InstanceReady",
	DeviceReady:   "DeviceReady",
	ShuttingDown:  "ShuttingDown",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if !ok {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return name
}

// EventKind is a device event the host forwards to the Controller
type EventKind int

const (
	EventInitialize EventKind = iota
	EventShutdown
	EventBeforeReset
	EventAfterReset
)

var eventNames = map[EventKind]string{
	EventInitialize:  "Initialize",
	EventShutdown:    "Shutdown",
	EventBeforeReset: "BeforeReset",
	EventAfterReset:  "AfterReset",
}

func (e EventKind) String() string {
	name, ok := eventNames[e]
	if !ok {
		return fmt.Sprintf("EventKind(%d)", int(e))
	}
	return name
}
