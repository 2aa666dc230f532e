package vulkan

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// DeviceMemoryProperties caches the physical device's memory layout and tracks every
// vkAllocateMemory made through it, so exportable allocations respect
// maxMemoryAllocationCount and optional per-heap limits
type DeviceMemoryProperties struct {
	// Number of live device memory allocations per heap
	blockCount [common.MaxMemoryHeaps]int32
	// Size of live device memory allocations per heap
	blockBytes [common.MaxMemoryHeaps]int64

	memoryCount uint32
	heapLimits  []int

	device           Device
	deviceProperties *core1_0.PhysicalDeviceProperties
	memoryProperties *core1_0.PhysicalDeviceMemoryProperties
}

func NewDeviceMemoryProperties(
	device Device,
	physicalDevice PhysicalDevice,
	heapSizeLimits []int,
) (*DeviceMemoryProperties, error) {
	deviceProperties := &DeviceMemoryProperties{
		device: device,
	}

	var err error
	deviceProperties.deviceProperties, err = physicalDevice.Properties()
	if err != nil {
		return nil, err
	}

	deviceProperties.memoryProperties = physicalDevice.MemoryProperties()
	if deviceProperties.memoryProperties == nil {
		return nil, errors.New("physical device reported no memory properties")
	}

	heapLimitCount := len(heapSizeLimits)
	if heapLimitCount > 0 && heapLimitCount != deviceProperties.MemoryHeapCount() {
		return nil, errors.New("heap size limits were provided, but the length does not equal the number of PhysicalDevice heaps")
	}
	deviceProperties.heapLimits = heapSizeLimits

	return deviceProperties, nil
}

func (m *DeviceMemoryProperties) MemoryTypeCount() int {
	return len(m.memoryProperties.MemoryTypes)
}

func (m *DeviceMemoryProperties) MemoryHeapCount() int {
	return len(m.memoryProperties.MemoryHeaps)
}

func (m *DeviceMemoryProperties) MemoryTypeIndexToHeapIndex(memTypeIndex int) int {
	return m.memoryProperties.MemoryTypes[memTypeIndex].HeapIndex
}

func (m *DeviceMemoryProperties) DeviceProperties() *core1_0.PhysicalDeviceProperties {
	return m.deviceProperties
}

func (m *DeviceMemoryProperties) MemoryProperties() *core1_0.PhysicalDeviceMemoryProperties {
	return m.memoryProperties
}

func (m *DeviceMemoryProperties) MemoryTypeProperties(memoryTypeIndex int) core1_0.MemoryType {
	return m.memoryProperties.MemoryTypes[memoryTypeIndex]
}

func (m *DeviceMemoryProperties) MemoryHeapProperties(heapIndex int) core1_0.MemoryHeap {
	return m.memoryProperties.MemoryHeaps[heapIndex]
}

func (m *DeviceMemoryProperties) heapLimit(heapIndex int) int {
	if heapIndex >= len(m.heapLimits) {
		return 0
	}
	return m.heapLimits[heapIndex]
}

func (m *DeviceMemoryProperties) addBlockAllocation(heapIndex int, allocationSize int) {
	atomic.AddInt64(&m.blockBytes[heapIndex], int64(allocationSize))
	atomic.AddInt32(&m.blockCount[heapIndex], 1)
}

func (m *DeviceMemoryProperties) addBlockAllocationWithBudget(heapIndex, allocationSize, maxAllocatable int) (common.VkResult, error) {
	for {
		currentVal := atomic.LoadInt64(&m.blockBytes[heapIndex])
		targetVal := currentVal + int64(allocationSize)

		if targetVal > int64(maxAllocatable) {
			return core1_0.VKErrorOutOfDeviceMemory, core1_0.VKErrorOutOfDeviceMemory.ToError()
		}

		if atomic.CompareAndSwapInt64(&m.blockBytes[heapIndex], currentVal, targetVal) {
			break
		}
	}

	atomic.AddInt32(&m.blockCount[heapIndex], 1)
	return core1_0.VKSuccess, nil
}

func (m *DeviceMemoryProperties) removeBlockAllocation(heapIndex, allocationSize int) {
	newVal := atomic.AddInt64(&m.blockBytes[heapIndex], int64(-allocationSize))
	if newVal < 0 {
		panic(fmt.Sprintf("block bytes for heapIndex %d went negative", heapIndex))
	}

	newCountVal := atomic.AddInt32(&m.blockCount[heapIndex], -1)
	if newCountVal < 0 {
		panic(fmt.Sprintf("block count for heapIndex %d went negative", heapIndex))
	}
}

// AllocateVulkanMemory allocates device memory, failing with VK_ERROR_TOO_MANY_OBJECTS past the
// device's maxMemoryAllocationCount and with VK_ERROR_OUT_OF_DEVICE_MEMORY past a heap limit
func (m *DeviceMemoryProperties) AllocateVulkanMemory(
	allocateInfo MemoryAllocateInfo,
) (mem DeviceMemory, res common.VkResult, err error) {
	if allocateInfo.MemoryTypeIndex < 0 || allocateInfo.MemoryTypeIndex >= m.MemoryTypeCount() {
		return nil, core1_0.VKErrorUnknown, errors.Newf("memory type index %d out of range", allocateInfo.MemoryTypeIndex)
	}

	newDeviceCount := atomic.AddUint32(&m.memoryCount, 1)
	defer func() {
		// If we failed out, roll back the device increment
		if err != nil {
			atomic.AddUint32(&m.memoryCount, ^uint32(0))
		}
	}()

	if m.deviceProperties.Limits != nil && int(newDeviceCount) > m.deviceProperties.Limits.MaxMemoryAllocationCount {
		return nil, core1_0.VKErrorTooManyObjects, core1_0.VKErrorTooManyObjects.ToError()
	}

	heapIndex := m.MemoryTypeIndexToHeapIndex(allocateInfo.MemoryTypeIndex)
	heapLimit := m.heapLimit(heapIndex)
	if heapLimit == 0 {
		m.addBlockAllocation(heapIndex, allocateInfo.AllocationSize)
	} else {
		maxSize := heapLimit
		heapSize := m.memoryProperties.MemoryHeaps[heapIndex].Size
		if heapSize < heapLimit {
			maxSize = heapSize
		}
		res, err = m.addBlockAllocationWithBudget(heapIndex, allocateInfo.AllocationSize, maxSize)
		if err != nil {
			return nil, res, err
		}
	}
	defer func() {
		// If we failed out, roll back the block allocation
		if err != nil {
			m.removeBlockAllocation(heapIndex, allocateInfo.AllocationSize)
		}
	}()

	mem, res, err = m.device.AllocateMemory(allocateInfo)
	if err == nil && mem == nil {
		err = errors.New("vkAllocateMemory returned a null handle")
	}
	return mem, res, err
}

// FreeVulkanMemory frees memory allocated through AllocateVulkanMemory and releases its
// accounting
func (m *DeviceMemoryProperties) FreeVulkanMemory(memoryTypeIndex int, size int, memory DeviceMemory) {
	if memory == nil {
		return
	}

	memory.Free()

	heapIndex := m.MemoryTypeIndexToHeapIndex(memoryTypeIndex)
	m.removeBlockAllocation(heapIndex, size)
	atomic.AddUint32(&m.memoryCount, ^uint32(0))
}

// AllocationCount is the number of live device memory allocations
func (m *DeviceMemoryProperties) AllocationCount() int {
	return int(atomic.LoadUint32(&m.memoryCount))
}

func (m *DeviceMemoryProperties) HeapStatistics(heapIndex int) Statistics {
	return Statistics{
		BlockCount: int(atomic.LoadInt32(&m.blockCount[heapIndex])),
		BlockBytes: int(atomic.LoadInt64(&m.blockBytes[heapIndex])),
	}
}

func (m *DeviceMemoryProperties) TotalStatistics() Statistics {
	var total Statistics
	for heapIndex := 0; heapIndex < m.MemoryHeapCount(); heapIndex++ {
		stats := m.HeapStatistics(heapIndex)
		total.AddStatistics(&stats)
	}
	return total
}

func (m *DeviceMemoryProperties) PrintParameters(json *jwriter.ObjectState) {
	json.Name("DeviceName").String(m.deviceProperties.DriverName)
	json.Name("DeviceID").Int(int(m.deviceProperties.DeviceID))
	json.Name("VendorID").Int(int(m.deviceProperties.VendorID))
	json.Name("AllocationCount").Int(m.AllocationCount())

	heaps := json.Name("Heaps").Array()
	defer heaps.End()

	for heapIndex := 0; heapIndex < m.MemoryHeapCount(); heapIndex++ {
		stats := m.HeapStatistics(heapIndex)

		heap := heaps.Object()
		heap.Name("Size").Int(m.memoryProperties.MemoryHeaps[heapIndex].Size)
		heap.Name("BlockCount").Int(stats.BlockCount)
		heap.Name("BlockBytes").Int(stats.BlockBytes)
		heap.End()
	}
}
