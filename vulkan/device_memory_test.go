package vulkan_test

import (
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/d3dshare/internal/fakevk"
	"github.com/vkngwrapper/d3dshare/vulkan"
)

func TestDeviceMemoryProperties_AllocateAndFree(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)
	require.Equal(t, 3, memory.MemoryTypeCount())
	require.Equal(t, 2, memory.MemoryHeapCount())
	require.Equal(t, 0, memory.MemoryTypeIndexToHeapIndex(fakevk.MemoryTypeDeviceLocal))

	mem, res, err := memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{
		AllocationSize:  4096,
		MemoryTypeIndex: fakevk.MemoryTypeDeviceLocal,
	})
	require.NoError(t, err)
	require.Equal(t, core1_0.VKSuccess, res)
	require.NotNil(t, mem)
	require.Equal(t, 1, memory.AllocationCount())
	require.Equal(t, vulkan.Statistics{BlockCount: 1, BlockBytes: 4096}, memory.HeapStatistics(0))
	require.Equal(t, vulkan.Statistics{}, memory.HeapStatistics(1))

	memory.FreeVulkanMemory(fakevk.MemoryTypeDeviceLocal, 4096, mem)
	require.True(t, mem.(*fakevk.DeviceMemory).Freed)
	require.Equal(t, 0, memory.AllocationCount())
	require.Equal(t, vulkan.Statistics{}, memory.TotalStatistics())
}

func TestDeviceMemoryProperties_TooManyObjects(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	physicalDevice.DeviceProperties.Limits.MaxMemoryAllocationCount = 1

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)

	_, _, err = memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 16, MemoryTypeIndex: 1})
	require.NoError(t, err)

	_, res, err := memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 16, MemoryTypeIndex: 1})
	require.Error(t, err)
	require.Equal(t, core1_0.VKErrorTooManyObjects, res)
	require.Equal(t, 1, memory.AllocationCount())
	require.Equal(t, vulkan.Statistics{BlockCount: 1, BlockBytes: 16}, memory.HeapStatistics(0))
}

func TestDeviceMemoryProperties_HeapLimit(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, []int{1024, 0})
	require.NoError(t, err)

	_, _, err = memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 1000, MemoryTypeIndex: 1})
	require.NoError(t, err)

	_, res, err := memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 100, MemoryTypeIndex: 2})
	require.Error(t, err)
	require.Equal(t, core1_0.VKErrorOutOfDeviceMemory, res)

	_, _, err = memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 100, MemoryTypeIndex: 0})
	require.NoError(t, err)
}

func TestDeviceMemoryProperties_DriverFailureRollsBack(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)
	physicalDevice.Device.AllocateResult = core1_0.VKErrorOutOfDeviceMemory

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)

	_, res, err := memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 64, MemoryTypeIndex: 1})
	require.Error(t, err)
	require.Equal(t, core1_0.VKErrorOutOfDeviceMemory, res)
	require.Equal(t, 0, memory.AllocationCount())
	require.Equal(t, vulkan.Statistics{}, memory.TotalStatistics())
}

func TestDeviceMemoryProperties_BadHeapLimits(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	_, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, []int{1})
	require.Error(t, err)
}

func TestDeviceMemoryProperties_TypeIndexOutOfRange(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)

	_, _, err = memory.AllocateVulkanMemory(vulkan.MemoryAllocateInfo{AllocationSize: 64, MemoryTypeIndex: 3})
	require.Error(t, err)
	require.Equal(t, 0, memory.AllocationCount())
}

func TestDeviceMemoryProperties_PrintParameters(t *testing.T) {
	physicalDevice := fakevk.NewPhysicalDevice(nil, 0x2204)

	memory, err := vulkan.NewDeviceMemoryProperties(physicalDevice.Device, physicalDevice, nil)
	require.NoError(t, err)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	memory.PrintParameters(&obj)
	obj.End()

	require.NoError(t, writer.Error())
	require.Contains(t, string(writer.Bytes()), `"DeviceName":"Fake GPU 2204"`)
	require.Contains(t, string(writer.Bytes()), `"DeviceID":8708`)
}
