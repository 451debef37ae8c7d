package vkdev

import vk "github.com/vulkan-go/vulkan"

// MemoryRegion is one slice of backing device memory handed out by an
// Allocator.
type MemoryRegion struct {
	Memory vk.DeviceMemory
	Offset vk.DeviceSize
	Size   vk.DeviceSize
}

// MemoryStats reports the allocator's aggregate usage for the device's live
// counter snapshot.
type MemoryStats struct {
	// Allocated is the total number of bytes of device memory allocated.
	Allocated uint64
	// Used is the number of allocated bytes currently bound to resources.
	Used uint64
}

// Allocator supplies backing memory for buffers and images. Placement and
// defragmentation strategy belong to the implementation; the device only
// requests regions matching the native memory requirements and the desired
// property flags.
type Allocator interface {
	// Allocate returns a memory region satisfying reqs with the given
	// property flags, or an error when device memory is exhausted.
	Allocate(reqs vk.MemoryRequirements, flags vk.MemoryPropertyFlags) (MemoryRegion, error)
	// Free releases a region obtained from Allocate.
	Free(region MemoryRegion)
	// MemoryStats reports aggregate allocation statistics.
	MemoryStats() MemoryStats
}
