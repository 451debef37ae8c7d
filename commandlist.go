package vkdev

import (
	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// CommandList is a recorded, pooled sequence of GPU commands. Each list owns
// its own command pool so recording threads never share native pool state,
// plus a fence the completion tracker waits on after submission.
//
// A retrieved list is exclusively owned by one thread until it is submitted
// and recycled. Recycling a list while the GPU may still reference it is a
// caller contract violation; this package does not detect it.
type CommandList struct {
	id          uuid.UUID
	device      vk.Device
	queueFamily uint32

	pool   vk.CommandPool
	buffer vk.CommandBuffer
	fence  vk.Fence

	stats           StatCounters
	descriptorPools []*DescriptorPool
}

func newCommandList(device vk.Device, queueFamily uint32) (cmd *CommandList, err error) {
	defer checkErr(&err)

	var pool vk.CommandPool
	ret := vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: queueFamily,
	}, nil, &pool)
	orPanic(newError(ret))
	destroyPool := func() { vk.DestroyCommandPool(device, pool, nil) }

	buffers := make([]vk.CommandBuffer, 1)
	ret = vk.AllocateCommandBuffers(device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, buffers)
	orPanic(newError(ret), destroyPool)

	var fence vk.Fence
	ret = vk.CreateFence(device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}, nil, &fence)
	orPanic(newError(ret), destroyPool)

	return &CommandList{
		id:          uuid.New(),
		device:      device,
		queueFamily: queueFamily,
		pool:        pool,
		buffer:      buffers[0],
		fence:       fence,
	}, nil
}

// ID identifies the list across log messages and tracker bookkeeping. The id
// is stable across recycling.
func (c *CommandList) ID() uuid.UUID { return c.id }

// Handle returns the primary command buffer for the native recording API.
func (c *CommandList) Handle() vk.CommandBuffer { return c.buffer }

// Fence returns the fence signaled when the submitted list finishes
// executing. The completion tracker waits on it.
func (c *CommandList) Fence() vk.Fence { return c.fence }

// Begin starts one-time-submit recording.
func (c *CommandList) Begin() error {
	return newError(vk.BeginCommandBuffer(c.buffer, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}))
}

// End finishes recording. The list is then ready for submission.
func (c *CommandList) End() error {
	return newError(vk.EndCommandBuffer(c.buffer))
}

// AddStat accumulates a recording statistic (draw calls, dispatches, render
// passes). The accumulated set is merged into the device totals at submit.
func (c *CommandList) AddStat(counter StatCounter, delta uint64) {
	c.stats.Add(counter, delta)
}

// StatCounters returns a copy of the statistics accumulated while recording.
func (c *CommandList) StatCounters() StatCounters { return c.stats }

// TrackDescriptorPool attaches a descriptor pool consumed by this list. The
// pool stays with the list until it is recycled or destroyed.
func (c *CommandList) TrackDescriptorPool(pool *DescriptorPool) {
	c.descriptorPools = append(c.descriptorPools, pool)
}

// drainDescriptorPools hands every attached pool to fn and detaches them.
func (c *CommandList) drainDescriptorPools(fn func(*DescriptorPool)) {
	pools := c.descriptorPools
	c.descriptorPools = nil
	for _, pool := range pools {
		fn(pool)
	}
}

// Submit issues the recorded list to queue with the given wait and signal
// semaphores, using the list's own fence for completion tracking. The caller
// must hold the device's queue lock.
func (c *CommandList) Submit(queue vk.Queue, waitSync, signalSync vk.Semaphore) vk.Result {
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{c.buffer},
	}
	if waitSync != vk.NullSemaphore {
		submitInfo.WaitSemaphoreCount = 1
		submitInfo.PWaitSemaphores = []vk.Semaphore{waitSync}
		submitInfo.PWaitDstStageMask = []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		}
	}
	if signalSync != vk.NullSemaphore {
		submitInfo.SignalSemaphoreCount = 1
		submitInfo.PSignalSemaphores = []vk.Semaphore{signalSync}
	}
	return vk.QueueSubmit(queue, 1, []vk.SubmitInfo{submitInfo}, c.fence)
}

// Reset restores the list to a reusable empty state: recorded commands are
// released back to the list's pool, the fence is unsignaled and the
// statistics are cleared. Attached descriptor pools must have been drained
// first; Device.RecycleCommandList takes care of that.
func (c *CommandList) Reset() error {
	c.stats = StatCounters{}
	if ret := vk.ResetCommandPool(c.device, c.pool, 0); isError(ret) {
		return newError(ret)
	}
	return newError(vk.ResetFences(c.device, 1, []vk.Fence{c.fence}))
}

// Destroy releases the list and every descriptor pool still attached to it.
// Used for lists that failed to submit, whose state is of unknown validity,
// and during device teardown.
func (c *CommandList) Destroy() {
	c.drainDescriptorPools(func(pool *DescriptorPool) { pool.Destroy() })
	if c.fence != vk.NullFence {
		vk.DestroyFence(c.device, c.fence, nil)
		c.fence = vk.NullFence
	}
	if c.pool != vk.NullCommandPool {
		vk.FreeCommandBuffers(c.device, c.pool, 1, []vk.CommandBuffer{c.buffer})
		vk.DestroyCommandPool(c.device, c.pool, nil)
		c.pool = vk.NullCommandPool
	}
}
