package vkdev

import (
	"errors"
	"log"
	"sync"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceFeatures flags the optional capabilities the device was created
// with.
type DeviceFeatures struct {
	GeometryShader     bool
	TessellationShader bool
}

// DeviceOptions are limit-derived knobs consumed by the client API binding
// layer.
type DeviceOptions struct {
	MaxNumDynamicUniformBuffers uint32
	MaxNumDynamicStorageBuffers uint32
}

// DeviceCreateInfo carries the native handles resolved by the platform layer
// and the collaborator subsystems the Device composes.
type DeviceCreateInfo struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	QueueFamilies  QueueFamilies
	Features       DeviceFeatures

	Allocator    Allocator
	RenderPasses RenderPassCache
	Pipelines    PipelineCache
	Tracker      CompletionTracker

	// Config is optional; nil applies DefaultConfig.
	Config *Config
}

// Device owns every long-lived GPU resource of one logical device and
// serializes all hardware queue access. It is safe for concurrent use by
// multiple recording threads; see SubmitCommandList for the ordering
// guarantees.
//
// No subsystem outlives the Device: Destroy blocks until all submitted work
// has completed before tearing anything down.
type Device struct {
	instance vk.Instance
	gpu      vk.PhysicalDevice
	handle   vk.Device

	graphicsQueue QueueDescriptor
	presentQueue  QueueDescriptor

	properties vk.PhysicalDeviceProperties
	limits     vk.PhysicalDeviceLimits
	features   DeviceFeatures

	allocator    Allocator
	renderPasses RenderPassCache
	pipelines    PipelineCache
	tracker      CompletionTracker

	// submitMu guards the non-thread-safe hardware queues. statMu guards
	// the running counter totals. Lock order: submitMu first, then statMu,
	// never the reverse.
	submitMu     sync.Mutex
	statMu       spinLock
	statCounters StatCounters

	commandLists    Recycler[*CommandList]
	descriptorPools Recycler[*DescriptorPool]
	staging         *stagingPool
}

// NewDevice composes a Device from an existing logical device and its
// collaborator subsystems. The graphics and present queues are resolved once
// here and never change.
func NewDevice(info DeviceCreateInfo) (*Device, error) {
	switch {
	case info.Device == nil:
		return nil, errors.New("vkdev: logical device handle is required")
	case info.Allocator == nil:
		return nil, errors.New("vkdev: allocator is required")
	case info.RenderPasses == nil:
		return nil, errors.New("vkdev: render pass cache is required")
	case info.Pipelines == nil:
		return nil, errors.New("vkdev: pipeline cache is required")
	case info.Tracker == nil:
		return nil, errors.New("vkdev: completion tracker is required")
	}
	cfg := info.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	d := &Device{
		instance:     info.Instance,
		gpu:          info.PhysicalDevice,
		handle:       info.Device,
		features:     info.Features,
		allocator:    info.Allocator,
		renderPasses: info.RenderPasses,
		pipelines:    info.Pipelines,
		tracker:      info.Tracker,
	}

	vk.GetPhysicalDeviceProperties(d.gpu, &d.properties)
	d.properties.Deref()
	d.properties.Limits.Deref()
	d.limits = d.properties.Limits

	d.graphicsQueue.Family = info.QueueFamilies.Graphics
	d.presentQueue.Family = info.QueueFamilies.Present
	vk.GetDeviceQueue(d.handle, d.graphicsQueue.Family, 0, &d.graphicsQueue.Handle)
	vk.GetDeviceQueue(d.handle, d.presentQueue.Family, 0, &d.presentQueue.Handle)

	d.staging = newStagingPool(vk.DeviceSize(cfg.StagingBufferSize),
		d.createStagingBuffer,
		func(buffer *StagingBuffer) { buffer.Destroy() })

	return d, nil
}

// Handle returns the native logical device.
func (d *Device) Handle() vk.Device { return d.handle }

// PhysicalDevice returns the native physical device.
func (d *Device) PhysicalDevice() vk.PhysicalDevice { return d.gpu }

// GraphicsQueue returns the descriptor of the graphics queue. The handle
// must never be used outside the device's submission path.
func (d *Device) GraphicsQueue() QueueDescriptor { return d.graphicsQueue }

// PresentQueue returns the descriptor of the presentation queue.
func (d *Device) PresentQueue() QueueDescriptor { return d.presentQueue }

// Features returns the optional capabilities enabled on the device.
func (d *Device) Features() DeviceFeatures { return d.features }

// Limits returns the physical device limits.
func (d *Device) Limits() vk.PhysicalDeviceLimits { return d.limits }

// Options derives the binding-layer options from the device limits.
func (d *Device) Options() DeviceOptions {
	return DeviceOptions{
		MaxNumDynamicUniformBuffers: d.limits.MaxDescriptorSetUniformBuffersDynamic,
		MaxNumDynamicStorageBuffers: d.limits.MaxDescriptorSetStorageBuffersDynamic,
	}
}

// ShaderPipelineStages returns the pipeline stages that may access shader
// resources, given the enabled device features.
func (d *Device) ShaderPipelineStages() vk.PipelineStageFlags {
	result := vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit) |
		vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit) |
		vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	if d.features.GeometryShader {
		result |= vk.PipelineStageFlags(vk.PipelineStageGeometryShaderBit)
	}
	if d.features.TessellationShader {
		result |= vk.PipelineStageFlags(vk.PipelineStageTessellationControlShaderBit) |
			vk.PipelineStageFlags(vk.PipelineStageTessellationEvaluationShaderBit)
	}
	return result
}

// RegisterShader makes a shader available to the pipeline cache.
func (d *Device) RegisterShader(shader *Shader) {
	d.pipelines.RegisterShader(shader)
}

// CreateCommandList returns a pooled command list, creating a fresh one when
// the free list is empty. The returned list is exclusively owned by the
// caller until it is submitted and recycled.
func (d *Device) CreateCommandList() (*CommandList, error) {
	if cmd, ok := d.commandLists.Retrieve(); ok {
		return cmd, nil
	}
	return newCommandList(d.handle, d.graphicsQueue.Family)
}

// RecycleCommandList returns a command list to the free list, first
// recycling every descriptor pool it consumed. The caller must guarantee the
// GPU has finished executing the list; the completion tracker calls this
// after the list's fence signals. A list that fails to reset is destroyed
// instead of pooled.
func (d *Device) RecycleCommandList(cmd *CommandList) {
	cmd.drainDescriptorPools(d.RecycleDescriptorPool)
	if err := cmd.Reset(); err != nil {
		log.Printf("vulkan: command list %s reset failed, destroying: %v", cmd.ID(), err)
		cmd.Destroy()
		return
	}
	d.commandLists.Return(cmd)
}

// CreateDescriptorPool returns a pooled descriptor pool, creating a fresh
// one when the free list is empty.
func (d *Device) CreateDescriptorPool() (*DescriptorPool, error) {
	if pool, ok := d.descriptorPools.Retrieve(); ok {
		return pool, nil
	}
	return newDescriptorPool(d.handle)
}

// RecycleDescriptorPool resets a descriptor pool and returns it to the free
// list. The caller must guarantee no submitted work still references sets
// carved from the pool.
func (d *Device) RecycleDescriptorPool(pool *DescriptorPool) {
	if err := pool.Reset(); err != nil {
		log.Printf("vulkan: descriptor pool reset failed, destroying: %v", err)
		pool.Destroy()
		return
	}
	d.descriptorPools.Return(pool)
}

// AllocStagingBuffer returns a transfer-capable, host-visible buffer of at
// least size bytes. Requests at or below the standard size class are served
// from the staging free list when possible.
func (d *Device) AllocStagingBuffer(size vk.DeviceSize) (*StagingBuffer, error) {
	return d.staging.Acquire(size)
}

// RecycleStagingBuffer releases a staging buffer. Standard-size buffers
// return to the free list; oversized ones are destroyed so memory is not
// retained for rare large transfers.
func (d *Device) RecycleStagingBuffer(buffer *StagingBuffer) {
	d.staging.Release(buffer)
}

// createStagingBuffer backs the staging pool. Staging buffers only need to
// serve transfer sources written by the host, in host-visible coherent
// memory.
func (d *Device) createStagingBuffer(size vk.DeviceSize) (*StagingBuffer, error) {
	buffer, err := d.CreateBuffer(BufferCreateInfo{
		Size:  size,
		Usage: vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		Stages: vk.PipelineStageFlags(vk.PipelineStageTransferBit) |
			vk.PipelineStageFlags(vk.PipelineStageHostBit),
		Access: vk.AccessFlags(vk.AccessTransferReadBit) |
			vk.AccessFlags(vk.AccessHostWriteBit),
	}, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}
	return &StagingBuffer{buffer: buffer}, nil
}

// StatCounters returns a consistent snapshot of the runtime counters: the
// live memory and pipeline numbers queried from the collaborators, merged
// with the running submit/present totals.
func (d *Device) StatCounters() StatCounters {
	mem := d.allocator.MemoryStats()
	graphics, compute := d.pipelines.PipelineCounts()

	var result StatCounters
	result.Set(StatMemoryAllocated, mem.Allocated)
	result.Set(StatMemoryUsed, mem.Used)
	result.Set(StatPipeCountGraphics, graphics)
	result.Set(StatPipeCountCompute, compute)

	d.statMu.Lock()
	result.Merge(&d.statCounters)
	d.statMu.Unlock()
	return result
}

// CurrentFrameID returns the number of frames presented so far.
func (d *Device) CurrentFrameID() uint64 {
	d.statMu.Lock()
	defer d.statMu.Unlock()
	return d.statCounters.Get(StatQueuePresentCount)
}

// WaitIdle blocks until the device has finished all pending work.
func (d *Device) WaitIdle() error {
	err := newError(vk.DeviceWaitIdle(d.handle))
	if err != nil {
		log.Printf("vulkan: device wait idle failed: %v", err)
	}
	return err
}

// Destroy tears the device-owned subsystems down. It blocks until every
// pending hardware operation has completed, then destroys all pooled
// objects. The logical device handle itself belongs to the platform layer
// and is not destroyed here.
func (d *Device) Destroy() {
	// Pooled objects must not be destroyed while the GPU may still
	// reference them.
	d.WaitIdle()

	d.commandLists.Drain(func(cmd *CommandList) { cmd.Destroy() })
	d.descriptorPools.Drain(func(pool *DescriptorPool) { pool.Destroy() })
	d.staging.drain()
}
