package vkdev

import vk "github.com/vulkan-go/vulkan"

// BufferCreateInfo describes a buffer resource: its size, the usages it must
// support and the pipeline stages and access types that will touch it.
type BufferCreateInfo struct {
	Size   vk.DeviceSize
	Usage  vk.BufferUsageFlags
	Stages vk.PipelineStageFlags
	Access vk.AccessFlags
}

// Buffer is a device buffer bound to allocator-provided memory.
type Buffer struct {
	device vk.Device
	alloc  Allocator
	info   BufferCreateInfo
	handle vk.Buffer
	memory MemoryRegion
}

// CreateBuffer creates a buffer and binds it to memory with the requested
// property flags. Allocation failures propagate from the allocator unmasked.
func (d *Device) CreateBuffer(info BufferCreateInfo, memFlags vk.MemoryPropertyFlags) (*Buffer, error) {
	var handle vk.Buffer
	ret := vk.CreateBuffer(d.handle, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        info.Size,
		Usage:       info.Usage,
		SharingMode: vk.SharingModeExclusive,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}

	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(d.handle, handle, &reqs)
	reqs.Deref()

	region, err := d.allocator.Allocate(reqs, memFlags)
	if err != nil {
		vk.DestroyBuffer(d.handle, handle, nil)
		return nil, err
	}
	ret = vk.BindBufferMemory(d.handle, handle, region.Memory, region.Offset)
	if isError(ret) {
		d.allocator.Free(region)
		vk.DestroyBuffer(d.handle, handle, nil)
		return nil, newError(ret)
	}

	return &Buffer{
		device: d.handle,
		alloc:  d.allocator,
		info:   info,
		handle: handle,
		memory: region,
	}, nil
}

// Size returns the buffer size in bytes as requested at creation.
func (b *Buffer) Size() vk.DeviceSize { return b.info.Size }

// Info returns the creation parameters.
func (b *Buffer) Info() BufferCreateInfo { return b.info }

// Handle returns the native buffer handle.
func (b *Buffer) Handle() vk.Buffer { return b.handle }

// Memory returns the backing memory region.
func (b *Buffer) Memory() MemoryRegion { return b.memory }

// Destroy releases the buffer and returns its memory to the allocator. The
// caller must guarantee no submitted work still references the buffer.
func (b *Buffer) Destroy() {
	if b.handle != vk.NullBuffer {
		vk.DestroyBuffer(b.device, b.handle, nil)
		b.handle = vk.NullBuffer
		b.alloc.Free(b.memory)
	}
}

// BufferViewCreateInfo describes a formatted view of a buffer range.
type BufferViewCreateInfo struct {
	Format vk.Format
	Offset vk.DeviceSize
	Range  vk.DeviceSize
}

// BufferView is a formatted view into a buffer, used for texel buffer
// bindings.
type BufferView struct {
	device vk.Device
	buffer *Buffer
	info   BufferViewCreateInfo
	handle vk.BufferView
}

// CreateBufferView creates a formatted view over buffer.
func (d *Device) CreateBufferView(buffer *Buffer, info BufferViewCreateInfo) (*BufferView, error) {
	var handle vk.BufferView
	ret := vk.CreateBufferView(d.handle, &vk.BufferViewCreateInfo{
		SType:  vk.StructureTypeBufferViewCreateInfo,
		Buffer: buffer.handle,
		Format: info.Format,
		Offset: info.Offset,
		Range:  info.Range,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &BufferView{device: d.handle, buffer: buffer, info: info, handle: handle}, nil
}

// Buffer returns the viewed buffer.
func (v *BufferView) Buffer() *Buffer { return v.buffer }

// Info returns the creation parameters.
func (v *BufferView) Info() BufferViewCreateInfo { return v.info }

// Handle returns the native buffer view handle.
func (v *BufferView) Handle() vk.BufferView { return v.handle }

// Destroy releases the view. The viewed buffer is not affected.
func (v *BufferView) Destroy() {
	if v.handle != vk.NullBufferView {
		vk.DestroyBufferView(v.device, v.handle, nil)
		v.handle = vk.NullBufferView
	}
}
