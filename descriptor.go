package vkdev

import vk "github.com/vulkan-go/vulkan"

const (
	// maxDescriptorSets is the number of sets one pooled descriptor pool can
	// carve before the recording context switches to a fresh pool.
	maxDescriptorSets = 1024
	// maxDescriptorsPerType sizes each descriptor type within a pool.
	maxDescriptorsPerType = 2048
)

// DescriptorPool is a pooled, fixed-capacity block from which descriptor
// sets are carved during recording. Pools are consumed by a command list,
// travel with it through submission, and return to the device's free list
// once the GPU is done with the list.
type DescriptorPool struct {
	device vk.Device
	handle vk.DescriptorPool
}

func newDescriptorPool(device vk.Device) (*DescriptorPool, error) {
	poolSizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeSampler, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeSampledImage, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeUniformBufferDynamic, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeStorageBufferDynamic, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeUniformTexelBuffer, DescriptorCount: maxDescriptorsPerType},
		{Type: vk.DescriptorTypeStorageTexelBuffer, DescriptorCount: maxDescriptorsPerType},
	}

	var handle vk.DescriptorPool
	ret := vk.CreateDescriptorPool(device, &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       maxDescriptorSets,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &DescriptorPool{device: device, handle: handle}, nil
}

// Alloc carves one descriptor set with the given layout. It reports false
// when the pool is exhausted and the caller should continue on a fresh pool.
func (p *DescriptorPool) Alloc(layout vk.DescriptorSetLayout) (vk.DescriptorSet, bool) {
	var set vk.DescriptorSet
	ret := vk.AllocateDescriptorSets(p.device, &vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.handle,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}, &set)
	return set, ret == vk.Success
}

// Reset frees every set carved from the pool, restoring its full capacity.
// The caller must guarantee the GPU no longer references any of the sets.
func (p *DescriptorPool) Reset() error {
	return newError(vk.ResetDescriptorPool(p.device, p.handle, 0))
}

// Destroy releases the pool and all sets carved from it.
func (p *DescriptorPool) Destroy() {
	if p.handle != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(p.device, p.handle, nil)
		p.handle = vk.NullDescriptorPool
	}
}
