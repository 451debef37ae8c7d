package vkdev

import vk "github.com/vulkan-go/vulkan"

// SamplerCreateInfo describes a sampler's filtering and addressing state.
type SamplerCreateInfo struct {
	MagFilter  vk.Filter
	MinFilter  vk.Filter
	MipmapMode vk.SamplerMipmapMode

	AddressModeU vk.SamplerAddressMode
	AddressModeV vk.SamplerAddressMode
	AddressModeW vk.SamplerAddressMode

	MipmapLodBias float32
	MipmapLodMin  float32
	MipmapLodMax  float32

	UseAnisotropy bool
	MaxAnisotropy float32

	CompareToDepth bool
	CompareOp      vk.CompareOp

	BorderColor vk.BorderColor
}

// Sampler wraps a native sampler object.
type Sampler struct {
	device vk.Device
	info   SamplerCreateInfo
	handle vk.Sampler
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(info SamplerCreateInfo) (*Sampler, error) {
	var handle vk.Sampler
	ret := vk.CreateSampler(d.handle, &vk.SamplerCreateInfo{
		SType:            vk.StructureTypeSamplerCreateInfo,
		MagFilter:        info.MagFilter,
		MinFilter:        info.MinFilter,
		MipmapMode:       info.MipmapMode,
		AddressModeU:     info.AddressModeU,
		AddressModeV:     info.AddressModeV,
		AddressModeW:     info.AddressModeW,
		MipLodBias:       info.MipmapLodBias,
		AnisotropyEnable: boolToVk(info.UseAnisotropy),
		MaxAnisotropy:    info.MaxAnisotropy,
		CompareEnable:    boolToVk(info.CompareToDepth),
		CompareOp:        info.CompareOp,
		MinLod:           info.MipmapLodMin,
		MaxLod:           info.MipmapLodMax,
		BorderColor:      info.BorderColor,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &Sampler{device: d.handle, info: info, handle: handle}, nil
}

// Info returns the creation parameters.
func (s *Sampler) Info() SamplerCreateInfo { return s.info }

// Handle returns the native sampler handle.
func (s *Sampler) Handle() vk.Sampler { return s.handle }

// Destroy releases the sampler.
func (s *Sampler) Destroy() {
	if s.handle != vk.NullSampler {
		vk.DestroySampler(s.device, s.handle, nil)
		s.handle = vk.NullSampler
	}
}

func boolToVk(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
