package vkdev

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// ResourceSlot describes one resource binding consumed by a shader.
type ResourceSlot struct {
	Slot uint32
	Type vk.DescriptorType
	View vk.ImageViewType
}

// Shader wraps a shader module together with its stage and the resource
// slots it binds. Register the shader with the device to make it available
// for pipeline compilation.
type Shader struct {
	device vk.Device
	stage  vk.ShaderStageFlagBits
	module vk.ShaderModule
	slots  []ResourceSlot
}

// CreateShader builds a shader module from SPIR-V code. The code length must
// be a multiple of four bytes.
func (d *Device) CreateShader(stage vk.ShaderStageFlagBits, slots []ResourceSlot, code []byte) (*Shader, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, fmt.Errorf("vulkan error: shader code size %d is not a multiple of 4", len(code))
	}
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(d.handle, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &Shader{
		device: d.handle,
		stage:  stage,
		module: module,
		slots:  append([]ResourceSlot(nil), slots...),
	}, nil
}

// Stage returns the pipeline stage this shader executes in.
func (s *Shader) Stage() vk.ShaderStageFlagBits { return s.stage }

// Handle returns the native shader module.
func (s *Shader) Handle() vk.ShaderModule { return s.module }

// Slots returns the resource bindings consumed by the shader.
func (s *Shader) Slots() []ResourceSlot { return s.slots }

// Destroy releases the shader module. The shader must not be registered
// with a live pipeline cache.
func (s *Shader) Destroy() {
	if s.module != vk.NullShaderModule {
		vk.DestroyShaderModule(s.device, s.module, nil)
		s.module = vk.NullShaderModule
	}
}
