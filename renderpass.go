package vkdev

import vk "github.com/vulkan-go/vulkan"

// MaxColorTargets is the maximum number of color attachments a framebuffer
// can render to.
const MaxColorTargets = 8

// RenderPassFormat is the attachment format signature that keys compatible
// render passes. Two framebuffers with equal signatures can share a render
// pass object.
type RenderPassFormat struct {
	ColorFormats [MaxColorTargets]vk.Format
	DepthFormat  vk.Format
	SampleCount  vk.SampleCountFlagBits
}

// RenderPassCache resolves render pass objects from attachment format
// signatures. Lookups are idempotent: identical signatures yield the same
// handle, and the cache creates the pass on first use.
type RenderPassCache interface {
	GetRenderPass(format RenderPassFormat) (vk.RenderPass, error)
}
