package vkdev

import vk "github.com/vulkan-go/vulkan"

// RenderTargets is the set of attachments a framebuffer renders to. Unused
// color slots stay nil.
type RenderTargets struct {
	Color [MaxColorTargets]*ImageView
	Depth *ImageView
}

// RenderPassFormat derives the attachment format signature that keys the
// compatible render pass for these targets.
func (rt *RenderTargets) RenderPassFormat() RenderPassFormat {
	var format RenderPassFormat
	format.SampleCount = vk.SampleCount1Bit
	for i, view := range rt.Color {
		if view == nil {
			continue
		}
		format.ColorFormats[i] = view.Info().Format
		if s := view.Image().Info().Samples; s > format.SampleCount {
			format.SampleCount = s
		}
	}
	if rt.Depth != nil {
		format.DepthFormat = rt.Depth.Info().Format
		if s := rt.Depth.Image().Info().Samples; s > format.SampleCount {
			format.SampleCount = s
		}
	}
	return format
}

// FramebufferSize is a framebuffer's render area and layer count.
type FramebufferSize struct {
	Width  uint32
	Height uint32
	Layers uint32
}

// Size computes the common render size of the attachments. Attachments never
// grow the area: each one shrinks it to what all of them support. With no
// attachments at all, fallback is returned, which the device derives from
// its framebuffer limits.
func (rt *RenderTargets) Size(fallback FramebufferSize) FramebufferSize {
	size := fallback
	shrink := func(view *ImageView) {
		extent := view.Extent()
		size.Width = minUint32(size.Width, extent.Width)
		size.Height = minUint32(size.Height, extent.Height)
		size.Layers = minUint32(size.Layers, view.Layers())
	}
	for _, view := range rt.Color {
		if view != nil {
			shrink(view)
		}
	}
	if rt.Depth != nil {
		shrink(rt.Depth)
	}
	return size
}

// Framebuffer binds a set of render targets to a compatible render pass.
type Framebuffer struct {
	device     vk.Device
	handle     vk.Framebuffer
	renderPass vk.RenderPass
	targets    RenderTargets
	size       FramebufferSize
}

// CreateFramebuffer creates a framebuffer for the given render targets. The
// render pass is resolved through the render pass cache from the targets'
// format signature, and the framebuffer size is clamped against the device's
// framebuffer limits.
func (d *Device) CreateFramebuffer(targets RenderTargets) (*Framebuffer, error) {
	fallback := d.maxFramebufferSize()
	renderPass, err := d.renderPasses.GetRenderPass(targets.RenderPassFormat())
	if err != nil {
		return nil, err
	}
	size := targets.Size(fallback)

	attachments := make([]vk.ImageView, 0, MaxColorTargets+1)
	for _, view := range targets.Color {
		if view != nil {
			attachments = append(attachments, view.Handle())
		}
	}
	if targets.Depth != nil {
		attachments = append(attachments, targets.Depth.Handle())
	}

	var handle vk.Framebuffer
	ret := vk.CreateFramebuffer(d.handle, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		Width:           size.Width,
		Height:          size.Height,
		Layers:          size.Layers,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}

	return &Framebuffer{
		device:     d.handle,
		handle:     handle,
		renderPass: renderPass,
		targets:    targets,
		size:       size,
	}, nil
}

// maxFramebufferSize is the fallback size when render targets do not
// constrain a dimension, taken from the device limits.
func (d *Device) maxFramebufferSize() FramebufferSize {
	return FramebufferSize{
		Width:  d.limits.MaxFramebufferWidth,
		Height: d.limits.MaxFramebufferHeight,
		Layers: d.limits.MaxFramebufferLayers,
	}
}

// Handle returns the native framebuffer handle.
func (f *Framebuffer) Handle() vk.Framebuffer { return f.handle }

// RenderPass returns the compatible render pass the framebuffer was created
// against.
func (f *Framebuffer) RenderPass() vk.RenderPass { return f.renderPass }

// Targets returns the attached render targets.
func (f *Framebuffer) Targets() RenderTargets { return f.targets }

// Size returns the render area and layer count.
func (f *Framebuffer) Size() FramebufferSize { return f.size }

// Destroy releases the framebuffer. The render pass belongs to the cache and
// is left alone.
func (f *Framebuffer) Destroy() {
	if f.handle != vk.NullFramebuffer {
		vk.DestroyFramebuffer(f.device, f.handle, nil)
		f.handle = vk.NullFramebuffer
	}
}
