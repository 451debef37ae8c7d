package vkdev

import vk "github.com/vulkan-go/vulkan"

// ImageCreateInfo describes an image resource.
type ImageCreateInfo struct {
	Type        vk.ImageType
	Format      vk.Format
	Extent      vk.Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Samples     vk.SampleCountFlagBits
	Tiling      vk.ImageTiling
	Usage       vk.ImageUsageFlags
	Layout      vk.ImageLayout
}

// Image is a device image bound to allocator-provided memory.
type Image struct {
	device vk.Device
	alloc  Allocator
	info   ImageCreateInfo
	handle vk.Image
	memory MemoryRegion
}

// CreateImage creates an image and binds it to memory with the requested
// property flags.
func (d *Device) CreateImage(info ImageCreateInfo, memFlags vk.MemoryPropertyFlags) (*Image, error) {
	if info.MipLevels == 0 {
		info.MipLevels = 1
	}
	if info.ArrayLayers == 0 {
		info.ArrayLayers = 1
	}
	if info.Samples == 0 {
		info.Samples = vk.SampleCount1Bit
	}

	var handle vk.Image
	ret := vk.CreateImage(d.handle, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     info.Type,
		Format:        info.Format,
		Extent:        info.Extent,
		MipLevels:     info.MipLevels,
		ArrayLayers:   info.ArrayLayers,
		Samples:       info.Samples,
		Tiling:        info.Tiling,
		Usage:         info.Usage,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: info.Layout,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}

	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(d.handle, handle, &reqs)
	reqs.Deref()

	region, err := d.allocator.Allocate(reqs, memFlags)
	if err != nil {
		vk.DestroyImage(d.handle, handle, nil)
		return nil, err
	}
	ret = vk.BindImageMemory(d.handle, handle, region.Memory, region.Offset)
	if isError(ret) {
		d.allocator.Free(region)
		vk.DestroyImage(d.handle, handle, nil)
		return nil, newError(ret)
	}

	return &Image{
		device: d.handle,
		alloc:  d.allocator,
		info:   info,
		handle: handle,
		memory: region,
	}, nil
}

// Info returns the creation parameters.
func (i *Image) Info() ImageCreateInfo { return i.info }

// Handle returns the native image handle.
func (i *Image) Handle() vk.Image { return i.handle }

// MipExtent computes the extent of the given mip level.
func (i *Image) MipExtent(level uint32) vk.Extent3D {
	e := i.info.Extent
	e.Width = maxShifted(e.Width, level)
	e.Height = maxShifted(e.Height, level)
	e.Depth = maxShifted(e.Depth, level)
	return e
}

func maxShifted(v, shift uint32) uint32 {
	if v >>= shift; v == 0 {
		return 1
	}
	return v
}

// Destroy releases the image and returns its memory to the allocator. The
// caller must guarantee no submitted work still references the image.
func (i *Image) Destroy() {
	if i.handle != vk.NullImage {
		vk.DestroyImage(i.device, i.handle, nil)
		i.handle = vk.NullImage
		i.alloc.Free(i.memory)
	}
}

// ImageViewCreateInfo describes a view over an image subresource range.
type ImageViewCreateInfo struct {
	Type      vk.ImageViewType
	Format    vk.Format
	Aspect    vk.ImageAspectFlags
	MinLevel  uint32
	NumLevels uint32
	MinLayer  uint32
	NumLayers uint32
}

// ImageView is a typed view over an image subresource range, usable as a
// shader binding or a framebuffer attachment.
type ImageView struct {
	device vk.Device
	image  *Image
	info   ImageViewCreateInfo
	handle vk.ImageView
}

// CreateImageView creates a view over image.
func (d *Device) CreateImageView(image *Image, info ImageViewCreateInfo) (*ImageView, error) {
	if info.NumLevels == 0 {
		info.NumLevels = 1
	}
	if info.NumLayers == 0 {
		info.NumLayers = 1
	}

	var handle vk.ImageView
	ret := vk.CreateImageView(d.handle, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image.handle,
		ViewType: info.Type,
		Format:   info.Format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     info.Aspect,
			BaseMipLevel:   info.MinLevel,
			LevelCount:     info.NumLevels,
			BaseArrayLayer: info.MinLayer,
			LayerCount:     info.NumLayers,
		},
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &ImageView{device: d.handle, image: image, info: info, handle: handle}, nil
}

// Image returns the viewed image.
func (v *ImageView) Image() *Image { return v.image }

// Info returns the creation parameters.
func (v *ImageView) Info() ImageViewCreateInfo { return v.info }

// Handle returns the native image view handle.
func (v *ImageView) Handle() vk.ImageView { return v.handle }

// Extent computes the render extent of the view's base mip level.
func (v *ImageView) Extent() vk.Extent3D {
	return v.image.MipExtent(v.info.MinLevel)
}

// Layers returns the number of array layers covered by the view.
func (v *ImageView) Layers() uint32 { return v.info.NumLayers }

// Destroy releases the view. The viewed image is not affected.
func (v *ImageView) Destroy() {
	if v.handle != vk.NullImageView {
		vk.DestroyImageView(v.device, v.handle, nil)
		v.handle = vk.NullImageView
	}
}
