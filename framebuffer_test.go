package vkdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func newTestView(width, height, layers uint32, format vk.Format,
	samples vk.SampleCountFlagBits, minLevel uint32) *ImageView {

	image := &Image{info: ImageCreateInfo{
		Format:  format,
		Extent:  vk.Extent3D{Width: width, Height: height, Depth: 1},
		Samples: samples,
	}}
	return &ImageView{image: image, info: ImageViewCreateInfo{
		Format:    format,
		MinLevel:  minLevel,
		NumLevels: 1,
		NumLayers: layers,
	}}
}

func TestRenderTargetsSizeShrinksToSmallest(t *testing.T) {
	fallback := FramebufferSize{Width: 16384, Height: 16384, Layers: 2048}

	var targets RenderTargets
	targets.Color[0] = newTestView(1920, 1080, 1, vk.FormatB8g8r8a8Unorm, vk.SampleCount1Bit, 0)
	targets.Color[1] = newTestView(1024, 2048, 4, vk.FormatR16g16b16a16Sfloat, vk.SampleCount1Bit, 0)
	targets.Depth = newTestView(1920, 1080, 2, vk.FormatD24UnormS8Uint, vk.SampleCount1Bit, 0)

	size := targets.Size(fallback)
	assert.Equal(t, FramebufferSize{Width: 1024, Height: 1080, Layers: 1}, size)
}

func TestRenderTargetsSizeUsesMipExtent(t *testing.T) {
	fallback := FramebufferSize{Width: 16384, Height: 16384, Layers: 2048}

	// A view of mip level 2 of a 1024x1024 image renders at 256x256.
	var targets RenderTargets
	targets.Color[0] = newTestView(1024, 1024, 1, vk.FormatB8g8r8a8Unorm, vk.SampleCount1Bit, 2)

	size := targets.Size(fallback)
	assert.Equal(t, FramebufferSize{Width: 256, Height: 256, Layers: 1}, size)
}

func TestRenderTargetsSizeFallback(t *testing.T) {
	fallback := FramebufferSize{Width: 4096, Height: 4096, Layers: 256}

	var targets RenderTargets
	assert.Equal(t, fallback, targets.Size(fallback), "no attachments means limit-derived size")
}

func TestRenderTargetsRenderPassFormat(t *testing.T) {
	var targets RenderTargets
	targets.Color[0] = newTestView(640, 480, 1, vk.FormatB8g8r8a8Unorm, vk.SampleCount4Bit, 0)
	targets.Color[3] = newTestView(640, 480, 1, vk.FormatR16g16b16a16Sfloat, vk.SampleCount1Bit, 0)
	targets.Depth = newTestView(640, 480, 1, vk.FormatD32Sfloat, vk.SampleCount4Bit, 0)

	format := targets.RenderPassFormat()
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, format.ColorFormats[0])
	assert.Equal(t, vk.Format(0), format.ColorFormats[1], "unused slots stay undefined")
	assert.Equal(t, vk.FormatR16g16b16a16Sfloat, format.ColorFormats[3])
	assert.Equal(t, vk.FormatD32Sfloat, format.DepthFormat)
	assert.Equal(t, vk.SampleCount4Bit, format.SampleCount)
}

func TestRenderTargetsRenderPassFormatDefaults(t *testing.T) {
	var targets RenderTargets
	format := targets.RenderPassFormat()
	assert.Equal(t, vk.SampleCount1Bit, format.SampleCount)
	assert.Equal(t, vk.Format(0), format.DepthFormat)
}

func TestImageMipExtent(t *testing.T) {
	image := &Image{info: ImageCreateInfo{
		Extent: vk.Extent3D{Width: 1000, Height: 600, Depth: 1},
	}}

	assert.Equal(t, vk.Extent3D{Width: 1000, Height: 600, Depth: 1}, image.MipExtent(0))
	assert.Equal(t, vk.Extent3D{Width: 500, Height: 300, Depth: 1}, image.MipExtent(1))
	assert.Equal(t, vk.Extent3D{Width: 125, Height: 75, Depth: 1}, image.MipExtent(3))
	// Dimensions never shrink below one texel.
	assert.Equal(t, vk.Extent3D{Width: 1, Height: 1, Depth: 1}, image.MipExtent(12))
}
