package vkdev

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// QueueDescriptor pairs a queue family index with the queue handle retrieved
// from it. Both queues of a device are resolved once at construction and
// never change.
type QueueDescriptor struct {
	Family uint32
	Handle vk.Queue
}

// QueueFamilies holds the queue family indices a device is built with.
type QueueFamilies struct {
	Graphics uint32
	Present  uint32
}

// HasSeparatePresentQueue is true when presentation runs on a different
// family than graphics.
func (q QueueFamilies) HasSeparatePresentQueue() bool {
	return q.Graphics != q.Present
}

// SelectQueueFamilies scans the physical device for a graphics-capable
// family and, when surface is not null, a family able to present to it. The
// graphics family is preferred for presentation when it supports the
// surface, so most devices end up with a single shared family.
func SelectQueueFamilies(gpu vk.PhysicalDevice, surface vk.Surface) (QueueFamilies, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	if count == 0 {
		return QueueFamilies{}, errors.New("vulkan error: no queue families found on physical device")
	}
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, props)

	flags := make([]vk.QueueFlags, count)
	presentable := make([]bool, count)
	for i := uint32(0); i < count; i++ {
		props[i].Deref()
		flags[i] = props[i].QueueFlags
		if surface != vk.NullSurface {
			var supported vk.Bool32
			vk.GetPhysicalDeviceSurfaceSupport(gpu, i, surface, &supported)
			presentable[i] = supported.B()
		}
	}
	return pickQueueFamilies(flags, presentable, surface != vk.NullSurface)
}

// pickQueueFamilies chooses the graphics and present families from the
// capability tables.
func pickQueueFamilies(flags []vk.QueueFlags, presentable []bool, needPresent bool) (QueueFamilies, error) {
	graphics := -1
	present := -1
	for i := range flags {
		isGraphics := flags[i]&vk.QueueFlags(vk.QueueGraphicsBit) != 0
		if isGraphics && graphics < 0 {
			graphics = i
		}
		if needPresent && presentable[i] {
			// Prefer presenting on the graphics family.
			if present < 0 || (isGraphics && i == graphics) {
				present = i
			}
		}
	}
	if graphics < 0 {
		return QueueFamilies{}, errors.New("vulkan error: no graphics-capable queue family")
	}
	if !needPresent {
		return QueueFamilies{Graphics: uint32(graphics), Present: uint32(graphics)}, nil
	}
	if present < 0 {
		return QueueFamilies{}, errors.New("vulkan error: no queue family can present to the surface")
	}
	return QueueFamilies{Graphics: uint32(graphics), Present: uint32(present)}, nil
}
