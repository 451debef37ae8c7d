package vkdev

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Display is the window-system glue needed to resolve a present-capable
// device: it turns a glfw window into a Vulkan surface and reports the
// instance extensions the window system requires. Swapchain management is
// left to the presentation layer.
type Display struct {
	window  *glfw.Window
	surface vk.Surface
}

// NewDisplay wraps an existing glfw window. The window must have been
// created with glfw.ClientAPI set to glfw.NoAPI.
func NewDisplay(window *glfw.Window) *Display {
	return &Display{window: window}
}

// RequiredInstanceExtensions lists the instance extensions the window system
// needs for surface creation. Pass them to instance creation before calling
// Surface.
func (d *Display) RequiredInstanceExtensions() []string {
	return d.window.GetRequiredInstanceExtensions()
}

// Surface creates the Vulkan surface for the window on first call and
// returns the cached handle afterwards.
func (d *Display) Surface(instance vk.Instance) (vk.Surface, error) {
	if d.surface != vk.NullSurface {
		return d.surface, nil
	}
	ptr, err := d.window.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, err
	}
	d.surface = vk.SurfaceFromPointer(ptr)
	return d.surface, nil
}

// Size returns the window's framebuffer size in pixels.
func (d *Display) Size() (width, height int) {
	return d.window.GetFramebufferSize()
}

// Destroy releases the surface. The window itself belongs to the caller.
func (d *Display) Destroy(instance vk.Instance) {
	if d.surface != vk.NullSurface {
		vk.DestroySurface(instance, d.surface, nil)
		d.surface = vk.NullSurface
	}
}
