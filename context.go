package vkdev

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// Context is a per-thread recording context. It bundles the pooled command
// list a worker records into with the descriptor pools consumed along the
// way, so that everything travels together through submission and recycling.
//
// A Context must not be shared between threads; create one per worker.
type Context struct {
	device *Device
	cmd    *CommandList
	pool   *DescriptorPool
}

// CreateContext returns a fresh recording context bound to the device.
func (d *Device) CreateContext() *Context {
	return &Context{device: d}
}

// Begin obtains a pooled command list and starts recording into it.
func (c *Context) Begin() error {
	if c.cmd != nil {
		return errors.New("vkdev: context is already recording")
	}
	cmd, err := c.device.CreateCommandList()
	if err != nil {
		return err
	}
	if err := cmd.Begin(); err != nil {
		cmd.Destroy()
		return err
	}
	c.cmd = cmd
	return nil
}

// CommandBuffer exposes the native command buffer for the recording API.
func (c *Context) CommandBuffer() vk.CommandBuffer {
	return c.cmd.Handle()
}

// CommandList returns the list currently being recorded.
func (c *Context) CommandList() *CommandList {
	return c.cmd
}

// AllocDescriptorSet carves a descriptor set for the given layout, switching
// to a fresh pool when the current one is exhausted. Consumed pools attach
// to the command list and are recycled with it.
func (c *Context) AllocDescriptorSet(layout vk.DescriptorSetLayout) (vk.DescriptorSet, error) {
	if c.cmd == nil {
		return vk.NullDescriptorSet, errors.New("vkdev: context is not recording")
	}
	if c.pool == nil {
		if err := c.nextDescriptorPool(); err != nil {
			return vk.NullDescriptorSet, err
		}
	}
	if set, ok := c.pool.Alloc(layout); ok {
		return set, nil
	}
	if err := c.nextDescriptorPool(); err != nil {
		return vk.NullDescriptorSet, err
	}
	set, ok := c.pool.Alloc(layout)
	if !ok {
		return vk.NullDescriptorSet, errors.New("vkdev: descriptor set layout exceeds pool capacity")
	}
	return set, nil
}

func (c *Context) nextDescriptorPool() error {
	pool, err := c.device.CreateDescriptorPool()
	if err != nil {
		return err
	}
	c.pool = pool
	c.cmd.TrackDescriptorPool(pool)
	return nil
}

// End finishes recording and releases ownership of the command list to the
// caller, which typically submits it. The context can Begin again
// afterwards.
func (c *Context) End() (*CommandList, error) {
	if c.cmd == nil {
		return nil, errors.New("vkdev: context is not recording")
	}
	if err := c.cmd.End(); err != nil {
		return nil, err
	}
	cmd := c.cmd
	c.cmd = nil
	c.pool = nil
	return cmd, nil
}
