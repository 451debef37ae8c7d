package vkdev

import vk "github.com/vulkan-go/vulkan"

// Event wraps a native event object used for fine-grained host/device
// synchronization inside command lists.
type Event struct {
	device vk.Device
	handle vk.Event
}

// CreateEvent creates an event in the unsignaled state.
func (d *Device) CreateEvent() (*Event, error) {
	var handle vk.Event
	ret := vk.CreateEvent(d.handle, &vk.EventCreateInfo{
		SType: vk.StructureTypeEventCreateInfo,
	}, nil, &handle)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &Event{device: d.handle, handle: handle}, nil
}

// Handle returns the native event handle.
func (e *Event) Handle() vk.Event { return e.handle }

// Status reports whether the event is signaled.
func (e *Event) Status() (bool, error) {
	ret := vk.GetEventStatus(e.device, e.handle)
	switch ret {
	case vk.EventSet:
		return true, nil
	case vk.EventReset:
		return false, nil
	default:
		return false, newError(ret)
	}
}

// Reset returns the event to the unsignaled state.
func (e *Event) Reset() error {
	return newError(vk.ResetEvent(e.device, e.handle))
}

// Destroy releases the event.
func (e *Event) Destroy() {
	if e.handle != vk.NullEvent {
		vk.DestroyEvent(e.device, e.handle, nil)
		e.handle = vk.NullEvent
	}
}
