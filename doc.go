// Package vkdev implements the device-level resource and execution manager
// for a Vulkan translation layer. A Device owns every long-lived GPU object
// (buffers, images, views, samplers, framebuffers, shader modules, queries,
// events, command lists, descriptor pools) and serializes all access to the
// hardware graphics and presentation queues, which are not thread safe.
//
// Expensive-to-create objects are recycled through free lists instead of
// being destroyed: command lists and descriptor pools return to the Device
// once the GPU has finished with them, staging buffers as soon as the caller
// releases them. Runtime counters are aggregated under a spin lock and can be
// queried as a consistent snapshot or exported through a prometheus
// collector.
//
// The memory allocator, render pass cache, pipeline cache, completion
// tracker and presenter are external collaborators consumed through the
// narrow interfaces declared in this package.
package vkdev
