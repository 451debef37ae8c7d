package vkdev

import vk "github.com/vulkan-go/vulkan"

// DefaultStagingBufferSize is the standard size class for pooled staging
// buffers. A staging buffer should be able to serve multiple uploads, so
// smaller requests are rounded up to this size.
const DefaultStagingBufferSize vk.DeviceSize = 4 << 20

// StagingBuffer is a transient host-visible transfer buffer. Uploads carve
// ranges from it with Alloc; Reset makes the whole buffer writable again
// once no GPU transfer references it.
type StagingBuffer struct {
	buffer *Buffer
	offset vk.DeviceSize
}

// Size returns the buffer's capacity in bytes.
func (s *StagingBuffer) Size() vk.DeviceSize { return s.buffer.Size() }

// Buffer returns the underlying transfer buffer.
func (s *StagingBuffer) Buffer() *Buffer { return s.buffer }

// Alloc reserves size bytes and returns the range's offset. It reports
// false when the remaining capacity is too small, in which case the caller
// should release this buffer and acquire a fresh one.
func (s *StagingBuffer) Alloc(size vk.DeviceSize) (vk.DeviceSize, bool) {
	if s.offset+size > s.buffer.Size() {
		return 0, false
	}
	offset := s.offset
	s.offset += size
	return offset, true
}

// Reset discards all carved ranges, restoring the buffer to an empty
// writable state.
func (s *StagingBuffer) Reset() { s.offset = 0 }

// Destroy releases the underlying buffer.
func (s *StagingBuffer) Destroy() { s.buffer.Destroy() }

// stagingPool implements the size-tiered staging buffer policy: requests at
// or below the standard threshold are served from the free list when
// possible, and only buffers of exactly the standard size are ever pooled,
// so rare large transfers do not pin memory.
type stagingPool struct {
	threshold vk.DeviceSize
	create    func(size vk.DeviceSize) (*StagingBuffer, error)
	destroy   func(*StagingBuffer)
	recycler  Recycler[*StagingBuffer]
}

func newStagingPool(threshold vk.DeviceSize,
	create func(size vk.DeviceSize) (*StagingBuffer, error),
	destroy func(*StagingBuffer)) *stagingPool {

	if threshold == 0 {
		threshold = DefaultStagingBufferSize
	}
	return &stagingPool{threshold: threshold, create: create, destroy: destroy}
}

// Acquire returns a staging buffer of at least size bytes. A pooled buffer
// is always exactly threshold-sized and therefore serves any request at or
// below the threshold. Fresh buffers are floored to the threshold so small
// requests still produce reusable standard-size buffers.
func (p *stagingPool) Acquire(size vk.DeviceSize) (*StagingBuffer, error) {
	if size <= p.threshold {
		if buffer, ok := p.recycler.Retrieve(); ok {
			return buffer, nil
		}
	}
	if size < p.threshold {
		size = p.threshold
	}
	return p.create(size)
}

// Release returns buffer to the free list if it is exactly standard-size,
// after resetting it; oversized buffers are destroyed.
func (p *stagingPool) Release(buffer *StagingBuffer) {
	if buffer.Size() == p.threshold {
		buffer.Reset()
		p.recycler.Return(buffer)
		return
	}
	p.destroy(buffer)
}

func (p *stagingPool) drain() {
	p.recycler.Drain(p.destroy)
}
