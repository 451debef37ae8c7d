package vkdev

import "sync"

// Recycler keeps a free list of idle reusable objects of one type. Objects
// that are expensive to create and cheap to reset (command lists, descriptor
// pools, staging buffers) are returned here instead of being destroyed.
//
// All pooled objects of a type are interchangeable once reset, so no ordering
// is guaranteed between retrieved and returned instances; retrieval is
// last-in-first-out. The free list holds strong references until Drain so
// pooled objects never lose their native handles to the garbage collector.
//
// A Recycler is safe for concurrent use. It does not bound its size; callers
// enforce domain-specific bounds, as the staging buffer pool does by dropping
// oversized buffers.
type Recycler[T any] struct {
	mu   sync.Mutex
	idle []T
}

// Retrieve removes and returns one idle object. It reports false when the
// free list is empty and the caller must construct a fresh instance.
func (r *Recycler[T]) Retrieve() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	n := len(r.idle)
	if n == 0 {
		return zero, false
	}
	obj := r.idle[n-1]
	r.idle[n-1] = zero
	r.idle = r.idle[:n-1]
	return obj, true
}

// Return inserts obj into the free list, making it available to the next
// Retrieve. The object must already be idle: no outstanding GPU work may
// reference it.
func (r *Recycler[T]) Return(obj T) {
	r.mu.Lock()
	r.idle = append(r.idle, obj)
	r.mu.Unlock()
}

// Drain empties the free list, invoking destroy on each idle object. Used
// during device teardown after the completion wait.
func (r *Recycler[T]) Drain(destroy func(T)) {
	r.mu.Lock()
	idle := r.idle
	r.idle = nil
	r.mu.Unlock()

	for _, obj := range idle {
		destroy(obj)
	}
}
