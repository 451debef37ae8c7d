package vkdev

// StatCounter identifies one of the runtime counters tracked by the device.
type StatCounter int

const (
	// StatMemoryAllocated is the number of bytes of device memory allocated.
	StatMemoryAllocated StatCounter = iota
	// StatMemoryUsed is the number of bytes of device memory in active use.
	StatMemoryUsed
	// StatPipeCountGraphics is the number of graphics pipelines compiled.
	StatPipeCountGraphics
	// StatPipeCountCompute is the number of compute pipelines compiled.
	StatPipeCountCompute
	// StatCmdDrawCalls is the number of draw calls recorded.
	StatCmdDrawCalls
	// StatCmdDispatchCalls is the number of compute dispatches recorded.
	StatCmdDispatchCalls
	// StatCmdRenderPassCount is the number of render passes recorded.
	StatCmdRenderPassCount
	// StatQueueSubmitCount is the number of command lists submitted.
	StatQueueSubmitCount
	// StatQueuePresentCount is the number of images presented, which doubles
	// as the frame number.
	StatQueuePresentCount

	statCounterCount
)

var statCounterNames = [statCounterCount]string{
	StatMemoryAllocated:    "MemoryAllocated",
	StatMemoryUsed:         "MemoryUsed",
	StatPipeCountGraphics:  "PipeCountGraphics",
	StatPipeCountCompute:   "PipeCountCompute",
	StatCmdDrawCalls:       "CmdDrawCalls",
	StatCmdDispatchCalls:   "CmdDispatchCalls",
	StatCmdRenderPassCount: "CmdRenderPassCount",
	StatQueueSubmitCount:   "QueueSubmitCount",
	StatQueuePresentCount:  "QueuePresentCount",
}

func (c StatCounter) String() string {
	if c < 0 || c >= statCounterCount {
		return "UnknownCounter"
	}
	return statCounterNames[c]
}

// StatCounters is a set of named 64-bit accumulators. The zero value is
// empty and ready to use. StatCounters itself carries no synchronization:
// command lists accumulate into a private instance while recording, and the
// device guards its running totals with a spin lock.
type StatCounters struct {
	counters [statCounterCount]uint64
}

// Get returns the current value of counter c.
func (s *StatCounters) Get(c StatCounter) uint64 {
	return s.counters[c]
}

// Set overwrites counter c with value v.
func (s *StatCounters) Set(c StatCounter, v uint64) {
	s.counters[c] = v
}

// Add increments counter c by delta.
func (s *StatCounters) Add(c StatCounter, delta uint64) {
	s.counters[c] += delta
}

// Merge adds every counter of other into s. Merging is additive, so folding
// a group of counter sets into an aggregate yields the same result in any
// order.
func (s *StatCounters) Merge(other *StatCounters) {
	for i := range s.counters {
		s.counters[i] += other.counters[i]
	}
}
