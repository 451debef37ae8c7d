package vkdev

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type fakeSubmission struct {
	stats    StatCounters
	ret      vk.Result
	submits  atomic.Uint64
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (f *fakeSubmission) Submit(queue vk.Queue, waitSync, signalSync vk.Semaphore) vk.Result {
	if f.inFlight.Add(1) > 1 {
		f.overlap.Store(true)
	}
	f.submits.Add(1)
	f.inFlight.Add(-1)
	return f.ret
}

func (f *fakeSubmission) StatCounters() StatCounters { return f.stats }

type fakeTracker struct {
	mu      sync.Mutex
	tracked []Submission
}

func (f *fakeTracker) Track(cmd Submission) {
	f.mu.Lock()
	f.tracked = append(f.tracked, cmd)
	f.mu.Unlock()
}

func (f *fakeTracker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tracked)
}

type fakePresenter struct {
	ret      vk.Result
	presents int
}

func (f *fakePresenter) PresentImage(wait vk.Semaphore) vk.Result {
	f.presents++
	return f.ret
}

type fakeAllocator struct {
	stats MemoryStats
}

func (f *fakeAllocator) Allocate(reqs vk.MemoryRequirements, flags vk.MemoryPropertyFlags) (MemoryRegion, error) {
	return MemoryRegion{}, nil
}

func (f *fakeAllocator) Free(region MemoryRegion) {}

func (f *fakeAllocator) MemoryStats() MemoryStats { return f.stats }

type fakePipelineCache struct {
	graphics, compute uint64
	shaders           []*Shader
}

func (f *fakePipelineCache) RegisterShader(shader *Shader) { f.shaders = append(f.shaders, shader) }

func (f *fakePipelineCache) PipelineCounts() (uint64, uint64) { return f.graphics, f.compute }

func newTestDevice(tracker CompletionTracker) *Device {
	return &Device{
		allocator: &fakeAllocator{},
		pipelines: &fakePipelineCache{},
		tracker:   tracker,
	}
}

func TestSubmitCommandListMergesStats(t *testing.T) {
	tracker := &fakeTracker{}
	device := newTestDevice(tracker)

	cmd := &fakeSubmission{ret: vk.Success}
	cmd.stats.Add(StatCmdDrawCalls, 7)
	cmd.stats.Add(StatCmdRenderPassCount, 2)

	require.NoError(t, device.SubmitCommandList(cmd, vk.NullSemaphore, vk.NullSemaphore))

	snapshot := device.StatCounters()
	assert.Equal(t, uint64(7), snapshot.Get(StatCmdDrawCalls))
	assert.Equal(t, uint64(2), snapshot.Get(StatCmdRenderPassCount))
	assert.Equal(t, uint64(1), snapshot.Get(StatQueueSubmitCount))
	assert.Equal(t, []Submission{cmd}, tracker.tracked)
}

func TestSubmitCommandListSerializes(t *testing.T) {
	const workers = 8
	const perWorker = 200

	tracker := &fakeTracker{}
	device := newTestDevice(tracker)
	cmd := &fakeSubmission{ret: vk.Success}
	cmd.stats.Add(StatCmdDrawCalls, 1)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				require.NoError(t, device.SubmitCommandList(cmd, vk.NullSemaphore, vk.NullSemaphore))
			}
		}()
	}
	wg.Wait()

	assert.False(t, cmd.overlap.Load(), "queue submissions must not overlap")
	assert.Equal(t, uint64(workers*perWorker), cmd.submits.Load())

	snapshot := device.StatCounters()
	assert.Equal(t, uint64(workers*perWorker), snapshot.Get(StatQueueSubmitCount))
	assert.Equal(t, uint64(workers*perWorker), snapshot.Get(StatCmdDrawCalls))
	assert.Equal(t, workers*perWorker, tracker.count())
}

func TestSubmitCommandListFailure(t *testing.T) {
	tracker := &fakeTracker{}
	device := newTestDevice(tracker)
	cmd := &fakeSubmission{ret: vk.ErrorDeviceLost}

	err := device.SubmitCommandList(cmd, vk.NullSemaphore, vk.NullSemaphore)
	require.Error(t, err)

	var resErr *ResultError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, vk.ErrorDeviceLost, resErr.Result())
	assert.Zero(t, tracker.count(), "a failed submission must not be tracked")
}

func TestPresentImageCountsOnlySuccess(t *testing.T) {
	device := newTestDevice(&fakeTracker{})

	good := &fakePresenter{ret: vk.Success}
	require.NoError(t, device.PresentImage(good, vk.NullSemaphore))
	require.NoError(t, device.PresentImage(good, vk.NullSemaphore))
	assert.Equal(t, 2, good.presents)
	assert.Equal(t, uint64(2), device.CurrentFrameID())

	stale := &fakePresenter{ret: vk.ErrorOutOfDate}
	err := device.PresentImage(stale, vk.NullSemaphore)
	require.Error(t, err)

	var resErr *ResultError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, vk.ErrorOutOfDate, resErr.Result())
	assert.Equal(t, uint64(2), device.CurrentFrameID(), "failed presents do not advance the frame")
}

func TestStatCountersSnapshotIncludesLiveStats(t *testing.T) {
	device := &Device{
		allocator: &fakeAllocator{stats: MemoryStats{Allocated: 1 << 20, Used: 1 << 19}},
		pipelines: &fakePipelineCache{graphics: 5, compute: 2},
		tracker:   &fakeTracker{},
	}

	cmd := &fakeSubmission{ret: vk.Success}
	cmd.stats.Add(StatCmdDispatchCalls, 3)
	require.NoError(t, device.SubmitCommandList(cmd, vk.NullSemaphore, vk.NullSemaphore))

	snapshot := device.StatCounters()
	assert.Equal(t, uint64(1<<20), snapshot.Get(StatMemoryAllocated))
	assert.Equal(t, uint64(1<<19), snapshot.Get(StatMemoryUsed))
	assert.Equal(t, uint64(5), snapshot.Get(StatPipeCountGraphics))
	assert.Equal(t, uint64(2), snapshot.Get(StatPipeCountCompute))
	assert.Equal(t, uint64(3), snapshot.Get(StatCmdDispatchCalls))
	assert.Equal(t, uint64(1), snapshot.Get(StatQueueSubmitCount))
}
