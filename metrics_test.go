package vkdev

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestStatsCollectorCoversAllCounters(t *testing.T) {
	device := newTestDevice(&fakeTracker{})
	collector := NewStatsCollector(device)

	assert.Equal(t, len(statMetrics), testutil.CollectAndCount(collector))
	problems, err := testutil.CollectAndLint(collector)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestStatsCollectorValues(t *testing.T) {
	device := &Device{
		allocator: &fakeAllocator{stats: MemoryStats{Allocated: 4096, Used: 1024}},
		pipelines: &fakePipelineCache{graphics: 3, compute: 1},
		tracker:   &fakeTracker{},
	}

	cmd := &fakeSubmission{ret: vk.Success}
	cmd.stats.Add(StatCmdDrawCalls, 11)
	require.NoError(t, device.SubmitCommandList(cmd, vk.NullSemaphore, vk.NullSemaphore))

	collector := NewStatsCollector(device)
	expected := `
# HELP vkdev_draw_calls_total Draw calls recorded.
# TYPE vkdev_draw_calls_total counter
vkdev_draw_calls_total 11
# HELP vkdev_memory_allocated_bytes Device memory allocated in bytes.
# TYPE vkdev_memory_allocated_bytes gauge
vkdev_memory_allocated_bytes 4096
# HELP vkdev_pipelines_graphics Graphics pipelines compiled.
# TYPE vkdev_pipelines_graphics gauge
vkdev_pipelines_graphics 3
# HELP vkdev_queue_submits_total Command lists submitted to the hardware queue.
# TYPE vkdev_queue_submits_total counter
vkdev_queue_submits_total 1
`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"vkdev_draw_calls_total",
		"vkdev_memory_allocated_bytes",
		"vkdev_pipelines_graphics",
		"vkdev_queue_submits_total"))
}
