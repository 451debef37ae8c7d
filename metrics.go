package vkdev

import "github.com/prometheus/client_golang/prometheus"

// statMetric maps a StatCounter onto a prometheus metric.
type statMetric struct {
	counter StatCounter
	name    string
	help    string
	kind    prometheus.ValueType
}

var statMetrics = []statMetric{
	{StatMemoryAllocated, "vkdev_memory_allocated_bytes", "Device memory allocated in bytes.", prometheus.GaugeValue},
	{StatMemoryUsed, "vkdev_memory_used_bytes", "Device memory in active use in bytes.", prometheus.GaugeValue},
	{StatPipeCountGraphics, "vkdev_pipelines_graphics", "Graphics pipelines compiled.", prometheus.GaugeValue},
	{StatPipeCountCompute, "vkdev_pipelines_compute", "Compute pipelines compiled.", prometheus.GaugeValue},
	{StatCmdDrawCalls, "vkdev_draw_calls_total", "Draw calls recorded.", prometheus.CounterValue},
	{StatCmdDispatchCalls, "vkdev_dispatch_calls_total", "Compute dispatches recorded.", prometheus.CounterValue},
	{StatCmdRenderPassCount, "vkdev_render_passes_total", "Render passes recorded.", prometheus.CounterValue},
	{StatQueueSubmitCount, "vkdev_queue_submits_total", "Command lists submitted to the hardware queue.", prometheus.CounterValue},
	{StatQueuePresentCount, "vkdev_queue_presents_total", "Images presented.", prometheus.CounterValue},
}

// StatsCollector exposes the device's counter snapshot as prometheus
// metrics. Register it with a prometheus registry; each scrape takes one
// snapshot, so all metrics of a scrape are mutually consistent with a single
// StatCounters read.
type StatsCollector struct {
	device *Device
	descs  []*prometheus.Desc
}

// NewStatsCollector builds a collector over the device's counters.
func NewStatsCollector(device *Device) *StatsCollector {
	c := &StatsCollector{device: device}
	for _, m := range statMetrics {
		c.descs = append(c.descs, prometheus.NewDesc(m.name, m.help, nil, nil))
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range c.descs {
		ch <- desc
	}
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.device.StatCounters()
	for i, m := range statMetrics {
		ch <- prometheus.MustNewConstMetric(c.descs[i], m.kind, float64(snapshot.Get(m.counter)))
	}
}
