package vkdev

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Query wraps a single query slot backed by its own query pool, matching the
// per-query lifetime the translation layer hands out to clients.
type Query struct {
	device vk.Device
	pool   vk.QueryPool
	typ    vk.QueryType
	flags  vk.QueryControlFlags
	index  uint32
}

// CreateQuery creates a query of the given type. For pipeline statistics
// queries, index selects the statistic reported by Result.
func (d *Device) CreateQuery(typ vk.QueryType, flags vk.QueryControlFlags, index uint32) (*Query, error) {
	info := vk.QueryPoolCreateInfo{
		SType:      vk.StructureTypeQueryPoolCreateInfo,
		QueryType:  typ,
		QueryCount: 1,
	}
	if typ == vk.QueryTypePipelineStatistics {
		info.PipelineStatistics = vk.QueryPipelineStatisticFlags(vk.QueryPipelineStatisticFlagBits(1) << index)
	}
	var pool vk.QueryPool
	ret := vk.CreateQueryPool(d.handle, &info, nil, &pool)
	if isError(ret) {
		return nil, newError(ret)
	}
	return &Query{device: d.handle, pool: pool, typ: typ, flags: flags, index: index}, nil
}

// Type returns the query type.
func (q *Query) Type() vk.QueryType { return q.typ }

// Flags returns the control flags the query must be begun with.
func (q *Query) Flags() vk.QueryControlFlags { return q.flags }

// Pool returns the native query pool holding the single query slot.
func (q *Query) Pool() vk.QueryPool { return q.pool }

// Result retrieves the 64-bit query result. It reports false without error
// while the result is not yet available.
func (q *Query) Result() (uint64, bool, error) {
	var value uint64
	ret := vk.GetQueryPoolResults(q.device, q.pool, 0, 1,
		uint(unsafe.Sizeof(value)), unsafe.Pointer(&value),
		vk.DeviceSize(unsafe.Sizeof(value)),
		vk.QueryResultFlags(vk.QueryResult64Bit))
	switch ret {
	case vk.Success:
		return value, true, nil
	case vk.NotReady:
		return 0, false, nil
	default:
		return 0, false, newError(ret)
	}
}

// Destroy releases the query pool.
func (q *Query) Destroy() {
	if q.pool != vk.NullQueryPool {
		vk.DestroyQueryPool(q.device, q.pool, nil)
		q.pool = vk.NullQueryPool
	}
}
