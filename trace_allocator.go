package vkalloc

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Metrics accumulates allocation statistics for one scope (the whole
// allocator, or one memory type).
type Metrics struct {
	// TotalAllocations counts every successful allocate, monotonically.
	TotalAllocations uint32

	// LeakedAllocations counts allocations not yet freed.
	LeakedAllocations uint32

	MinSize uint64
	MaxSize uint64

	// AvgSize is a rolling integer average; it drifts slightly for large
	// counts, which is fine for an observability tool.
	AvgSize uint64
}

func (m *Metrics) recordAllocation(size uint64) {
	m.TotalAllocations++
	m.LeakedAllocations++
	if m.TotalAllocations == 1 || size < m.MinSize {
		m.MinSize = size
	}
	if size > m.MaxSize {
		m.MaxSize = size
	}
	// Rolling average in signed arithmetic: size may be below the mean.
	n := int64(m.TotalAllocations)
	delta := int64(size) - int64(m.AvgSize)
	m.AvgSize = uint64(int64(m.AvgSize) + delta/n)
}

func (m *Metrics) recordFree() {
	m.LeakedAllocations--
}

// TraceAllocator is a transparent decorator that records per-type and
// global metrics. It never alters results or errors; failed allocations
// are not counted.
type TraceAllocator struct {
	inner      Allocator
	name       string
	properties MemoryProperties
	total      Metrics
	perType    map[int]*Metrics
}

// NewTraceAllocator decorates inner. The name only appears in the report.
func NewTraceAllocator(name string, properties MemoryProperties, inner Allocator) *TraceAllocator {
	return &TraceAllocator{
		inner:      inner,
		name:       name,
		properties: properties,
		perType:    make(map[int]*Metrics),
	}
}

// Allocate delegates and records the result on success.
func (t *TraceAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	allocation, err := t.inner.Allocate(requirements)
	if err != nil {
		return nil, err
	}
	t.total.recordAllocation(requirements.SizeInBytes)
	t.typeMetrics(requirements.MemoryTypeIndex).recordAllocation(requirements.SizeInBytes)
	return allocation, nil
}

// Free delegates and records the return.
func (t *TraceAllocator) Free(allocation *Allocation) error {
	if err := t.inner.Free(allocation); err != nil {
		return err
	}
	t.total.recordFree()
	t.typeMetrics(allocation.MemoryTypeIndex()).recordFree()
	return nil
}

// TotalMetrics returns a snapshot of the allocator-wide metrics.
func (t *TraceAllocator) TotalMetrics() Metrics {
	return t.total
}

// TypeMetrics returns a snapshot of the metrics for one memory type index.
func (t *TraceAllocator) TypeMetrics(memoryTypeIndex int) Metrics {
	if m, ok := t.perType[memoryTypeIndex]; ok {
		return *m
	}
	return Metrics{}
}

// Destroy emits the allocation trace through the package logger. Leaks are
// reported, not recovered. Call it when tearing down the allocator stack.
func (t *TraceAllocator) Destroy() {
	log := Logger()
	log.Debug(t.Report())
	if t.total.LeakedAllocations > 0 {
		log.Warn("allocator torn down with live allocations",
			slog.String("allocator", t.name),
			slog.Uint64("leaked", uint64(t.total.LeakedAllocations)))
	}
}

// Report renders the allocation trace: totals first, then one section per
// memory type observed.
func (t *TraceAllocator) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Allocation Trace\n\n", t.name)
	b.WriteString("## Total Allocations\n\n")
	writeMetrics(&b, t.total)

	b.WriteString("\n## Allocations Per Memory Type\n\n")

	indices := make([]int, 0, len(t.perType))
	for index := range t.perType {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	types := t.properties.Types()
	for _, index := range indices {
		fmt.Fprintf(&b, "### Memory Type %d\n", index)
		if index < len(types) {
			fmt.Fprintf(&b, "Properties: %s\n\n", types[index].PropertyFlags)
		} else {
			b.WriteString("\n")
		}
		writeMetrics(&b, *t.perType[index])
		b.WriteString("\n")
	}

	return b.String()
}

func writeMetrics(b *strings.Builder, m Metrics) {
	fmt.Fprintf(b, "total allocations: %d\n", m.TotalAllocations)
	fmt.Fprintf(b, "leaked allocations: %d\n", m.LeakedAllocations)
	fmt.Fprintf(b, "min_size: %s\n", formatSize(m.MinSize))
	fmt.Fprintf(b, "max_size: %s\n", formatSize(m.MaxSize))
	fmt.Fprintf(b, "avg_size: %s\n", formatSize(m.AvgSize))
}

func (t *TraceAllocator) typeMetrics(memoryTypeIndex int) *Metrics {
	m, ok := t.perType[memoryTypeIndex]
	if !ok {
		m = &Metrics{}
		t.perType[memoryTypeIndex] = m
	}
	return m
}
