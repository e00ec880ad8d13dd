package vkalloc

import "fmt"

// AllocatorConfig sets the chunk and page size for each pool tier of the
// default stack. Chunk sizes must be multiples of their page sizes and must
// strictly decrease from root to small. Each tier's chunk size is also its
// routing threshold: requests whose aligned size reaches it go to the next
// larger tier.
type AllocatorConfig struct {
	// RootChunkSize is the size of chunks taken straight from the device.
	// Default: 512 MB with 4 MB pages.
	RootChunkSize uint64
	RootPageSize  uint64

	// MediumChunkSize sizes the middle tier. Default: 4 MB with 64 KB pages.
	MediumChunkSize uint64
	MediumPageSize  uint64

	// SmallChunkSize sizes the small-request tier. Default: 64 KB with 1 KB
	// pages.
	SmallChunkSize uint64
	SmallPageSize  uint64
}

// DefaultConfig returns the recommended tier sizes.
func DefaultConfig() AllocatorConfig {
	return AllocatorConfig{
		RootChunkSize:   512 << 20, // 512 MB
		RootPageSize:    4 << 20,   // 4 MB
		MediumChunkSize: 4 << 20,   // 4 MB
		MediumPageSize:  64 << 10,  // 64 KB
		SmallChunkSize:  64 << 10,  // 64 KB
		SmallPageSize:   1 << 10,   // 1 KB
	}
}

// SystemAllocator is the default composition with handles to its trace
// decorators so teardown can emit both reports.
type SystemAllocator struct {
	Allocator

	deviceTrace      *TraceAllocator
	applicationTrace *TraceAllocator
}

// Destroy emits the device and application allocation traces. All
// allocations must have been returned first; leaks are reported by the
// traces but not recovered.
func (s *SystemAllocator) Destroy() {
	s.applicationTrace.Destroy()
	s.deviceTrace.Destroy()
}

// NewSystemAllocator wires the recommended stack over the given device:
//
//   - a traced, shared DeviceAllocator at the bottom,
//   - three pool tiers chained through SizedAllocators so sub-chunks
//     escalate to the next-larger tier (small 64 KB/1 KB, medium 4 MB/64 KB,
//     root 512 MB/4 MB),
//   - a DedicatedAllocator bypassing the pools for dedicated-hint requests,
//   - an application-level trace on top.
//
// Small requests cost one scan of a 64 KB pool; chunk-sized requests go
// straight to the device; dedicated requests never touch a pool.
func NewSystemAllocator(api DeviceAPI, properties MemoryProperties, config AllocatorConfig) (*SystemAllocator, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	deviceTrace := NewTraceAllocator("Device Allocator", properties, NewDeviceAllocator(api))
	device := IntoShared(deviceTrace)

	rootPool, err := NewPoolAllocator(properties, config.RootChunkSize, config.RootPageSize, device)
	if err != nil {
		return nil, err
	}
	sizedRoot := NewSizedAllocator(config.RootChunkSize, rootPool, device)

	mediumPool, err := NewPoolAllocator(properties, config.MediumChunkSize, config.MediumPageSize, sizedRoot)
	if err != nil {
		return nil, err
	}
	sizedMedium := NewSizedAllocator(config.MediumChunkSize, mediumPool, sizedRoot)

	smallPool, err := NewPoolAllocator(properties, config.SmallChunkSize, config.SmallPageSize, sizedMedium)
	if err != nil {
		return nil, err
	}
	sizedSmall := NewSizedAllocator(config.SmallChunkSize, smallPool, sizedMedium)

	dedicated := NewDedicatedAllocator(sizedSmall, device)
	applicationTrace := NewTraceAllocator("Application Allocator", properties, dedicated)

	return &SystemAllocator{
		Allocator:        applicationTrace,
		deviceTrace:      deviceTrace,
		applicationTrace: applicationTrace,
	}, nil
}

func validateConfig(config AllocatorConfig) error {
	tiers := []struct {
		name      string
		chunkSize uint64
		pageSize  uint64
	}{
		{"root", config.RootChunkSize, config.RootPageSize},
		{"medium", config.MediumChunkSize, config.MediumPageSize},
		{"small", config.SmallChunkSize, config.SmallPageSize},
	}
	for _, tier := range tiers {
		if tier.pageSize == 0 || tier.chunkSize == 0 {
			return fmt.Errorf("%w: %s tier sizes must be non-zero", ErrInvalidConfig, tier.name)
		}
		if tier.chunkSize%tier.pageSize != 0 {
			return fmt.Errorf("%w: %s chunk size %d is not a multiple of page size %d",
				ErrInvalidConfig, tier.name, tier.chunkSize, tier.pageSize)
		}
	}
	if config.MediumChunkSize >= config.RootChunkSize || config.SmallChunkSize >= config.MediumChunkSize {
		return fmt.Errorf("%w: tier chunk sizes must strictly decrease", ErrInvalidConfig)
	}
	return nil
}
