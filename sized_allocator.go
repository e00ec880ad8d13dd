package vkalloc

// SizedAllocator routes by aligned request size: below the threshold to the
// small allocator, at or above it to the large one. Free applies the same
// predicate to the allocation's stored requirements, so both paths always
// reach the same leaf.
type SizedAllocator struct {
	threshold uint64
	small     Allocator
	large     Allocator
}

// NewSizedAllocator creates a router with the given size threshold.
func NewSizedAllocator(threshold uint64, small, large Allocator) *SizedAllocator {
	return &SizedAllocator{
		threshold: threshold,
		small:     small,
		large:     large,
	}
}

// Allocate routes the request by its aligned size.
func (s *SizedAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	if requirements.AlignedSize() < s.threshold {
		return s.small.Allocate(requirements)
	}
	return s.large.Allocate(requirements)
}

// Free routes with the same predicate the allocate used.
func (s *SizedAllocator) Free(allocation *Allocation) error {
	if allocation.AllocationRequirements().AlignedSize() < s.threshold {
		return s.small.Free(allocation)
	}
	return s.large.Free(allocation)
}
