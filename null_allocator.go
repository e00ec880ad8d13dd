package vkalloc

// NullAllocator takes no actions and returns allocations backed by a null
// memory handle. Useful in unit tests for allocators that defer to other
// allocators.
type NullAllocator struct{}

// Allocate returns a null-backed allocation of the requested size.
func (NullAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	return newAllocation(NewDeviceMemory(0), requirements.MemoryTypeIndex, 0, requirements.SizeInBytes, requirements), nil
}

// Free is a no-op.
func (NullAllocator) Free(*Allocation) error {
	return nil
}
