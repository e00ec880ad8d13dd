package vkalloc

import "github.com/gogpu/vkalloc/vk"

// FakeAllocator records every request it sees and hands out allocations
// backed by synthetic device-memory handles. Useful for unit-testing
// allocators that defer to an inner allocator.
type FakeAllocator struct {
	// Allocations holds the requirements of every allocate, in order.
	Allocations []AllocationRequirements

	// ActiveAllocations counts allocations not yet freed.
	ActiveAllocations int

	// AllocationCount counts every allocate ever made; it doubles as the
	// source of unique fake memory handles.
	AllocationCount uint64
}

// Allocate records the request and returns a fresh fake allocation.
func (f *FakeAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	f.ActiveAllocations++
	f.AllocationCount++
	f.Allocations = append(f.Allocations, requirements)

	memory := NewDeviceMemory(vk.DeviceMemory(f.AllocationCount))
	return newAllocation(memory, requirements.MemoryTypeIndex, 0, requirements.SizeInBytes, requirements), nil
}

// Free only decrements the active count.
func (f *FakeAllocator) Free(*Allocation) error {
	f.ActiveAllocations--
	return nil
}
