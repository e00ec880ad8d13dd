package vkalloc

import (
	"fmt"
	"sync/atomic"
)

// nextAllocationID hands out process-unique allocation ids, starting at 1
// so the zero value never collides with a real id.
var nextAllocationID atomic.Uint64

// Allocation is a handle to a region inside some device memory. Several
// allocations can reference the same DeviceMemory when a pool subdivides a
// chunk; the chunk's id shows up as the suballocations' parent id.
type Allocation struct {
	memory          *DeviceMemory
	offsetInBytes   uint64
	sizeInBytes     uint64
	memoryTypeIndex int
	requirements    AllocationRequirements
	id              uint64
	parentID        uint64
}

// newAllocation creates a top-level allocation covering [offset, offset+size)
// of the given device memory.
func newAllocation(memory *DeviceMemory, memoryTypeIndex int, offsetInBytes, sizeInBytes uint64, requirements AllocationRequirements) *Allocation {
	return &Allocation{
		memory:          memory,
		offsetInBytes:   offsetInBytes,
		sizeInBytes:     sizeInBytes,
		memoryTypeIndex: memoryTypeIndex,
		requirements:    requirements,
		id:              nextAllocationID.Add(1),
	}
}

// subAllocate carves a child allocation out of a at the given relative
// offset. The child shares a's device memory. The parent id always names
// the top-level backing allocation, so a sub-of-sub (alignment correction)
// still reports the chunk it lives in.
func (a *Allocation) subAllocate(relativeOffset, sizeInBytes uint64) *Allocation {
	parent := a.id
	if a.parentID != 0 {
		parent = a.parentID
	}
	return &Allocation{
		memory:          a.memory,
		offsetInBytes:   a.offsetInBytes + relativeOffset,
		sizeInBytes:     sizeInBytes,
		memoryTypeIndex: a.memoryTypeIndex,
		requirements:    a.requirements,
		id:              nextAllocationID.Add(1),
		parentID:        parent,
	}
}

// withRequirements returns a copy of a carrying the originating request, so
// decorators above a pool route the free exactly like the allocate.
func (a *Allocation) withRequirements(requirements AllocationRequirements) *Allocation {
	clone := *a
	clone.requirements = requirements
	return &clone
}

// Memory returns the shared device-memory wrapper backing this allocation.
func (a *Allocation) Memory() *DeviceMemory {
	return a.memory
}

// OffsetInBytes is where this allocation begins inside its device memory.
func (a *Allocation) OffsetInBytes() uint64 {
	return a.offsetInBytes
}

// SizeInBytes is the usable size of the allocation.
func (a *Allocation) SizeInBytes() uint64 {
	return a.sizeInBytes
}

// MemoryTypeIndex is the memory type the allocation came from.
func (a *Allocation) MemoryTypeIndex() int {
	return a.memoryTypeIndex
}

// AllocationRequirements returns the request that produced this allocation.
func (a *Allocation) AllocationRequirements() AllocationRequirements {
	return a.requirements
}

// ID is stable for the lifetime of the allocation and unique within the
// process.
func (a *Allocation) ID() uint64 {
	return a.id
}

// ParentID identifies the backing chunk when this allocation is a
// sub-region, and is zero for top-level allocations.
func (a *Allocation) ParentID() uint64 {
	return a.parentID
}

// Map returns a host pointer to the start of this allocation's region.
func (a *Allocation) Map(api DeviceAPI) (uintptr, error) {
	base, err := a.memory.Map(api)
	if err != nil {
		return 0, err
	}
	return base + uintptr(a.offsetInBytes), nil
}

// Unmap releases one mapping reference on the underlying device memory.
func (a *Allocation) Unmap(api DeviceAPI) error {
	return a.memory.Unmap(api)
}

func (a *Allocation) String() string {
	return fmt.Sprintf("Allocation{memory: %#x, offset: %d, size: %s, type_index: %d, id: %d, parent: %d}",
		uint64(a.memory.Memory()), a.offsetInBytes, formatSize(a.sizeInBytes), a.memoryTypeIndex, a.id, a.parentID)
}
