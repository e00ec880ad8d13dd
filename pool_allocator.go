package vkalloc

import "fmt"

// PoolAllocator fans requests out to a per-memory-type pool. Every pool
// shares one inner allocator, so chunks escalating out of different types
// serialize on the same backing allocator.
type PoolAllocator struct {
	typedPools map[int]*MemoryTypePoolAllocator
}

// NewPoolAllocator creates one MemoryTypePoolAllocator per memory type the
// device exposes, all drawing chunks from inner.
func NewPoolAllocator(properties MemoryProperties, chunkSizeInBytes, pageSizeInBytes uint64, inner Allocator) (*PoolAllocator, error) {
	shared := IntoShared(inner)
	typedPools := make(map[int]*MemoryTypePoolAllocator, len(properties.Types()))
	for memoryTypeIndex := range properties.Types() {
		pool, err := NewMemoryTypePoolAllocator(memoryTypeIndex, chunkSizeInBytes, pageSizeInBytes, shared)
		if err != nil {
			return nil, err
		}
		typedPools[memoryTypeIndex] = pool
	}
	return &PoolAllocator{typedPools: typedPools}, nil
}

// Allocate forwards to the pool for the request's memory type index.
func (p *PoolAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	pool, ok := p.typedPools[requirements.MemoryTypeIndex]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownMemoryType, requirements.MemoryTypeIndex)
	}
	return pool.Allocate(requirements)
}

// Free forwards to the pool the allocation came from.
func (p *PoolAllocator) Free(allocation *Allocation) error {
	pool, ok := p.typedPools[allocation.MemoryTypeIndex()]
	if !ok {
		return fmt.Errorf("%w %d", ErrUnknownMemoryType, allocation.MemoryTypeIndex())
	}
	return pool.Free(allocation)
}
