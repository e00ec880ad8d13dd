package vkalloc

import "fmt"

// MemoryTypePoolAllocator owns backing chunks for one memory type index and
// carves requests out of them with page suballocators. Chunks are created
// lazily on the first miss and returned to the inner allocator as soon as
// their last suballocation is freed.
type MemoryTypePoolAllocator struct {
	memoryTypeIndex  int
	chunkSizeInBytes uint64
	pageSizeInBytes  uint64

	// chunks maps a backing allocation's id to its suballocator.
	chunks map[uint64]*PageSuballocator

	inner Allocator
}

// NewMemoryTypePoolAllocator creates a pool for one memory type index.
// chunkSizeInBytes must be a multiple of pageSizeInBytes.
func NewMemoryTypePoolAllocator(memoryTypeIndex int, chunkSizeInBytes, pageSizeInBytes uint64, inner Allocator) (*MemoryTypePoolAllocator, error) {
	if pageSizeInBytes == 0 || chunkSizeInBytes%pageSizeInBytes != 0 {
		return nil, fmt.Errorf("%w: chunk size %d is not a multiple of page size %d",
			ErrInvalidConfig, chunkSizeInBytes, pageSizeInBytes)
	}
	return &MemoryTypePoolAllocator{
		memoryTypeIndex:  memoryTypeIndex,
		chunkSizeInBytes: chunkSizeInBytes,
		pageSizeInBytes:  pageSizeInBytes,
		chunks:           make(map[uint64]*PageSuballocator),
		inner:            inner,
	}, nil
}

// Allocate serves the request from the first chunk with room, creating a
// new chunk when none fits. Requests as large as a whole chunk are
// rejected; they belong to a larger tier.
func (p *MemoryTypePoolAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	if requirements.MemoryTypeIndex != p.memoryTypeIndex {
		return nil, ErrMemoryTypeMismatch
	}
	if requirements.AlignedSize() >= p.chunkSizeInBytes {
		return nil, fmt.Errorf("%w with %d bytes", ErrRequestTooLarge, requirements.AlignedSize())
	}

	for _, suballocator := range p.chunks {
		allocation, err := suballocator.Allocate(requirements.SizeInBytes, requirements.Alignment)
		if err == nil {
			return allocation.withRequirements(requirements), nil
		}
	}

	chunkRequirements := requirements
	chunkRequirements.SizeInBytes = p.chunkSizeInBytes
	chunkRequirements.Alignment = 1
	// A chunk backs many suballocations; it is never a dedicated resource.
	chunkRequirements.PrefersDedicatedAllocation = false
	chunkRequirements.RequiresDedicatedAllocation = false
	chunkRequirements.Dedicated = DedicatedResource{}

	chunk, err := p.inner.Allocate(chunkRequirements)
	if err != nil {
		return nil, err
	}

	suballocator, err := NewPageSuballocator(chunk, p.pageSizeInBytes)
	if err != nil {
		_ = p.inner.Free(chunk)
		return nil, err
	}

	allocation, err := suballocator.Allocate(requirements.SizeInBytes, requirements.Alignment)
	if err != nil {
		// The fresh chunk could not host the request either; roll it back
		// so a failed allocate leaves no state behind.
		if freeErr := p.inner.Free(suballocator.ReleaseAllocation()); freeErr != nil {
			return nil, freeErr
		}
		return nil, err
	}

	p.chunks[chunk.ID()] = suballocator
	return allocation.withRequirements(requirements), nil
}

// Free returns a suballocation to its chunk. A chunk whose last
// suballocation is freed goes back to the inner allocator immediately.
func (p *MemoryTypePoolAllocator) Free(allocation *Allocation) error {
	suballocator, ok := p.chunks[allocation.ParentID()]
	if !ok {
		return fmt.Errorf("%w: no chunk with id %d", ErrDoesNotBelong, allocation.ParentID())
	}

	suballocator.Free(allocation)

	if suballocator.IsEmpty() {
		delete(p.chunks, allocation.ParentID())
		return p.inner.Free(suballocator.ReleaseAllocation())
	}
	return nil
}
