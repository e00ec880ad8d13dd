package vkalloc

import "fmt"

// PageSuballocator carves aligned regions out of one existing allocation
// using a page arena. Larger pages waste memory on small requests; smaller
// pages lengthen the first-fit scan.
type PageSuballocator struct {
	backing         *Allocation
	pageSizeInBytes uint64
	arena           *PageArena
}

// NewPageSuballocator creates a suballocator over backing. The backing
// allocation's size must be a multiple of pageSizeInBytes.
func NewPageSuballocator(backing *Allocation, pageSizeInBytes uint64) (*PageSuballocator, error) {
	if pageSizeInBytes == 0 || backing.SizeInBytes()%pageSizeInBytes != 0 {
		return nil, fmt.Errorf("%w: allocation size %d is not a multiple of page size %d",
			ErrInvalidConfig, backing.SizeInBytes(), pageSizeInBytes)
	}
	pageCount := backing.SizeInBytes() / pageSizeInBytes
	return &PageSuballocator{
		backing:         backing,
		pageSizeInBytes: pageSizeInBytes,
		arena:           NewPageArena(int(pageCount)),
	}, nil
}

// IsEmpty reports whether every suballocation has been freed.
func (s *PageSuballocator) IsEmpty() bool {
	return s.arena.IsEmpty()
}

// Allocate reserves sizeInBytes bytes at the requested alignment.
//
// When the backing allocation's page boundaries already satisfy the
// alignment, pages are taken directly. Otherwise the request grows by
// alignment-1 bytes and the returned offset advances to the next aligned
// value; the unused head bytes stay reserved until the suballocation is
// freed, because the free path works at page granularity.
func (s *PageSuballocator) Allocate(sizeInBytes, alignment uint64) (*Allocation, error) {
	if alignment == 0 {
		alignment = 1
	}

	if (s.backing.OffsetInBytes()+s.pageSizeInBytes)%alignment == 0 {
		// Page boundaries are already aligned for this request.
		return s.allocateUnaligned(sizeInBytes)
	}

	unaligned, err := s.allocateUnaligned(sizeInBytes + alignment - 1)
	if err != nil {
		return nil, err
	}

	correction := (alignment - unaligned.OffsetInBytes()%alignment) % alignment
	return unaligned.subAllocate(correction, sizeInBytes), nil
}

// allocateUnaligned reserves whole pages for sizeInBytes bytes with no
// alignment handling. The result is always page-aligned relative to the
// backing allocation's offset.
func (s *PageSuballocator) allocateUnaligned(sizeInBytes uint64) (*Allocation, error) {
	pageCount := int(divCeil(sizeInBytes, s.pageSizeInBytes))
	start, ok := s.arena.AllocateChunk(pageCount)
	if !ok {
		return nil, ErrNoContiguousSpace
	}
	allocation := s.backing.subAllocate(uint64(start)*s.pageSizeInBytes, sizeInBytes)
	// The backing allocation may itself be a region of a larger tier's
	// chunk; the parent id names the backing allocation, which is the key
	// a pool files this suballocator under.
	allocation.parentID = s.backing.ID()
	return allocation, nil
}

// Free releases a previously returned suballocation. An allocation backed
// by different device memory does not belong here and is ignored.
//
// Integer division rounds the offset into the correct chunk even when an
// alignment correction advanced it past the chunk's first page.
func (s *PageSuballocator) Free(allocation *Allocation) {
	if allocation.Memory().Memory() != s.backing.Memory().Memory() {
		return
	}
	relativeOffset := allocation.OffsetInBytes() - s.backing.OffsetInBytes()
	pageIndex := relativeOffset / s.pageSizeInBytes
	s.arena.FreeChunk(int(pageIndex))
}

// ReleaseAllocation surrenders the backing allocation and discards the
// arena. The caller must ensure no suballocations remain live.
func (s *PageSuballocator) ReleaseAllocation() *Allocation {
	backing := s.backing
	s.backing = nil
	s.arena = nil
	return backing
}

// divCeil divides top by bottom, rounding towards positive infinity.
func divCeil(top, bottom uint64) uint64 {
	quotient := top / bottom
	if top%bottom != 0 {
		quotient++
	}
	return quotient
}
