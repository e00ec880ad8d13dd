package vkalloc

import (
	"errors"
	"fmt"

	"github.com/gogpu/vkalloc/vk"
)

// Sentinel errors returned by the allocator stack. Composed allocators
// propagate them unchanged, so errors.Is works through any stack depth.
var (
	// ErrMemoryTypeMismatch indicates a request reached a pool configured
	// for a different memory type index.
	ErrMemoryTypeMismatch = errors.New("vkalloc: memory type index mismatch")

	// ErrRequestTooLarge indicates a request whose aligned size does not fit
	// inside a pool's chunk. Route it to a larger tier instead.
	ErrRequestTooLarge = errors.New("vkalloc: unable to allocate a chunk of memory")

	// ErrNoContiguousSpace indicates internal fragmentation: no run of free
	// pages is large enough for the request.
	ErrNoContiguousSpace = errors.New("vkalloc: unable to find a contiguous chunk of the requested size")

	// ErrNotMapped indicates an Unmap call on memory with no live mapping.
	ErrNotMapped = errors.New("vkalloc: attempted to unmap memory which has no mapping")

	// ErrUnknownMemoryType indicates a request for a memory type index the
	// pool allocator has no pool for.
	ErrUnknownMemoryType = errors.New("vkalloc: no pool for memory type index")

	// ErrDoesNotBelong indicates a free of an allocation that was not
	// produced by the receiving allocator.
	ErrDoesNotBelong = errors.New("vkalloc: allocation does not belong to this allocator")

	// ErrAllocationFailed indicates the underlying device allocation failed.
	ErrAllocationFailed = errors.New("vkalloc: device memory allocation failed")

	// ErrInvalidConfig indicates invalid allocator configuration.
	ErrInvalidConfig = errors.New("vkalloc: invalid configuration")
)

// TypeSelectionError is returned when no memory type satisfies both a
// resource's type-bit mask and the caller's required property flags.
type TypeSelectionError struct {
	MemoryTypeBits uint32
	Properties     vk.MemoryPropertyFlags
}

func (e *TypeSelectionError) Error() string {
	return fmt.Sprintf("vkalloc: no memory type for bits %s and properties %s",
		formatBits(e.MemoryTypeBits), e.Properties)
}
