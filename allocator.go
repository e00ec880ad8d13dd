package vkalloc

import "sync"

// Allocator is the base contract of every composable allocator in the
// stack: leaves, pools, and decorators all implement it, so any layer can
// wrap any other.
//
// A failed Allocate leaves the allocator's observable state unchanged.
// Every allocation must be returned to the allocator that produced it
// before the allocator is torn down.
type Allocator interface {
	Allocate(requirements AllocationRequirements) (*Allocation, error)
	Free(allocation *Allocation) error
}

// SharedAllocator serializes access to an inner allocator behind a mutex.
// Pool tiers that escalate chunks into a common backing allocator share one
// of these, so each allocate/free pair against the backing allocator is
// atomic.
type SharedAllocator struct {
	mu    sync.Mutex
	inner Allocator
}

// IntoShared wraps an allocator for shared use. Wrapping an allocator that
// is already shared returns it unchanged.
func IntoShared(inner Allocator) *SharedAllocator {
	if shared, ok := inner.(*SharedAllocator); ok {
		return shared
	}
	return &SharedAllocator{inner: inner}
}

// Allocate forwards to the inner allocator under the lock.
func (s *SharedAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Allocate(requirements)
}

// Free forwards to the inner allocator under the lock.
func (s *SharedAllocator) Free(allocation *Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Free(allocation)
}
