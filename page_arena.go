package vkalloc

// pageFree marks an unallocated page.
const pageFree = -1

// PageArena manages a fixed run of evenly sized pages. Pages are allocated
// in contiguous chunks; every allocated page records the index of the first
// page in its chunk, so a chunk can be freed from any index inside it and
// no per-allocation size table is needed.
type PageArena struct {
	// pages[i] is pageFree, or the index of the first page in the chunk
	// containing page i.
	pages           []int32
	allocationCount int
}

// NewPageArena creates an arena with pageCount free pages.
func NewPageArena(pageCount int) *PageArena {
	pages := make([]int32, pageCount)
	for i := range pages {
		pages[i] = pageFree
	}
	return &PageArena{pages: pages}
}

// IsEmpty reports whether no chunks are allocated.
func (a *PageArena) IsEmpty() bool {
	return a.allocationCount == 0
}

// PageCount is the total number of pages managed by the arena.
func (a *PageArena) PageCount() int {
	return len(a.pages)
}

// AllocateChunk reserves pageCount contiguous free pages, first-fit.
// Returns the index of the first page in the chunk, or false when no run of
// free pages is long enough.
func (a *PageArena) AllocateChunk(pageCount int) (int, bool) {
	first, ok := a.findFirstFreeChunk(pageCount)
	if !ok {
		return 0, false
	}

	for i := first; i < first+pageCount; i++ {
		a.pages[i] = int32(first)
	}
	a.allocationCount++

	return first, true
}

// FreeChunk releases the chunk containing the page at index. The index does
// not need to be the start of the chunk, just somewhere inside it. Freeing
// an already-free page is a no-op.
func (a *PageArena) FreeChunk(index int) {
	first := a.pages[index]
	if first == pageFree {
		return
	}

	for i := int(first); i < len(a.pages) && a.pages[i] == first; i++ {
		a.pages[i] = pageFree
	}
	a.allocationCount--
}

// findFirstFreeChunk locates the first run of pageCount free pages.
func (a *PageArena) findFirstFreeChunk(pageCount int) (int, bool) {
	inRegion := false
	start := 0
	for index, value := range a.pages {
		if value != pageFree {
			inRegion = false
			continue
		}
		if !inRegion {
			start = index
			inRegion = true
		}
		if index-start == pageCount-1 {
			return start, true
		}
	}
	return 0, false
}
