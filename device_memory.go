package vkalloc

import (
	"sync"

	"github.com/gogpu/vkalloc/vk"
)

// DeviceMemory wraps one VkDeviceMemory object and reference-counts host
// mapping. Multiple allocations can share the same object, and Vulkan makes
// a second vkMapMemory on an already-mapped object an error, so the map
// count must live with the object rather than with any one allocation.
type DeviceMemory struct {
	memory vk.DeviceMemory

	mu       sync.Mutex
	ptr      uintptr
	mapCount uint32
}

// NewDeviceMemory wraps a freshly allocated device-memory object.
func NewDeviceMemory(memory vk.DeviceMemory) *DeviceMemory {
	return &DeviceMemory{memory: memory}
}

// Memory returns the raw handle for binding and freeing at the API.
// The wrapper keeps logical ownership: don't free the handle directly.
func (m *DeviceMemory) Memory() vk.DeviceMemory {
	return m.memory
}

// Map returns a host pointer to the start of the device memory. The whole
// range is always mapped. The API's map is called only on the 0→1 count
// transition; later calls return the same pointer.
func (m *DeviceMemory) Map(api DeviceAPI) (uintptr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mapCount == 0 {
		ptr, err := api.MapMemory(m.memory)
		if err != nil {
			return 0, err
		}
		m.ptr = ptr
	}
	m.mapCount++
	return m.ptr, nil
}

// Unmap releases one reference to the host mapping. The API's unmap is
// called only on the 1→0 transition. Returns ErrNotMapped when the memory
// has no live mapping.
func (m *DeviceMemory) Unmap(api DeviceAPI) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.mapCount {
	case 0:
		return ErrNotMapped
	case 1:
		api.UnmapMemory(m.memory)
		m.ptr = 0
	}
	m.mapCount--
	return nil
}
