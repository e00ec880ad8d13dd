package vkalloc

import "fmt"

// DeviceAllocator is the terminal leaf: every request becomes one device
// memory object allocated straight from the API.
type DeviceAllocator struct {
	api DeviceAPI
}

// NewDeviceAllocator creates an allocator over the given device. The device
// must outlive the allocator, and all memory must be freed before the
// device is destroyed.
func NewDeviceAllocator(api DeviceAPI) *DeviceAllocator {
	return &DeviceAllocator{api: api}
}

// Allocate calls the API once. Offset alignment never needs correction at
// this level: device memory objects satisfy any alignment a resource can
// report.
func (d *DeviceAllocator) Allocate(requirements AllocationRequirements) (*Allocation, error) {
	memory, err := d.api.AllocateMemory(requirements.SizeInBytes, requirements.MemoryTypeIndex, requirements.Dedicated)
	if err != nil {
		return nil, fmt.Errorf("error allocating memory with requirements %s: %w", requirements, err)
	}
	return newAllocation(NewDeviceMemory(memory), requirements.MemoryTypeIndex, 0, requirements.SizeInBytes, requirements), nil
}

// Free returns the allocation's memory to the API. The allocation is the
// sole owner of its device memory object at this level.
func (d *DeviceAllocator) Free(allocation *Allocation) error {
	d.api.FreeMemory(allocation.Memory().Memory())
	return nil
}
