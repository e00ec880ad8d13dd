package vkalloc

import (
	"fmt"

	"github.com/gogpu/vkalloc/vk"
)

// DedicatedResource names the single buffer or image a dedicated allocation
// is bound to. The zero value means no dedicated resource.
type DedicatedResource struct {
	Buffer vk.Buffer
	Image  vk.Image
}

// IsNone reports whether no resource handle is set.
func (r DedicatedResource) IsNone() bool {
	return r.Buffer == 0 && r.Image == 0
}

// AllocationRequirements describes one memory request: how much, aligned
// how, from which memory types, and whether the driver wants the backing
// resource on a dedicated device-memory object.
//
// The free path routes using the same requirements the allocate path saw,
// so the struct must not be mutated once an allocation carries it.
type AllocationRequirements struct {
	SizeInBytes    uint64
	Alignment      uint64
	MemoryTypeBits uint32

	// MemoryTypeIndex is the chosen type; its bit must be set in
	// MemoryTypeBits.
	MemoryTypeIndex int

	// MemoryProperties are the property flags the caller required when the
	// type index was picked.
	MemoryProperties vk.MemoryPropertyFlags

	PrefersDedicatedAllocation  bool
	RequiresDedicatedAllocation bool

	// Dedicated is the resource handle passed to the driver on dedicated
	// allocations. Must be set when RequiresDedicatedAllocation is.
	Dedicated DedicatedResource
}

// RequirementsForBuffer queries a buffer's memory requirements and picks a
// memory type with the requested property flags.
func RequirementsForBuffer(api DeviceAPI, memoryTypes []vk.MemoryType, properties vk.MemoryPropertyFlags, buffer vk.Buffer) (AllocationRequirements, error) {
	resource := api.BufferRequirements(buffer)
	return fromResourceRequirements(resource, memoryTypes, properties, DedicatedResource{Buffer: buffer})
}

// RequirementsForImage queries an image's memory requirements and picks a
// memory type with the requested property flags.
func RequirementsForImage(api DeviceAPI, memoryTypes []vk.MemoryType, properties vk.MemoryPropertyFlags, image vk.Image) (AllocationRequirements, error) {
	resource := api.ImageRequirements(image)
	return fromResourceRequirements(resource, memoryTypes, properties, DedicatedResource{Image: image})
}

func fromResourceRequirements(resource ResourceRequirements, memoryTypes []vk.MemoryType, properties vk.MemoryPropertyFlags, dedicated DedicatedResource) (AllocationRequirements, error) {
	index, err := pickMemoryTypeIndex(memoryTypes, resource.MemoryTypeBits, properties)
	if err != nil {
		return AllocationRequirements{}, err
	}

	return AllocationRequirements{
		SizeInBytes:                 resource.SizeInBytes,
		Alignment:                   resource.Alignment,
		MemoryTypeBits:              resource.MemoryTypeBits,
		MemoryTypeIndex:             index,
		MemoryProperties:            properties,
		PrefersDedicatedAllocation:  resource.PrefersDedicated,
		RequiresDedicatedAllocation: resource.RequiresDedicated,
		Dedicated:                   dedicated,
	}, nil
}

// pickMemoryTypeIndex finds the first memory type that is acceptable to the
// resource and has all the required property flags.
func pickMemoryTypeIndex(memoryTypes []vk.MemoryType, memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (int, error) {
	for index, memoryType := range memoryTypes {
		isRequiredType := memoryTypeBits&(1<<index) != 0
		hasRequiredProperties := memoryType.PropertyFlags&properties == properties
		if isRequiredType && hasRequiredProperties {
			return index, nil
		}
	}
	return 0, &TypeSelectionError{
		MemoryTypeBits: memoryTypeBits,
		Properties:     properties,
	}
}

// AlignedSize is the worst-case byte count needed to place an aligned
// region of the requested size inside an unaligned arena.
func (r AllocationRequirements) AlignedSize() uint64 {
	if r.Alignment == 0 {
		return r.SizeInBytes
	}
	return r.SizeInBytes + r.Alignment - 1
}

// String renders the requirements for error messages and reports.
func (r AllocationRequirements) String() string {
	return fmt.Sprintf(
		"AllocationRequirements{size: %s, alignment: %d, type_bits: %s, type_index: %d, prefers_dedicated: %t, requires_dedicated: %t}",
		formatSize(r.SizeInBytes), r.Alignment, formatBits(r.MemoryTypeBits),
		r.MemoryTypeIndex, r.PrefersDedicatedAllocation, r.RequiresDedicatedAllocation,
	)
}
