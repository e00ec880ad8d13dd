// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Handle types. Vulkan dispatchable and non-dispatchable handles are all
// 64-bit on the platforms this package targets.
type (
	// Instance is a VkInstance handle.
	Instance uint64

	// PhysicalDevice is a VkPhysicalDevice handle.
	PhysicalDevice uint64

	// Device is a VkDevice handle.
	Device uint64

	// DeviceMemory is a VkDeviceMemory handle.
	DeviceMemory uint64

	// Buffer is a VkBuffer handle.
	Buffer uint64

	// Image is a VkImage handle.
	Image uint64
)

// DeviceSize is a VkDeviceSize (byte count or offset).
type DeviceSize = uint64

// Bool32 is a VkBool32.
type Bool32 uint32

// Boolean values for Bool32 fields.
const (
	False Bool32 = 0
	True  Bool32 = 1
)

// WholeSize is VK_WHOLE_SIZE: map or use the remainder of an allocation.
const WholeSize = ^DeviceSize(0)

// MaxMemoryTypes is VK_MAX_MEMORY_TYPES.
const MaxMemoryTypes = 32

// MaxMemoryHeaps is VK_MAX_MEMORY_HEAPS.
const MaxMemoryHeaps = 16

// StructureType identifies the type of a Vulkan structure (VkStructureType).
type StructureType int32

// Structure types used by the memory subsystem.
const (
	StructureTypeBufferCreateInfo                StructureType = 12
	StructureTypeImageCreateInfo                 StructureType = 14
	StructureTypeMemoryAllocateInfo              StructureType = 5
	StructureTypeMappedMemoryRange               StructureType = 6
	StructureTypeBufferMemoryRequirementsInfo2   StructureType = 1000146000
	StructureTypeImageMemoryRequirementsInfo2    StructureType = 1000146001
	StructureTypeMemoryRequirements2             StructureType = 1000146003
	StructureTypeMemoryDedicatedRequirements     StructureType = 1000127000
	StructureTypeMemoryDedicatedAllocateInfo     StructureType = 1000127001
	StructureTypePhysicalDeviceMemoryProperties2 StructureType = 1000059006
)

// MemoryPropertyFlags is a VkMemoryPropertyFlags bitmask.
type MemoryPropertyFlags uint32

// Memory property bits.
const (
	MemoryPropertyDeviceLocalBit     MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisibleBit     MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 0x00000004
	MemoryPropertyHostCachedBit      MemoryPropertyFlags = 0x00000008
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 0x00000010
	MemoryPropertyProtectedBit       MemoryPropertyFlags = 0x00000020
)

// String spells out the set bits, e.g. "DEVICE_LOCAL|HOST_VISIBLE".
func (f MemoryPropertyFlags) String() string {
	names := []struct {
		bit  MemoryPropertyFlags
		name string
	}{
		{MemoryPropertyDeviceLocalBit, "DEVICE_LOCAL"},
		{MemoryPropertyHostVisibleBit, "HOST_VISIBLE"},
		{MemoryPropertyHostCoherentBit, "HOST_COHERENT"},
		{MemoryPropertyHostCachedBit, "HOST_CACHED"},
		{MemoryPropertyLazilyAllocatedBit, "LAZILY_ALLOCATED"},
		{MemoryPropertyProtectedBit, "PROTECTED"},
	}
	var s string
	for _, n := range names {
		if f&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	if s == "" {
		return "0"
	}
	return s
}

// MemoryHeapFlags is a VkMemoryHeapFlags bitmask.
type MemoryHeapFlags uint32

// Memory heap bits.
const (
	MemoryHeapDeviceLocalBit   MemoryHeapFlags = 0x00000001
	MemoryHeapMultiInstanceBit MemoryHeapFlags = 0x00000002
)

// MemoryMapFlags is a VkMemoryMapFlags bitmask. Reserved, always zero.
type MemoryMapFlags uint32

// MemoryType describes a Vulkan memory type (VkMemoryType).
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap describes a Vulkan memory heap (VkMemoryHeap).
// Go's implicit trailing padding matches the C ABI (16 bytes).
type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

// PhysicalDeviceMemoryProperties mirrors VkPhysicalDeviceMemoryProperties.
// The heap array lands on its 8-byte boundary without explicit padding:
// 4 + 32*8 + 4 = 264.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MaxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [MaxMemoryHeaps]MemoryHeap
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
	_               uint32
}

// MemoryDedicatedAllocateInfo mirrors VkMemoryDedicatedAllocateInfo.
// Chain it from MemoryAllocateInfo.PNext to request a dedicated allocation
// bound to exactly one image or buffer.
type MemoryDedicatedAllocateInfo struct {
	SType  StructureType
	_      uint32
	PNext  unsafe.Pointer
	Image  Image
	Buffer Buffer
}

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
	_              uint32
}

// MemoryRequirements2 mirrors VkMemoryRequirements2.
type MemoryRequirements2 struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	MemoryRequirements MemoryRequirements
}

// MemoryDedicatedRequirements mirrors VkMemoryDedicatedRequirements.
// Chain it from MemoryRequirements2.PNext to learn whether the driver
// prefers or requires a dedicated allocation for a resource.
type MemoryDedicatedRequirements struct {
	SType                       StructureType
	_                           uint32
	PNext                       unsafe.Pointer
	PrefersDedicatedAllocation  Bool32
	RequiresDedicatedAllocation Bool32
}

// BufferMemoryRequirementsInfo2 mirrors VkBufferMemoryRequirementsInfo2.
type BufferMemoryRequirementsInfo2 struct {
	SType  StructureType
	_      uint32
	PNext  unsafe.Pointer
	Buffer Buffer
}

// ImageMemoryRequirementsInfo2 mirrors VkImageMemoryRequirementsInfo2.
type ImageMemoryRequirementsInfo2 struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Image Image
}

// BufferCreateFlags is a VkBufferCreateFlags bitmask.
type BufferCreateFlags uint32

// BufferUsageFlags is a VkBufferUsageFlags bitmask.
type BufferUsageFlags uint32

// Buffer usage bits.
const (
	BufferUsageTransferSrcBit   BufferUsageFlags = 0x00000001
	BufferUsageTransferDstBit   BufferUsageFlags = 0x00000002
	BufferUsageUniformBufferBit BufferUsageFlags = 0x00000010
	BufferUsageStorageBufferBit BufferUsageFlags = 0x00000020
	BufferUsageIndexBufferBit   BufferUsageFlags = 0x00000040
	BufferUsageVertexBufferBit  BufferUsageFlags = 0x00000080
)

// SharingMode is a VkSharingMode.
type SharingMode int32

// Sharing modes.
const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// BufferCreateInfo mirrors VkBufferCreateInfo.
type BufferCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 BufferCreateFlags
	_                     uint32
	Size                  DeviceSize
	Usage                 BufferUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	_                     uint32
	PQueueFamilyIndices   unsafe.Pointer
}

// ImageCreateFlags is a VkImageCreateFlags bitmask.
type ImageCreateFlags uint32

// ImageType is a VkImageType.
type ImageType int32

// Image dimensionalities.
const (
	ImageType1D ImageType = 0
	ImageType2D ImageType = 1
	ImageType3D ImageType = 2
)

// Format is a VkFormat. Only formats exercised by tests and examples are
// named; any VkFormat value may be passed through.
type Format int32

// Common formats.
const (
	FormatUndefined     Format = 0
	FormatR8G8B8A8Unorm Format = 37
	FormatR8G8B8A8Srgb  Format = 43
)

// Extent3D mirrors VkExtent3D.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// SampleCountFlags is a VkSampleCountFlags bitmask.
type SampleCountFlags uint32

// SampleCount1Bit is VK_SAMPLE_COUNT_1_BIT.
const SampleCount1Bit SampleCountFlags = 0x00000001

// ImageTiling is a VkImageTiling.
type ImageTiling int32

// Image tilings.
const (
	ImageTilingOptimal ImageTiling = 0
	ImageTilingLinear  ImageTiling = 1
)

// ImageUsageFlags is a VkImageUsageFlags bitmask.
type ImageUsageFlags uint32

// Image usage bits.
const (
	ImageUsageTransferSrcBit  ImageUsageFlags = 0x00000001
	ImageUsageTransferDstBit  ImageUsageFlags = 0x00000002
	ImageUsageSampledBit      ImageUsageFlags = 0x00000004
	ImageUsageStorageBit      ImageUsageFlags = 0x00000008
	ImageUsageColorAttachment ImageUsageFlags = 0x00000010
)

// ImageLayout is a VkImageLayout.
type ImageLayout int32

// ImageLayoutUndefined is VK_IMAGE_LAYOUT_UNDEFINED.
const ImageLayoutUndefined ImageLayout = 0

// ImageCreateInfo mirrors VkImageCreateInfo.
type ImageCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 ImageCreateFlags
	ImageType             ImageType
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlags
	Tiling                ImageTiling
	Usage                 ImageUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
	InitialLayout         ImageLayout
	_                     uint32
}

// AllocationCallbacks is an opaque stand-in for VkAllocationCallbacks.
// The allocator always passes nil: host-side allocation hooks are not used.
type AllocationCallbacks struct{}
