package vkalloc

import "github.com/gogpu/vkalloc/vk"

// DeviceAPI is the narrow slice of the Vulkan device the allocator consumes.
// The real implementation is VulkanDevice; tests substitute fakes.
type DeviceAPI interface {
	// AllocateMemory allocates one device-memory object of the given size
	// from the given memory type. When dedicated names a buffer or image,
	// the allocation is created with a chained dedicated-allocate info so
	// the driver can back that single resource directly.
	AllocateMemory(sizeInBytes uint64, memoryTypeIndex int, dedicated DedicatedResource) (vk.DeviceMemory, error)

	// FreeMemory returns a device-memory object to the driver.
	FreeMemory(memory vk.DeviceMemory)

	// MapMemory maps the whole device-memory object and returns the host
	// address. Vulkan forbids mapping the same object twice; DeviceMemory
	// reference-counts calls so this is invoked at most once per object.
	MapMemory(memory vk.DeviceMemory) (uintptr, error)

	// UnmapMemory releases the host mapping of a device-memory object.
	UnmapMemory(memory vk.DeviceMemory)

	// BufferRequirements reports size, alignment, acceptable memory types,
	// and dedicated-allocation hints for a buffer.
	BufferRequirements(buffer vk.Buffer) ResourceRequirements

	// ImageRequirements reports size, alignment, acceptable memory types,
	// and dedicated-allocation hints for an image.
	ImageRequirements(image vk.Image) ResourceRequirements
}

// ResourceAPI extends DeviceAPI with the resource lifecycle needed by the
// MemoryAllocator facade to create, bind, and destroy buffers and images.
type ResourceAPI interface {
	DeviceAPI

	CreateBuffer(createInfo *vk.BufferCreateInfo) (vk.Buffer, error)
	DestroyBuffer(buffer vk.Buffer)
	BindBufferMemory(buffer vk.Buffer, memory vk.DeviceMemory, offset uint64) error

	CreateImage(createInfo *vk.ImageCreateInfo) (vk.Image, error)
	DestroyImage(image vk.Image)
	BindImageMemory(image vk.Image, memory vk.DeviceMemory, offset uint64) error
}

// ResourceRequirements is the raw requirement query result for one buffer
// or image, before a memory type index has been chosen.
type ResourceRequirements struct {
	// SizeInBytes is the required allocation size.
	SizeInBytes uint64

	// Alignment is the required offset alignment. Power of two.
	Alignment uint64

	// MemoryTypeBits has bit i set iff memory type i can back the resource.
	MemoryTypeBits uint32

	// PrefersDedicated is set when the driver would rather give the
	// resource its own device-memory object.
	PrefersDedicated bool

	// RequiresDedicated is set when the driver insists on it.
	RequiresDedicated bool
}
