package vkalloc

import (
	"fmt"

	"github.com/gogpu/vkalloc/vk"
)

// MemoryAllocator is the resource-binding facade: it creates a buffer or
// image, queries its requirements, allocates memory through the composed
// allocator, and binds the two together. Resources returned by it are
// ready to use.
type MemoryAllocator struct {
	api        ResourceAPI
	properties MemoryProperties
	inner      Allocator
}

// NewMemoryAllocator builds a facade over an already-composed allocator
// stack. The device must outlive the facade.
func NewMemoryAllocator(api ResourceAPI, properties MemoryProperties, inner Allocator) *MemoryAllocator {
	Logger().Debug("memory allocator created", "memory_properties", properties.String())
	return &MemoryAllocator{
		api:        api,
		properties: properties,
		inner:      inner,
	}
}

// MemoryProperties returns the device's memory types and heaps.
func (m *MemoryAllocator) MemoryProperties() MemoryProperties {
	return m.properties
}

// AllocateBuffer creates a buffer, allocates memory with the requested
// property flags, and binds it. On any failure the buffer is destroyed
// and nothing is leaked.
func (m *MemoryAllocator) AllocateBuffer(createInfo *vk.BufferCreateInfo, properties vk.MemoryPropertyFlags) (vk.Buffer, *Allocation, error) {
	buffer, err := m.api.CreateBuffer(createInfo)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating a buffer of %d bytes: %w", createInfo.Size, err)
	}

	requirements, err := RequirementsForBuffer(m.api, m.properties.Types(), properties, buffer)
	if err != nil {
		m.api.DestroyBuffer(buffer)
		return 0, nil, err
	}

	allocation, err := m.inner.Allocate(requirements)
	if err != nil {
		m.api.DestroyBuffer(buffer)
		return 0, nil, err
	}

	if err := m.api.BindBufferMemory(buffer, allocation.Memory().Memory(), allocation.OffsetInBytes()); err != nil {
		_ = m.inner.Free(allocation)
		m.api.DestroyBuffer(buffer)
		return 0, nil, fmt.Errorf("error binding buffer memory: %w", err)
	}

	return buffer, allocation, nil
}

// AllocateImage creates an image, allocates memory with the requested
// property flags, and binds it. On any failure the image is destroyed and
// nothing is leaked.
func (m *MemoryAllocator) AllocateImage(createInfo *vk.ImageCreateInfo, properties vk.MemoryPropertyFlags) (vk.Image, *Allocation, error) {
	image, err := m.api.CreateImage(createInfo)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating an image: %w", err)
	}

	requirements, err := RequirementsForImage(m.api, m.properties.Types(), properties, image)
	if err != nil {
		m.api.DestroyImage(image)
		return 0, nil, err
	}

	allocation, err := m.inner.Allocate(requirements)
	if err != nil {
		m.api.DestroyImage(image)
		return 0, nil, err
	}

	if err := m.api.BindImageMemory(image, allocation.Memory().Memory(), allocation.OffsetInBytes()); err != nil {
		_ = m.inner.Free(allocation)
		m.api.DestroyImage(image)
		return 0, nil, fmt.Errorf("error binding image memory: %w", err)
	}

	return image, allocation, nil
}

// FreeBuffer destroys the buffer and returns its memory. The caller must
// synchronize: it is an error to free a buffer the GPU still references.
func (m *MemoryAllocator) FreeBuffer(buffer vk.Buffer, allocation *Allocation) error {
	m.api.DestroyBuffer(buffer)
	return m.inner.Free(allocation)
}

// FreeImage destroys the image and returns its memory. The caller must
// synchronize: it is an error to free an image the GPU still references.
func (m *MemoryAllocator) FreeImage(image vk.Image, allocation *Allocation) error {
	m.api.DestroyImage(image)
	return m.inner.Free(allocation)
}
