package vkalloc

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/vkalloc/vk"
)

// VulkanDevice implements ResourceAPI over a live logical device using the
// pure-Go bindings in the vk package.
type VulkanDevice struct {
	device vk.Device
	cmds   *vk.Commands
}

// NewVulkanDevice wraps a logical device. The command table must have its
// device-level functions loaded. The device must not be destroyed while any
// allocator built on top of it is still in use.
func NewVulkanDevice(device vk.Device, cmds *vk.Commands) *VulkanDevice {
	return &VulkanDevice{device: device, cmds: cmds}
}

// AllocateMemory allocates one device-memory object, chaining a dedicated
// allocate info when the request names a resource.
func (d *VulkanDevice) AllocateMemory(sizeInBytes uint64, memoryTypeIndex int, dedicated DedicatedResource) (vk.DeviceMemory, error) {
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  sizeInBytes,
		MemoryTypeIndex: uint32(memoryTypeIndex),
	}

	var dedicatedInfo vk.MemoryDedicatedAllocateInfo
	if !dedicated.IsNone() {
		dedicatedInfo = vk.MemoryDedicatedAllocateInfo{
			SType:  vk.StructureTypeMemoryDedicatedAllocateInfo,
			Buffer: dedicated.Buffer,
			Image:  dedicated.Image,
		}
		allocInfo.PNext = unsafe.Pointer(&dedicatedInfo)
	}

	var memory vk.DeviceMemory
	if result := d.cmds.AllocateMemory(d.device, &allocInfo, nil, &memory); result != vk.Success {
		return 0, fmt.Errorf("%w: vkAllocateMemory returned %s", ErrAllocationFailed, result)
	}
	return memory, nil
}

// FreeMemory returns a device-memory object to the driver.
func (d *VulkanDevice) FreeMemory(memory vk.DeviceMemory) {
	d.cmds.FreeMemory(d.device, memory, nil)
}

// MapMemory maps the whole object and returns the host address.
func (d *VulkanDevice) MapMemory(memory vk.DeviceMemory) (uintptr, error) {
	var data uintptr
	if result := d.cmds.MapMemory(d.device, memory, 0, vk.WholeSize, 0, &data); result != vk.Success {
		return 0, fmt.Errorf("unable to map a memory allocation: %w", result.Err())
	}
	return data, nil
}

// UnmapMemory releases the host mapping.
func (d *VulkanDevice) UnmapMemory(memory vk.DeviceMemory) {
	d.cmds.UnmapMemory(d.device, memory)
}

// BufferRequirements queries size, alignment, type bits, and dedicated
// hints for a buffer through vkGetBufferMemoryRequirements2.
func (d *VulkanDevice) BufferRequirements(buffer vk.Buffer) ResourceRequirements {
	var dedicated vk.MemoryDedicatedRequirements
	dedicated.SType = vk.StructureTypeMemoryDedicatedRequirements

	var requirements vk.MemoryRequirements2
	requirements.SType = vk.StructureTypeMemoryRequirements2
	requirements.PNext = unsafe.Pointer(&dedicated)

	info := vk.BufferMemoryRequirementsInfo2{
		SType:  vk.StructureTypeBufferMemoryRequirementsInfo2,
		Buffer: buffer,
	}
	d.cmds.GetBufferMemoryRequirements2(d.device, &info, &requirements)

	return resourceRequirements(requirements, dedicated)
}

// ImageRequirements queries size, alignment, type bits, and dedicated
// hints for an image through vkGetImageMemoryRequirements2.
func (d *VulkanDevice) ImageRequirements(image vk.Image) ResourceRequirements {
	var dedicated vk.MemoryDedicatedRequirements
	dedicated.SType = vk.StructureTypeMemoryDedicatedRequirements

	var requirements vk.MemoryRequirements2
	requirements.SType = vk.StructureTypeMemoryRequirements2
	requirements.PNext = unsafe.Pointer(&dedicated)

	info := vk.ImageMemoryRequirementsInfo2{
		SType: vk.StructureTypeImageMemoryRequirementsInfo2,
		Image: image,
	}
	d.cmds.GetImageMemoryRequirements2(d.device, &info, &requirements)

	return resourceRequirements(requirements, dedicated)
}

func resourceRequirements(requirements vk.MemoryRequirements2, dedicated vk.MemoryDedicatedRequirements) ResourceRequirements {
	return ResourceRequirements{
		SizeInBytes:       requirements.MemoryRequirements.Size,
		Alignment:         requirements.MemoryRequirements.Alignment,
		MemoryTypeBits:    requirements.MemoryRequirements.MemoryTypeBits,
		PrefersDedicated:  dedicated.PrefersDedicatedAllocation == vk.True,
		RequiresDedicated: dedicated.RequiresDedicatedAllocation == vk.True,
	}
}

// CreateBuffer wraps vkCreateBuffer.
func (d *VulkanDevice) CreateBuffer(createInfo *vk.BufferCreateInfo) (vk.Buffer, error) {
	var buffer vk.Buffer
	if result := d.cmds.CreateBuffer(d.device, createInfo, nil, &buffer); result != vk.Success {
		return 0, fmt.Errorf("vkCreateBuffer failed: %w", result.Err())
	}
	return buffer, nil
}

// DestroyBuffer wraps vkDestroyBuffer.
func (d *VulkanDevice) DestroyBuffer(buffer vk.Buffer) {
	d.cmds.DestroyBuffer(d.device, buffer, nil)
}

// BindBufferMemory wraps vkBindBufferMemory.
func (d *VulkanDevice) BindBufferMemory(buffer vk.Buffer, memory vk.DeviceMemory, offset uint64) error {
	if result := d.cmds.BindBufferMemory(d.device, buffer, memory, offset); result != vk.Success {
		return fmt.Errorf("vkBindBufferMemory failed: %w", result.Err())
	}
	return nil
}

// CreateImage wraps vkCreateImage.
func (d *VulkanDevice) CreateImage(createInfo *vk.ImageCreateInfo) (vk.Image, error) {
	var image vk.Image
	if result := d.cmds.CreateImage(d.device, createInfo, nil, &image); result != vk.Success {
		return 0, fmt.Errorf("vkCreateImage failed: %w", result.Err())
	}
	return image, nil
}

// DestroyImage wraps vkDestroyImage.
func (d *VulkanDevice) DestroyImage(image vk.Image) {
	d.cmds.DestroyImage(d.device, image, nil)
}

// BindImageMemory wraps vkBindImageMemory.
func (d *VulkanDevice) BindImageMemory(image vk.Image, memory vk.DeviceMemory, offset uint64) error {
	if result := d.cmds.BindImageMemory(d.device, image, memory, offset); result != vk.Success {
		return fmt.Errorf("vkBindImageMemory failed: %w", result.Err())
	}
	return nil
}
