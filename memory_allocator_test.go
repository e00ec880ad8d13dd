package vkalloc

import (
	"errors"
	"testing"

	"github.com/gogpu/vkalloc/vk"
)

func TestMemoryAllocatorAllocateBuffer(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()
	system, err := NewSystemAllocator(device, properties, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	facade := NewMemoryAllocator(device, properties, system)

	device.nextBufferRequirements = &ResourceRequirements{
		SizeInBytes:    400,
		Alignment:      4,
		MemoryTypeBits: 0b10,
	}
	buffer, allocation, err := facade.AllocateBuffer(
		&vk.BufferCreateInfo{
			SType: vk.StructureTypeBufferCreateInfo,
			Size:  400,
			Usage: vk.BufferUsageStorageBufferBit,
		},
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
	)
	if err != nil {
		t.Fatal(err)
	}
	if buffer == 0 {
		t.Fatal("buffer handle is zero")
	}
	if allocation.SizeInBytes() != 400 {
		t.Fatalf("allocation size = %d, want 400", allocation.SizeInBytes())
	}
	if allocation.MemoryTypeIndex() != 1 {
		t.Fatalf("memory type index = %d, want 1 (host visible)", allocation.MemoryTypeIndex())
	}

	if err := facade.FreeBuffer(buffer, allocation); err != nil {
		t.Fatal(err)
	}
	if device.liveBuffers != 0 {
		t.Fatalf("live buffers = %d, want 0", device.liveBuffers)
	}
	if device.active != 0 {
		t.Fatalf("device-side allocations = %d, want 0", device.active)
	}
}

func TestMemoryAllocatorAllocateImageDedicated(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()
	system, err := NewSystemAllocator(device, properties, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	facade := NewMemoryAllocator(device, properties, system)

	device.nextImageRequirements = &ResourceRequirements{
		SizeInBytes:       1 << 22,
		Alignment:         4096,
		MemoryTypeBits:    0b01,
		RequiresDedicated: true,
	}
	image, allocation, err := facade.AllocateImage(
		&vk.ImageCreateInfo{
			SType:     vk.StructureTypeImageCreateInfo,
			ImageType: vk.ImageType2D,
			Format:    vk.FormatR8G8B8A8Unorm,
			Extent:    vk.Extent3D{Width: 1024, Height: 1024, Depth: 1},
		},
		vk.MemoryPropertyDeviceLocalBit,
	)
	if err != nil {
		t.Fatal(err)
	}

	// A required-dedicated image goes straight to the device with its
	// handle chained in; no pool chunk is created.
	if len(device.allocations) != 1 {
		t.Fatalf("device allocations = %d, want 1", len(device.allocations))
	}
	if device.allocations[0].dedicated.Image != image {
		t.Fatal("dedicated image handle did not reach the device")
	}
	if device.allocations[0].sizeInBytes != 1<<22 {
		t.Fatalf("device allocation size = %d, want %d", device.allocations[0].sizeInBytes, 1<<22)
	}

	if err := facade.FreeImage(image, allocation); err != nil {
		t.Fatal(err)
	}
	if device.liveImages != 0 || device.active != 0 {
		t.Fatalf("live images = %d, active memory = %d, want 0/0", device.liveImages, device.active)
	}
}

func TestMemoryAllocatorBufferRollbackOnTypeSelectionFailure(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()
	system, err := NewSystemAllocator(device, properties, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	facade := NewMemoryAllocator(device, properties, system)

	// The buffer only accepts type 0 (device-local), but the caller insists
	// on host-visible: no type fits, and the buffer must be destroyed.
	device.nextBufferRequirements = &ResourceRequirements{
		SizeInBytes:    64,
		Alignment:      1,
		MemoryTypeBits: 0b01,
	}
	_, _, err = facade.AllocateBuffer(
		&vk.BufferCreateInfo{SType: vk.StructureTypeBufferCreateInfo, Size: 64},
		vk.MemoryPropertyHostVisibleBit,
	)
	var selection *TypeSelectionError
	if !errors.As(err, &selection) {
		t.Fatalf("err = %v, want TypeSelectionError", err)
	}
	if device.liveBuffers != 0 {
		t.Fatal("buffer leaked after requirement failure")
	}
	if device.active != 0 {
		t.Fatal("memory leaked after requirement failure")
	}
}

func TestMemoryAllocatorBufferRollbackOnAllocationFailure(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()
	system, err := NewSystemAllocator(device, properties, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	facade := NewMemoryAllocator(device, properties, system)

	device.allocErr = ErrAllocationFailed
	_, _, err = facade.AllocateBuffer(
		&vk.BufferCreateInfo{SType: vk.StructureTypeBufferCreateInfo, Size: 64},
		vk.MemoryPropertyDeviceLocalBit,
	)
	if !errors.Is(err, ErrAllocationFailed) {
		t.Fatalf("err = %v, want ErrAllocationFailed", err)
	}
	if device.liveBuffers != 0 {
		t.Fatal("buffer leaked after allocation failure")
	}
}
