package vkalloc

import (
	"unsafe"

	"github.com/gogpu/vkalloc/vk"
)

// fakeDeviceAllocation records one AllocateMemory call on the fake device.
type fakeDeviceAllocation struct {
	sizeInBytes     uint64
	memoryTypeIndex int
	dedicated       DedicatedResource
}

// fakeDevice implements ResourceAPI in memory. Each allocation is backed by
// a real byte slice so mapped pointers can be written and read.
type fakeDevice struct {
	nextHandle uint64

	allocations []fakeDeviceAllocation
	active      int
	freed       []vk.DeviceMemory

	mapCalls   int
	unmapCalls int
	backing    map[vk.DeviceMemory][]byte

	allocErr error

	// nextBufferRequirements and nextImageRequirements override the
	// requirements reported for the next resource created; when nil, a
	// permissive default sized from the create info is reported.
	nextBufferRequirements *ResourceRequirements
	nextImageRequirements  *ResourceRequirements
	bufferRequirements     map[vk.Buffer]ResourceRequirements
	imageRequirements      map[vk.Image]ResourceRequirements
	liveBuffers            int
	liveImages             int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		backing:            make(map[vk.DeviceMemory][]byte),
		bufferRequirements: make(map[vk.Buffer]ResourceRequirements),
		imageRequirements:  make(map[vk.Image]ResourceRequirements),
	}
}

func (f *fakeDevice) AllocateMemory(sizeInBytes uint64, memoryTypeIndex int, dedicated DedicatedResource) (vk.DeviceMemory, error) {
	if f.allocErr != nil {
		return 0, f.allocErr
	}
	f.nextHandle++
	handle := vk.DeviceMemory(f.nextHandle)
	f.allocations = append(f.allocations, fakeDeviceAllocation{
		sizeInBytes:     sizeInBytes,
		memoryTypeIndex: memoryTypeIndex,
		dedicated:       dedicated,
	})
	f.active++
	f.backing[handle] = make([]byte, sizeInBytes)
	return handle, nil
}

func (f *fakeDevice) FreeMemory(memory vk.DeviceMemory) {
	f.active--
	f.freed = append(f.freed, memory)
	delete(f.backing, memory)
}

func (f *fakeDevice) MapMemory(memory vk.DeviceMemory) (uintptr, error) {
	buf, ok := f.backing[memory]
	if !ok || len(buf) == 0 {
		return 0, ErrAllocationFailed
	}
	f.mapCalls++
	return uintptr(unsafe.Pointer(&buf[0])), nil
}

func (f *fakeDevice) UnmapMemory(vk.DeviceMemory) {
	f.unmapCalls++
}

func (f *fakeDevice) BufferRequirements(buffer vk.Buffer) ResourceRequirements {
	return f.bufferRequirements[buffer]
}

func (f *fakeDevice) ImageRequirements(image vk.Image) ResourceRequirements {
	return f.imageRequirements[image]
}

func (f *fakeDevice) CreateBuffer(createInfo *vk.BufferCreateInfo) (vk.Buffer, error) {
	f.nextHandle++
	buffer := vk.Buffer(f.nextHandle)
	f.liveBuffers++
	if f.nextBufferRequirements != nil {
		f.bufferRequirements[buffer] = *f.nextBufferRequirements
		f.nextBufferRequirements = nil
	} else {
		f.bufferRequirements[buffer] = ResourceRequirements{
			SizeInBytes:    createInfo.Size,
			Alignment:      1,
			MemoryTypeBits: ^uint32(0),
		}
	}
	return buffer, nil
}

func (f *fakeDevice) DestroyBuffer(vk.Buffer) {
	f.liveBuffers--
}

func (f *fakeDevice) BindBufferMemory(vk.Buffer, vk.DeviceMemory, uint64) error {
	return nil
}

func (f *fakeDevice) CreateImage(*vk.ImageCreateInfo) (vk.Image, error) {
	f.nextHandle++
	image := vk.Image(f.nextHandle)
	f.liveImages++
	if f.nextImageRequirements != nil {
		f.imageRequirements[image] = *f.nextImageRequirements
		f.nextImageRequirements = nil
	} else {
		f.imageRequirements[image] = ResourceRequirements{
			SizeInBytes:    4096,
			Alignment:      1,
			MemoryTypeBits: ^uint32(0),
		}
	}
	return image, nil
}

func (f *fakeDevice) DestroyImage(vk.Image) {
	f.liveImages--
}

func (f *fakeDevice) BindImageMemory(vk.Image, vk.DeviceMemory, uint64) error {
	return nil
}

// hostVisibleProperties is a two-type layout used across the tests: type 0
// is device-local, type 1 is host-visible and coherent.
func hostVisibleProperties() MemoryProperties {
	return NewMemoryProperties(
		[]vk.MemoryType{
			{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0},
			{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 1},
		},
		[]vk.MemoryHeap{
			{Size: 1 << 30},
			{Size: 1 << 28},
		},
	)
}
