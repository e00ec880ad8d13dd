package vkalloc

import (
	"errors"
	"testing"

	"github.com/gogpu/vkalloc/vk"
)

func TestAlignedSize(t *testing.T) {
	tests := []struct {
		name        string
		sizeInBytes uint64
		alignment   uint64
		want        uint64
	}{
		{name: "alignment 1 adds nothing", sizeInBytes: 100, alignment: 1, want: 100},
		{name: "alignment 8", sizeInBytes: 62, alignment: 8, want: 69},
		{name: "alignment 256", sizeInBytes: 1, alignment: 256, want: 256},
		{name: "zero alignment treated as none", sizeInBytes: 42, alignment: 0, want: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requirements := AllocationRequirements{
				SizeInBytes: tt.sizeInBytes,
				Alignment:   tt.alignment,
			}
			if got := requirements.AlignedSize(); got != tt.want {
				t.Fatalf("AlignedSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPickMemoryTypeIndex(t *testing.T) {
	memoryTypes := []vk.MemoryType{
		{PropertyFlags: vk.MemoryPropertyDeviceLocalBit},
		{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit},
		{PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit},
	}

	tests := []struct {
		name       string
		typeBits   uint32
		properties vk.MemoryPropertyFlags
		wantIndex  int
		wantErr    bool
	}{
		{
			name:       "first acceptable device-local type",
			typeBits:   0b111,
			properties: vk.MemoryPropertyDeviceLocalBit,
			wantIndex:  0,
		},
		{
			name:       "host visible skips device-local",
			typeBits:   0b111,
			properties: vk.MemoryPropertyHostVisibleBit,
			wantIndex:  1,
		},
		{
			name:       "type bits exclude earlier matches",
			typeBits:   0b100,
			properties: vk.MemoryPropertyDeviceLocalBit,
			wantIndex:  2,
		},
		{
			name:       "no type with both flags and bits",
			typeBits:   0b001,
			properties: vk.MemoryPropertyHostVisibleBit,
			wantErr:    true,
		},
		{
			name:       "empty type bits match nothing",
			typeBits:   0,
			properties: 0,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := pickMemoryTypeIndex(memoryTypes, tt.typeBits, tt.properties)
			if tt.wantErr {
				var selection *TypeSelectionError
				if !errors.As(err, &selection) {
					t.Fatalf("err = %v, want TypeSelectionError", err)
				}
				if selection.MemoryTypeBits != tt.typeBits {
					t.Fatalf("error bits = %b, want %b", selection.MemoryTypeBits, tt.typeBits)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if index != tt.wantIndex {
				t.Fatalf("index = %d, want %d", index, tt.wantIndex)
			}
		})
	}
}

func TestRequirementsForBuffer(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()

	buffer, err := device.CreateBuffer(&vk.BufferCreateInfo{Size: 512})
	if err != nil {
		t.Fatal(err)
	}
	device.bufferRequirements[buffer] = ResourceRequirements{
		SizeInBytes:      512,
		Alignment:        64,
		MemoryTypeBits:   0b10,
		PrefersDedicated: true,
	}

	requirements, err := RequirementsForBuffer(device, properties.Types(), vk.MemoryPropertyHostVisibleBit, buffer)
	if err != nil {
		t.Fatal(err)
	}

	if requirements.SizeInBytes != 512 || requirements.Alignment != 64 {
		t.Fatalf("size/alignment = %d/%d, want 512/64", requirements.SizeInBytes, requirements.Alignment)
	}
	if requirements.MemoryTypeIndex != 1 {
		t.Fatalf("memory type index = %d, want 1", requirements.MemoryTypeIndex)
	}
	if !requirements.PrefersDedicatedAllocation || requirements.RequiresDedicatedAllocation {
		t.Fatal("dedicated hints not carried through")
	}
	if requirements.Dedicated.Buffer != buffer || requirements.Dedicated.Image != 0 {
		t.Fatal("dedicated resource handle should name the buffer")
	}
}

func TestRequirementsForImage(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()

	image, err := device.CreateImage(&vk.ImageCreateInfo{})
	if err != nil {
		t.Fatal(err)
	}
	device.imageRequirements[image] = ResourceRequirements{
		SizeInBytes:       1 << 20,
		Alignment:         4096,
		MemoryTypeBits:    0b01,
		RequiresDedicated: true,
	}

	requirements, err := RequirementsForImage(device, properties.Types(), vk.MemoryPropertyDeviceLocalBit, image)
	if err != nil {
		t.Fatal(err)
	}

	if requirements.MemoryTypeIndex != 0 {
		t.Fatalf("memory type index = %d, want 0", requirements.MemoryTypeIndex)
	}
	if !requirements.RequiresDedicatedAllocation {
		t.Fatal("requires-dedicated hint lost")
	}
	if requirements.Dedicated.Image != image {
		t.Fatal("dedicated resource handle should name the image")
	}
}

func TestRequirementsForBufferNoSupportedType(t *testing.T) {
	device := newFakeDevice()
	properties := hostVisibleProperties()

	buffer, err := device.CreateBuffer(&vk.BufferCreateInfo{Size: 16})
	if err != nil {
		t.Fatal(err)
	}
	device.bufferRequirements[buffer] = ResourceRequirements{
		SizeInBytes:    16,
		Alignment:      1,
		MemoryTypeBits: 0b01, // device-local only
	}

	_, err = RequirementsForBuffer(device, properties.Types(), vk.MemoryPropertyHostVisibleBit, buffer)
	var selection *TypeSelectionError
	if !errors.As(err, &selection) {
		t.Fatalf("err = %v, want TypeSelectionError", err)
	}
}

func TestDedicatedResourceIsNone(t *testing.T) {
	if !(DedicatedResource{}).IsNone() {
		t.Fatal("zero value should be none")
	}
	if (DedicatedResource{Buffer: 1}).IsNone() {
		t.Fatal("buffer handle should not be none")
	}
	if (DedicatedResource{Image: 1}).IsNone() {
		t.Fatal("image handle should not be none")
	}
}
