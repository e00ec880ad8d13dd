package vkalloc

import (
	"fmt"
	"strings"

	"github.com/gogpu/vkalloc/vk"
)

// MemoryProperties holds the memory types and heaps a physical device
// exposes. It is captured once at construction and treated as immutable.
type MemoryProperties struct {
	types []vk.MemoryType
	heaps []vk.MemoryHeap
}

// NewMemoryProperties builds MemoryProperties from explicit type and heap
// lists. Use MemoryPropertiesFromPhysicalDevice for the live query.
func NewMemoryProperties(types []vk.MemoryType, heaps []vk.MemoryHeap) MemoryProperties {
	return MemoryProperties{
		types: append([]vk.MemoryType(nil), types...),
		heaps: append([]vk.MemoryHeap(nil), heaps...),
	}
}

// MemoryPropertiesFromPhysicalDevice queries the device's memory types and
// heaps through the loaded command table.
func MemoryPropertiesFromPhysicalDevice(cmds *vk.Commands, physicalDevice vk.PhysicalDevice) MemoryProperties {
	var raw vk.PhysicalDeviceMemoryProperties
	cmds.GetPhysicalDeviceMemoryProperties(physicalDevice, &raw)

	return MemoryProperties{
		types: append([]vk.MemoryType(nil), raw.MemoryTypes[:raw.MemoryTypeCount]...),
		heaps: append([]vk.MemoryHeap(nil), raw.MemoryHeaps[:raw.MemoryHeapCount]...),
	}
}

// Types returns all usable memory types on this device.
func (p MemoryProperties) Types() []vk.MemoryType {
	return p.types
}

// Heaps returns all usable memory heaps on this device.
func (p MemoryProperties) Heaps() []vk.MemoryHeap {
	return p.heaps
}

// String renders a human-readable report of every type and heap.
func (p MemoryProperties) String() string {
	var b strings.Builder
	b.WriteString("# Memory Properties\n\n")
	b.WriteString("## Memory Types\n\n")

	for index, memoryType := range p.types {
		fmt.Fprintf(&b, "[%d] property_flags: %s\n        heap_index: %d\n\n",
			index, memoryType.PropertyFlags, memoryType.HeapIndex)
	}

	b.WriteString("\n## Memory Heaps\n\n")

	for index, heap := range p.heaps {
		fmt.Fprintf(&b, "[%d] flags: %d\n     size: %s\n\n",
			index, heap.Flags, formatSize(heap.Size))
	}

	return b.String()
}
