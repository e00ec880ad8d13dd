// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// Commands holds the loaded function pointers for the memory subsystem.
// Load instance-level functions with LoadInstance and device-level functions
// with LoadDevice before calling any wrapper.
type Commands struct {
	// Instance-level.
	getPhysicalDeviceMemoryProperties unsafe.Pointer

	// Device-level.
	allocateMemory               unsafe.Pointer
	freeMemory                   unsafe.Pointer
	mapMemory                    unsafe.Pointer
	unmapMemory                  unsafe.Pointer
	getBufferMemoryRequirements2 unsafe.Pointer
	getImageMemoryRequirements2  unsafe.Pointer
	createBuffer                 unsafe.Pointer
	destroyBuffer                unsafe.Pointer
	bindBufferMemory             unsafe.Pointer
	createImage                  unsafe.Pointer
	destroyImage                 unsafe.Pointer
	bindImageMemory              unsafe.Pointer
}

// NewCommands creates an empty Commands instance.
func NewCommands() *Commands {
	return &Commands{}
}

// LoadInstance loads the instance-level function pointers.
// Must be called after vkCreateInstance succeeds.
func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("invalid instance handle")
	}

	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	if c.getPhysicalDeviceMemoryProperties == nil {
		return fmt.Errorf("failed to load vkGetPhysicalDeviceMemoryProperties")
	}

	return nil
}

// LoadDevice loads the device-level function pointers.
// Must be called after vkCreateDevice succeeds.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("invalid device handle")
	}

	c.allocateMemory = GetDeviceProcAddr(device, "vkAllocateMemory")
	c.freeMemory = GetDeviceProcAddr(device, "vkFreeMemory")
	c.mapMemory = GetDeviceProcAddr(device, "vkMapMemory")
	c.unmapMemory = GetDeviceProcAddr(device, "vkUnmapMemory")
	c.getBufferMemoryRequirements2 = GetDeviceProcAddr(device, "vkGetBufferMemoryRequirements2")
	c.getImageMemoryRequirements2 = GetDeviceProcAddr(device, "vkGetImageMemoryRequirements2")
	c.createBuffer = GetDeviceProcAddr(device, "vkCreateBuffer")
	c.destroyBuffer = GetDeviceProcAddr(device, "vkDestroyBuffer")
	c.bindBufferMemory = GetDeviceProcAddr(device, "vkBindBufferMemory")
	c.createImage = GetDeviceProcAddr(device, "vkCreateImage")
	c.destroyImage = GetDeviceProcAddr(device, "vkDestroyImage")
	c.bindImageMemory = GetDeviceProcAddr(device, "vkBindImageMemory")

	if c.allocateMemory == nil || c.freeMemory == nil || c.mapMemory == nil || c.unmapMemory == nil {
		return fmt.Errorf("failed to load critical memory functions")
	}

	return nil
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, allocInfo *MemoryAllocateInfo, allocator *AllocationCallbacks, memory *DeviceMemory) Result {
	if c.allocateMemory == nil {
		return ErrorInitializationFailed
	}

	var result int32
	pInfo := unsafe.Pointer(allocInfo)
	pAllocator := unsafe.Pointer(allocator)
	pMemory := unsafe.Pointer(memory)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pMemory),
	}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.allocateMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory, allocator *AllocationCallbacks) {
	if c.freeMemory == nil {
		return
	}

	pAllocator := unsafe.Pointer(allocator)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.freeMemory, nil, args[:])
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size DeviceSize, flags MemoryMapFlags, data *uintptr) Result {
	if c.mapMemory == nil {
		return ErrorInitializationFailed
	}

	var result int32
	pData := unsafe.Pointer(data)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&flags),
		unsafe.Pointer(&pData),
	}
	if err := ffi.CallFunction(&sigResultMapMemory, c.mapMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	if c.unmapMemory == nil {
		return
	}

	args := [2]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
	}
	_ = ffi.CallFunction(&sigVoidHandleHandle, c.unmapMemory, nil, args[:])
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(physicalDevice PhysicalDevice, properties *PhysicalDeviceMemoryProperties) {
	if c.getPhysicalDeviceMemoryProperties == nil {
		return
	}

	pProperties := unsafe.Pointer(properties)
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pProperties),
	}
	_ = ffi.CallFunction(&sigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, nil, args[:])
}

// GetBufferMemoryRequirements2 wraps vkGetBufferMemoryRequirements2.
func (c *Commands) GetBufferMemoryRequirements2(device Device, info *BufferMemoryRequirementsInfo2, requirements *MemoryRequirements2) {
	if c.getBufferMemoryRequirements2 == nil {
		return
	}

	pInfo := unsafe.Pointer(info)
	pRequirements := unsafe.Pointer(requirements)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pRequirements),
	}
	_ = ffi.CallFunction(&sigVoidHandlePtrPtr, c.getBufferMemoryRequirements2, nil, args[:])
}

// GetImageMemoryRequirements2 wraps vkGetImageMemoryRequirements2.
func (c *Commands) GetImageMemoryRequirements2(device Device, info *ImageMemoryRequirementsInfo2, requirements *MemoryRequirements2) {
	if c.getImageMemoryRequirements2 == nil {
		return
	}

	pInfo := unsafe.Pointer(info)
	pRequirements := unsafe.Pointer(requirements)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pRequirements),
	}
	_ = ffi.CallFunction(&sigVoidHandlePtrPtr, c.getImageMemoryRequirements2, nil, args[:])
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, createInfo *BufferCreateInfo, allocator *AllocationCallbacks, buffer *Buffer) Result {
	if c.createBuffer == nil {
		return ErrorInitializationFailed
	}

	var result int32
	pInfo := unsafe.Pointer(createInfo)
	pAllocator := unsafe.Pointer(allocator)
	pBuffer := unsafe.Pointer(buffer)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pBuffer),
	}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createBuffer, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer, allocator *AllocationCallbacks) {
	if c.destroyBuffer == nil {
		return
	}

	pAllocator := unsafe.Pointer(allocator)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyBuffer, nil, args[:])
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset DeviceSize) Result {
	if c.bindBufferMemory == nil {
		return ErrorInitializationFailed
	}

	var result int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	if err := ffi.CallFunction(&sigResultHandle4, c.bindBufferMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// CreateImage wraps vkCreateImage.
func (c *Commands) CreateImage(device Device, createInfo *ImageCreateInfo, allocator *AllocationCallbacks, image *Image) Result {
	if c.createImage == nil {
		return ErrorInitializationFailed
	}

	var result int32
	pInfo := unsafe.Pointer(createInfo)
	pAllocator := unsafe.Pointer(allocator)
	pImage := unsafe.Pointer(image)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pImage),
	}
	if err := ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createImage, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image, allocator *AllocationCallbacks) {
	if c.destroyImage == nil {
		return
	}

	pAllocator := unsafe.Pointer(allocator)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyImage, nil, args[:])
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset DeviceSize) Result {
	if c.bindImageMemory == nil {
		return ErrorInitializationFailed
	}

	var result int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	if err := ffi.CallFunction(&sigResultHandle4, c.bindImageMemory, unsafe.Pointer(&result), args[:]); err != nil {
		return ErrorInitializationFailed
	}
	return Result(result)
}
