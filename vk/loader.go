// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	vulkanLib             unsafe.Pointer
	vkGetInstanceProcAddr unsafe.Pointer
	vkGetDeviceProcAddr   unsafe.Pointer

	cifGetInstanceProcAddr types.CallInterface
	cifGetDeviceProcAddr   types.CallInterface

	initOnce sync.Once
	errInit  error
)

// Init loads the Vulkan runtime and prepares the call interfaces.
// Safe to call multiple times; only the first call does the work.
func Init() error {
	initOnce.Do(func() {
		errInit = doInit()
	})
	return errInit
}

func doInit() error {
	name, err := vulkanLibraryName()
	if err != nil {
		return err
	}

	vulkanLib, err = ffi.LoadLibrary(name)
	if err != nil {
		return fmt.Errorf("failed to load Vulkan library %s: %w", name, err)
	}

	vkGetInstanceProcAddr, err = ffi.GetSymbol(vulkanLib, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vkGetInstanceProcAddr not found: %w", err)
	}

	// PFN_vkVoidFunction vkGetInstanceProcAddr(VkInstance, const char*)
	err = ffi.PrepareCallInterface(&cifGetInstanceProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,  // VkInstance (handle, can be 0)
			types.PointerTypeDescriptor, // const char* pName
		})
	if err != nil {
		return fmt.Errorf("failed to prepare GetInstanceProcAddr interface: %w", err)
	}

	// PFN_vkVoidFunction vkGetDeviceProcAddr(VkDevice, const char*)
	err = ffi.PrepareCallInterface(&cifGetDeviceProcAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,
			types.PointerTypeDescriptor,
		})
	if err != nil {
		return fmt.Errorf("failed to prepare GetDeviceProcAddr interface: %w", err)
	}

	if err := initSignatures(); err != nil {
		return fmt.Errorf("failed to initialize signatures: %w", err)
	}

	return nil
}

// GetInstanceProcAddr returns the function pointer for an instance-level
// Vulkan function. Pass instance=0 for global functions.
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	if vkGetInstanceProcAddr == nil {
		return nil
	}

	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	// goffi reads argument values FROM the addresses in args, so pointer
	// arguments need pointer-to-pointer.
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&namePtr),
	}

	_ = ffi.CallFunction(&cifGetInstanceProcAddr, vkGetInstanceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// SetDeviceProcAddr resolves vkGetDeviceProcAddr through a live instance.
// Some drivers (Intel) return NULL from the instance=0 lookup, so call this
// after vkCreateInstance.
func SetDeviceProcAddr(instance Instance) {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr returns the function pointer for a device-level Vulkan
// function.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if vkGetDeviceProcAddr == nil {
		vkGetDeviceProcAddr = GetInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if vkGetDeviceProcAddr == nil {
			return nil
		}
	}

	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&namePtr),
	}

	_ = ffi.CallFunction(&cifGetDeviceProcAddr, vkGetDeviceProcAddr, unsafe.Pointer(&result), args[:])
	return result
}

// Close releases the Vulkan library.
func Close() error {
	if vulkanLib != nil {
		err := ffi.FreeLibrary(vulkanLib)
		vulkanLib = nil
		vkGetInstanceProcAddr = nil
		vkGetDeviceProcAddr = nil
		return err
	}
	return nil
}

// Signature templates shared by the bound functions. Prepared once in Init.
var (
	// VkResult(handle, ptr, ptr, ptr) - vkAllocateMemory, vkCreateBuffer, vkCreateImage
	sigResultHandlePtrPtrPtr types.CallInterface

	// VkResult(handle, handle, u64, u64, u32, ptr) - vkMapMemory
	sigResultMapMemory types.CallInterface

	// VkResult(handle, handle, handle, u64) - vkBindBufferMemory, vkBindImageMemory
	sigResultHandle4 types.CallInterface

	// void(handle, handle, ptr) - vkFreeMemory, vkDestroyBuffer, vkDestroyImage
	sigVoidHandleHandlePtr types.CallInterface

	// void(handle, handle) - vkUnmapMemory
	sigVoidHandleHandle types.CallInterface

	// void(handle, ptr) - vkGetPhysicalDeviceMemoryProperties
	sigVoidHandlePtr types.CallInterface

	// void(handle, ptr, ptr) - vkGetBufferMemoryRequirements2, vkGetImageMemoryRequirements2
	sigVoidHandlePtrPtr types.CallInterface
)

func initSignatures() error {
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	resultRet := types.SInt32TypeDescriptor // VkResult is int32

	if err := ffi.PrepareCallInterface(&sigResultHandlePtrPtrPtr, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, ptr, ptr, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigResultMapMemory, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, u64, u64, u64, u32, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigResultHandle4, types.DefaultCall, resultRet,
		[]*types.TypeDescriptor{u64, u64, u64, u64}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigVoidHandleHandlePtr, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u64, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigVoidHandleHandle, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, u64}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigVoidHandlePtr, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, ptr}); err != nil {
		return err
	}

	if err := ffi.PrepareCallInterface(&sigVoidHandlePtrPtr, types.DefaultCall, voidRet,
		[]*types.TypeDescriptor{u64, ptr, ptr}); err != nil {
		return err
	}

	return nil
}
