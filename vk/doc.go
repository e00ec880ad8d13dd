// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure Go Vulkan bindings for the memory subsystem,
// using goffi for FFI calls. Only the entry points the allocator needs are
// bound: device memory, host mapping, memory-requirement queries, and the
// buffer/image lifecycle used when binding resources to allocations.
//
// # goffi Calling Convention
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, NOT the values themselves. This applies to ALL argument types,
// including pointers.
//
// For scalar types (uint32, uint64, etc.):
//
//	var value uint64 = 42
//	args[i] = unsafe.Pointer(&value)  // pointer to value storage
//
// For pointer types (const char*, void*, etc.):
//
//	ptr := unsafe.Pointer(&data[0])   // this IS the pointer value
//	args[i] = unsafe.Pointer(&ptr)    // pointer TO the pointer
//
// Passing &data[0] directly makes goffi interpret the data bytes as a
// memory address and crash.
//
// # Function Loading
//
// Functions are loaded in two stages:
//
//  1. LoadInstance(instance): vkGetPhysicalDeviceMemoryProperties and
//     friends, resolved through vkGetInstanceProcAddr.
//  2. LoadDevice(device): memory, buffer, and image functions, resolved
//     through vkGetDeviceProcAddr.
//
// Some drivers (Intel Iris Xe) return NULL from
// vkGetInstanceProcAddr(NULL, "vkGetDeviceProcAddr"); call
// SetDeviceProcAddr(instance) after creating the instance to work around it.
package vk
