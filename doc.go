// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vkalloc is a composable Vulkan GPU memory allocator.
//
// Vulkan can only allocate whole VkDeviceMemory objects, forbids mapping the
// same object twice, and caps the number of live objects. vkalloc turns an
// application's many small, aligned, type-constrained requests into a small
// number of large device allocations and subdivides them.
//
// # Architecture
//
// Every layer implements the same two-method Allocator interface, so any
// decorator can wrap any leaf:
//
//	┌─────────────────────────────────────────────────────────┐
//	│                   TraceAllocator                        │
//	│        (metrics per memory type, teardown report)       │
//	├─────────────────────────────────────────────────────────┤
//	│                 DedicatedAllocator                      │
//	│   (routes prefers/requires-dedicated straight down)     │
//	├─────────────────────────────────────────────────────────┤
//	│           SizedAllocator → PoolAllocator                │
//	│   (three pool tiers with escalating chunk sizes)        │
//	├─────────────────────────────────────────────────────────┤
//	│       MemoryTypePoolAllocator → PageSuballocator        │
//	│    (per-type chunk pools over first-fit page arenas)    │
//	├─────────────────────────────────────────────────────────┤
//	│                  DeviceAllocator                        │
//	│        (vkAllocateMemory / vkFreeMemory leaf)           │
//	└─────────────────────────────────────────────────────────┘
//
// NewSystemAllocator wires the recommended stack: requests under 64 KiB land
// in a 64 KiB/1 KiB pool, medium requests in a 4 MiB/64 KiB pool, large
// requests in a 512 MiB/4 MiB pool, and chunk-sized or dedicated requests go
// straight to the device.
//
// # Mapping
//
// Several allocations can share one VkDeviceMemory object, and Vulkan forbids
// double-mapping it. DeviceMemory reference-counts Map/Unmap so the API level
// map happens exactly on the 0→1 transition and unmap on 1→0.
//
// # Thread Safety
//
// Individual allocators are not thread-safe. Wrap an allocator with
// IntoShared to serialize Allocate/Free behind a mutex; the default stack
// shares its terminal device allocator that way. DeviceMemory map counting
// is always safe for concurrent use.
package vkalloc
