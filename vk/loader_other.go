// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package vk

import "runtime"

// vulkanLibraryName returns the platform-specific Vulkan library name.
func vulkanLibraryName() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "libvulkan.dylib", nil // MoltenVK
	default: // linux, freebsd, etc.
		return "libvulkan.so.1", nil
	}
}
