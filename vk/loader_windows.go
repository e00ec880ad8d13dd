// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package vk

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// vulkanLibraryName resolves the Vulkan runtime on Windows.
//
// The DLL is probed with a system-directory-restricted search first so a
// vulkan-1.dll sitting in the process working directory cannot shadow the
// runtime installed by the driver.
func vulkanLibraryName() (string, error) {
	const name = "vulkan-1.dll"

	_, err := windows.LoadLibraryEx(name, 0, windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return "", fmt.Errorf("vulkan runtime %s not found in system directory: %w", name, err)
	}
	// goffi reloads by name; the probe handle stays loaded to pin the module
	// identity, since Windows resolves a bare module name to an already
	// loaded module of that name.

	return name, nil
}
