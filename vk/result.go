// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "fmt"

// Result is a VkResult return code.
type Result int32

// Result codes the memory subsystem can observe.
const (
	Success                          Result = 0
	NotReady                         Result = 1
	Timeout                          Result = 2
	ErrorOutOfHostMemory             Result = -1
	ErrorOutOfDeviceMemory           Result = -2
	ErrorInitializationFailed        Result = -3
	ErrorDeviceLost                  Result = -4
	ErrorMemoryMapFailed             Result = -5
	ErrorTooManyObjects              Result = -10
	ErrorInvalidExternalHandle       Result = -1000072003
	ErrorOutOfPoolMemory             Result = -1000069000
	ErrorInvalidOpaqueCaptureAddress Result = -1000257000
)

// String returns the VkResult name for known codes.
func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED"
	case ErrorTooManyObjects:
		return "VK_ERROR_TOO_MANY_OBJECTS"
	case ErrorOutOfPoolMemory:
		return "VK_ERROR_OUT_OF_POOL_MEMORY"
	case ErrorInvalidExternalHandle:
		return "VK_ERROR_INVALID_EXTERNAL_HANDLE"
	case ErrorInvalidOpaqueCaptureAddress:
		return "VK_ERROR_INVALID_OPAQUE_CAPTURE_ADDRESS"
	default:
		return fmt.Sprintf("VkResult(%d)", int32(r))
	}
}

// Err converts a Result into a Go error. Success returns nil.
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return &ResultError{Code: r}
}

// ResultError wraps a failing VkResult as an error value.
type ResultError struct {
	Code Result
}

func (e *ResultError) Error() string {
	return e.Code.String()
}
