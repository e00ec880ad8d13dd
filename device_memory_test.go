package vkalloc

import (
	"errors"
	"sync"
	"testing"
)

func TestDeviceMemoryMapIsReferenceCounted(t *testing.T) {
	device := newFakeDevice()
	handle, err := device.AllocateMemory(64, 0, DedicatedResource{})
	if err != nil {
		t.Fatal(err)
	}
	memory := NewDeviceMemory(handle)

	ptr1, err := memory.Map(device)
	if err != nil {
		t.Fatal(err)
	}
	ptr2, err := memory.Map(device)
	if err != nil {
		t.Fatal(err)
	}

	if ptr1 != ptr2 {
		t.Fatalf("second Map returned %#x, want %#x", ptr2, ptr1)
	}
	if device.mapCalls != 1 {
		t.Fatalf("API map called %d times, want 1", device.mapCalls)
	}

	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}
	if device.unmapCalls != 0 {
		t.Fatal("API unmap must not fire while a mapping is still live")
	}

	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}
	if device.unmapCalls != 1 {
		t.Fatalf("API unmap called %d times, want 1", device.unmapCalls)
	}
}

func TestDeviceMemoryUnmapWithoutMapFails(t *testing.T) {
	device := newFakeDevice()
	handle, err := device.AllocateMemory(16, 0, DedicatedResource{})
	if err != nil {
		t.Fatal(err)
	}
	memory := NewDeviceMemory(handle)

	if err := memory.Unmap(device); !errors.Is(err, ErrNotMapped) {
		t.Fatalf("Unmap on unmapped memory = %v, want ErrNotMapped", err)
	}
}

func TestDeviceMemoryRemapAfterFullUnmap(t *testing.T) {
	device := newFakeDevice()
	handle, err := device.AllocateMemory(32, 0, DedicatedResource{})
	if err != nil {
		t.Fatal(err)
	}
	memory := NewDeviceMemory(handle)

	if _, err := memory.Map(device); err != nil {
		t.Fatal(err)
	}
	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}
	if _, err := memory.Map(device); err != nil {
		t.Fatal(err)
	}
	if device.mapCalls != 2 {
		t.Fatalf("API map called %d times after remap, want 2", device.mapCalls)
	}
	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceMemoryMapWriteReadRoundTrip(t *testing.T) {
	device := newFakeDevice()
	handle, err := device.AllocateMemory(8, 0, DedicatedResource{})
	if err != nil {
		t.Fatal(err)
	}
	memory := NewDeviceMemory(handle)

	ptr, err := memory.Map(device)
	if err != nil {
		t.Fatal(err)
	}
	// Write through the backing slice the fake maps to.
	backing := device.backing[handle]
	copy(backing, []byte{1, 2, 3, 4})
	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}

	ptr2, err := memory.Map(device)
	if err != nil {
		t.Fatal(err)
	}
	if ptr2 != ptr {
		// The fake always returns the same base; a real driver may not,
		// but within one mapping the pointer must be stable.
		t.Logf("remap moved the mapping from %#x to %#x", ptr, ptr2)
	}
	got := device.backing[handle][:4]
	for i, want := range []byte{1, 2, 3, 4} {
		if got[i] != want {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want)
		}
	}
	if err := memory.Unmap(device); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceMemoryConcurrentMapUnmap(t *testing.T) {
	device := newFakeDevice()
	handle, err := device.AllocateMemory(128, 0, DedicatedResource{})
	if err != nil {
		t.Fatal(err)
	}
	memory := NewDeviceMemory(handle)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := memory.Map(device); err != nil {
					t.Error(err)
					return
				}
				if err := memory.Unmap(device); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if memory.mapCount != 0 {
		t.Fatalf("map count = %d after balanced use, want 0", memory.mapCount)
	}
	if device.mapCalls != device.unmapCalls {
		t.Fatalf("API map/unmap unbalanced: %d vs %d", device.mapCalls, device.unmapCalls)
	}
}
