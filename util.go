package vkdev

import "unsafe"

// sliceUint32 reinterprets SPIR-V bytes as the uint32 words Vulkan expects.
func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
