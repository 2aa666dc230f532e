package vkng

import "unsafe"

// rawHandle reads the value of a vkngwrapper driver handle. Dispatchable handles are pointer
// sized and non-dispatchable handles are 64 bit, so both fit.
func rawHandle[T any](handle T) uint64 {
	switch unsafe.Sizeof(handle) {
	case 8:
		return *(*uint64)(unsafe.Pointer(&handle))
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&handle)))
	}
	return 0
}
