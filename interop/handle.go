package interop

import "fmt"

// Handle is an OS handle naming shared GPU memory. It is a reference only: closing it never
// frees the memory behind it.
type Handle uintptr

// InvalidHandle is the null handle returned by failed operations
const InvalidHandle Handle = 0

func (h Handle) Valid() bool {
	return h != InvalidHandle
}

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}
