//go:build !windows

package interop

// CloseHandle releases the OS reference held by h. Closing an invalid handle does nothing.
func CloseHandle(h Handle) error {
	if !h.Valid() {
		return nil
	}

	return ErrUnsupportedPlatform
}
