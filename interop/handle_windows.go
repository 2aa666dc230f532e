//go:build windows

package interop

import (
	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// CloseHandle releases the OS reference held by h. Closing an invalid handle does nothing.
func CloseHandle(h Handle) error {
	if !h.Valid() {
		return nil
	}

	err := windows.CloseHandle(windows.Handle(h))
	if err != nil {
		return cerrors.Mark(cerrors.Wrapf(err, "CloseHandle(%s)", h), ErrNativeCallFailure)
	}
	return nil
}
