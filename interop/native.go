package interop

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
	"github.com/vkngwrapper/core/v2/core1_0"
)

// NativeCallError builds the error reported for a Vulkan call that failed. The result is marked
// with ErrNativeCallFailure and keeps the operation name and VkResult in its message. A success
// result with a nil error is treated as a call that produced a null handle.
func NativeCallError(operation string, res common.VkResult, err error) error {
	if err == nil {
		if res == core1_0.VKSuccess {
			return cerrors.Mark(cerrors.Newf("%s returned a null handle", operation), ErrNativeCallFailure)
		}
		err = res.ToError()
	}

	return cerrors.Mark(cerrors.Wrapf(err, "%s failed with result %v", operation, res), ErrNativeCallFailure)
}

// Unsupported wraps a negotiation failure so it matches ErrFormatOrHandleTypeUnsupported
func Unsupported(format string, args ...any) error {
	return cerrors.Mark(cerrors.Newf(format, args...), ErrFormatOrHandleTypeUnsupported)
}

// Mark tags err with the given sentinel, adding a message when one is supplied
func Mark(err error, reference error, format string, args ...any) error {
	if format != "" {
		err = cerrors.Wrapf(err, format, args...)
	}
	return cerrors.Mark(err, reference)
}
