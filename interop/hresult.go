package interop

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// HRESULT is the status code returned by COM methods. Negative values are failures.
type HRESULT uint32

func (hr HRESULT) Failed() bool {
	return int32(hr) < 0
}

func (hr HRESULT) String() string {
	return fmt.Sprintf("%#08x", uint32(hr))
}

// ErrorCode is a failed COM call and the status it returned
type ErrorCode struct {
	Name string
	Code HRESULT
}

func (e ErrorCode) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Code)
}

// HRESULTError builds the error for a COM call that failed. The result matches
// ErrNativeCallFailure, and errors.As recovers the ErrorCode.
func HRESULTError(operation string, hr HRESULT) error {
	return cerrors.Mark(ErrorCode{Name: operation, Code: hr}, ErrNativeCallFailure)
}
