package stamper

import (
	"errors"
	"fmt"
)

// IOError indicates a failure to read the input or write the output.
type IOError struct {
	// Op is the failed operation: "read", "create", "write" or "rename"
	Op string

	// Path is the file involved, empty for in-memory writers
	Path string

	Err error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// VerificationError indicates a stamped image failed its own verification.
// This means the header builder produced an inconsistent image.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("stamped image failed verification: %v", e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// IsIOError returns true if err is or wraps an IOError.
func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
