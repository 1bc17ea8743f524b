package fsbl

import (
	"errors"
	"fmt"
)

// AlreadyHeadedError indicates the input already starts with the "STM2" magic.
// Re-stamping is refused to avoid wrapping an image twice.
type AlreadyHeadedError struct{}

func (e *AlreadyHeadedError) Error() string {
	return fmt.Sprintf("header already present: input starts with magic %q", Magic[:])
}

// InvalidFormatError indicates a format selector other than mp1 or mp2.
type InvalidFormatError struct {
	Value string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q: valid formats are mp1, mp2", e.Value)
}

// MissingMagicError indicates an image that does not start with the magic marker.
type MissingMagicError struct {
	Got []byte
}

func (e *MissingMagicError) Error() string {
	return fmt.Sprintf("no boot header: expected magic %q, got % X", Magic[:], e.Got)
}

// UnsupportedVersionError indicates a header version word that matches neither variant.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported header version 0x%08X", e.Version)
}

// PayloadLengthError indicates the header's payload length disagrees with the image.
type PayloadLengthError struct {
	Expected uint32
	Actual   int
}

func (e *PayloadLengthError) Error() string {
	return fmt.Sprintf("payload length mismatch: header declares %d bytes, image carries %d",
		e.Expected, e.Actual)
}

// ChecksumMismatchError indicates the header checksum does not match the payload.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: header has 0x%08X, payload sums to 0x%08X",
		e.Expected, e.Actual)
}

// IsAlreadyHeaded returns true if err is or wraps an AlreadyHeadedError.
func IsAlreadyHeaded(err error) bool {
	var target *AlreadyHeadedError
	return errors.As(err, &target)
}

// IsInvalidFormat returns true if err is or wraps an InvalidFormatError.
func IsInvalidFormat(err error) bool {
	var target *InvalidFormatError
	return errors.As(err, &target)
}
