package nockrpc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the query path. Store and decode failures are
// wrapped with %w so callers classify them via errors.Is.
var (
	// ErrTruncated signals a stored record that ends mid-entry.
	ErrTruncated = errors.New("record truncated")

	// ErrWrongFieldCount signals a stored record with fewer entries
	// than the block layout requires.
	ErrWrongFieldCount = errors.New("wrong field count")

	// ErrFieldTooLarge signals a length prefix above the per-field
	// ceiling. The claimed payload is never read.
	ErrFieldTooLarge = errors.New("field exceeds size ceiling")

	// ErrDeserializeFailed signals payload bytes the noun codec
	// rejects.
	ErrDeserializeFailed = errors.New("field deserialization failed")

	// ErrEncodeFailed signals a decoded field that cannot be
	// re-serialized for the response.
	ErrEncodeFailed = errors.New("field re-serialization failed")

	// ErrStoreUnavailable signals that the underlying store could not
	// be read. The process keeps serving; only the request fails.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidKey signals a digest string that cannot be
	// interpreted as key bytes.
	ErrInvalidKey = errors.New("invalid key")
)

// FieldError wraps a decode or render failure with the record slot it
// occurred in.
type FieldError struct {
	Slot int
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d: %v", e.Slot, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError creates a new FieldError.
func NewFieldError(slot int, err error) *FieldError {
	return &FieldError{Slot: slot, Err: err}
}

// IsInvalidData reports whether an error means the stored record
// itself is malformed, as opposed to the store or the request.
func IsInvalidData(err error) bool {
	return errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrWrongFieldCount) ||
		errors.Is(err, ErrFieldTooLarge) ||
		errors.Is(err, ErrDeserializeFailed)
}

// IsInvalidArgument reports whether an error is the caller's fault.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}
