package ecgamal

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by ecgamal and its subpackages matches
// exactly one of these with errors.Is.
var (
	// ErrConfiguration indicates an unsupported curve, an unusable or closed
	// Library, mismatched curves, a missing private key or a table that is too
	// small for the requested operation.
	ErrConfiguration = errors.New("ecgamal: configuration error")

	// ErrCapacity indicates a value outside the range a table or CRT
	// parameter set can represent.
	ErrCapacity = errors.New("ecgamal: capacity exceeded")

	// ErrBuffer indicates a destination buffer that is too small or an input
	// whose length or framing is wrong.
	ErrBuffer = errors.New("ecgamal: buffer error")

	// ErrValidation indicates well-framed input carrying an invalid point or
	// scalar.
	ErrValidation = errors.New("ecgamal: validation error")

	// ErrCRTConsistency indicates CRT parameters or residues that do not
	// recombine to a valid plaintext.
	ErrCRTConsistency = errors.New("ecgamal: crt consistency error")

	// ErrLibraryClosed is returned by Close on an already closed Library and
	// wrapped by operations attempted after Close.
	ErrLibraryClosed = errors.New("ecgamal: library closed")
)

// Error records the operation that failed, its kind and the underlying cause.
type Error struct {
	Op   string // Operation that failed, e.g. "bsgs.Lookup"
	Kind error  // One of the package-level kinds
	Err  error  // Underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError wraps err as an operation failure of the given kind. A nil err
// yields an error carrying the kind alone. An err that is already an *Error of
// the same kind is returned unchanged.
func NewError(op string, kind, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == kind {
		return err
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf is NewError with a formatted cause.
func Errorf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}
