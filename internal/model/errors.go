package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDependent means a representation cannot be resolved until the
	// enclosing generic context is bound. It is not a failure.
	ErrDependent = errors.New("representation depends on an unbound formal")
	// ErrNotFinalized means the definition's body is not available yet.
	ErrNotFinalized = errors.New("definition is not finalized")

	ErrArity                 = errors.New("arity mismatch")
	ErrMissingImplementation = errors.New("missing implementation")
	ErrRepresentationCycle   = errors.New("representation cycle")
	ErrSealed                = errors.New("formal list is sealed")
)

// InternalErrorKind classifies internal-consistency violations.
type InternalErrorKind uint8

const (
	InternalArity InternalErrorKind = iota + 1
	InternalMissingImplementation
	InternalRepresentationCycle
	InternalSealed
)

func (k InternalErrorKind) sentinel() error {
	switch k {
	case InternalArity:
		return ErrArity
	case InternalMissingImplementation:
		return ErrMissingImplementation
	case InternalRepresentationCycle:
		return ErrRepresentationCycle
	case InternalSealed:
		return ErrSealed
	default:
		return nil
	}
}

// InternalError reports a caller defect detected by the engine. State is
// left unchanged when one is returned.
type InternalError struct {
	Kind  InternalErrorKind
	Op    string
	Model string
	Want  int // InternalArity
	Got   int // InternalArity
}

func (e *InternalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case InternalArity:
		return fmt.Sprintf("internal error: %s %s: %v: want %d arguments, got %d", e.Op, e.Model, ErrArity, e.Want, e.Got)
	case InternalMissingImplementation, InternalRepresentationCycle, InternalSealed:
		return fmt.Sprintf("internal error: %s %s: %v", e.Op, e.Model, e.Kind.sentinel())
	default:
		return fmt.Sprintf("internal error: %s %s: kind=%d", e.Op, e.Model, e.Kind)
	}
}

func (e *InternalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind.sentinel()
}

// IsInternal reports whether err carries an internal-consistency violation.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
