package scene

import "fmt"

// ErrKind classifies the failure cause of a scene or codec operation.
type ErrKind int

const (
	// ErrIO indicates a failure of the underlying I/O descriptor
	// (open/read/write/seek).
	ErrIO ErrKind = iota
	// ErrFormat indicates the byte stream does not conform to the
	// grammar or layout expected by a codec.
	ErrFormat
	// ErrUnsupported indicates a well-formed file using a feature this
	// library deliberately does not implement.
	ErrUnsupported
	// ErrResource indicates memory or handle exhaustion.
	ErrResource
	// ErrIntegrity indicates a loaded scene violates a data-model
	// invariant (out-of-range index, mismatched attribute lengths).
	ErrIntegrity
)

func (k ErrKind) String() string {

	switch k {
	case ErrIO:
		return "io"
	case ErrFormat:
		return "format"
	case ErrUnsupported:
		return "unsupported"
	case ErrResource:
		return "resource"
	case ErrIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// Error is the error type returned by scene and codec operations. It
// carries a Kind so callers can classify failures with errors.As/errors.Is
// without parsing message text.
type Error struct {
	Kind ErrKind
	Op   string // operation that failed, e.g. "format/obj: load"
	Err  error  // wrapped underlying error, may be nil
}

func (e *Error) Error() string {

	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the wrapped error so errors.Is/errors.As can traverse it.
func (e *Error) Unwrap() error {

	return e.Err
}

// NewError builds an *Error wrapping err (which may be nil) with the given
// kind and operation tag.
func NewError(kind ErrKind, op string, err error) *Error {

	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, scene.ErrKind(scene.ErrFormat)) style checks are not
// possible directly — callers instead do:
//
//	var serr *scene.Error
//	if errors.As(err, &serr) && serr.Kind == scene.ErrFormat { ... }
func (e *Error) Is(target error) bool {

	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
