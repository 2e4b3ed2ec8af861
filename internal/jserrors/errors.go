package jserrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the script-observable error constructor name of a failure.
type Kind int

const (
	KindError Kind = iota
	KindTypeError
	KindRangeError
	KindSyntaxError
	KindReferenceError
	KindEvalError
	KindURIError
	KindAggregateError
	// KindNotSupported marks placeholder operations of the base heap object.
	KindNotSupported
	// KindExecutionCanceled marks a host computation that was canceled before settling.
	KindExecutionCanceled
)

var kindNames = [...]string{
	KindError:             "Error",
	KindTypeError:         "TypeError",
	KindRangeError:        "RangeError",
	KindSyntaxError:       "SyntaxError",
	KindReferenceError:    "ReferenceError",
	KindEvalError:         "EvalError",
	KindURIError:          "URIError",
	KindAggregateError:    "AggregateError",
	KindNotSupported:      "NotSupportedError",
	KindExecutionCanceled: "ExecutionCanceledError",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

var (
	ErrNotAnObject             = errors.New("value is not an object")
	ErrNotCallable             = errors.New("value is not a function")
	ErrNotConstructor          = errors.New("value is not a constructor")
	ErrNotIterable             = errors.New("value is not iterable")
	ErrIteratorResultNotObject = errors.New("iterator result is not an object")
	ErrInvalidWeakKey          = errors.New("invalid value used as weak key")
	ErrInvalidWeakRefTarget    = errors.New("invalid value used as weak reference target")
	ErrCannotConvertPrimitive  = errors.New("cannot convert object to primitive value")
	ErrExecutionCanceled       = errors.New("execution canceled")
)

// Error is a typed failure that surfaces to script code as an instance of Kind.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Throw is the single fail entry point of the value model.
// The returned error carries a stack trace of the call site.
func Throw(kind Kind, format string, args ...any) error {
	return pkgerrors.WithStack(&Error{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// ThrowCause is Throw with a sentinel cause that errors.Is can match.
func ThrowCause(kind Kind, cause error, format string, args ...any) error {
	return pkgerrors.WithStack(&Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause})
}

// TypeError is shorthand for Throw(KindTypeError, ...).
func TypeError(format string, args ...any) error {
	return Throw(KindTypeError, format, args...)
}

// RangeError is shorthand for Throw(KindRangeError, ...).
func RangeError(format string, args ...any) error {
	return Throw(KindRangeError, format, args...)
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// As returns the typed error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var jsErr *Error
	if errors.As(err, &jsErr) {
		return jsErr, true
	}
	return nil, false
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	jsErr, ok := As(err)
	return ok && jsErr.Kind == kind
}

var (
	_ error           = (*Error)(nil)
	_ unwrapInterface = (*Error)(nil)
	_ fmt.Stringer    = Kind(0)
)
