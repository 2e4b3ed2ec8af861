package jserrors

import (
	"errors"
	"fmt"

	"github.com/leonardinius/esvalue/internal/token"
)

var (
	ErrRuntimeUndefinedVariable    = errors.New("is not defined")
	ErrRuntimeInvalidUnaryOperand  = errors.New("invalid operand")
	ErrRuntimeMixBigIntAndOther    = errors.New("Cannot mix BigInt and other types, use explicit conversions")
	ErrRuntimeBigIntDivisionByZero = errors.New("Division by zero")
)

func ErrRuntimeUndefinedVariableError(name string) error {
	return fmt.Errorf("%s %w", name, ErrRuntimeUndefinedVariable)
}

func NewRuntimeError(tok *token.Token, cause error) error {
	return &RuntimeError{tok, cause}
}

// RuntimeError attaches a source position to a failure raised while evaluating
// a probe script. The cause is usually an *Error or a thrown script value.
type RuntimeError struct {
	tok   *token.Token
	cause error
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%v\n[line %d] in script", r.cause, r.tok.Line)
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

var _ error = (*RuntimeError)(nil)
var _ unwrapInterface = (*RuntimeError)(nil)
