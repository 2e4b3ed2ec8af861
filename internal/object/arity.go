package object

import (
	"fmt"
	"strconv"

	"github.com/leonardinius/esvalue/internal/value"
)

type Arity int

const ArityVarArgs = Arity(-1)

func (a Arity) IsVarArgs() bool {
	return a == ArityVarArgs
}

func (a Arity) String() string {
	if a.IsVarArgs() {
		return "[...]"
	}
	return strconv.Itoa(int(a))
}

// Native is the Go side of a built-in function.
type Native interface {
	Arity() Arity
	Invoke(this value.Value, arguments []value.Value) (value.Value, error)
}

// ========  ========  ========  ========  ========  ========  ========

type NativeFunctionVarArgs func(this value.Value, args ...value.Value) (value.Value, error)
type NativeFunction0 func(this value.Value) (value.Value, error)
type NativeFunction1 func(this value.Value, arg1 value.Value) (value.Value, error)
type NativeFunction2 func(this value.Value, arg1, arg2 value.Value) (value.Value, error)
type NativeFunction3 func(this value.Value, arg1, arg2, arg3 value.Value) (value.Value, error)

// Arity implements Native.
func (n NativeFunctionVarArgs) Arity() Arity {
	return ArityVarArgs
}

// Invoke implements Native.
func (n NativeFunctionVarArgs) Invoke(this value.Value, arguments []value.Value) (value.Value, error) {
	return n(this, arguments...)
}

// Arity implements Native.
func (n NativeFunction0) Arity() Arity {
	return 0
}

// Invoke implements Native.
func (n NativeFunction0) Invoke(this value.Value, arguments []value.Value) (value.Value, error) {
	return n(this)
}

// Arity implements Native.
func (n NativeFunction1) Arity() Arity {
	return 1
}

// Invoke implements Native.
func (n NativeFunction1) Invoke(this value.Value, arguments []value.Value) (value.Value, error) {
	return n(this, arguments[0])
}

// Arity implements Native.
func (n NativeFunction2) Arity() Arity {
	return 2
}

// Invoke implements Native.
func (n NativeFunction2) Invoke(this value.Value, arguments []value.Value) (value.Value, error) {
	return n(this, arguments[0], arguments[1])
}

// Arity implements Native.
func (n NativeFunction3) Arity() Arity {
	return 3
}

// Invoke implements Native.
func (n NativeFunction3) Invoke(this value.Value, arguments []value.Value) (value.Value, error) {
	return n(this, arguments[0], arguments[1], arguments[2])
}

// padArguments fills missing trailing arguments with undefined, the way a
// script function call does.
func padArguments(arity Arity, arguments []value.Value) []value.Value {
	if arity.IsVarArgs() || len(arguments) >= int(arity) {
		return arguments
	}
	padded := make([]value.Value, arity)
	copy(padded, arguments)
	for i := len(arguments); i < len(padded); i++ {
		padded[i] = value.Undefined
	}
	return padded
}

func nativeName(name string, arity Arity) string {
	return fmt.Sprintf("<native fn %s/%s>", name, arity)
}

var (
	_ Native = (NativeFunctionVarArgs)(nil)
	_ Native = (NativeFunction0)(nil)
	_ Native = (NativeFunction1)(nil)
	_ Native = (NativeFunction2)(nil)
	_ Native = (NativeFunction3)(nil)
)
