package object

import (
	"fmt"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// Function is a built-in function object backed by a Native.
type Function struct {
	Ordinary
	name      string
	native    Native
	construct func(args []value.Value, newTarget value.Object) (value.Value, error)
}

// NewFunction returns a callable whose prototype is Function.prototype.
func (r *Realm) NewFunction(name string, fn Native) *Function {
	f := &Function{
		Ordinary: *NewOrdinary(value.ObjectFunction, r.FunctionPrototype),
		name:     name,
		native:   fn,
	}
	f.Define(value.Str("name"), value.Str(name))
	length := 0
	if !fn.Arity().IsVarArgs() {
		length = int(fn.Arity())
	}
	f.Define(value.Str("length"), value.Int(int64(length)))
	return f
}

// NewConstructor returns a function that can also be used with new. Its
// prototype property is proto, and proto.constructor points back at it.
func (r *Realm) NewConstructor(name string, fn Native, proto *Ordinary,
	construct func(args []value.Value, newTarget value.Object) (value.Value, error)) *ConstructorFunction {
	c := &ConstructorFunction{Function: r.NewFunction(name, fn)}
	c.construct = construct
	if proto != nil {
		c.Define(value.Str("prototype"), value.ObjectOf(proto))
		proto.Define(value.Str("constructor"), value.ObjectOf(c))
	}
	return c
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Arity() Arity {
	return f.native.Arity()
}

// Call implements value.Callable.
func (f *Function) Call(this value.Value, args ...value.Value) (value.Value, error) {
	return f.native.Invoke(this, padArguments(f.native.Arity(), args))
}

// String implements fmt.Stringer.
func (f *Function) String() string {
	return nativeName(f.name, f.native.Arity())
}

// GoString implements fmt.GoStringer.
func (f *Function) GoString() string {
	return f.String()
}

// ConstructorFunction is a Function with a [[Construct]] internal method.
type ConstructorFunction struct {
	*Function
}

// Construct implements value.Constructor.
func (c *ConstructorFunction) Construct(args []value.Value, newTarget value.Object) (value.Value, error) {
	if newTarget == nil {
		newTarget = c
	}
	return c.construct(padArguments(c.native.Arity(), args), newTarget)
}

// boundFunction is the result of Function.prototype.bind.
type boundFunction struct {
	Ordinary
	target    value.Callable
	boundThis value.Value
	boundArgs []value.Value
}

// Bind implements Function.prototype.bind for target.
func (r *Realm) Bind(target value.Callable, this value.Value, args ...value.Value) value.BoundFunction {
	b := &boundFunction{
		Ordinary:  *NewOrdinary(value.ObjectBoundFunction, r.FunctionPrototype),
		target:    target,
		boundThis: this,
		boundArgs: args,
	}
	name := "bound"
	if f, ok := target.(*Function); ok {
		name = "bound " + f.name
	}
	b.Define(value.Str("name"), value.Str(name))
	return b
}

// Call implements value.Callable.
func (b *boundFunction) Call(_ value.Value, args ...value.Value) (value.Value, error) {
	all := make([]value.Value, 0, len(b.boundArgs)+len(args))
	all = append(all, b.boundArgs...)
	all = append(all, args...)
	return b.target.Call(b.boundThis, all...)
}

// BoundTarget implements value.BoundFunction.
func (b *boundFunction) BoundTarget() value.Object {
	return b.target
}

// String implements fmt.Stringer.
func (b *boundFunction) String() string {
	return fmt.Sprintf("<bound %v>", b.target)
}

func installFunctionPrototype(r *Realm) {
	proto := r.FunctionPrototype
	proto.DefineMethod(r, "call", NativeFunctionVarArgs(func(this value.Value, args ...value.Value) (value.Value, error) {
		thisArg := value.Undefined
		if len(args) > 0 {
			thisArg, args = args[0], args[1:]
		}
		return value.Call(this, thisArg, args...)
	}))
	proto.DefineMethod(r, "bind", NativeFunctionVarArgs(func(this value.Value, args ...value.Value) (value.Value, error) {
		target, ok := value.AsCallable(this)
		if !ok {
			return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable,
				"Bind must be called on a function")
		}
		thisArg := value.Undefined
		if len(args) > 0 {
			thisArg, args = args[0], args[1:]
		}
		return value.ObjectOf(r.Bind(target, thisArg, args...)), nil
	}))
	proto.DefineSymbolMethod(r, value.SymbolHasInstance, NativeFunction1(func(this, v value.Value) (value.Value, error) {
		found, err := value.OrdinaryHasInstance(this, v)
		return value.Bool(found), err
	}))
}

var (
	_ value.Callable      = (*Function)(nil)
	_ value.Constructor   = (*ConstructorFunction)(nil)
	_ value.BoundFunction = (*boundFunction)(nil)
	_ fmt.Stringer        = (*Function)(nil)
	_ fmt.GoStringer      = (*Function)(nil)
)
