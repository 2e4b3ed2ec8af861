package object

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

var (
	keyName    = value.Str("name")
	keyMessage = value.Str("message")
)

// ErrorObject is an instance of one of the native error constructors.
type ErrorObject struct {
	Ordinary
	kind  jserrors.Kind
	cause error
}

// NewError returns an error instance whose prototype matches kind.
func (r *Realm) NewError(kind jserrors.Kind, message string) *ErrorObject {
	e := &ErrorObject{
		Ordinary: *NewOrdinary(value.ObjectError, r.errorPrototype(kind)),
		kind:     kind,
	}
	e.Define(keyMessage, value.Str(message))
	return e
}

// NewErrorFrom converts a Go error into an error instance, keeping err as its cause.
func (r *Realm) NewErrorFrom(err error) *ErrorObject {
	kind, message := jserrors.KindError, err.Error()
	if jsErr, ok := jserrors.As(err); ok {
		kind, message = jsErr.Kind, jsErr.Message
	}
	e := r.NewError(kind, message)
	e.cause = err
	return e
}

func (e *ErrorObject) ErrorKind() jserrors.Kind {
	return e.kind
}

// Cause returns the Go error this instance was created from, if any.
func (e *ErrorObject) Cause() error {
	return e.cause
}

// String implements fmt.Stringer.
func (e *ErrorObject) String() string {
	name, _ := e.Get(keyName, value.ObjectOf(e))
	msg, _ := e.Get(keyMessage, value.ObjectOf(e))
	if msg.IsString() && msg.AsString().Length() == 0 {
		return name.String()
	}
	return name.String() + ": " + msg.String()
}

func (r *Realm) errorPrototype(kind jserrors.Kind) *Ordinary {
	if p, ok := r.errorPrototypes[kind]; ok {
		return p
	}
	return r.errorPrototypes[jserrors.KindError]
}

var errorKinds = []jserrors.Kind{
	jserrors.KindError,
	jserrors.KindTypeError,
	jserrors.KindRangeError,
	jserrors.KindSyntaxError,
	jserrors.KindReferenceError,
	jserrors.KindEvalError,
	jserrors.KindURIError,
	jserrors.KindAggregateError,
	jserrors.KindNotSupported,
	jserrors.KindExecutionCanceled,
}

func installErrorConstructors(r *Realm) {
	base := NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype)
	r.errorPrototypes = make(map[jserrors.Kind]*Ordinary, len(errorKinds))
	for _, kind := range errorKinds {
		proto := base
		if kind != jserrors.KindError {
			proto = NewOrdinary(value.ObjectOrdinary, base)
		}
		proto.Define(keyName, value.Str(kind.String()))
		proto.Define(keyMessage, value.Str(""))
		r.errorPrototypes[kind] = proto

		ctor := r.NewConstructor(kind.String(), NativeFunction1(func(_, msg value.Value) (value.Value, error) {
			return r.constructError(kind, msg)
		}), proto, func(args []value.Value, _ value.Object) (value.Value, error) {
			msg := value.Undefined
			if len(args) > 0 {
				msg = args[0]
			}
			return r.constructError(kind, msg)
		})
		r.Globals.Define(value.Str(kind.String()), value.ObjectOf(ctor))
	}
	base.DefineMethod(r, "toString", NativeFunction0(func(this value.Value) (value.Value, error) {
		o, ok := this.TryObject()
		if !ok {
			return value.Empty, jserrors.TypeError("Error.prototype.toString called on non-object")
		}
		if e, ok := o.(*ErrorObject); ok {
			return value.Str(e.String()), nil
		}
		name, err := o.Get(keyName, this)
		if err != nil {
			return value.Empty, err
		}
		return value.Str(name.String()), nil
	}))
}

func (r *Realm) constructError(kind jserrors.Kind, msg value.Value) (value.Value, error) {
	message := ""
	if !msg.IsUndefined() {
		s, err := value.ToGoString(msg)
		if err != nil {
			return value.Empty, err
		}
		message = s
	}
	return value.ObjectOf(r.NewError(kind, message)), nil
}
