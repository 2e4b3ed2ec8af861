package value

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/leonardinius/esvalue/internal/jserrors"
)

// ObjectKind is the closed set of heap object classes the value model knows about.
type ObjectKind uint8

const (
	ObjectOrdinary ObjectKind = iota
	ObjectFunction
	ObjectBoundFunction
	ObjectArray
	ObjectArguments
	ObjectError
	ObjectBoolean
	ObjectNumber
	ObjectString
	ObjectSymbol
	ObjectBigInt
	ObjectPromise
	ObjectIterator
	ObjectWeakMap
	ObjectWeakRef
	ObjectHost
	ObjectTemporalDuration
	ObjectTemporalInstant
	ObjectTemporalPlainDate
	ObjectTemporalPlainDateTime
	ObjectTemporalPlainMonthDay
	ObjectTemporalPlainTime
	ObjectTemporalPlainYearMonth
	ObjectTemporalZonedDateTime
)

var objectKindNames = [...]string{
	ObjectOrdinary:               "Object",
	ObjectFunction:               "Function",
	ObjectBoundFunction:          "BoundFunction",
	ObjectArray:                  "Array",
	ObjectArguments:              "Arguments",
	ObjectError:                  "Error",
	ObjectBoolean:                "Boolean",
	ObjectNumber:                 "Number",
	ObjectString:                 "String",
	ObjectSymbol:                 "Symbol",
	ObjectBigInt:                 "BigInt",
	ObjectPromise:                "Promise",
	ObjectIterator:               "Iterator",
	ObjectWeakMap:                "WeakMap",
	ObjectWeakRef:                "WeakRef",
	ObjectHost:                   "Host",
	ObjectTemporalDuration:       "Temporal.Duration",
	ObjectTemporalInstant:        "Temporal.Instant",
	ObjectTemporalPlainDate:      "Temporal.PlainDate",
	ObjectTemporalPlainDateTime:  "Temporal.PlainDateTime",
	ObjectTemporalPlainMonthDay:  "Temporal.PlainMonthDay",
	ObjectTemporalPlainTime:      "Temporal.PlainTime",
	ObjectTemporalPlainYearMonth: "Temporal.PlainYearMonth",
	ObjectTemporalZonedDateTime:  "Temporal.ZonedDateTime",
}

// String implements fmt.Stringer.
func (k ObjectKind) String() string {
	if int(k) < len(objectKindNames) {
		return objectKindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

func (k ObjectKind) IsArray() bool { return k == ObjectArray }

// IsTemporal reports whether k is one of the Temporal record kinds.
func (k ObjectKind) IsTemporal() bool {
	return k >= ObjectTemporalDuration && k <= ObjectTemporalZonedDateTime
}

func (k ObjectKind) IsTemporalDuration() bool       { return k == ObjectTemporalDuration }
func (k ObjectKind) IsTemporalInstant() bool        { return k == ObjectTemporalInstant }
func (k ObjectKind) IsTemporalPlainDate() bool      { return k == ObjectTemporalPlainDate }
func (k ObjectKind) IsTemporalPlainDateTime() bool  { return k == ObjectTemporalPlainDateTime }
func (k ObjectKind) IsTemporalPlainMonthDay() bool  { return k == ObjectTemporalPlainMonthDay }
func (k ObjectKind) IsTemporalPlainTime() bool      { return k == ObjectTemporalPlainTime }
func (k ObjectKind) IsTemporalPlainYearMonth() bool { return k == ObjectTemporalPlainYearMonth }
func (k ObjectKind) IsTemporalZonedDateTime() bool  { return k == ObjectTemporalZonedDateTime }

// Object is the contract every heap object fulfils.
// Property keys are String or Symbol values.
type Object interface {
	Kind() ObjectKind
	GetPrototypeOf() (Object, error)
	Get(key Value, receiver Value) (Value, error)
	Set(key Value, v Value, receiver Value) (bool, error)
}

// Callable is implemented by objects with a [[Call]] internal method.
type Callable interface {
	Object
	Call(this Value, args ...Value) (Value, error)
}

// Constructor is implemented by objects with a [[Construct]] internal method.
type Constructor interface {
	Callable
	Construct(args []Value, newTarget Object) (Value, error)
}

// BoundFunction is a callable produced by Function.prototype.bind.
type BoundFunction interface {
	Callable
	BoundTarget() Object
}

// ObjectBase is embedded by concrete heap objects. Its Get and Set are the
// placeholders of an object without own properties.
type ObjectBase struct {
	kind  ObjectKind
	proto Object
}

func NewObjectBase(kind ObjectKind, proto Object) ObjectBase {
	return ObjectBase{kind: kind, proto: proto}
}

func (b *ObjectBase) Kind() ObjectKind {
	return b.kind
}

func (b *ObjectBase) GetPrototypeOf() (Object, error) {
	return b.proto, nil
}

// SetPrototypeOf replaces the prototype link. A nil proto means null.
func (b *ObjectBase) SetPrototypeOf(proto Object) {
	b.proto = proto
}

func (b *ObjectBase) Get(key Value, receiver Value) (Value, error) {
	return Undefined, nil
}

func (b *ObjectBase) Set(key Value, v Value, receiver Value) (bool, error) {
	return false, jserrors.Throw(jserrors.KindNotSupported, "cannot set property '%s' of %s", key, b.kind)
}

var _ Object = (*ObjectBase)(nil)

// Realm is the slice of a realm the value model consults.
type Realm interface {
	// ToObject wraps a primitive into its wrapper object, failing for null and undefined.
	ToObject(v Value) (Object, error)
	// HasOriginalStringIterator reports whether String.prototype[@@iterator] is unmodified.
	HasOriginalStringIterator() bool
	SymbolRegistry() *SymbolRegistry
	// SymbolsAsWeakKeys reports whether non-registered symbols can be held weakly.
	SymbolsAsWeakKeys() bool
	// ErrorValue converts a Go error into the script value it throws.
	ErrorValue(err error) Value
}

// Exception carries a thrown script value through Go error returns.
type Exception struct {
	value Value
}

// Throw returns an error that throws v.
func Throw(v Value) error {
	return pkgerrors.WithStack(&Exception{value: v})
}

func (e *Exception) Value() Value {
	return e.value
}

// Error implements error.
func (e *Exception) Error() string {
	return "Uncaught " + e.value.String()
}

// AsException returns the thrown value wrapped in err, if any.
func AsException(err error) (*Exception, bool) {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

var _ error = (*Exception)(nil)

// ToPropertyKey converts v into a String or Symbol key.
func ToPropertyKey(v Value) (Value, error) {
	p, err := ToPrimitive(v, HintString)
	if err != nil {
		return Empty, err
	}
	if p.IsSymbol() {
		return p, nil
	}
	s, err := ToString(p)
	if err != nil {
		return Empty, err
	}
	return StringOf(s), nil
}

// GetV reads key from v, boxing primitives through the realm. The primitive
// itself stays the receiver.
func GetV(realm Realm, v Value, key Value) (Value, error) {
	if o, ok := v.TryObject(); ok {
		return o.Get(key, v)
	}
	o, err := realm.ToObject(v)
	if err != nil {
		return Empty, err
	}
	return o.Get(key, v)
}

// GetMethod returns the callable stored at key, or nil when the property is
// undefined or null.
func GetMethod(realm Realm, v Value, key Value) (Callable, error) {
	f, err := GetV(realm, v, key)
	if err != nil {
		return nil, err
	}
	if f.IsNullish() {
		return nil, nil
	}
	c, ok := AsCallable(f)
	if !ok {
		return nil, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable,
			"Value returned for property '%s' of object is not a function", key)
	}
	return c, nil
}

// AsCallable returns the callable payload of v.
func AsCallable(v Value) (Callable, bool) {
	o, ok := v.TryObject()
	if !ok {
		return nil, false
	}
	c, ok := o.(Callable)
	return c, ok
}

func IsCallable(v Value) bool {
	_, ok := AsCallable(v)
	return ok
}

func IsConstructor(v Value) bool {
	o, ok := v.TryObject()
	if !ok {
		return false
	}
	_, ok = o.(Constructor)
	return ok
}

func IsArray(v Value) bool {
	o, ok := v.TryObject()
	return ok && o.Kind().IsArray()
}

// Call invokes f with the given this value.
func Call(f Value, this Value, args ...Value) (Value, error) {
	c, ok := AsCallable(f)
	if !ok {
		return Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable, "%s is not a function", f)
	}
	return c.Call(this, args...)
}

// Invoke calls the method stored at key on v.
func Invoke(realm Realm, v Value, key Value, args ...Value) (Value, error) {
	f, err := GetV(realm, v, key)
	if err != nil {
		return Empty, err
	}
	c, ok := AsCallable(f)
	if !ok {
		return Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable, "%s is not a function", key)
	}
	return c.Call(v, args...)
}

// CanBeHeldWeakly reports whether v may be a weak collection key or a weak
// reference target. Registered symbols are never holdable since Symbol.for
// can recreate them.
func CanBeHeldWeakly(realm Realm, v Value) bool {
	switch v.kind {
	case KindObject:
		return true
	case KindSymbol:
		return realm.SymbolsAsWeakKeys() && !v.AsSymbol().IsRegistered()
	}
	return false
}
