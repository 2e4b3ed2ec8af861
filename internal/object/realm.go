package object

import (
	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// Realm owns the intrinsic objects and the global object.
type Realm struct {
	log               *logrus.Entry
	symbols           *value.SymbolRegistry
	symbolsAsWeakKeys bool

	Globals *Ordinary

	ObjectPrototype         *Ordinary
	FunctionPrototype       *Ordinary
	ArrayPrototype          *Ordinary
	BooleanPrototype        *Ordinary
	NumberPrototype         *Ordinary
	StringPrototype         *Ordinary
	SymbolPrototype         *Ordinary
	BigIntPrototype         *Ordinary
	IteratorPrototype       *Ordinary
	StringIteratorPrototype *Ordinary
	ArrayIteratorPrototype  *Ordinary
	PromisePrototype        *Ordinary
	WeakMapPrototype        *Ordinary
	WeakRefPrototype        *Ordinary

	errorPrototypes        map[jserrors.Kind]*Ordinary
	originalStringIterator *Function
}

func NewRealm(options ...RealmOption) *Realm {
	opts := newRealmOpts(options...)
	r := &Realm{
		log:               opts.log,
		symbols:           opts.registry,
		symbolsAsWeakKeys: opts.symbolsAsWeakKeys,
	}

	r.ObjectPrototype = NewOrdinary(value.ObjectOrdinary, nil)
	r.FunctionPrototype = NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype)
	r.Globals = NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype)
	newProto := func() *Ordinary { return NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype) }
	r.ArrayPrototype = newProto()
	r.BooleanPrototype = newProto()
	r.NumberPrototype = newProto()
	r.StringPrototype = newProto()
	r.SymbolPrototype = newProto()
	r.BigIntPrototype = newProto()
	r.IteratorPrototype = newProto()
	r.PromisePrototype = newProto()
	r.WeakMapPrototype = newProto()
	r.WeakRefPrototype = newProto()
	r.StringIteratorPrototype = NewOrdinary(value.ObjectOrdinary, r.IteratorPrototype)
	r.ArrayIteratorPrototype = NewOrdinary(value.ObjectOrdinary, r.IteratorPrototype)

	installObjectPrototype(r)
	installFunctionPrototype(r)
	installArrayPrototype(r)
	installWrapperPrototypes(r)
	installIteratorPrototypes(r)
	installErrorConstructors(r)
	installGlobals(r)

	r.log.WithField("symbols_as_weak_keys", r.symbolsAsWeakKeys).Debug("realm initialized")
	return r
}

// ToObject implements value.Realm.
func (r *Realm) ToObject(v value.Value) (value.Object, error) {
	switch v.Kind() {
	case value.KindObject:
		return v.AsObject(), nil
	case value.KindUndefined, value.KindNull, value.KindEmpty:
		return nil, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotAnObject,
			"Cannot convert undefined or null to object")
	}
	return r.newWrapper(v), nil
}

// HasOriginalStringIterator implements value.Realm.
func (r *Realm) HasOriginalStringIterator() bool {
	current, ok := r.StringPrototype.GetOwn(value.SymbolOf(value.SymbolIterator))
	if !ok || !current.IsObject() {
		return false
	}
	return current.AsObject() == value.Object(r.originalStringIterator)
}

// SymbolRegistry implements value.Realm.
func (r *Realm) SymbolRegistry() *value.SymbolRegistry {
	return r.symbols
}

// SymbolsAsWeakKeys implements value.Realm.
func (r *Realm) SymbolsAsWeakKeys() bool {
	return r.symbolsAsWeakKeys
}

// ErrorValue implements value.Realm. Thrown script values pass through; any
// other error becomes an error instance.
func (r *Realm) ErrorValue(err error) value.Value {
	if ex, ok := value.AsException(err); ok {
		return ex.Value()
	}
	return value.ObjectOf(r.NewErrorFrom(err))
}

// NewObject returns an empty ordinary object inheriting from Object.prototype.
func (r *Realm) NewObject() *Ordinary {
	return NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype)
}

func (r *Realm) Logger() *logrus.Entry {
	return r.log
}

func installObjectPrototype(r *Realm) {
	proto := r.ObjectPrototype
	proto.DefineMethod(r, "toString", NativeFunction0(func(this value.Value) (value.Value, error) {
		switch {
		case this.IsUndefined():
			return value.Str("[object Undefined]"), nil
		case this.IsNull():
			return value.Str("[object Null]"), nil
		}
		o, err := r.ToObject(this)
		if err != nil {
			return value.Empty, err
		}
		tag, err := o.Get(value.SymbolOf(value.SymbolToStringTag), this)
		if err != nil {
			return value.Empty, err
		}
		if tag.IsString() {
			return value.Str("[object " + tag.String() + "]"), nil
		}
		builtinTag := "Object"
		switch k := o.Kind(); k {
		case value.ObjectArray, value.ObjectFunction, value.ObjectError, value.ObjectBoolean,
			value.ObjectNumber, value.ObjectString, value.ObjectArguments:
			builtinTag = k.String()
		case value.ObjectBoundFunction:
			builtinTag = "Function"
		}
		return value.Str("[object " + builtinTag + "]"), nil
	}))
	proto.DefineMethod(r, "valueOf", NativeFunction0(func(this value.Value) (value.Value, error) {
		o, err := r.ToObject(this)
		if err != nil {
			return value.Empty, err
		}
		return value.ObjectOf(o), nil
	}))
}

func installGlobals(r *Realm) {
	objectCtor := r.NewConstructor("Object", NativeFunction1(func(_, v value.Value) (value.Value, error) {
		return r.constructObject(v)
	}), r.ObjectPrototype, func(args []value.Value, _ value.Object) (value.Value, error) {
		return r.constructObject(args[0])
	})
	objectCtor.DefineMethod(r, "getPrototypeOf", NativeFunction1(func(_, v value.Value) (value.Value, error) {
		o, err := r.ToObject(v)
		if err != nil {
			return value.Empty, err
		}
		proto, err := o.GetPrototypeOf()
		if err != nil || proto == nil {
			return value.Null, err
		}
		return value.ObjectOf(proto), nil
	}))
	objectCtor.DefineMethod(r, "is", NativeFunction2(func(_, a, b value.Value) (value.Value, error) {
		return value.Bool(value.SameValue(a, b)), nil
	}))
	r.Globals.Define(value.Str("Object"), value.ObjectOf(objectCtor))

	symbolCtor := r.NewFunction("Symbol", NativeFunction1(func(_, desc value.Value) (value.Value, error) {
		if desc.IsUndefined() {
			return value.SymbolOf(value.NewSymbol(nil)), nil
		}
		s, err := value.ToGoString(desc)
		if err != nil {
			return value.Empty, err
		}
		return value.SymbolOf(value.NewSymbolString(s)), nil
	}))
	symbolCtor.Define(value.Str("prototype"), value.ObjectOf(r.SymbolPrototype))
	r.SymbolPrototype.Define(value.Str("constructor"), value.ObjectOf(symbolCtor))
	symbolCtor.DefineMethod(r, "for", NativeFunction1(func(_, key value.Value) (value.Value, error) {
		s, err := value.ToGoString(key)
		if err != nil {
			return value.Empty, err
		}
		return value.SymbolOf(r.symbols.For(s)), nil
	}))
	symbolCtor.DefineMethod(r, "keyFor", NativeFunction1(func(_, sym value.Value) (value.Value, error) {
		if !sym.IsSymbol() {
			return value.Empty, jserrors.TypeError("%s is not a symbol", sym)
		}
		if key, ok := r.symbols.KeyFor(sym.AsSymbol()); ok {
			return value.Str(key), nil
		}
		return value.Undefined, nil
	}))
	for name, sym := range value.WellKnownSymbols {
		symbolCtor.Define(value.Str(name), value.SymbolOf(sym))
	}
	r.Globals.Define(value.Str("Symbol"), value.ObjectOf(symbolCtor))

	r.Globals.Define(value.Str("NaN"), value.NaN)
	r.Globals.Define(value.Str("Infinity"), value.PositiveInfinity)
	r.Globals.Define(value.Str("undefined"), value.Undefined)
}

func (r *Realm) constructObject(v value.Value) (value.Value, error) {
	if v.IsNullish() {
		return value.ObjectOf(r.NewObject()), nil
	}
	o, err := r.ToObject(v)
	if err != nil {
		return value.Empty, err
	}
	return value.ObjectOf(o), nil
}

var _ value.Realm = (*Realm)(nil)
