package object

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// PrimitiveWrapper is the object ToObject produces for a primitive.
type PrimitiveWrapper struct {
	Ordinary
	primitive value.Value
}

var wrapperKinds = map[value.Kind]value.ObjectKind{
	value.KindBoolean: value.ObjectBoolean,
	value.KindNumber:  value.ObjectNumber,
	value.KindString:  value.ObjectString,
	value.KindSymbol:  value.ObjectSymbol,
	value.KindBigInt:  value.ObjectBigInt,
}

func (r *Realm) newWrapper(v value.Value) *PrimitiveWrapper {
	var proto *Ordinary
	switch v.Kind() {
	case value.KindBoolean:
		proto = r.BooleanPrototype
	case value.KindNumber:
		proto = r.NumberPrototype
	case value.KindString:
		proto = r.StringPrototype
	case value.KindSymbol:
		proto = r.SymbolPrototype
	case value.KindBigInt:
		proto = r.BigIntPrototype
	}
	return &PrimitiveWrapper{
		Ordinary:  *NewOrdinary(wrapperKinds[v.Kind()], proto),
		primitive: v.Clone(),
	}
}

// PrimitiveValue returns the wrapped primitive.
func (w *PrimitiveWrapper) PrimitiveValue() value.Value {
	return w.primitive
}

// Get implements value.Object. String wrappers expose length and index properties.
func (w *PrimitiveWrapper) Get(key value.Value, receiver value.Value) (value.Value, error) {
	if w.primitive.IsString() {
		s := w.primitive.AsString()
		if key.IsString() && value.IsStrictlyEqual(key, keyLength) {
			return value.Int(int64(s.Length())), nil
		}
		if i, ok := arrayIndex(key); ok {
			if i < s.Length() {
				return value.StringOf(s.Substring(i, i+1)), nil
			}
			return value.Undefined, nil
		}
	}
	return w.Ordinary.Get(key, receiver)
}

// String implements fmt.Stringer.
func (w *PrimitiveWrapper) String() string {
	return "[" + w.Kind().String() + ": " + w.primitive.GoString() + "]"
}

// thisPrimitive unwraps this for the prototype methods of kind.
func thisPrimitive(this value.Value, kind value.Kind) (value.Value, error) {
	if this.Kind() == kind {
		return this, nil
	}
	if o, ok := this.TryObject(); ok {
		if w, ok := o.(*PrimitiveWrapper); ok && w.primitive.Kind() == kind {
			return w.primitive, nil
		}
	}
	return value.Empty, jserrors.TypeError("%s.prototype method called on incompatible receiver %s", kind, this)
}

func installWrapperPrototypes(r *Realm) {
	for kind, proto := range map[value.Kind]*Ordinary{
		value.KindBoolean: r.BooleanPrototype,
		value.KindNumber:  r.NumberPrototype,
		value.KindString:  r.StringPrototype,
		value.KindSymbol:  r.SymbolPrototype,
		value.KindBigInt:  r.BigIntPrototype,
	} {
		proto.DefineMethod(r, "valueOf", NativeFunction0(func(this value.Value) (value.Value, error) {
			return thisPrimitive(this, kind)
		}))
		if kind == value.KindSymbol {
			continue
		}
		proto.DefineMethod(r, "toString", NativeFunction0(func(this value.Value) (value.Value, error) {
			p, err := thisPrimitive(this, kind)
			if err != nil {
				return value.Empty, err
			}
			s, err := value.ToString(p)
			if err != nil {
				return value.Empty, err
			}
			return value.StringOf(s), nil
		}))
	}

	r.SymbolPrototype.DefineMethod(r, "toString", NativeFunction0(func(this value.Value) (value.Value, error) {
		p, err := thisPrimitive(this, value.KindSymbol)
		if err != nil {
			return value.Empty, err
		}
		return value.Str(p.AsSymbol().DescriptiveString()), nil
	}))
	r.SymbolPrototype.DefineMethod(r, "description", NativeFunction0(func(this value.Value) (value.Value, error) {
		p, err := thisPrimitive(this, value.KindSymbol)
		if err != nil {
			return value.Empty, err
		}
		if desc, ok := p.AsSymbol().Description(); ok {
			return value.Str(desc), nil
		}
		return value.Undefined, nil
	}))
	r.SymbolPrototype.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("Symbol"))

	r.originalStringIterator = r.StringPrototype.DefineSymbolMethod(r, value.SymbolIterator,
		NativeFunction0(func(this value.Value) (value.Value, error) {
			if this.IsNullish() {
				return value.Empty, jserrors.TypeError("String.prototype[Symbol.iterator] called on null or undefined")
			}
			s, err := value.ToString(this)
			if err != nil {
				return value.Empty, err
			}
			return value.ObjectOf(r.NewStringIterator(s)), nil
		}))
}
